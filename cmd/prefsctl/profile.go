package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Profile names the files one application instance loads.
//
//	sys   = ["/etc/app/prefs.xml"]
//	rc    = "~/.config/app/prefs.xml"
//	state = "~/.local/state/app/state.xml"
type Profile struct {
	Sys   []string `toml:"sys"`
	RC    string   `toml:"rc"`
	State string   `toml:"state"`
}

// loadProfile decodes a TOML profile. Relative paths are resolved against
// the profile's directory and a leading ~ against the home directory.
func loadProfile(path string) (Profile, error) {
	var p Profile
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return p, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return p, fmt.Errorf("profile %s: unknown key %q", path, undecoded[0].String())
	}

	base := filepath.Dir(path)
	for i, s := range p.Sys {
		p.Sys[i] = expandPath(base, s)
	}
	p.RC = expandPath(base, p.RC)
	p.State = expandPath(base, p.State)
	return p, nil
}

func expandPath(base, path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || (len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1])) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// resolveProfile combines the --profile file with the file flags. Flags
// win over the profile.
func resolveProfile() (Profile, error) {
	var p Profile
	if profilePath != "" {
		var err error
		if p, err = loadProfile(profilePath); err != nil {
			return p, err
		}
	}
	if len(sysFlag) > 0 {
		p.Sys = sysFlag
	}
	if rcFlag != "" {
		p.RC = rcFlag
	}
	if stateFlag != "" {
		p.State = stateFlag
	}
	if p.RC == "" && p.State == "" && len(p.Sys) == 0 {
		return p, errors.New("no preference files given; use --profile, --rc, --state or --sys")
	}
	return p, nil
}
