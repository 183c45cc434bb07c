package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.toml", `
sys = ["/etc/app/prefs.xml", "vendor.xml"]
rc = "prefs.xml"
state = "/var/lib/app/state.xml"
`)

	p, err := loadProfile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"/etc/app/prefs.xml", filepath.Join(dir, "vendor.xml")}, p.Sys)
	require.Equal(t, filepath.Join(dir, "prefs.xml"), p.RC)
	require.Equal(t, "/var/lib/app/state.xml", p.State)
}

func TestLoadProfile_UnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.toml", "rc = \"a.xml\"\nsystem = [\"b.xml\"]\n")

	_, err := loadProfile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "system")
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := loadProfile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	require.Equal(t, "", expandPath("/base", ""))
	require.Equal(t, "/abs/file.xml", expandPath("/base", "/abs/file.xml"))
	require.Equal(t, "/base/rel.xml", expandPath("/base", "rel.xml"))
	require.Equal(t, "/home/user/.config/prefs.xml", expandPath("/base", "~/.config/prefs.xml"))
	require.Equal(t, "/base/~odd.xml", expandPath("/base", "~odd.xml"))
}

func TestResolveProfile_FlagsOverride(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	profilePath = writeFile(t, dir, "app.toml", "sys = [\"sys.xml\"]\nrc = \"rc.xml\"\nstate = \"state.xml\"\n")
	rcFlag = "/tmp/other.xml"

	p, err := resolveProfile()
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "sys.xml")}, p.Sys)
	require.Equal(t, "/tmp/other.xml", p.RC)
	require.Equal(t, filepath.Join(dir, "state.xml"), p.State)
}

func TestResolveProfile_NothingGiven(t *testing.T) {
	resetFlags()
	defer resetFlags()

	_, err := resolveProfile()
	require.Error(t, err)
}
