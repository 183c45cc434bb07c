package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/pkg/prefs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// VersionInfo is the --json form of the version command.
type VersionInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Built         string `json:"built"`
	FormatVersion string `json:"format_version"`
	RootElement   string `json:"root_element"`
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `The version command prints the build of prefsctl and the preference file
format it reads and writes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(args)
		},
	}
}

func runVersion(_ []string) error {
	info := VersionInfo{
		Version:       version,
		Commit:        commit,
		Built:         date,
		FormatVersion: prefs.FormatVersion,
		RootElement:   prefs.RootElement,
	}
	if jsonOut {
		return printJSON(info)
	}
	fmt.Printf("prefsctl %s\n", info.Version)
	fmt.Printf("  commit: %s\n", info.Commit)
	fmt.Printf("  built: %s\n", info.Built)
	fmt.Printf("  file format: <%s version=%q>\n", info.RootElement, info.FormatVersion)
	return nil
}
