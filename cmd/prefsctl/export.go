package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/prefkit/pkg/prefs"
)

var exportFormat string

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format (yaml or json)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all preferences",
		Long: `The export command loads the profile and writes every key with its type,
kind, value and default as YAML or JSON.

Example:
  prefsctl export -p app.toml
  prefsctl export -p app.toml --format json > prefs.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

// exportDocument is the top-level shape of an export.
type exportDocument struct {
	RC    []ItemInfo `json:"rc" yaml:"rc"`
	State []ItemInfo `json:"state" yaml:"state"`
}

func runExport(_ []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := exportDocument{
		RC:    collect(store, prefs.KindRC),
		State: collect(store, prefs.KindState),
	}
	if out.RC == nil {
		out.RC = []ItemInfo{}
	}
	if out.State == nil {
		out.State = []ItemInfo{}
	}

	switch exportFormat {
	case "json":
		return printJSON(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use yaml or json)", exportFormat)
	}
}
