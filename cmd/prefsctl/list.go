package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/pkg/prefs"
)

var (
	listKind    string
	listChanged bool
)

func init() {
	cmd := newListCmd()
	cmd.Flags().StringVar(&listKind, "kind", "", "Only list keys of this kind (rc or state)")
	cmd.Flags().BoolVar(&listChanged, "changed", false, "Only list keys that differ from their default")
	rootCmd.AddCommand(cmd)
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List preferences",
		Long: `The list command prints every key the profile's files define, sorted by
kind and then by key.

Example:
  prefsctl list -p app.toml
  prefsctl list -p app.toml --kind state
  prefsctl list -p app.toml --changed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args)
		},
	}
	return cmd
}

func runList(_ []string) error {
	kinds := []prefs.Kind{prefs.KindRC, prefs.KindState}
	if listKind != "" {
		kind, err := parseKind(listKind)
		if err != nil {
			return err
		}
		kinds = []prefs.Kind{kind}
	}

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	items := collect(store, kinds...)
	if listChanged {
		filtered := items[:0]
		for _, it := range items {
			if it.Value != it.Default {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	if err := printItems(items); err != nil {
		return err
	}
	printVerbose("%d keys\n", len(items))
	return nil
}
