package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getShowType bool

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVar(&getShowType, "type", false, "Show type information")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a preference value",
		Long: `The get command loads the profile and prints the effective value of a key.

Example:
  prefsctl get --rc prefs.xml Editor/font
  prefsctl get -p app.toml Editor/tab-width --type
  prefsctl get -p app.toml Editor/font --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	key := args[0]

	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := describe(store, key)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}

	if jsonOut {
		return printJSON(info)
	}

	if getShowType {
		fmt.Printf("%s (%s, %s)\n", info.Value, info.Type, info.Kind)
	} else {
		fmt.Println(info.Value)
	}
	return nil
}
