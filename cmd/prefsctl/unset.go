package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newUnsetCmd())
}

func newUnsetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a preference",
		Long: `The unset command removes a key from the rc or state file it lives in.
Once the application registers the key again it starts from its default.

Example:
  prefsctl unset -p app.toml Editor/font`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnset(args)
		},
	}
	return cmd
}

func runUnset(args []string) error {
	key := args[0]

	store, p, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	kind, err := store.KeyKind(key)
	if err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}
	store.Delete(key)
	if err := saveStore(store, p, kind); err != nil {
		return err
	}

	printInfo("Removed %s\n", key)
	return nil
}
