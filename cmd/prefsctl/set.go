package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/pkg/types"
)

var setKind string

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setKind, "kind", "rc", "File a new key is stored in (rc or state)")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <type> <value>",
		Short: "Set a preference value",
		Long: `The set command stores a value and saves the profile's files.

Type is one of bool, int, uint or string. An existing key keeps its type
and the value is converted to it. A new key is created in the rc file
unless --kind state is given.

Example:
  prefsctl set -p app.toml Editor/font string Monospace
  prefsctl set -p app.toml Editor/wrap bool TRUE
  prefsctl set -p app.toml Window/width int 640 --kind state`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	key, typeName, raw := args[0], args[1], args[2]

	typ, err := types.ParseValueType(typeName)
	if err != nil {
		return err
	}
	v, err := types.ParseValue(typ, raw)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", typ, raw, err)
	}
	kind, err := parseKind(setKind)
	if err != nil {
		return err
	}

	store, p, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if store.Registered(key) {
		if kind, err = store.KeyKind(key); err != nil {
			return err
		}
	}
	if err := store.Put(key, v, kind); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if err := saveStore(store, p, kind); err != nil {
		return err
	}

	printInfo("Set %s = %s\n", key, v.String())
	return nil
}
