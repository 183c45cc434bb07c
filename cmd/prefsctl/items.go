package main

import (
	"fmt"

	"github.com/joshuapare/prefkit/pkg/prefs"
)

// ItemInfo is the machine-readable form of one preference.
type ItemInfo struct {
	Key        string `json:"key" yaml:"key"`
	Type       string `json:"type" yaml:"type"`
	Kind       string `json:"kind" yaml:"kind"`
	Value      string `json:"value" yaml:"value"`
	Default    string `json:"default" yaml:"default"`
	Overridden bool   `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

func describe(store *prefs.Store, key string) (ItemInfo, error) {
	v, err := store.Get(key)
	if err != nil {
		return ItemInfo{}, err
	}
	def, _ := store.GetDefault(key)
	kind, _ := store.KeyKind(key)
	return ItemInfo{
		Key:        key,
		Type:       v.Type().String(),
		Kind:       kind.String(),
		Value:      v.String(),
		Default:    def.String(),
		Overridden: store.Overridden(key),
	}, nil
}

// collect describes every key of the given kinds in list order, rc before
// state when no kind is given.
func collect(store *prefs.Store, kinds ...prefs.Kind) []ItemInfo {
	if len(kinds) == 0 {
		kinds = []prefs.Kind{prefs.KindRC, prefs.KindState}
	}
	var items []ItemInfo
	for _, kind := range kinds {
		for _, key := range store.ListKeys(kind) {
			info, err := describe(store, key)
			if err == nil {
				items = append(items, info)
			}
		}
	}
	return items
}

func printItems(items []ItemInfo) error {
	if jsonOut {
		if items == nil {
			items = []ItemInfo{}
		}
		return printJSON(items)
	}
	for _, it := range items {
		fmt.Printf("%s = %s (%s, %s)\n", it.Key, it.Value, it.Type, it.Kind)
	}
	return nil
}

func parseKind(s string) (prefs.Kind, error) {
	switch s {
	case "rc", "":
		return prefs.KindRC, nil
	case "state":
		return prefs.KindState, nil
	default:
		return 0, fmt.Errorf("invalid kind %q (use rc or state)", s)
	}
}

// saveStore writes back the files of p, requiring a path for kind.
func saveStore(store *prefs.Store, p Profile, kind prefs.Kind) error {
	if kind == prefs.KindRC && p.RC == "" {
		return fmt.Errorf("no rc file configured")
	}
	if kind == prefs.KindState && p.State == "" {
		return fmt.Errorf("no state file configured")
	}
	if err := store.Save(p.RC, p.State); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
