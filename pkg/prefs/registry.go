package prefs

import (
	"sort"
	"strings"

	"github.com/joshuapare/prefkit/internal/logger"
	"github.com/joshuapare/prefkit/pkg/types"
)

// KeySeparator joins key segments, see MakeKey.
const KeySeparator = "/"

// Kind selects the file a preference persists to.
type Kind uint8

const (
	// KindRC keys live in the user-editable rc file. Changing one makes the
	// rc file worth saving.
	KindRC Kind = iota
	// KindState keys live in the session state file.
	KindState
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case KindRC:
		return "rc"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// item is one registry entry.
type item struct {
	typ        types.ValueType
	value      types.Value
	def        types.Value
	kind       Kind
	overridden bool // a system file supplied the default
	loadedOnly bool // created from an rc/state file, not yet registered
}

// changed reports whether the item has something worth persisting.
func (it *item) changed() bool {
	return it.value != it.def || it.loadedOnly
}

// Registry maps keys to typed values with defaults.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	items   map[string]*item
	rcDirty bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*item)}
}

// MakeKey joins non-empty parts with KeySeparator.
func MakeKey(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, KeySeparator)
}

// Register creates key with default def, or updates an existing entry.
//
// Re-registering keeps the current value and adopts kind. The default is
// replaced unless a system file overrode it. Registering with a different
// type converts both the value and the default; this is logged since it
// usually points to two callers disagreeing about a key.
func (r *Registry) Register(key string, def types.Value, kind Kind) {
	if key == "" {
		types.UsagePanic("prefs: empty key")
	}
	if !def.Type().Valid() {
		types.UsagePanic("prefs: register %q with invalid value", key)
	}

	it, ok := r.items[key]
	if !ok {
		r.items[key] = &item{typ: def.Type(), value: def, def: def, kind: kind}
		return
	}

	if it.typ != def.Type() {
		logger.Warn("forced type change", "key", key, "from", it.typ.String(), "to", def.Type().String())
		it.typ = def.Type()
		it.value = convertOr(it.value, it.typ, def)
		it.def = convertOr(it.def, it.typ, def)
	}

	if !it.overridden {
		it.def = def
		if it.kind != kind && it.kind == KindRC {
			r.rcDirty = true
		}
	}
	it.kind = kind
	it.loadedOnly = false
}

// Put stores v for key the way a loaded file would. An unknown key is
// created with v as value and default and is kept on save until the
// application registers it. An existing key takes v converted to its type.
func (r *Registry) Put(key string, v types.Value, kind Kind) error {
	if key == "" {
		types.UsagePanic("prefs: empty key")
	}
	it, ok := r.items[key]
	if !ok {
		if !v.Type().Valid() {
			types.UsagePanic("prefs: put %q with invalid value", key)
		}
		r.items[key] = &item{typ: v.Type(), value: v, def: v, kind: kind, loadedOnly: true}
		if kind == KindRC {
			r.rcDirty = true
		}
		return nil
	}
	cv, err := v.Convert(it.typ)
	if err != nil {
		return err
	}
	return r.Set(key, cv)
}

func convertOr(v types.Value, t types.ValueType, fallback types.Value) types.Value {
	cv, err := v.Convert(t)
	if err != nil {
		return fallback
	}
	return cv
}

func (r *Registry) lookup(key string) (*item, error) {
	it, ok := r.items[key]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, "key %q not registered", key)
	}
	return it, nil
}

// Registered reports whether key exists.
func (r *Registry) Registered(key string) bool {
	_, ok := r.items[key]
	return ok
}

// KeyType returns the declared type of key.
func (r *Registry) KeyType(key string) (types.ValueType, error) {
	it, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	return it.typ, nil
}

// KeyKind returns the file kind of key.
func (r *Registry) KeyKind(key string) (Kind, error) {
	it, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	return it.kind, nil
}

// Overridden reports whether a system file supplied the default of key.
func (r *Registry) Overridden(key string) bool {
	it, ok := r.items[key]
	return ok && it.overridden
}

// Get returns the current value of key.
func (r *Registry) Get(key string) (types.Value, error) {
	it, err := r.lookup(key)
	if err != nil {
		return types.Value{}, err
	}
	return it.value, nil
}

// GetDefault returns the default value of key.
func (r *Registry) GetDefault(key string) (types.Value, error) {
	it, err := r.lookup(key)
	if err != nil {
		return types.Value{}, err
	}
	return it.def, nil
}

// Set stores v as the value of key. v must have the key's type. Changing
// an rc key marks the registry modified.
func (r *Registry) Set(key string, v types.Value) error {
	it, err := r.lookup(key)
	if err != nil {
		return err
	}
	if v.Type() != it.typ {
		return types.Errorf(types.ErrKindType, "key %q has type %s, got %s", key, it.typ, v.Type())
	}
	if v == it.value {
		return nil
	}
	it.value = v
	if it.kind == KindRC {
		r.rcDirty = true
	}
	return nil
}

// SetDefault replaces the default of key. Defaults are never persisted, so
// the modified flag is untouched.
func (r *Registry) SetDefault(key string, v types.Value) error {
	it, err := r.lookup(key)
	if err != nil {
		return err
	}
	if v.Type() != it.typ {
		return types.Errorf(types.ErrKindType, "key %q has type %s, got %s", key, it.typ, v.Type())
	}
	it.def = v
	return nil
}

// Reset sets key back to its default.
func (r *Registry) Reset(key string) error {
	it, err := r.lookup(key)
	if err != nil {
		return err
	}
	return r.Set(key, it.def)
}

// Delete removes key. Deleting an rc key marks the registry modified.
// Deleting an absent key is a no-op.
func (r *Registry) Delete(key string) {
	it, ok := r.items[key]
	if !ok {
		return
	}
	if it.kind == KindRC {
		r.rcDirty = true
	}
	delete(r.items, key)
}

// ListKeys returns the keys of kind in lexicographic order.
func (r *Registry) ListKeys(kind Kind) []string {
	keys := make([]string, 0, len(r.items))
	for k, it := range r.items {
		if it.kind == kind {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// RCModified reports whether an rc key changed since the last load or save.
func (r *Registry) RCModified() bool { return r.rcDirty }

// SetRCModified overrides the rc modified flag.
func (r *Registry) SetRCModified(modified bool) { r.rcDirty = modified }
