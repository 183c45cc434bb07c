package prefs

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/prefkit/pkg/types"
)

// RegisterBool registers a boolean key.
func (r *Registry) RegisterBool(key string, def bool, kind Kind) {
	r.Register(key, types.Bool(def), kind)
}

// RegisterInt registers a signed integer key.
func (r *Registry) RegisterInt(key string, def int64, kind Kind) {
	r.Register(key, types.Int(def), kind)
}

// RegisterUint registers an unsigned integer key.
func (r *Registry) RegisterUint(key string, def uint64, kind Kind) {
	r.Register(key, types.Uint(def), kind)
}

// RegisterString registers a string key.
func (r *Registry) RegisterString(key, def string, kind Kind) {
	r.Register(key, types.String(def), kind)
}

func (r *Registry) typed(key string, t types.ValueType) (types.Value, error) {
	v, err := r.Get(key)
	if err != nil {
		return v, err
	}
	if v.Type() != t {
		return v, types.Errorf(types.ErrKindType, "key %q has type %s, not %s", key, v.Type(), t)
	}
	return v, nil
}

// GetBool returns the value of a boolean key.
func (r *Registry) GetBool(key string) (bool, error) {
	v, err := r.typed(key, types.TypeBool)
	b, _ := v.AsBool()
	return b, err
}

// GetInt returns the value of a signed integer key.
func (r *Registry) GetInt(key string) (int64, error) {
	v, err := r.typed(key, types.TypeInt)
	n, _ := v.AsInt()
	return n, err
}

// GetUint returns the value of an unsigned integer key.
func (r *Registry) GetUint(key string) (uint64, error) {
	v, err := r.typed(key, types.TypeUint)
	n, _ := v.AsUint()
	return n, err
}

// GetString returns the value of a string key.
func (r *Registry) GetString(key string) (string, error) {
	v, err := r.typed(key, types.TypeString)
	s, _ := v.AsString()
	return s, err
}

// SetBool sets a boolean key.
func (r *Registry) SetBool(key string, v bool) error { return r.Set(key, types.Bool(v)) }

// SetInt sets a signed integer key.
func (r *Registry) SetInt(key string, v int64) error { return r.Set(key, types.Int(v)) }

// SetUint sets an unsigned integer key.
func (r *Registry) SetUint(key string, v uint64) error { return r.Set(key, types.Uint(v)) }

// SetString sets a string key.
func (r *Registry) SetString(key, v string) error { return r.Set(key, types.String(v)) }

// Filename returns a string key holding a path, in platform form.
func (r *Registry) Filename(key string) (string, error) {
	s, err := r.GetString(key)
	if err != nil || s == "" {
		return s, err
	}
	return filepath.FromSlash(s), nil
}

// SetFilename stores path in a string key as slash-separated NFC text, so
// the same file reads back identically on every platform.
func (r *Registry) SetFilename(key, path string) error {
	return r.SetString(key, norm.NFC.String(filepath.ToSlash(path)))
}
