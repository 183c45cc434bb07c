// Package types holds the small value types shared by the markup tree and
// the preference registry.
//
// Design goals:
//   - Small, copyable handles (NodeID) instead of pointer graphs.
//   - A closed set of preference value types (bool, int, uint, string).
//   - Typed errors with stable categories (parse/schema/conversion/io/...).
//
// This package has no dependencies beyond the standard library.
package types
