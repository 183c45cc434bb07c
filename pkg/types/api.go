package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindParse      ErrKind = iota // malformed markup (unterminated tag, bad nesting, bad bytes)
	ErrKindSchema                    // missing/mismatched root element or version attribute
	ErrKindConversion                // stored string cannot be coerced to the declared type
	ErrKindIO                        // open/read/write failure
	ErrKindNotFound                  // unregistered key, missing element
	ErrKindType                      // value type doesn't match the key's declared type
	ErrKindUsage                     // caller broke an API contract (stale handle, double release)
)

// String returns a short lowercase name for the kind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindParse:
		return "parse"
	case ErrKindSchema:
		return "schema"
	case ErrKindConversion:
		return "conversion"
	case ErrKindIO:
		return "io"
	case ErrKindNotFound:
		return "not found"
	case ErrKindType:
		return "type"
	case ErrKindUsage:
		return "usage"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same kind, so that
// errors.Is(err, ErrNotFound) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Msg == sentinelMsg && t.Kind == e.Kind
}

const sentinelMsg = "\x00sentinel"

// Sentinels for errors.Is comparisons. They match any *Error of the same kind.
var (
	ErrParse      = &Error{Kind: ErrKindParse, Msg: sentinelMsg}
	ErrSchema     = &Error{Kind: ErrKindSchema, Msg: sentinelMsg}
	ErrConversion = &Error{Kind: ErrKindConversion, Msg: sentinelMsg}
	ErrIO         = &Error{Kind: ErrKindIO, Msg: sentinelMsg}
	ErrNotFound   = &Error{Kind: ErrKindNotFound, Msg: sentinelMsg}
	ErrType       = &Error{Kind: ErrKindType, Msg: sentinelMsg}
	ErrUsage      = &Error{Kind: ErrKindUsage, Msg: sentinelMsg}
)

// Errorf builds a typed error. A trailing %w verb is honoured the same way
// fmt.Errorf does and becomes Err.
func Errorf(kind ErrKind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	e := &Error{Kind: kind, Msg: wrapped.Error()}
	if inner := errors.Unwrap(wrapped); inner != nil {
		e.Msg = trimCause(e.Msg, inner.Error())
		e.Err = inner
	}
	return e
}

func trimCause(msg, cause string) string {
	suffix := ": " + cause
	if len(msg) >= len(suffix) && msg[len(msg)-len(suffix):] == suffix {
		return msg[:len(msg)-len(suffix)]
	}
	return msg
}

// IsKind reports whether any error in err's chain is a *Error of kind k.
func IsKind(err error, k ErrKind) bool {
	var te *Error
	for err != nil {
		if errors.As(err, &te) {
			if te.Kind == k {
				return true
			}
			err = te.Err
			continue
		}
		return false
	}
	return false
}

// UsagePanic panics with a usage error. It is reserved for contract
// violations that indicate a bug in calling code, never bad input data.
func UsagePanic(format string, args ...any) {
	panic(Errorf(ErrKindUsage, format, args...))
}

// -----------------------------------------------------------------------------
// Core Identifiers
// -----------------------------------------------------------------------------

// NodeID is a small, copyable handle referring to a node in a document arena.
// The low 32 bits hold the slot index, the high 32 bits the slot generation.
// The zero NodeID never refers to a node.
type NodeID uint64

// NoNode is the zero handle.
const NoNode NodeID = 0

// MakeNodeID packs a slot index and generation into a handle.
func MakeNodeID(index, gen uint32) NodeID {
	return NodeID(uint64(gen)<<32 | uint64(index))
}

// Index returns the arena slot index.
func (id NodeID) Index() uint32 { return uint32(id) }

// Gen returns the slot generation.
func (id NodeID) Gen() uint32 { return uint32(id >> 32) }

// NodeKind enumerates the four node variants of a markup tree.
type NodeKind uint8

const (
	DocumentNode NodeKind = iota
	ElementNode
	TextNode
	CommentNode
)

// String implements the Stringer interface for NodeKind.
func (k NodeKind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_%d", uint8(k))
	}
}

// IsText reports whether nodes of this kind carry a byte buffer.
func (k NodeKind) IsText() bool {
	return k == TextNode || k == CommentNode
}
