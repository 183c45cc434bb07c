package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType enumerates the value types a preference can hold.
type ValueType uint8

const (
	TypeBool ValueType = iota + 1
	TypeInt
	TypeUint
	TypeString
)

// String returns the tag used for the type in preference files.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeString:
		return "string"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint8(t))
	}
}

// Valid reports whether t is one of the four supported types.
func (t ValueType) Valid() bool {
	return t >= TypeBool && t <= TypeString
}

// ParseValueType maps a file type tag back to a ValueType.
func ParseValueType(tag string) (ValueType, error) {
	switch tag {
	case "bool":
		return TypeBool, nil
	case "int":
		return TypeInt, nil
	case "uint":
		return TypeUint, nil
	case "string":
		return TypeString, nil
	default:
		return 0, Errorf(ErrKindConversion, "unknown value type %q", tag)
	}
}

// Value is a tagged union over the four supported types. Only the field
// matching typ is meaningful. Values are comparable with ==.
type Value struct {
	typ ValueType
	b   bool
	i   int64
	u   uint64
	s   string
}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{typ: TypeBool, b: v} }

// Int returns a signed integer Value.
func Int(v int64) Value { return Value{typ: TypeInt, i: v} }

// Uint returns an unsigned integer Value.
func Uint(v uint64) Value { return Value{typ: TypeUint, u: v} }

// String returns a string Value.
func String(v string) Value { return Value{typ: TypeString, s: v} }

// Zero returns the zero Value of type t.
func Zero(t ValueType) Value {
	if !t.Valid() {
		UsagePanic("zero value of unsupported type %d", uint8(t))
	}
	return Value{typ: t}
}

// Type returns the value's type. The zero Value has type 0.
func (v Value) Type() ValueType { return v.typ }

// IsZero reports whether v is the uninitialized Value.
func (v Value) IsZero() bool { return v.typ == 0 }

// AsBool returns the boolean payload; ok is false for other types.
func (v Value) AsBool() (b, ok bool) { return v.b, v.typ == TypeBool }

// AsInt returns the signed payload; ok is false for other types.
func (v Value) AsInt() (int64, bool) { return v.i, v.typ == TypeInt }

// AsUint returns the unsigned payload; ok is false for other types.
func (v Value) AsUint() (uint64, bool) { return v.u, v.typ == TypeUint }

// AsString returns the string payload; ok is false for other types.
func (v Value) AsString() (string, bool) { return v.s, v.typ == TypeString }

// String formats the value the way it is written to preference files.
// Booleans render as TRUE/FALSE.
func (v Value) String() string {
	switch v.typ {
	case TypeBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeUint:
		return strconv.FormatUint(v.u, 10)
	case TypeString:
		return v.s
	default:
		return ""
	}
}

// GoString makes %#v output readable in test failures.
func (v Value) GoString() string {
	if v.typ == 0 {
		return "types.Value{}"
	}
	return fmt.Sprintf("types.Value{%s:%q}", v.typ, v.String())
}

// ParseBool accepts 1/yes/true and 0/no/false, case-insensitively.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "yes", "true":
		return true, nil
	case "0", "no", "false":
		return false, nil
	default:
		return false, Errorf(ErrKindConversion, "cannot convert %q to bool", s)
	}
}

// ParseValue converts the textual form s into a Value of type t.
func ParseValue(t ValueType, s string) (Value, error) {
	switch t {
	case TypeBool:
		b, err := ParseBool(s)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case TypeInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, Errorf(ErrKindConversion, "cannot convert %q to int: %w", s, numError(err))
		}
		return Int(n), nil
	case TypeUint:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Value{}, Errorf(ErrKindConversion, "cannot convert %q to uint: %w", s, numError(err))
		}
		return Uint(n), nil
	case TypeString:
		return String(s), nil
	default:
		return Value{}, Errorf(ErrKindConversion, "unsupported value type %d", uint8(t))
	}
}

func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

// Convert coerces v to type t. Converting to the same type returns v.
func (v Value) Convert(t ValueType) (Value, error) {
	if v.typ == t {
		return v, nil
	}
	switch t {
	case TypeString:
		return String(v.String()), nil
	case TypeBool:
		switch v.typ {
		case TypeInt:
			return Bool(v.i != 0), nil
		case TypeUint:
			return Bool(v.u != 0), nil
		case TypeString:
			return ParseValue(TypeBool, v.s)
		}
	case TypeInt:
		switch v.typ {
		case TypeBool:
			return Int(boolToInt(v.b)), nil
		case TypeUint:
			if v.u > math.MaxInt64 {
				return Value{}, Errorf(ErrKindConversion, "value %d out of int range", v.u)
			}
			return Int(int64(v.u)), nil
		case TypeString:
			return ParseValue(TypeInt, v.s)
		}
	case TypeUint:
		switch v.typ {
		case TypeBool:
			return Uint(uint64(boolToInt(v.b))), nil
		case TypeInt:
			if v.i < 0 {
				return Value{}, Errorf(ErrKindConversion, "value %d out of uint range", v.i)
			}
			return Uint(uint64(v.i)), nil
		case TypeString:
			return ParseValue(TypeUint, v.s)
		}
	}
	return Value{}, Errorf(ErrKindConversion, "cannot convert %s to %s", v.typ, t)
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
