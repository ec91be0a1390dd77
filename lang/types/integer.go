package types

import "strconv"

// Integer is the shared shape of i8 and u8: an 8-bit integer type that may
// additionally carry the known constant value of the literal it was
// inferred from. Value is nil for anything that is not a bare integer
// literal (a variable of type u8 has no known value, even though its type
// is still Integer-shaped).
type Integer struct {
	Signed bool
	Value  *int64 // non-nil only for literal expressions with a known value
}

// I8 returns the signed 8-bit integer type, optionally carrying a known
// constant value.
func I8(value *int64) Integer { return Integer{Signed: true, Value: value} }

// U8 returns the unsigned 8-bit integer type, optionally carrying a known
// constant value.
func U8(value *int64) Integer { return Integer{Signed: false, Value: value} }

func (i Integer) String() string {
	if i.Signed {
		return "i8"
	}
	return "u8"
}

func (Integer) Size() int { return 1 }

func (i Integer) Equal(other Type) bool {
	o, ok := other.(Integer)
	return ok && i.Signed == o.Signed
}

// CanImplicitlyCastTo accepts identity for integers without a known value.
// A known-constant integer literal converts to u8 iff its value is in
// [0,255] and to i8 iff its value is in [-128,127].
func (i Integer) CanImplicitlyCastTo(other Type) bool {
	if i.Value != nil {
		v := *i.Value
		if o, ok := other.(Integer); ok {
			if o.Signed {
				return v >= -128 && v <= 127
			}
			return v >= 0 && v <= 255
		}
	}
	return i.Equal(other)
}

// FormatValue renders the known constant value, if any, for diagnostics.
func (i Integer) FormatValue() string {
	if i.Value == nil {
		return "?"
	}
	return strconv.FormatInt(*i.Value, 10)
}
