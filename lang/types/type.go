// Package types implements the small, closed type lattice of the source
// language: void, the three scalar kinds (i8, u8, char), bool, and pointers
// to any of those (recursively). There is no user-defined type.
package types

import "fmt"

// Type is implemented by every member of the type lattice. Two Types are
// equal iff Equal reports true for them (same variant, and for pointers,
// recursively equal element type).
type Type interface {
	fmt.Stringer

	// Equal reports whether t and other denote the same type.
	Equal(other Type) bool

	// CanImplicitlyCastTo reports whether a value of type t may be used
	// where other is expected, per the identity and constant-narrowing
	// rules described in the language's type system.
	CanImplicitlyCastTo(other Type) bool

	// Size is the size in target bytes of a value of this type.
	Size() int
}

// Void is the pseudo-type of a function that returns nothing. It is only
// valid in return-type position.
type Void struct{}

func (Void) String() string                 { return "void" }
func (Void) Size() int                      { return 0 }
func (v Void) Equal(other Type) bool        { _, ok := other.(Void); return ok }
func (v Void) CanImplicitlyCastTo(o Type) bool { return v.Equal(o) }

// Char is the type of a single source character, distinct from u8 even
// though both occupy one byte.
type Char struct{}

func (Char) String() string          { return "char" }
func (Char) Size() int               { return 1 }
func (c Char) Equal(other Type) bool { _, ok := other.(Char); return ok }
func (c Char) CanImplicitlyCastTo(o Type) bool { return c.Equal(o) }

// Bool is the result type of an equality comparison.
type Bool struct{}

func (Bool) String() string          { return "bool" }
func (Bool) Size() int               { return 1 }
func (b Bool) Equal(other Type) bool { _, ok := other.(Bool); return ok }
func (b Bool) CanImplicitlyCastTo(o Type) bool { return b.Equal(o) }

// Pointer is the type of an address pointing at a value of Elem. Pointers
// nest arbitrarily (**u8, ***char, ...).
type Pointer struct {
	Elem Type
}

func (p Pointer) String() string { return "*" + p.Elem.String() }
func (Pointer) Size() int        { return 1 }

func (p Pointer) Equal(other Type) bool {
	o, ok := other.(Pointer)
	return ok && p.Elem.Equal(o.Elem)
}

func (p Pointer) CanImplicitlyCastTo(o Type) bool { return p.Equal(o) }
