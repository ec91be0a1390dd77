package scope

import "fmt"

// StorageLocation is where a variable, or a transient expression result,
// lives: static memory (root scope only), a frame slot relative to a base
// register, or a bare register.
type StorageLocation interface {
	fmt.Stringer
	storageLocation()
}

// Static is an absolute address in (HeapEnd, StackEnd-1], used only for
// variables declared at the root scope.
type Static struct {
	Address int
}

func (Static) storageLocation() {}
func (s Static) String() string { return fmt.Sprintf("#%d", s.Address) }

// RegisterOffset addresses a frame slot as (Base register, signed Offset).
// Offset must fit in a signed 6-bit field ([-32, 31]); that constraint is
// enforced by the code generator, which is the only place it matters.
type RegisterOffset struct {
	Base   int
	Offset int
}

func (RegisterOffset) storageLocation() {}
func (r RegisterOffset) String() string { return fmt.Sprintf("r%d, #%d", r.Base, r.Offset) }

// Register is a bare register, used only transiently as an expression
// destination (never as a variable's permanent storage).
type Register struct {
	Reg int
}

func (Register) storageLocation() {}
func (r Register) String() string { return fmt.Sprintf("r%d", r.Reg) }
