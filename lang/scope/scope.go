// Package scope implements the lexical scope graph the declaration pass
// builds and the check and emit passes read: name resolution, storage
// allocation (static slots at the root scope, frame slots inside function
// bodies), and the root scope's free-register pool.
package scope

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/batc-lang/batc/lang/types"
)

// Memory layout constants, fixed by the target machine.
const (
	HeapEnd          = 128
	StaticMemorySize = 64
	StackEnd         = HeapEnd + StaticMemorySize

	BasePointerReg  = 7
	StackPointerReg = 6
)

// FuncSig is the signature of a declared function: its parameter types in
// order, and its return type.
type FuncSig struct {
	Params []types.Type
	Return types.Type
}

// binding is what a name resolves to in a Scope: exactly one of varType or
// fn is non-nil.
type binding struct {
	varType types.Type
	fn      *FuncSig
}

// Scope is one node of the lexical scope tree. The root scope (Parent ==
// nil) additionally owns the free-register pool and hosts static storage;
// every other scope hosts frame-relative storage for the function body (or
// nested block) it belongs to.
type Scope struct {
	Parent *Scope

	vars  *swiss.Map[string, binding]
	addrs *swiss.Map[string, StorageLocation]
	offset int

	// regs is only populated on the root scope; register allocation always
	// delegates up to the root (see AllocRegister).
	regs map[int]bool
}

// NewRootScope creates the single top-level scope of a compilation unit,
// seeded with the free-register pool and the two built-in function
// signatures (write_port, read_port).
func NewRootScope() *Scope {
	s := &Scope{
		vars:  swiss.NewMap[string, binding](8),
		addrs: swiss.NewMap[string, StorageLocation](8),
		regs:  map[int]bool{2: true, 3: true, 4: true, 5: true},
	}
	u8 := types.U8(nil)
	must(s.DeclareFunc("write_port", FuncSig{Params: []types.Type{u8, u8}, Return: types.Void{}}))
	must(s.DeclareFunc("read_port", FuncSig{Params: []types.Type{u8}, Return: u8}))
	return s
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// NewChild creates a fresh scope nested directly inside parent, as every
// function body and every if/else branch does.
func NewChild(parent *Scope) *Scope {
	return &Scope{
		Parent: parent,
		vars:   swiss.NewMap[string, binding](4),
		addrs:  swiss.NewMap[string, StorageLocation](4),
	}
}

// DeclareVar reserves storage for a new variable in s, at the moment of its
// declaration; storage never moves afterwards. It is a static error to
// redeclare a name already present in this exact scope.
func (s *Scope) DeclareVar(name string, t types.Type) error {
	if _, ok := s.vars.Get(name); ok {
		return fmt.Errorf("redefinition of symbol %q", name)
	}

	var loc StorageLocation
	if s.Parent != nil {
		loc = RegisterOffset{Base: BasePointerReg, Offset: s.offset}
	} else {
		addr := StackEnd - 1 - s.offset
		if addr <= HeapEnd {
			return fmt.Errorf("out of static memory declaring %q", name)
		}
		loc = Static{Address: addr}
	}

	s.vars.Put(name, binding{varType: t})
	s.addrs.Put(name, loc)
	s.offset++
	return nil
}

// DeclareFunc registers a function signature. Functions are only
// declarable at the root scope.
func (s *Scope) DeclareFunc(name string, sig FuncSig) error {
	if s.Parent != nil {
		return fmt.Errorf("function %q declared outside the top-level scope", name)
	}
	if _, ok := s.vars.Get(name); ok {
		return fmt.Errorf("redefinition of symbol %q", name)
	}
	s.vars.Put(name, binding{fn: &sig})
	return nil
}

// LookupFunc resolves name to a function signature, searching outward
// through enclosing scopes.
func (s *Scope) LookupFunc(name string) (FuncSig, error) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars.Get(name); ok {
			if b.fn == nil {
				return FuncSig{}, fmt.Errorf("symbol %q is a variable, not a function", name)
			}
			return *b.fn, nil
		}
	}
	return FuncSig{}, fmt.Errorf("function %q not declared", name)
}

// LookupVarType resolves name to a variable's type, searching outward
// through enclosing scopes.
func (s *Scope) LookupVarType(name string) (types.Type, error) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.vars.Get(name); ok {
			if b.fn != nil {
				return nil, fmt.Errorf("symbol %q is a function, not a variable", name)
			}
			return b.varType, nil
		}
	}
	return nil, fmt.Errorf("symbol %q not declared", name)
}

// LookupVarAddress resolves name to its storage location.
func (s *Scope) LookupVarAddress(name string) (StorageLocation, error) {
	for cur := s; cur != nil; cur = cur.Parent {
		if loc, ok := cur.addrs.Get(name); ok {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("symbol %q not declared", name)
}

// Root returns the top-level scope that owns the register pool.
func (s *Scope) Root() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}
