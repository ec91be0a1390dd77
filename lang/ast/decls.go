package ast

import (
	"github.com/batc-lang/batc/lang/scope"
	"github.com/batc-lang/batc/lang/token"
	"github.com/batc-lang/batc/lang/types"
)

// Param is one parameter of a Func declaration: a name and its type. It is
// not itself a Stmt or Expr; it only appears inside FuncDecl.Params.
type Param struct {
	NamePos token.Pos
	Name    string
	Type    types.Type
}

func (p *Param) Pos() token.Pos { return p.NamePos }

// FuncDecl is a top-level function declaration: `func NAME(params) -> ret { body }`.
// Func.declare (§4.2) registers its signature in the root scope, then declares each
// Param into Body's scope before recursing into the body.
type FuncDecl struct {
	FuncPos token.Pos
	Name    string
	Params  []*Param
	Return  types.Type
	Body    *Block

	// Scope is the root scope the function's signature is registered in,
	// not the body's scope (that is Body.Scope).
	Scope *scope.Scope
}

func (d *FuncDecl) Pos() token.Pos { return d.FuncPos }
func (d *FuncDecl) topLevel()      {}

// VarDecl is a variable declaration, `var NAME: TYPE [= VALUE]`. It appears
// both as a TopLevel item (static storage) and as a Stmt inside a Block
// (frame storage); which one it is follows from where it sits in the tree,
// not from any field on the node itself.
type VarDecl struct {
	VarPos token.Pos
	Name   string
	Type   types.Type
	Value  Expr // nil if no initializer

	Scope *scope.Scope
}

func (d *VarDecl) Pos() token.Pos { return d.VarPos }
func (d *VarDecl) topLevel()      {}
func (d *VarDecl) stmt()          {}
