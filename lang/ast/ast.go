// Package ast defines the abstract syntax tree built by the parser and
// walked by the declaration, check, and code generation passes.
//
// Every node carries a Pos for diagnostics, and every Expr additionally
// carries a Scope (set during declaration) and a Type (set during
// checking). Neither field is populated by the parser itself: a freshly
// parsed tree has a nil Scope and a nil Type on every expression, by
// construction (§3.2's invariant that Scope is set during the declaration
// pass, never during construction).
package ast

import (
	"github.com/batc-lang/batc/lang/scope"
	"github.com/batc-lang/batc/lang/token"
	"github.com/batc-lang/batc/lang/types"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Pos
}

// TopLevel is implemented by the two kinds of item that may appear at the
// top level of a Program: *FuncDecl and *VarDecl.
type TopLevel interface {
	Node
	topLevel()
}

// Stmt is implemented by every statement kind: *VarDecl (as a statement),
// *ExprStmt, *If, and *Block.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by every expression kind.
type Expr interface {
	Node
	expr()

	// Type returns the expression's type, valid only after the check pass
	// has run.
	Type() types.Type

	// SetType records the expression's type. Called exactly once, by the
	// check pass.
	SetType(types.Type)
}

// exprBase factors out the Scope/Type bookkeeping shared by every Expr
// implementation.
type exprBase struct {
	Scope *scope.Scope
	Typ   types.Type
}

func (e *exprBase) Type() types.Type     { return e.Typ }
func (e *exprBase) SetType(t types.Type) { e.Typ = t }

// Program is the root of the tree: the ordered top-level items of one
// compilation unit. Per §3.2, a Program has exactly one top-level Scope,
// attached here during declaration.
type Program struct {
	Items []TopLevel
	Scope *scope.Scope
}

func (p *Program) Pos() token.Pos {
	if len(p.Items) == 0 {
		return 0
	}
	return p.Items[0].Pos()
}
