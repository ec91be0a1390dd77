package ast

import (
	"github.com/batc-lang/batc/lang/scope"
	"github.com/batc-lang/batc/lang/token"
)

// ExprStmt is an expression used as a statement, valid per the grammar for
// any expression (the source language allows bare-expression statements;
// §9 note (b) specifies that, as a statement, the expression's destination
// is a sink register released immediately after the emit).
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() token.Pos { return s.X.Pos() }
func (s *ExprStmt) stmt()          {}

// Block is an ordered list of statements introducing a new nested scope
// (§3.2). A Block's Scope is always a direct child of the scope it is
// nested within; for a Func's body that parent is the root scope, and for
// an If's then/else branches it is the surrounding scope the If itself was
// declared in.
type Block struct {
	Lbrace token.Pos
	Stmts  []Stmt
	Rbrace token.Pos

	Scope *scope.Scope
}

func (b *Block) Pos() token.Pos { return b.Lbrace }
func (b *Block) stmt()          {}

// If is `if COND BLOCK ('else' (BLOCK | IF))?`. Per §3.2, an If always
// introduces two fresh child scopes for its branches (then, and else, even
// when there is no else clause in the source) rather than letting the
// then-branch borrow the else scope's slot numbering.
//
// Else is at most one of ElseBlock or ElseIf; both nil means no else
// clause at all.
type If struct {
	IfPos     token.Pos
	Cond      Expr
	Then      *Block
	ElseBlock *Block // non-nil for a trailing `else { ... }`
	ElseIf    *If    // non-nil for a trailing `else if ...`

	Scope *scope.Scope
}

func (i *If) Pos() token.Pos { return i.IfPos }
func (i *If) stmt()          {}
