package ast

import (
	"github.com/batc-lang/batc/lang/token"
)

// IntLit is an integer literal. Its known constant Value is what lets the
// type system narrow it to i8 or u8 at a use site (§3.1); Value is always
// already masked to 8 bits by the time the check pass is done with it
// (values that did not originally fit are masked without any warning).
type IntLit struct {
	exprBase
	ValuePos token.Pos
	Value    int64
}

func (e *IntLit) Pos() token.Pos { return e.ValuePos }
func (e *IntLit) expr()          {}

// StringLit is a string literal; per the check pass it always has type
// *char (§4.3).
type StringLit struct {
	exprBase
	ValuePos token.Pos
	Value    string // decoded, escapes already resolved by the lexer
}

func (e *StringLit) Pos() token.Pos { return e.ValuePos }
func (e *StringLit) expr()          {}

// CharLit is a char literal; the lexer has already verified it decodes to
// exactly one character.
type CharLit struct {
	exprBase
	ValuePos token.Pos
	Value    rune
}

func (e *CharLit) Pos() token.Pos { return e.ValuePos }
func (e *CharLit) expr()          {}

// Ident is a bare identifier reference, resolved against Scope to either a
// variable's type or (when used as the callee of a Call) a function's
// signature.
type Ident struct {
	exprBase
	NamePos token.Pos
	Name    string
}

func (e *Ident) Pos() token.Pos { return e.NamePos }
func (e *Ident) expr()          {}

// Call is a function call, `NAME(args...)`. The callee is always a bare
// name (the grammar has no first-class function values), so it is carried
// as a string plus its position rather than as a nested Expr.
type Call struct {
	exprBase
	FuncPos token.Pos
	Func    string
	Args    []Expr
	Rparen  token.Pos
}

func (e *Call) Pos() token.Pos { return e.FuncPos }
func (e *Call) expr()          {}

// Deref is a pointer dereference, `*X`.
type Deref struct {
	exprBase
	Star token.Pos
	X    Expr
}

func (e *Deref) Pos() token.Pos { return e.Star }
func (e *Deref) expr()          {}

// Equality is `X == Y`; its type is always Bool (§4.3).
type Equality struct {
	exprBase
	X     Expr
	EqEq  token.Pos
	Y     Expr
}

func (e *Equality) Pos() token.Pos { return e.X.Pos() }
func (e *Equality) expr()          {}
