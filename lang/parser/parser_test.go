package parser

import (
	"testing"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/stretchr/testify/require"
)

func TestParseFuncWithParamsAndCall(t *testing.T) {
	src := `func add(a: u8, b: u8) -> u8 {
	write_port(1, a)
}
`
	prog, err := Parse("t.batc", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Items, 1)

	fn, ok := prog.Items[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.Len(t, fn.Body.Stmts, 1)

	stmt, ok := fn.Body.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := stmt.X.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "write_port", call.Func)
	require.Len(t, call.Args, 2)
}

func TestParseTopLevelVarWithInitializer(t *testing.T) {
	prog, err := Parse("t.batc", []byte("var x: u8 = 42\n"))
	require.NoError(t, err)
	require.Len(t, prog.Items, 1)

	v, ok := prog.Items[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)
	require.NotNil(t, v.Value)

	lit, ok := v.Value.(*ast.IntLit)
	require.True(t, ok)
	require.EqualValues(t, 42, lit.Value)
}

func TestParsePointerTypeAndDeref(t *testing.T) {
	src := "var p: *u8\nvar y: u8 = *p\n"
	prog, err := Parse("t.batc", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Items, 2)

	y := prog.Items[1].(*ast.VarDecl)
	deref, ok := y.Value.(*ast.Deref)
	require.True(t, ok)
	ident, ok := deref.X.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "p", ident.Name)
}

func TestParseEqualityIsLeftAssociative(t *testing.T) {
	src := "func f() -> void {\n1 == 2 == 3\n}\n"
	prog, err := Parse("t.batc", []byte(src))
	require.NoError(t, err)

	fn := prog.Items[0].(*ast.FuncDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.Equality)
	require.True(t, ok)
	_, ok = outer.X.(*ast.Equality)
	require.True(t, ok, "left operand of the outer == should itself be an ==")
}

func TestParseIfElseIfChain(t *testing.T) {
	src := "func f() -> void {\nif 1 == 0 { } else if 1 == 1 { } else { }\n}\n"
	prog, err := Parse("t.batc", []byte(src))
	require.NoError(t, err)

	fn := prog.Items[0].(*ast.FuncDecl)
	outer := fn.Body.Stmts[0].(*ast.If)
	require.NotNil(t, outer.ElseIf)
	require.Nil(t, outer.ElseBlock)
	require.NotNil(t, outer.ElseIf.ElseBlock)
}

func TestParseSyntaxErrorOnMissingArrow(t *testing.T) {
	_, err := Parse("t.batc", []byte("func f() u8 { }\n"))
	require.Error(t, err)
}

func TestParseCharAndStringLiterals(t *testing.T) {
	prog, err := Parse("t.batc", []byte(`var s: *char = "hi\n"
var c: char = 'x'
`))
	require.NoError(t, err)
	require.Len(t, prog.Items, 2)

	s := prog.Items[0].(*ast.VarDecl).Value.(*ast.StringLit)
	require.Equal(t, "hi\n", s.Value)

	c := prog.Items[1].(*ast.VarDecl).Value.(*ast.CharLit)
	require.Equal(t, 'x', c.Value)
}
