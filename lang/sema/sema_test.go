package sema

import (
	"testing"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/parser"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse("t.batc", []byte(src))
	require.NoError(t, err)
	require.NoError(t, Declare("t.batc", prog))
	require.NoError(t, Check("t.batc", prog))
	return prog
}

func TestDeclareEveryNodeGetsAScope(t *testing.T) {
	prog := analyze(t, "var x: u8 = 42\n")
	require.NotNil(t, prog.Scope)
	v := prog.Items[0].(*ast.VarDecl)
	require.NotNil(t, v.Scope)
	require.NotNil(t, v.Value.(*ast.IntLit).Scope)
}

func TestRedefinitionInSameScopeIsError(t *testing.T) {
	prog, err := parser.Parse("t.batc", []byte("var x: u8\nvar x: u8\n"))
	require.NoError(t, err)
	err = Declare("t.batc", prog)
	require.ErrorContains(t, err, "redefinition")
}

func TestCallOfUndeclaredFunctionIsError(t *testing.T) {
	// The check pass catches an undeclared identifier used as if it were
	// callable.
	prog, err := parser.Parse("t.batc", []byte("func f() -> void {\nnope(1)\n}\n"))
	require.NoError(t, err)
	require.NoError(t, Declare("t.batc", prog))
	err = Check("t.batc", prog)
	require.ErrorContains(t, err, "not declared")
}

func TestVarWithIncompatibleInitializerIsError(t *testing.T) {
	prog, err := parser.Parse("t.batc", []byte("var x: i8 = 200\n"))
	require.NoError(t, err)
	require.NoError(t, Declare("t.batc", prog))
	err = Check("t.batc", prog)
	require.Error(t, err)
}

func TestVarWithInRangeU8InitializerSucceeds(t *testing.T) {
	analyze(t, "var x: u8 = 200\n")
}

func TestDereferenceOfNonPointerIsError(t *testing.T) {
	prog, err := parser.Parse("t.batc", []byte("var x: u8\nvar y: u8 = *x\n"))
	require.NoError(t, err)
	require.NoError(t, Declare("t.batc", prog))
	err = Check("t.batc", prog)
	require.ErrorContains(t, err, "dereference")
}

func TestPointerDereferenceRoundTrip(t *testing.T) {
	prog := analyze(t, "var p: *u8\nvar y: u8 = *p\n")
	y := prog.Items[1].(*ast.VarDecl)
	deref := y.Value.(*ast.Deref)
	require.Equal(t, "u8", deref.Type().String())
}

func TestCallArityMismatchIsError(t *testing.T) {
	prog, err := parser.Parse("t.batc", []byte(
		"func add(a: u8, b: u8) -> u8 {\n1 == 1\n}\nvar r: bool = add(1)\n"))
	require.NoError(t, err)
	require.NoError(t, Declare("t.batc", prog))
	err = Check("t.batc", prog)
	require.ErrorContains(t, err, "argument")
}

func TestBuiltinWritePortIsCallable(t *testing.T) {
	analyze(t, "func f() -> void {\nwrite_port(5, 165)\n}\n")
}

func TestEqualityResultIsBool(t *testing.T) {
	prog := analyze(t, "func f() -> void {\n1 == 2\n}\n")
	fn := prog.Items[0].(*ast.FuncDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	require.Equal(t, "bool", stmt.X.Type().String())
}

func TestIfIntroducesFreshScopesForBothBranches(t *testing.T) {
	prog := analyze(t, "func f() -> void {\nif 1 == 0 { var x: u8 } else { var x: u8 }\n}\n")
	fn := prog.Items[0].(*ast.FuncDecl)
	ifStmt := fn.Body.Stmts[0].(*ast.If)
	require.NotSame(t, ifStmt.Then.Scope, ifStmt.ElseBlock.Scope)
}
