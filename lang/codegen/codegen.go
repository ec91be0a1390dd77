// Package codegen implements the emit pass: destination-directed lowering
// of a checked AST into textual target assembly (§4.4). Like lang/sema,
// every operation is a free function keyed by the AST's tagged variant
// (compileExprInto, compileStmt, compileTopLevel) rather than a method on
// the node types (§9).
//
// A destination is one of the three scope.StorageLocation variants
// (scope.Register, scope.RegisterOffset, scope.Static) — the same three
// kinds of place a value can live, whether as a variable's permanent home
// or as an expression's transient target, so this package reuses that type
// directly instead of defining its own.
package codegen

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/scope"
)

//go:embed runtime.asm
var runtimePreamble string

// Compiler carries the state shared across one compilation run: the
// source filename (not included in its error messages) and the monotonic
// label counter that
// replaces the wall-clock-timestamp label generator of the reference
// implementation (§9's label-generator note).
type Compiler struct {
	filename     string
	labelCounter int
}

// NextLabel returns a fresh compiler-local label of the form .L_prefix_N,
// guaranteed distinct from every other label this Compiler has produced.
func (c *Compiler) NextLabel(prefix string) string {
	c.labelCounter++
	return fmt.Sprintf(".L_%s_%d", prefix, c.labelCounter)
}

func (c *Compiler) errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Compile emits the full assembly text for prog, which must already have
// been through sema.Declare and sema.Check. Emission order is the runtime
// preamble followed by each top-level item in source order (§4.4.2).
func Compile(filename string, prog *ast.Program) (string, error) {
	c := &Compiler{filename: filename}

	var out strings.Builder
	out.WriteString(runtimePreamble)

	for _, item := range prog.Items {
		text, err := compileTopLevel(c, item)
		if err != nil {
			return "", err
		}
		if text != "" {
			out.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String(), nil
}

func compileTopLevel(c *Compiler, item ast.TopLevel) (string, error) {
	switch item := item.(type) {
	case *ast.FuncDecl:
		return compileFunc(c, item)
	case *ast.VarDecl:
		return compileTopLevelVar(c, item)
	default:
		panic(fmt.Sprintf("codegen: unhandled top-level variant %T", item))
	}
}

// compileFunc emits a .user_NAME label followed by its body; it does not
// emit an explicit return instruction, matching the reference compiler
// (the target CPU's call/return mechanics are opaque to this compiler —
// see §1's scope note on instruction decoding).
func compileFunc(c *Compiler, fn *ast.FuncDecl) (string, error) {
	var lines []string
	for _, stmt := range fn.Body.Stmts {
		text, err := compileStmt(c, stmt)
		if err != nil {
			return "", err
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return fmt.Sprintf(".user_%s\n", fn.Name) + strings.Join(lines, "\n"), nil
}

// compileTopLevelVar emits the initializer, if any, into the variable's
// static slot. Without an initializer the slot is simply left
// uninitialized (§4.4.2, and §9 open question (c)).
func compileTopLevelVar(c *Compiler, v *ast.VarDecl) (string, error) {
	if v.Value == nil {
		return "", nil
	}
	dest, err := v.Scope.LookupVarAddress(v.Name)
	if err != nil {
		return "", c.errorf("%s", err)
	}
	return compileExprInto(c, v.Value, dest)
}
