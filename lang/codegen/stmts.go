package codegen

import (
	"fmt"
	"strings"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/scope"
)

// compileStmt lowers a single statement, keyed by its tagged variant
// (§9's dispatch style, mirrored from lang/sema).
func compileStmt(c *Compiler, stmt ast.Stmt) (string, error) {
	switch stmt := stmt.(type) {
	case *ast.VarDecl:
		return compileVarStmt(c, stmt)
	case *ast.ExprStmt:
		return compileExprStmt(c, stmt)
	case *ast.Block:
		return compileBlockStmt(c, stmt)
	case *ast.If:
		return compileIf(c, stmt)
	default:
		panic(fmt.Sprintf("codegen: unhandled statement variant %T", stmt))
	}
}

// compileVarStmt lowers a local variable declaration into its frame slot,
// reserved ahead of time during the declare pass (lang/sema/declare.go).
func compileVarStmt(c *Compiler, v *ast.VarDecl) (string, error) {
	if v.Value == nil {
		return "", nil
	}
	dest, err := v.Scope.LookupVarAddress(v.Name)
	if err != nil {
		return "", err
	}
	return compileExprInto(c, v.Value, dest)
}

// compileExprStmt evaluates an expression purely for its side effects,
// discarding the result into a scratch register that is released
// immediately (§9 note (b) — an expression statement has no destination
// of its own).
func compileExprStmt(c *Compiler, stmt *ast.ExprStmt) (string, error) {
	s := exprScope(stmt.X)
	reg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer reg.Release()
	return compileExprInto(c, stmt.X, scope.Register{Reg: reg.Reg()})
}

// compileBlockStmt lowers a nested { } block used as a statement. Its
// Scope was already created as a fresh child during the declare pass
// (§4.3's "If always creates two fresh child scopes" note generalizes to
// every block).
func compileBlockStmt(c *Compiler, b *ast.Block) (string, error) {
	var lines []string
	for _, s := range b.Stmts {
		text, err := compileStmt(c, s)
		if err != nil {
			return "", err
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, ""), nil
}

// compileIf lowers the sole control-flow construct the target offers, per
// §4.4.5 and §8's S6 scenario: an entire if/else-if/.../else chain shares
// one end label, so every branch's unconditional jump converges on the
// same place rather than each nested level minting its own.
func compileIf(c *Compiler, ifStmt *ast.If) (string, error) {
	endLabel := c.NextLabel("if_end")
	body, err := compileIfBranch(c, ifStmt, endLabel)
	if err != nil {
		return "", err
	}
	return body + endLabel + "\n", nil
}

// compileIfBranch lowers one branch of the chain: the condition is reduced
// to a register, compared against a zeroed scratch register, and a false
// result jumps past the then-block (into the next branch, or straight to
// endLabel if this is the last one).
func compileIfBranch(c *Compiler, ifStmt *ast.If, endLabel string) (string, error) {
	s := ifStmt.Scope

	condReg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	cond, err := compileExprInto(c, ifStmt.Cond, scope.Register{Reg: condReg.Reg()})
	if err != nil {
		condReg.Release()
		return "", err
	}

	zeroReg, err := s.AllocRegister()
	if err != nil {
		condReg.Release()
		return "", err
	}
	zero := fmt.Sprintf("ldi r%d, #0\n", zeroReg.Reg())
	compare := fmt.Sprintf("cmp r%d, r%d\n", condReg.Reg(), zeroReg.Reg())
	condReg.Release()
	zeroReg.Release()

	thenText, err := compileBlockStmt(c, ifStmt.Then)
	if err != nil {
		return "", err
	}

	hasElse := ifStmt.ElseBlock != nil || ifStmt.ElseIf != nil

	var out string
	out += cond
	out += zero
	out += compare

	if !hasElse {
		out += fmt.Sprintf("jmp eq %s\n", endLabel)
		out += thenText
		return out, nil
	}

	elseLabel := c.NextLabel("if_else")
	out += fmt.Sprintf("jmp eq %s\n", elseLabel)
	out += thenText
	out += fmt.Sprintf("jmp %s\n", endLabel)
	out += elseLabel + "\n"

	if ifStmt.ElseBlock != nil {
		elseText, err := compileBlockStmt(c, ifStmt.ElseBlock)
		if err != nil {
			return "", err
		}
		out += elseText
	} else {
		elseText, err := compileIfBranch(c, ifStmt.ElseIf, endLabel)
		if err != nil {
			return "", err
		}
		out += elseText
	}
	return out, nil
}

// exprScope recovers the scope an expression was resolved in. Every
// concrete Expr embeds exprBase, which carries it as a promoted field.
func exprScope(e ast.Expr) *scope.Scope {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Scope
	case *ast.StringLit:
		return e.Scope
	case *ast.CharLit:
		return e.Scope
	case *ast.Ident:
		return e.Scope
	case *ast.Call:
		return e.Scope
	case *ast.Deref:
		return e.Scope
	case *ast.Equality:
		return e.Scope
	default:
		panic(fmt.Sprintf("codegen: unhandled expression variant %T", e))
	}
}
