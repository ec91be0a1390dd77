package codegen

import (
	"fmt"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/scope"
)

// compileExprInto lowers expr so that its value ends up at dest, per the
// destination-directed model of §4.4.1/§4.4.4.
func compileExprInto(c *Compiler, expr ast.Expr, dest scope.StorageLocation) (string, error) {
	switch expr := expr.(type) {
	case *ast.IntLit:
		return compileIntLitInto(c, expr, dest)
	case *ast.StringLit:
		return "", fmt.Errorf("string literals have no compile-time representation in this target (%q)", expr.Value)
	case *ast.CharLit:
		return emitImmediate(expr.Scope, dest, int64(expr.Value))
	case *ast.Ident:
		return compileIdentInto(c, expr, dest)
	case *ast.Call:
		return compileCallInto(c, expr, dest)
	case *ast.Deref:
		return compileDerefInto(c, expr, dest)
	case *ast.Equality:
		return compileEqualityInto(c, expr, dest)
	default:
		panic(fmt.Sprintf("codegen: unhandled expression variant %T", expr))
	}
}

func compileIntLitInto(c *Compiler, lit *ast.IntLit, dest scope.StorageLocation) (string, error) {
	return emitImmediate(lit.Scope, dest, lit.Value)
}

// compileIdentInto resolves x's storage and loads its current value into
// dest, materializing a static variable's address through a register when
// necessary (§4.4.4's Ident row).
func compileIdentInto(c *Compiler, id *ast.Ident, dest scope.StorageLocation) (string, error) {
	s := id.Scope
	varAddr, err := s.LookupVarAddress(id.Name)
	if err != nil {
		return "", err
	}

	switch addr := varAddr.(type) {
	case scope.RegisterOffset:
		reg, err := s.AllocRegister()
		if err != nil {
			return "", err
		}
		defer reg.Release()
		if err := checkOffset(addr.Offset); err != nil {
			return "", err
		}
		load := fmt.Sprintf("mld r%d, r%d, #%d\n", reg.Reg(), addr.Base, addr.Offset)
		store, err := storeRegister(s, dest, reg.Reg())
		if err != nil {
			return "", err
		}
		return load + store, nil
	case scope.Static:
		reg, err := s.AllocRegister()
		if err != nil {
			return "", err
		}
		defer reg.Release()
		load := fmt.Sprintf("ldi r%d, #%d\nmld r%d, r%d, #0\n", reg.Reg(), addr.Address, reg.Reg(), reg.Reg())
		store, err := storeRegister(s, dest, reg.Reg())
		if err != nil {
			return "", err
		}
		return load + store, nil
	default:
		return "", fmt.Errorf("codegen: variable %q has unsupported storage variant %T", id.Name, varAddr)
	}
}

// compileDerefInto lowers the operand as an address into a scratch
// register, loads through it once more, and stores the result at dest
// (§4.4.4's Dereference row).
func compileDerefInto(c *Compiler, d *ast.Deref, dest scope.StorageLocation) (string, error) {
	s := d.Scope
	addr, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer addr.Release()

	operand, err := compileExprInto(c, d.X, scope.Register{Reg: addr.Reg()})
	if err != nil {
		return "", err
	}
	load := fmt.Sprintf("mld r%d, r%d, #0\n", addr.Reg(), addr.Reg())
	store, err := storeRegister(s, dest, addr.Reg())
	if err != nil {
		return "", err
	}
	return operand + load + store, nil
}

// compileEqualityInto lowers both operands into scratch registers, then
// compares them, materializing a bool (0 or 1) at dest via the only
// conditional primitive the target offers: cmp plus jmp eq (§4.4.4's
// Equality row, §6's mnemonic table).
func compileEqualityInto(c *Compiler, eq *ast.Equality, dest scope.StorageLocation) (string, error) {
	s := eq.Scope

	lreg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer lreg.Release()
	left, err := compileExprInto(c, eq.X, scope.Register{Reg: lreg.Reg()})
	if err != nil {
		return "", err
	}

	rreg, err := s.AllocRegister()
	if err != nil {
		return "", err
	}
	defer rreg.Release()
	right, err := compileExprInto(c, eq.Y, scope.Register{Reg: rreg.Reg()})
	if err != nil {
		return "", err
	}

	trueLabel := c.NextLabel("eq_true")
	endLabel := c.NextLabel("eq_end")

	falseBranch, err := emitImmediate(s, dest, 0)
	if err != nil {
		return "", err
	}
	trueBranch, err := emitImmediate(s, dest, 1)
	if err != nil {
		return "", err
	}

	var out string
	out += left
	out += right
	out += fmt.Sprintf("cmp r%d, r%d\n", lreg.Reg(), rreg.Reg())
	out += fmt.Sprintf("jmp eq %s\n", trueLabel)
	out += falseBranch
	out += fmt.Sprintf("jmp %s\n", endLabel)
	out += trueLabel + "\n"
	out += trueBranch
	out += endLabel + "\n"
	return out, nil
}
