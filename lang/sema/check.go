package sema

import (
	"fmt"
	"go/scanner"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/token"
	"github.com/batc-lang/batc/lang/types"
)

// Check runs the type-check pass over prog, which must already have been
// through Declare. It is a bottom-up DFS: every expression's type is
// computed from its children's types before any compatibility check that
// depends on it runs (§4.3). The first incompatibility aborts the pass
// with a *scanner.Error; there is no multi-error reporting mode (§7).
func Check(filename string, prog *ast.Program) error {
	c := &checker{filename: filename}
	for _, item := range prog.Items {
		if err := c.checkTopLevel(item); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	filename string
}

func (c *checker) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &scanner.Error{Pos: pos.Position(c.filename), Msg: fmt.Sprintf(format, args...)}
}

func (c *checker) checkTopLevel(item ast.TopLevel) error {
	switch item := item.(type) {
	case *ast.FuncDecl:
		return c.checkBlock(item.Body)
	case *ast.VarDecl:
		return c.checkVar(item)
	default:
		panic(fmt.Sprintf("sema: unhandled top-level variant %T", item))
	}
}

// checkVar type-checks the initializer, if present, and verifies it
// implicitly casts to the declared type (§4.3).
func (c *checker) checkVar(v *ast.VarDecl) error {
	if v.Value == nil {
		return nil
	}
	if err := c.checkExpr(v.Value); err != nil {
		return err
	}
	if !v.Value.Type().CanImplicitlyCastTo(v.Type) {
		return c.errorf(v.Value.Pos(), "cannot assign value of type %s to %q of type %s", v.Value.Type(), v.Name, v.Type)
	}
	return nil
}

func (c *checker) checkBlock(b *ast.Block) error {
	for _, stmt := range b.Stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStmt(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.VarDecl:
		return c.checkVar(stmt)
	case *ast.ExprStmt:
		return c.checkExpr(stmt.X)
	case *ast.Block:
		return c.checkBlock(stmt)
	case *ast.If:
		return c.checkIf(stmt)
	default:
		panic(fmt.Sprintf("sema: unhandled statement variant %T", stmt))
	}
}

// checkIf type-checks the condition under any type at all — the target
// machine's `cmp`/`jmp eq` compares the condition's value register against
// zero regardless of its declared type (§4.3) — then both branches.
func (c *checker) checkIf(n *ast.If) error {
	if err := c.checkExpr(n.Cond); err != nil {
		return err
	}
	if err := c.checkBlock(n.Then); err != nil {
		return err
	}
	switch {
	case n.ElseBlock != nil:
		return c.checkBlock(n.ElseBlock)
	case n.ElseIf != nil:
		return c.checkIf(n.ElseIf)
	}
	return nil
}

func (c *checker) checkExpr(expr ast.Expr) error {
	switch expr := expr.(type) {
	case *ast.IntLit:
		return c.checkIntLit(expr)
	case *ast.StringLit:
		expr.SetType(types.Pointer{Elem: types.Char{}})
		return nil
	case *ast.CharLit:
		expr.SetType(types.Char{})
		return nil
	case *ast.Ident:
		return c.checkIdent(expr)
	case *ast.Call:
		return c.checkCall(expr)
	case *ast.Deref:
		return c.checkDeref(expr)
	case *ast.Equality:
		return c.checkEquality(expr)
	default:
		panic(fmt.Sprintf("sema: unhandled expression variant %T", expr))
	}
}

// checkIntLit masks an out-of-range literal to 8 bits and goes on; the
// truncation never aborts the pass, and no warning is reported for it. The
// literal's type carries no
// signedness commitment of its own — CanImplicitlyCastTo lets it narrow to
// whichever of i8/u8 a use site demands — so it is typed U8 here as a
// representative constant-carrying integer type.
func (c *checker) checkIntLit(lit *ast.IntLit) error {
	if lit.Value&0xFF != lit.Value {
		lit.Value &= 0xFF
	}
	v := lit.Value
	lit.SetType(types.U8(&v))
	return nil
}

func (c *checker) checkIdent(id *ast.Ident) error {
	typ, err := id.Scope.LookupVarType(id.Name)
	if err != nil {
		return c.errorf(id.NamePos, "%s", err)
	}
	id.SetType(typ)
	return nil
}

func (c *checker) checkCall(call *ast.Call) error {
	sig, err := call.Scope.LookupFunc(call.Func)
	if err != nil {
		return c.errorf(call.FuncPos, "%s", err)
	}
	if len(call.Args) != len(sig.Params) {
		return c.errorf(call.FuncPos, "function %q takes %d argument(s), got %d", call.Func, len(sig.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		if err := c.checkExpr(arg); err != nil {
			return err
		}
		if !arg.Type().CanImplicitlyCastTo(sig.Params[i]) {
			return c.errorf(arg.Pos(), "argument %d to %q: cannot use value of type %s as %s", i, call.Func, arg.Type(), sig.Params[i])
		}
	}
	call.SetType(sig.Return)
	return nil
}

func (c *checker) checkDeref(d *ast.Deref) error {
	if err := c.checkExpr(d.X); err != nil {
		return err
	}
	ptr, ok := d.X.Type().(types.Pointer)
	if !ok {
		return c.errorf(d.Star, "cannot dereference non-pointer type %s", d.X.Type())
	}
	d.SetType(ptr.Elem)
	return nil
}

// checkEquality requires that one side be implicitly castable to the
// other's type (either direction suffices — §4.3); the result is always
// bool.
func (c *checker) checkEquality(eq *ast.Equality) error {
	if err := c.checkExpr(eq.X); err != nil {
		return err
	}
	if err := c.checkExpr(eq.Y); err != nil {
		return err
	}
	lt, rt := eq.X.Type(), eq.Y.Type()
	if !lt.CanImplicitlyCastTo(rt) && !rt.CanImplicitlyCastTo(lt) {
		return c.errorf(eq.EqEq, "cannot compare incompatible types %s and %s", lt, rt)
	}
	eq.SetType(types.Bool{})
	return nil
}
