// Package sema implements the two static-analysis passes that run between
// parsing and code generation: Declare (name/storage binding, top-down)
// and Check (type checking, bottom-up). Both are single DFS walks over the
// AST built by lang/parser, dispatching on the AST's tagged variants with
// a type switch rather than methods on the node types (§9's dynamic
// dispatch note): declare and check are free functions keyed by variant.
package sema

import (
	"fmt"
	"go/scanner"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/scope"
	"github.com/batc-lang/batc/lang/token"
)

// Declare runs the declaration pass over prog: it builds the scope graph,
// registers every variable and function, and assigns storage to every
// variable at the moment of its declaration. The fresh root scope it
// builds is attached to prog.Scope.
//
// The returned error, when non-nil, is a *scanner.Error; declaration halts
// at the first redefinition or out-of-storage condition (§7).
func Declare(filename string, prog *ast.Program) error {
	d := &declarer{filename: filename}
	root := scope.NewRootScope()
	prog.Scope = root

	for _, item := range prog.Items {
		if err := d.declareTopLevel(root, item); err != nil {
			return err
		}
	}
	return nil
}

type declarer struct {
	filename string
}

func (d *declarer) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &scanner.Error{Pos: pos.Position(d.filename), Msg: fmt.Sprintf(format, args...)}
}

func (d *declarer) declareTopLevel(root *scope.Scope, item ast.TopLevel) error {
	switch item := item.(type) {
	case *ast.FuncDecl:
		return d.declareFunc(root, item)
	case *ast.VarDecl:
		return d.declareVar(root, item)
	default:
		panic(fmt.Sprintf("sema: unhandled top-level variant %T", item))
	}
}

// declareFunc registers the function's signature at root, then declares a
// fresh child scope for the body with each parameter declared into it
// before recursing (§4.2).
func (d *declarer) declareFunc(root *scope.Scope, fn *ast.FuncDecl) error {
	fn.Scope = root

	sig := scope.FuncSig{Return: fn.Return}
	for _, param := range fn.Params {
		sig.Params = append(sig.Params, param.Type)
	}
	if err := root.DeclareFunc(fn.Name, sig); err != nil {
		return d.errorf(fn.FuncPos, "%s", err)
	}

	body := scope.NewChild(root)
	for _, param := range fn.Params {
		if err := body.DeclareVar(param.Name, param.Type); err != nil {
			return d.errorf(param.NamePos, "%s", err)
		}
	}
	return d.declareBlockIn(body, fn.Body)
}

// declareVar reserves storage for a var declaration in the scope it sits
// in (static slot at root, frame slot everywhere else), then recurses into
// its initializer, if any, under the same scope.
func (d *declarer) declareVar(s *scope.Scope, v *ast.VarDecl) error {
	v.Scope = s
	if err := s.DeclareVar(v.Name, v.Type); err != nil {
		return d.errorf(v.VarPos, "%s", err)
	}
	if v.Value != nil {
		return d.declareExpr(s, v.Value)
	}
	return nil
}

// declareBlockIn declares block's statements directly into s, without
// creating a fresh child scope for block itself. It is used for a
// function's body, whose scope is the child created by declareFunc, and
// for a nested `{ ... }` statement block, whose own Block.Scope IS a fresh
// child (see declareStmt's *ast.Block case) — declareBlockIn is the shared
// helper that actually walks the statements once that scope exists.
func (d *declarer) declareBlockIn(s *scope.Scope, b *ast.Block) error {
	b.Scope = s
	for _, stmt := range b.Stmts {
		if err := d.declareStmt(s, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (d *declarer) declareStmt(s *scope.Scope, stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.VarDecl:
		return d.declareVar(s, stmt)
	case *ast.ExprStmt:
		return d.declareExpr(s, stmt.X)
	case *ast.Block:
		return d.declareBlockIn(scope.NewChild(s), stmt)
	case *ast.If:
		return d.declareIf(s, stmt)
	default:
		panic(fmt.Sprintf("sema: unhandled statement variant %T", stmt))
	}
}

// declareIf recurses into the condition under s, then declares the then
// and else branches each into their own fresh child scope of s — an If
// always introduces two child scopes, even when there is no else clause
// (§3.2).
func (d *declarer) declareIf(s *scope.Scope, n *ast.If) error {
	n.Scope = s
	if err := d.declareExpr(s, n.Cond); err != nil {
		return err
	}
	if err := d.declareBlockIn(scope.NewChild(s), n.Then); err != nil {
		return err
	}

	elseScope := scope.NewChild(s)
	switch {
	case n.ElseBlock != nil:
		return d.declareBlockIn(elseScope, n.ElseBlock)
	case n.ElseIf != nil:
		return d.declareIf(elseScope, n.ElseIf)
	}
	return nil
}

// declareExpr merely propagates scope downward through an expression tree;
// no expression declares anything.
func (d *declarer) declareExpr(s *scope.Scope, expr ast.Expr) error {
	switch expr := expr.(type) {
	case *ast.IntLit:
		expr.Scope = s
	case *ast.StringLit:
		expr.Scope = s
	case *ast.CharLit:
		expr.Scope = s
	case *ast.Ident:
		expr.Scope = s
	case *ast.Call:
		expr.Scope = s
		for _, arg := range expr.Args {
			if err := d.declareExpr(s, arg); err != nil {
				return err
			}
		}
	case *ast.Deref:
		expr.Scope = s
		return d.declareExpr(s, expr.X)
	case *ast.Equality:
		expr.Scope = s
		if err := d.declareExpr(s, expr.X); err != nil {
			return err
		}
		return d.declareExpr(s, expr.Y)
	default:
		panic(fmt.Sprintf("sema: unhandled expression variant %T", expr))
	}
	return nil
}
