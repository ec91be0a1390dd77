package ast

import (
	"fmt"
	"io"
)

// Dump writes a simple indented textual representation of prog to w, one
// node per line, for the parser's `parse` CLI command and for debugging.
// It is not a serialization format: there is no corresponding reader.
func Dump(w io.Writer, prog *Program) {
	for _, item := range prog.Items {
		dumpTopLevel(w, item, 0)
	}
}

func indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
}

func dumpTopLevel(w io.Writer, item TopLevel, depth int) {
	switch item := item.(type) {
	case *FuncDecl:
		indent(w, depth)
		fmt.Fprintf(w, "func %s(", item.Name)
		for i, p := range item.Params {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "%s: %s", p.Name, p.Type)
		}
		fmt.Fprintf(w, ") -> %s\n", item.Return)
		for _, s := range item.Body.Stmts {
			dumpStmt(w, s, depth+1)
		}
	case *VarDecl:
		dumpVarDecl(w, item, depth)
	default:
		panic(fmt.Sprintf("ast: unhandled top-level variant %T", item))
	}
}

func dumpVarDecl(w io.Writer, v *VarDecl, depth int) {
	indent(w, depth)
	fmt.Fprintf(w, "var %s: %s", v.Name, v.Type)
	if v.Value != nil {
		fmt.Fprint(w, " = ")
		dumpExprInline(w, v.Value)
	}
	fmt.Fprintln(w)
}

func dumpStmt(w io.Writer, stmt Stmt, depth int) {
	switch stmt := stmt.(type) {
	case *VarDecl:
		dumpVarDecl(w, stmt, depth)
	case *ExprStmt:
		indent(w, depth)
		dumpExprInline(w, stmt.X)
		fmt.Fprintln(w)
	case *Block:
		indent(w, depth)
		fmt.Fprintln(w, "{")
		for _, s := range stmt.Stmts {
			dumpStmt(w, s, depth+1)
		}
		indent(w, depth)
		fmt.Fprintln(w, "}")
	case *If:
		indent(w, depth)
		fmt.Fprint(w, "if ")
		dumpExprInline(w, stmt.Cond)
		fmt.Fprintln(w)
		dumpStmt(w, stmt.Then, depth)
		if stmt.ElseBlock != nil {
			indent(w, depth)
			fmt.Fprintln(w, "else")
			dumpStmt(w, stmt.ElseBlock, depth)
		} else if stmt.ElseIf != nil {
			indent(w, depth)
			fmt.Fprintln(w, "else")
			dumpStmt(w, stmt.ElseIf, depth)
		}
	default:
		panic(fmt.Sprintf("ast: unhandled statement variant %T", stmt))
	}
}

func dumpExprInline(w io.Writer, expr Expr) {
	switch expr := expr.(type) {
	case *IntLit:
		fmt.Fprintf(w, "%d", expr.Value)
	case *StringLit:
		fmt.Fprintf(w, "%q", expr.Value)
	case *CharLit:
		fmt.Fprintf(w, "%q", expr.Value)
	case *Ident:
		fmt.Fprint(w, expr.Name)
	case *Call:
		fmt.Fprintf(w, "%s(", expr.Func)
		for i, a := range expr.Args {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			dumpExprInline(w, a)
		}
		fmt.Fprint(w, ")")
	case *Deref:
		fmt.Fprint(w, "*")
		dumpExprInline(w, expr.X)
	case *Equality:
		dumpExprInline(w, expr.X)
		fmt.Fprint(w, " == ")
		dumpExprInline(w, expr.Y)
	default:
		panic(fmt.Sprintf("ast: unhandled expression variant %T", expr))
	}
}
