// Package parser turns a lexeme stream into an *ast.Program using a
// hand-rolled recursive-descent parser — one function per grammar
// production in §4.1, directly, rather than a generated LALR(1) table.
// There are only two precedence levels (equality, then unary dereference),
// so precedence climbing collapses to two mutually recursive functions.
package parser

import (
	"fmt"
	"go/scanner"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/lexer"
	"github.com/batc-lang/batc/lang/token"
	"github.com/batc-lang/batc/lang/types"
)

// Parse lexes and parses src, returning the resulting Program. The
// returned error, if non-nil, is a *scanner.Error; parsing halts at the
// first syntax error encountered (no recovery, per §1's Non-goals).
func Parse(filename string, src []byte) (*ast.Program, error) {
	lexemes, err := lexer.Lex(filename, src)
	if err != nil {
		return nil, err
	}

	p := &parser{filename: filename, toks: lexemes}
	p.cur = p.toks[0]

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

type parser struct {
	filename string
	toks     []token.Lexeme
	pos      int
	cur      token.Lexeme
}

func (p *parser) advance() {
	p.pos++
	p.cur = p.toks[p.pos]
}

func (p *parser) at(tok token.Token) bool { return p.cur.Tok == tok }

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) error {
	return &scanner.Error{Pos: pos.Position(p.filename), Msg: fmt.Sprintf(format, args...)}
}

// expect consumes the current token if it matches tok, otherwise reports a
// syntax error naming what was expected and what was found.
func (p *parser) expect(tok token.Token) (token.Lexeme, error) {
	if !p.at(tok) {
		return token.Lexeme{}, p.errorf(p.cur.Pos, "expected %#v, found %#v", tok, p.cur.Tok)
	}
	lx := p.cur
	p.advance()
	return lx, nil
}

// skipNewlines consumes zero or more consecutive NEWLINE tokens. The
// lexer already collapses runs of blank lines to a single NEWLINE lexeme,
// so this only ever consumes at most one, but callers don't need to know
// that.
func (p *parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.at(token.EOF) {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)

		if p.at(token.NEWLINE) {
			p.skipNewlines()
			continue
		}
		if p.at(token.EOF) {
			break
		}
		return nil, p.errorf(p.cur.Pos, "expected newline between top-level items, found %#v", p.cur.Tok)
	}
	return prog, nil
}

func (p *parser) parseTopLevel() (ast.TopLevel, error) {
	switch p.cur.Tok {
	case token.FUNC:
		return p.parseFunc()
	case token.VAR:
		return p.parseVar()
	default:
		return nil, p.errorf(p.cur.Pos, "expected 'func' or 'var', found %#v", p.cur.Tok)
	}
}

func (p *parser) parseFunc() (*ast.FuncDecl, error) {
	funcPos := p.cur.Pos
	if _, err := p.expect(token.FUNC); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{FuncPos: funcPos, Name: name.Val.Raw, Params: params, Return: ret, Body: body}, nil
}

func (p *parser) parseParams() ([]*ast.Param, error) {
	var params []*ast.Param
	if p.at(token.RPAREN) {
		return params, nil
	}
	for {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{NamePos: name.Pos, Name: name.Val.Raw, Type: typ})

		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	return params, nil
}

func (p *parser) parseType() (types.Type, error) {
	switch p.cur.Tok {
	case token.VOID:
		p.advance()
		return types.Void{}, nil
	case token.I8:
		p.advance()
		return types.I8(nil), nil
	case token.U8:
		p.advance()
		return types.U8(nil), nil
	case token.CHAR_T:
		p.advance()
		return types.Char{}, nil
	case token.BOOL:
		p.advance()
		return types.Bool{}, nil
	case token.STAR:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return types.Pointer{Elem: elem}, nil
	default:
		return nil, p.errorf(p.cur.Pos, "expected a type, found %#v", p.cur.Tok)
	}
}

func (p *parser) parseVar() (*ast.VarDecl, error) {
	varPos := p.cur.Pos
	if _, err := p.expect(token.VAR); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var value ast.Expr
	if p.at(token.EQ) {
		p.advance()
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	return &ast.VarDecl{VarPos: varPos, Name: name.Val.Raw, Type: typ, Value: value}, nil
}

func (p *parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()

	var stmts []ast.Stmt
	for !p.at(token.RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		if p.at(token.NEWLINE) {
			p.skipNewlines()
			continue
		}
		if p.at(token.RBRACE) {
			break
		}
		return nil, p.errorf(p.cur.Pos, "expected newline or '}', found %#v", p.cur.Tok)
	}

	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Lbrace: lbrace.Pos, Stmts: stmts, Rbrace: rbrace.Pos}, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Tok {
	case token.VAR:
		return p.parseVar()
	case token.IF:
		return p.parseIf()
	case token.LBRACE:
		return p.parseBlock()
	default:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: x}, nil
	}
}

func (p *parser) parseIf() (*ast.If, error) {
	ifPos := p.cur.Pos
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.If{IfPos: ifPos, Cond: cond, Then: then}
	if p.at(token.ELSE) {
		p.advance()
		switch p.cur.Tok {
		case token.LBRACE:
			node.ElseBlock, err = p.parseBlock()
		case token.IF:
			node.ElseIf, err = p.parseIf()
		default:
			err = p.errorf(p.cur.Pos, "expected '{' or 'if' after 'else', found %#v", p.cur.Tok)
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Precedence, lowest to highest: equality, then unary dereference.

func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseEquality()
}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.EQEQ) {
		eqeq := p.cur.Pos
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Equality{X: left, EqEq: eqeq, Y: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.at(token.STAR) {
		star := p.cur.Pos
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Deref{Star: star, X: x}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (ast.Expr, error) {
	switch p.cur.Tok {
	case token.INT:
		lx := p.cur
		p.advance()
		return &ast.IntLit{ValuePos: lx.Pos, Value: lx.Val.Int}, nil
	case token.STRING:
		lx := p.cur
		p.advance()
		return &ast.StringLit{ValuePos: lx.Pos, Value: lx.Val.String}, nil
	case token.CHAR:
		lx := p.cur
		p.advance()
		return &ast.CharLit{ValuePos: lx.Pos, Value: []rune(lx.Val.String)[0]}, nil
	case token.IDENT:
		lx := p.cur
		p.advance()
		if p.at(token.LPAREN) {
			return p.parseCall(lx)
		}
		return &ast.Ident{NamePos: lx.Pos, Name: lx.Val.Raw}, nil
	default:
		return nil, p.errorf(p.cur.Pos, "expected an expression, found %#v", p.cur.Tok)
	}
}

func (p *parser) parseCall(name token.Lexeme) (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.Call{FuncPos: name.Pos, Func: name.Val.Raw, Args: args, Rparen: rparen.Pos}, nil
}
