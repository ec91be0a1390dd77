// Package lexer turns source bytes into a token stream for the parser to
// consume. It is a thin, regex-driven tokenizer: the grammar and the type
// system carry the engineering weight of this compiler, not the lexer, so
// this package stays deliberately small and is treated by the rest of the
// compiler purely as a token-stream source.
package lexer

import (
	"fmt"
	"go/scanner"
	"regexp"
	"strconv"
	"strings"

	"github.com/batc-lang/batc/lang/token"
)

// rule pairs a regular expression with the token it produces. Rules are
// tried in order at each position, the same strategy the language's
// original rply-based lexer used (first matching pattern wins).
type rule struct {
	tok token.Token // IDENT, INT, STRING and CHAR rules get special handling in Lex
	re  *regexp.Regexp
}

var rules = []rule{
	{token.ARROW, regexp.MustCompile(`^->`)},
	{token.EQEQ, regexp.MustCompile(`^==`)},
	{token.EQ, regexp.MustCompile(`^=`)},
	{token.COLON, regexp.MustCompile(`^:`)},
	{token.STAR, regexp.MustCompile(`^\*`)},
	{token.LPAREN, regexp.MustCompile(`^\(`)},
	{token.RPAREN, regexp.MustCompile(`^\)`)},
	{token.LBRACE, regexp.MustCompile(`^\{`)},
	{token.RBRACE, regexp.MustCompile(`^\}`)},
	{token.COMMA, regexp.MustCompile(`^,`)},
	{token.INT, regexp.MustCompile(`^[0-9]+`)},
	{token.STRING, regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)},
	{token.CHAR, regexp.MustCompile(`^'(?:[^'\\]|\\.)*'`)},
	{token.IDENT, regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
}

var (
	whitespace = regexp.MustCompile(`^[ \t\f\v\r]+`)
	comment    = regexp.MustCompile(`^#[^\n]*`)
	newline    = regexp.MustCompile(`^\n`)
)

// Lex tokenizes src and returns the resulting lexeme stream, terminated by
// an EOF lexeme. Comments are filtered and runs of consecutive newlines are
// collapsed to one, per the grammar's statement-separator rule.
//
// The returned error, if non-nil, is a *scanner.Error pointing at the first
// illegal character; lexing does not attempt to recover past it.
func Lex(filename string, src []byte) ([]token.Lexeme, error) {
	s := strings.ReplaceAll(string(src), "\r\n", "\n")
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	var (
		lexemes []token.Lexeme
		line    = 1
		col     = 1
	)

	advance := func(n int) {
		for _, r := range s[:n] {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		s = s[n:]
	}

	for len(s) > 0 {
		if loc := whitespace.FindString(s); loc != "" {
			advance(len(loc))
			continue
		}
		if loc := comment.FindString(s); loc != "" {
			advance(len(loc))
			continue
		}
		if loc := newline.FindString(s); loc != "" {
			pos := token.MakePos(line, col)
			advance(len(loc))
			if len(lexemes) == 0 || lexemes[len(lexemes)-1].Tok == token.NEWLINE {
				continue // collapse consecutive newlines to one
			}
			lexemes = append(lexemes, token.Lexeme{Tok: token.NEWLINE, Pos: pos})
			continue
		}

		pos := token.MakePos(line, col)
		matched := false
		for _, r := range rules {
			m := r.re.FindString(s)
			if m == "" {
				continue
			}
			matched = true

			switch r.tok {
			case token.IDENT:
				if kw, ok := token.Keywords[m]; ok {
					lexemes = append(lexemes, token.Lexeme{Tok: kw, Val: token.Value{Raw: m}, Pos: pos})
				} else {
					lexemes = append(lexemes, token.Lexeme{Tok: token.IDENT, Val: token.Value{Raw: m}, Pos: pos})
				}
			case token.INT:
				v, err := strconv.ParseInt(m, 10, 64)
				if err != nil {
					return nil, &scanner.Error{Pos: pos.Position(filename), Msg: fmt.Sprintf("invalid integer literal %q: %s", m, err)}
				}
				lexemes = append(lexemes, token.Lexeme{Tok: token.INT, Val: token.Value{Raw: m, Int: v}, Pos: pos})
			case token.STRING:
				decoded, err := unquoteEscapes(m[1 : len(m)-1])
				if err != nil {
					return nil, &scanner.Error{Pos: pos.Position(filename), Msg: fmt.Sprintf("malformed string literal %s: %s", m, err)}
				}
				lexemes = append(lexemes, token.Lexeme{Tok: token.STRING, Val: token.Value{Raw: m, String: decoded}, Pos: pos})
			case token.CHAR:
				decoded, err := unquoteEscapes(m[1 : len(m)-1])
				if err != nil {
					return nil, &scanner.Error{Pos: pos.Position(filename), Msg: fmt.Sprintf("malformed char literal %s: %s", m, err)}
				}
				if len([]rune(decoded)) != 1 {
					return nil, &scanner.Error{Pos: pos.Position(filename), Msg: fmt.Sprintf("char literal %s must decode to exactly one character, got %d", m, len([]rune(decoded)))}
				}
				lexemes = append(lexemes, token.Lexeme{Tok: token.CHAR, Val: token.Value{Raw: m, String: decoded}, Pos: pos})
			default:
				lexemes = append(lexemes, token.Lexeme{Tok: r.tok, Val: token.Value{Raw: m}, Pos: pos})
			}
			advance(len(m))
			break
		}
		if !matched {
			return nil, &scanner.Error{Pos: pos.Position(filename), Msg: fmt.Sprintf("unexpected character %q", rune(s[0]))}
		}
	}

	lexemes = append(lexemes, token.Lexeme{Tok: token.EOF, Pos: token.MakePos(line, col)})
	return lexemes, nil
}

// unquoteEscapes decodes standard backslash-escape sequences, the subset
// Go's strconv.Unquote supports for double-quoted strings. Single-quoted
// char literals in the source use the same escapes, so both literal kinds
// share this decoder (wrapped in double quotes, since that is what
// strconv.Unquote expects).
func unquoteEscapes(s string) (string, error) {
	return strconv.Unquote(`"` + s + `"`)
}
