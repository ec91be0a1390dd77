package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/batc-lang/batc/lang/lexer"
	"github.com/batc-lang/batc/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return printError(stdio, fmt.Errorf("tokenize: exactly one source file is required"))
	}
	filename := args[0]

	src, err := os.ReadFile(filename)
	if err != nil {
		return printError(stdio, err)
	}

	lexemes, err := lexer.Lex(filename, src)
	if err != nil {
		return printError(stdio, err)
	}

	for _, lx := range lexemes {
		if lx.Tok == token.EOF {
			continue
		}
		line, col := lx.Pos.LineCol()
		fmt.Fprintf(stdio.Stdout, "%d:%d: %s", line, col, lx.Tok)
		if lx.Val.Raw != "" {
			fmt.Fprintf(stdio.Stdout, " %q", lx.Val.Raw)
		}
		fmt.Fprintln(stdio.Stdout)
	}
	return nil
}
