package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/batc-lang/batc/lang/ast"
	"github.com/batc-lang/batc/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return printError(stdio, fmt.Errorf("parse: exactly one source file is required"))
	}
	filename := args[0]

	src, err := os.ReadFile(filename)
	if err != nil {
		return printError(stdio, err)
	}

	prog, err := parser.Parse(filename, src)
	if err != nil {
		return printError(stdio, err)
	}

	ast.Dump(stdio.Stdout, prog)
	return nil
}
