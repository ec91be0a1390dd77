package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/batc-lang/batc/lang/parser"
	"github.com/batc-lang/batc/lang/sema"
)

// Check runs the parser and both semantic analysis passes (declare, then
// check) without emitting code. It prints "ok" on success, or the first
// error encountered on stderr.
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) != 1 {
		return printError(stdio, fmt.Errorf("check: exactly one source file is required"))
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
	if err := sema.Declare(filename, prog); err != nil {
		return printError(stdio, err)
	}
	if err := sema.Check(filename, prog); err != nil {
		return printError(stdio, err)
	}

	fmt.Fprintln(stdio.Stdout, "ok")
	return nil
}
