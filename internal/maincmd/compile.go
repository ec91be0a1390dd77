package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/batc-lang/batc/lang/codegen"
	"github.com/batc-lang/batc/lang/parser"
	"github.com/batc-lang/batc/lang/sema"
)

// Compile runs the full pipeline — parse, declare, check, emit — reading
// the source from the one input path and writing the generated assembly
// to the one output path, per spec.md §6. If the output path is omitted,
// the assembly is printed to stdout instead (handy for piping/debugging).
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return printError(stdio, fmt.Errorf("compile: expected <input path> [<output path>]"))
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

	out, err := codegen.Compile(filename, prog)
	if err != nil {
		return printError(stdio, err)
	}

	if len(args) == 2 {
		if err := os.WriteFile(args[1], []byte(out), 0644); err != nil {
			return printError(stdio, err)
		}
		return nil
	}

	fmt.Fprint(stdio.Stdout, out)
	return nil
}
