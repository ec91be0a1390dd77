package codegen_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/batc-lang/batc/internal/filetest"
	"github.com/batc-lang/batc/lang/codegen"
	"github.com/batc-lang/batc/lang/parser"
	"github.com/batc-lang/batc/lang/sema"
)

var testUpdateGoldenTests = flag.Bool("test.update-golden-tests", false, "update testdata/*.want golden files")

// TestGolden compiles every testdata/*.batc fixture end to end and diffs
// the emitted assembly against its corresponding .want file, using the
// golden-file helpers of internal/filetest.
func TestGolden(t *testing.T) {
	const dir = "testdata"
	for _, fi := range filetest.SourceFiles(t, dir, ".batc") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			prog, err := parser.Parse(fi.Name(), src)
			if err != nil {
				t.Fatal(err)
			}
			if err := sema.Declare(fi.Name(), prog); err != nil {
				t.Fatal(err)
			}
			if err := sema.Check(fi.Name(), prog); err != nil {
				t.Fatal(err)
			}
			out, err := codegen.Compile(fi.Name(), prog)
			if err != nil {
				t.Fatal(err)
			}

			filetest.DiffOutput(t, fi, out, dir, testUpdateGoldenTests)
		})
	}
}
