package codegen_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/batc-lang/batc/lang/codegen"
	"github.com/batc-lang/batc/lang/parser"
	"github.com/batc-lang/batc/lang/sema"
)

func compileSrc(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse("t.batc", []byte(src))
	require.NoError(t, err)
	require.NoError(t, sema.Declare("t.batc", prog))
	require.NoError(t, sema.Check("t.batc", prog))
	out, err := codegen.Compile("t.batc", prog)
	require.NoError(t, err)
	return out
}

// S1. Top-level literal store.
func TestTopLevelLiteralStore(t *testing.T) {
	out := compileSrc(t, "var x: u8 = 42")
	require.Contains(t, out, "ldi r")
	require.Regexp(t, regexp.MustCompile(`ldi r\d, #42`), out)
	require.Regexp(t, regexp.MustCompile(`ldi r\d, #191\nmst r\d, #0, r\d`), out)
}

// S2. Type coercion boundary.
func TestTypeCoercionBoundary(t *testing.T) {
	_, err := parser.Parse("t.batc", []byte("var x: i8 = 200"))
	require.NoError(t, err)

	prog, err := parser.Parse("t.batc", []byte("var x: i8 = 200"))
	require.NoError(t, err)
	require.NoError(t, sema.Declare("t.batc", prog))
	require.Error(t, sema.Check("t.batc", prog))

	out := compileSrc(t, "var x: u8 = 200")
	require.Contains(t, out, "#200")
}

// S3. Pointer dereference round-trip.
func TestPointerDereferenceRoundTrip(t *testing.T) {
	out := compileSrc(t, "var p: *u8\nvar y: u8 = *p")
	mldCount := strings.Count(out, "mld")
	require.GreaterOrEqual(t, mldCount, 2)
	require.Contains(t, out, "mst")
}

// S4. Function call with two args.
func TestFunctionCallWithTwoArgs(t *testing.T) {
	out := compileSrc(t, "func add(a: u8, b: u8) -> bool { a == b }\nvar r: bool = add(1, 2)")

	require.Regexp(t, regexp.MustCompile(`mov r7, r6\n`), out)
	require.Regexp(t, regexp.MustCompile(`adi r6, #-3\n`), out)
	require.Regexp(t, regexp.MustCompile(`cmp r6, #192\njmp less \.batc_stack_overflow\n`), out)
	require.Regexp(t, regexp.MustCompile(`mst r6, #2, r\d\n`), out)
	require.Regexp(t, regexp.MustCompile(`#1\nmst r6, #0, r\d`), out)
	require.Regexp(t, regexp.MustCompile(`#2\nmst r6, #1, r\d`), out)
	require.Contains(t, out, "cal .user_add\n")
	require.Regexp(t, regexp.MustCompile(`mld r7, r6, #2\n`), out)
	require.Regexp(t, regexp.MustCompile(`adi r6, #3\n`), out)
}

// S5. Built-in port write.
func TestBuiltinPortWrite(t *testing.T) {
	out := compileSrc(t, "func main() -> void {\n\twrite_port(5, 165)\n}")
	require.Regexp(t, regexp.MustCompile(`ldi r\d, #165\npst r\d, #5\n`), out)

	src := "var x: u8 = 1\nfunc main() -> void {\n\twrite_port(x, 1)\n}"
	prog, err := parser.Parse("t.batc", []byte(src))
	require.NoError(t, err)
	require.NoError(t, sema.Declare("t.batc", prog))
	require.NoError(t, sema.Check("t.batc", prog))
	_, err = codegen.Compile("t.batc", prog)
	require.Error(t, err)
}

// S6. If-else chain.
func TestIfElseChain(t *testing.T) {
	src := `var x: u8 = 0
func main() -> void {
	if x == 0 { } else if x == 1 { } else { }
}`
	out := compileSrc(t, src)
	require.Equal(t, 2, strings.Count(out, "jmp eq .L_if_else_"))
	require.Equal(t, 2, strings.Count(out, "jmp .L_if_end_"))

	elseLabels := uniqueMatches(out, `\.L_if_else_\d+`)
	require.Len(t, elseLabels, 2, "the two else branches must get pairwise-distinct labels")

	endLabels := uniqueMatches(out, `\.L_if_end_\d+`)
	require.Len(t, endLabels, 1, "the whole chain must converge on a single end label")
}

func uniqueMatches(s, pattern string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range regexp.MustCompile(pattern).FindAllString(s, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Invariant 5: every alloc_register balances a release; the free set
// returns to its initial {r2..r5} after each top-level item compiles.
func TestRegisterBalanceAfterTopLevelItem(t *testing.T) {
	prog, err := parser.Parse("t.batc", []byte("func add(a: u8, b: u8) -> bool { a == b }\nvar r: bool = add(1, 2)"))
	require.NoError(t, err)
	require.NoError(t, sema.Declare("t.batc", prog))
	require.NoError(t, sema.Check("t.batc", prog))

	_, err = codegen.Compile("t.batc", prog)
	require.NoError(t, err)

	require.Equal(t, []int{2, 3, 4, 5}, prog.Scope.FreeRegisters())
}
