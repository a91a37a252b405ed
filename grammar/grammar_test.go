package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flux/grammar"
)

func TestParseLetAndCall(t *testing.T) {
	prog, err := grammar.ParseString("let x = 1\nprint(x)")
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 2)

	let := prog.Nodes[0].Binary.Left.Value.Let
	require.NotNil(t, let)
	assert.Equal(t, "x", let.Name)

	call := prog.Nodes[1].Binary.Left.Value.Call
	require.NotNil(t, call)
	assert.Equal(t, "print", call.Name)
	require.Len(t, call.Args, 1)
}

func TestParseCondAndFn(t *testing.T) {
	src := `
let f = fn rec fact(n: Int) -> Int {
    if n == 0 then 1 else n * fact(n - 1)
}
print(f(5))
`
	prog, err := grammar.ParseString(src)
	require.NoError(t, err)
	require.Len(t, prog.Nodes, 2)

	fn := prog.Nodes[0].Binary.Left.Value.Let.Rhs.Binary.Left.Value.Fn
	require.NotNil(t, fn)
	assert.True(t, fn.Rec)
	require.NotNil(t, fn.Name)
	assert.Equal(t, "fact", *fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "n", fn.Params[0].Name)
	assert.Equal(t, "Int", fn.Return.String())
}

func TestRoundTripReparsesToStructurallyEqualAST(t *testing.T) {
	sources := []string{
		"1 + 2 * 3",
		"let x = 1\nlet y = 2\nx + y",
		"if true then 1 else 2",
		"fn (x: Int) -> Int { x + 1 }",
		"print(1 - -2)",
		"let rec_ish = 1\nrec_ish",
	}
	for _, src := range sources {
		first, err := grammar.ParseString(src)
		require.NoError(t, err, src)

		printed := grammar.Print(first)

		second, err := grammar.ParseString(printed)
		require.NoError(t, err, printed)

		assert.Equal(t, grammar.Print(first), grammar.Print(second), "re-parse of printed output diverged for %q", src)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := grammar.ParseString("let = 1")
	require.Error(t, err)
}
