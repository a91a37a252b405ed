package lir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flux/internal/hir"
	"flux/internal/lir"
	"flux/internal/parser"
	"flux/internal/types"
)

// checked parses, lowers to HIR, type-checks (so Print call sites get their
// argument type recorded), and lowers to LIR.
func checked(t *testing.T, src string) lir.Term {
	t.Helper()
	block, err := parser.Parse(src)
	require.NoError(t, err)
	hterm, err := hir.LowerBlock(block.Value)
	require.NoError(t, err)
	_, err = types.Check(hterm)
	require.NoError(t, err)
	term, err := lir.Lower(hterm)
	require.NoError(t, err)
	return term
}

func TestLowerLetToBetaRedex(t *testing.T) {
	term := checked(t, "let x = 1\nx")
	app, ok := term.(lir.App)
	require.True(t, ok)
	abs, ok := app.Fn.(lir.Abs)
	require.True(t, ok)
	assert.Equal(t, lir.Var{Index: 0}, abs.Body)
	assert.Equal(t, lir.Lit{Value: 1}, app.Arg)
}

func TestLowerNestedLetIndicesCountOutward(t *testing.T) {
	term := checked(t, "let x = 1\nlet y = 2\nx")
	outer, ok := term.(lir.App)
	require.True(t, ok)
	inner, ok := outer.Fn.(lir.Abs).Body.(lir.App)
	require.True(t, ok)
	assert.Equal(t, lir.Var{Index: 1}, inner.Fn.(lir.Abs).Body)
}

func TestLowerRecursiveFunctionUsesFix(t *testing.T) {
	term := checked(t, "fn rec f(n: Int) -> Int { if n == 0 then 0 else n + f(n-1) }\nf(3)")
	outer, ok := term.(lir.App)
	require.True(t, ok)
	fix, ok := outer.Arg.(lir.Fix)
	require.True(t, ok)
	_, isAbs := fix.Body.(lir.Abs)
	assert.True(t, isAbs)
}

func TestLowerPrintSpecializesToPrintInt(t *testing.T) {
	term := checked(t, "print(1)")
	app, ok := term.(lir.App)
	require.True(t, ok)
	prim, ok := app.Fn.(lir.PrimFn)
	require.True(t, ok)
	assert.Equal(t, lir.PrintInt, prim.Prim)
}

func TestLowerPrintSpecializesToPrintBool(t *testing.T) {
	term := checked(t, "print(true)")
	app := term.(lir.App)
	assert.Equal(t, lir.PrintBool, app.Fn.(lir.PrimFn).Prim)
}

func TestLowerPrintSpecializesToPrintFunc(t *testing.T) {
	term := checked(t, "print(fn(x: Int) { x })")
	app := term.(lir.App)
	assert.Equal(t, lir.PrintFunc, app.Fn.(lir.PrimFn).Prim)
}

func TestLowerWithoutTypeCheckingFailsPrintSpecialization(t *testing.T) {
	block, err := parser.Parse("print(1)")
	require.NoError(t, err)
	hterm, err := hir.LowerBlock(block.Value)
	require.NoError(t, err)
	_, err = lir.Lower(hterm)
	require.Error(t, err)
}

func TestLowerSequenceDiscardsFirstResultBinding(t *testing.T) {
	term := checked(t, "print(1)\n2")
	app, ok := term.(lir.App)
	require.True(t, ok)
	_, isAbs := app.Fn.(lir.Abs)
	assert.True(t, isAbs)
	_, isPrintApp := app.Arg.(lir.App)
	assert.True(t, isPrintApp)
}
