package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flux/internal/hir"
	"flux/internal/parser"
	"flux/internal/types"
)

func checkSrc(t *testing.T, src string) (types.Ty, error) {
	t.Helper()
	block, err := parser.Parse(src)
	require.NoError(t, err)
	term, err := hir.LowerBlock(block.Value)
	require.NoError(t, err)
	return types.Check(term)
}

func TestCheckCondOfComparison(t *testing.T) {
	ty, err := checkSrc(t, "if 1 < 2 then 3 else 4")
	require.NoError(t, err)
	assert.Equal(t, types.TyInt{}, ty)
}

func TestCheckFnInt(t *testing.T) {
	ty, err := checkSrc(t, "fn(x: Int) { x }")
	require.NoError(t, err)
	assert.Equal(t, types.TyArrow{Param: types.TyInt{}, Result: types.TyInt{}}, ty)
}

func TestCheckNegateBoolIsMismatch(t *testing.T) {
	_, err := checkSrc(t, "-true")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckNotIntIsMismatch(t *testing.T) {
	_, err := checkSrc(t, "!1")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckRecFactorial(t *testing.T) {
	ty, err := checkSrc(t, "fn rec f(n: Int) -> Int { if n == 0 then 0 else n + f(n-1) }\nf(3)")
	require.NoError(t, err)
	assert.Equal(t, types.TyInt{}, ty)
}

func TestCheckBranchMismatch(t *testing.T) {
	_, err := checkSrc(t, "if true then 1 else false")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckEqualityAcrossUnrelatedTypesMismatches(t *testing.T) {
	_, err := checkSrc(t, "1 == true")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckLetAnnotationMismatch(t *testing.T) {
	_, err := checkSrc(t, "let x: Bool = 1\nx")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckPrintRecordsArgumentType(t *testing.T) {
	block, err := parser.Parse("print(true)")
	require.NoError(t, err)
	term, err := hir.LowerBlock(block.Value)
	require.NoError(t, err)
	app := term.(hir.App)
	require.NotNil(t, app.PrintArgTy)

	_, err = types.Check(term)
	require.NoError(t, err)
	require.NotNil(t, *app.PrintArgTy)
	assert.Equal(t, types.TyBool{}, *app.PrintArgTy)
}

func TestCheckPrintApplicationIsUnit(t *testing.T) {
	ty, err := checkSrc(t, "print(1)")
	require.NoError(t, err)
	assert.Equal(t, types.TyUnit{}, ty)
}

func TestCheckPrintResultUsedAsBoolIsMismatch(t *testing.T) {
	_, err := checkSrc(t, "if print(1) then 2 else 3")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckLetAnonymousFnReturnTypeMismatch(t *testing.T) {
	_, err := checkSrc(t, "let f = fn(x: Int) -> Bool { x + 1 }\nf(1)")
	require.Error(t, err)
	var terr *types.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, types.Mismatch, terr.Kind)
}

func TestCheckLetAnonymousFnReturnTypeHonored(t *testing.T) {
	ty, err := checkSrc(t, "let f = fn(x: Int) -> Int { x + 1 }\nf(1)")
	require.NoError(t, err)
	assert.Equal(t, types.TyInt{}, ty)
}

func TestCheckHigherOrderFunction(t *testing.T) {
	ty, err := checkSrc(t, "fn(f: Int -> Int, x: Int) { f(x) }")
	require.NoError(t, err)
	arrow, ok := ty.(types.TyArrow)
	require.True(t, ok)
	assert.Equal(t, types.TyArrow{Param: types.TyInt{}, Result: types.TyInt{}}, arrow.Result)
}

func TestUnboundAnnotationTypeRejectedDuringLowering(t *testing.T) {
	block, err := parser.Parse("let x: Foo = 1\nx")
	require.NoError(t, err)
	_, err = hir.LowerBlock(block.Value)
	require.Error(t, err)
}
