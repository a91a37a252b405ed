package hir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flux/internal/hir"
	"flux/internal/parser"
)

func lower(t *testing.T, src string) (hir.Term, error) {
	t.Helper()
	block, err := parser.Parse(src)
	require.NoError(t, err)
	return hir.LowerBlock(block.Value)
}

func TestLowerSimpleLet(t *testing.T) {
	term, err := lower(t, "let x = 1\nx")
	require.NoError(t, err)
	let, ok := term.(hir.Let)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
}

func TestLowerUnboundName(t *testing.T) {
	_, err := lower(t, "x")
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.Unbound, herr.Kind)
}

func TestRejectDirectSelfReferenceWithoutRec(t *testing.T) {
	_, err := lower(t, "let f = fn(n: Int) { f(n) }")
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.RequiredTy, herr.Kind)
}

func TestRejectIndirectSelfReferenceViaHelper(t *testing.T) {
	_, err := lower(t, "let f = fn() { let g = fn() { f() }; g() }")
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.RequiredTy, herr.Kind)
}

func TestRejectSelfReferenceAfterShadowReexposesName(t *testing.T) {
	_, err := lower(t, "let f = fn() { let f = f; f() }")
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.RequiredTy, herr.Kind)
}

func TestRejectSelfReferenceInsideNonShadowingInnerFn(t *testing.T) {
	_, err := lower(t, "let f = fn() { fn() { f() } }")
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.RequiredTy, herr.Kind)
}

func TestAcceptShadowingBeforeRecursiveUse(t *testing.T) {
	_, err := lower(t, "let f = fn(x: Int) { let f = x; f }")
	require.NoError(t, err)
}

func TestAcceptUseAfterBindingCompletes(t *testing.T) {
	_, err := lower(t, "let f = fn(x: Int) { x }\nf(1)")
	require.NoError(t, err)
}

func TestBindingPersistsWholeBlock(t *testing.T) {
	_, err := lower(t, "let f = fn(x: Int) { x }\nf(1)\nf(2)")
	require.NoError(t, err)
}

func TestAcceptFnRec(t *testing.T) {
	term, err := lower(t, "fn rec fact(n: Int) -> Int { if n == 0 then 1 else n * fact(n-1) }")
	require.NoError(t, err)
	let := term.(hir.Let)
	_, isRec := let.Kind.(hir.Rec)
	assert.True(t, isRec)
}

func TestFnRecRequiresReturnTypeCaughtAtParseTime(t *testing.T) {
	_, err := parser.Parse("fn rec f(n: Int) { n }")
	require.Error(t, err)
}

func TestDuplicateParam(t *testing.T) {
	block, err := parser.Parse("fn foo(x: Int, x: Int) -> Int { x }")
	require.NoError(t, err)
	_, err = hir.LowerBlock(block.Value)
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.DuplicateParam, herr.Kind)
}

func TestPrintArity(t *testing.T) {
	block, err := parser.Parse("print(1, 2)")
	require.NoError(t, err)
	_, err = hir.LowerBlock(block.Value)
	require.Error(t, err)
	var herr *hir.Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, hir.PrintArity, herr.Kind)
}

func TestNullaryCallLowersToUnitApplication(t *testing.T) {
	term, err := lower(t, "fn foo() -> Int { 1 }\nfoo()")
	require.NoError(t, err)
	let := term.(hir.Let)
	app, ok := let.Body.(hir.App)
	require.True(t, ok)
	_, isLit := app.Arg.(hir.Lit)
	assert.True(t, isLit)
}
