package eval_test

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flux/internal/eval"
	"flux/internal/hir"
	"flux/internal/lir"
	"flux/internal/parser"
	"flux/internal/types"
)

func run(t *testing.T, src string, overflowCheck bool) (string, error) {
	t.Helper()
	block, err := parser.Parse(src)
	require.NoError(t, err)
	hterm, err := hir.LowerBlock(block.Value)
	require.NoError(t, err)
	_, err = types.Check(hterm)
	require.NoError(t, err)
	term, err := lir.Lower(hterm)
	require.NoError(t, err)

	var buf bytes.Buffer
	m := eval.NewMachine(&buf, overflowCheck)
	_, err = m.Eval(term)
	return buf.String(), err
}

func TestEvalArithmetic(t *testing.T) {
	out, err := run(t, "print(2 + 3 * 4)", true)
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)
}

func TestEvalConditional(t *testing.T) {
	out, err := run(t, "print(if 1 < 2 then 10 else 20)", true)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestEvalRecursiveFactorial(t *testing.T) {
	out, err := run(t, "fn rec fact(n: Int) -> Int { if n == 0 then 1 else n * fact(n-1) }\nprint(fact(5))", true)
	require.NoError(t, err)
	assert.Equal(t, "120\n", out)
}

func TestEvalPrintBoolAndUnit(t *testing.T) {
	out, err := run(t, "print(true)\nprint(false)\nprint(unit)", true)
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\nunit\n", out)
}

func TestEvalPrintFunction(t *testing.T) {
	out, err := run(t, "print(fn(x: Int) { x })", true)
	require.NoError(t, err)
	assert.Equal(t, "<function>\n", out)
}

func TestEvalDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "print(1 / 0)", true)
	require.Error(t, err)
	var everr *eval.Error
	require.ErrorAs(t, err, &everr)
	assert.Equal(t, eval.DivByZero, everr.Kind)
}

func TestEvalRemainderByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "print(1 % 0)", false)
	require.Error(t, err)
	var everr *eval.Error
	require.ErrorAs(t, err, &everr)
	assert.Equal(t, eval.DivByZero, everr.Kind)
}

func TestEvalCheckedOverflowErrors(t *testing.T) {
	src := "print(" + strconv.FormatInt(math.MaxInt64, 10) + " + 1)"
	_, err := run(t, src, true)
	require.Error(t, err)
	var everr *eval.Error
	require.ErrorAs(t, err, &everr)
	assert.Equal(t, eval.Overflow, everr.Kind)
}

func TestEvalOverflowArithmeticWraps(t *testing.T) {
	src := "print(" + strconv.FormatInt(math.MaxInt64, 10) + " + 1)"
	out, err := run(t, src, false)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatInt(math.MinInt64, 10)+"\n", out)
}

func TestEvalShortCircuitAndSkipsSecondOperand(t *testing.T) {
	out, err := run(t, "print(false && (1 / 0 == 0))", true)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestEvalShortCircuitOrSkipsSecondOperand(t *testing.T) {
	out, err := run(t, "print(true || (1 / 0 == 0))", true)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestEvalBitwiseAndShiftOperators(t *testing.T) {
	out, err := run(t, "print((6 & 3) | (1 << 4))", true)
	require.NoError(t, err)
	assert.Equal(t, "18\n", out)
}
