// Package eval is the small-step evaluator over lir.Term: a weak-head
// reducer whose only effects are writes to an injected io.Writer for
// print, with the integer semantics supplied by a pluggable Arithmetic
// strategy.
package eval

import (
	"fmt"
	"io"
	"strconv"

	"flux/internal/ast"
	"flux/internal/lir"
)

// Machine holds the state needed across a single evaluation: where print
// writes to, and which Arithmetic strategy literal operations use.
type Machine struct {
	Arithmetic Arithmetic
	Stdout     io.Writer
}

// NewMachine builds a Machine. overflowCheck selects CheckedArithmetic when
// true, OverflowArithmetic otherwise.
func NewMachine(stdout io.Writer, overflowCheck bool) *Machine {
	var arith Arithmetic = OverflowArithmetic{}
	if overflowCheck {
		arith = CheckedArithmetic{}
	}
	return &Machine{Arithmetic: arith, Stdout: stdout}
}

// Eval repeatedly steps term until no rule applies and returns the
// resulting value term.
func (m *Machine) Eval(term lir.Term) (lir.Term, error) {
	for {
		changed, next, err := m.step(term)
		if err != nil {
			return nil, err
		}
		term = next
		if !changed {
			return term, nil
		}
	}
}

func (m *Machine) step(term lir.Term) (bool, lir.Term, error) {
	switch t := term.(type) {
	case lir.BinaryOp:
		return m.stepBinOp(t)
	case lir.UnaryOp:
		return m.stepUnOp(t)
	case lir.App:
		return m.stepApp(t)
	case lir.Cond:
		return m.stepCond(t)
	case lir.Fix:
		return m.stepFix(t)
	default:
		// Var, Lit, Abs, PrimFn are all terminal value forms; a free Var
		// here means a closed, type-checked program was never given, which
		// the type checker is relied on to prevent.
		return false, term, nil
	}
}

func (m *Machine) stepApp(t lir.App) (bool, lir.Term, error) {
	switch fn := t.Fn.(type) {
	case lir.Abs:
		return m.stepBeta(fn.Body, t.Arg)
	case lir.PrimFn:
		return m.stepPrimApp(fn.Prim, t.Arg)
	default:
		changed, newFn, err := m.step(t.Fn)
		if err != nil {
			return false, nil, err
		}
		return changed, lir.App{Fn: newFn, Arg: t.Arg}, nil
	}
}

func (m *Machine) stepCond(t lir.Cond) (bool, lir.Term, error) {
	if lit, ok := t.C.(lir.Lit); ok {
		if lit.Value != 0 {
			return true, t.Then, nil
		}
		return true, t.Else, nil
	}
	changed, newC, err := m.step(t.C)
	if err != nil {
		return false, nil, err
	}
	return changed, lir.Cond{C: newC, Then: t.Then, Else: t.Else}, nil
}

func (m *Machine) stepBinOp(t lir.BinaryOp) (bool, lir.Term, error) {
	if left, ok := t.Left.(lir.Lit); ok {
		if t.Op == ast.And && left.Value == 0 {
			return true, lir.Lit{Value: 0}, nil
		}
		if t.Op == ast.Or && left.Value != 0 {
			return true, lir.Lit{Value: 1}, nil
		}
		if right, ok := t.Right.(lir.Lit); ok {
			r, err := m.Arithmetic.BinaryOperation(t.Op, left.Value, right.Value)
			if err != nil {
				return false, nil, err
			}
			return true, lir.Lit{Value: r}, nil
		}
		changed, newRight, err := m.step(t.Right)
		if err != nil {
			return false, nil, err
		}
		return changed, lir.BinaryOp{Op: t.Op, Left: t.Left, Right: newRight}, nil
	}
	changed, newLeft, err := m.step(t.Left)
	if err != nil {
		return false, nil, err
	}
	return changed, lir.BinaryOp{Op: t.Op, Left: newLeft, Right: t.Right}, nil
}

func (m *Machine) stepUnOp(t lir.UnaryOp) (bool, lir.Term, error) {
	if lit, ok := t.Operand.(lir.Lit); ok {
		r, err := m.Arithmetic.UnaryOperation(t.Op, lit.Value)
		if err != nil {
			return false, nil, err
		}
		return true, lir.Lit{Value: r}, nil
	}
	changed, newOperand, err := m.step(t.Operand)
	if err != nil {
		return false, nil, err
	}
	return changed, lir.UnaryOp{Op: t.Op, Operand: newOperand}, nil
}

func (m *Machine) stepFix(t lir.Fix) (bool, lir.Term, error) {
	if abs, ok := t.Body.(lir.Abs); ok {
		return true, lir.Replace(abs.Body, 0, lir.Fix{Body: abs}), nil
	}
	changed, newBody, err := m.step(t.Body)
	if err != nil {
		return false, nil, err
	}
	return changed, lir.Fix{Body: newBody}, nil
}

func (m *Machine) stepBeta(body, arg lir.Term) (bool, lir.Term, error) {
	shiftedArg := lir.Shift(arg, true, 0)
	replaced := lir.Replace(body, 0, shiftedArg)
	return true, lir.Shift(replaced, false, 0), nil
}

func (m *Machine) stepPrimApp(prim lir.Prim, arg lir.Term) (bool, lir.Term, error) {
	value, err := m.Eval(arg)
	if err != nil {
		return false, nil, err
	}
	text, err := formatPrint(prim, value)
	if err != nil {
		return false, nil, err
	}
	if _, err := fmt.Fprintln(m.Stdout, text); err != nil {
		return false, nil, err
	}
	return true, lir.Lit{Value: 0}, nil
}

func formatPrint(prim lir.Prim, value lir.Term) (string, error) {
	lit, isLit := value.(lir.Lit)
	switch prim {
	case lir.PrintInt:
		if !isLit {
			return "", fmt.Errorf("eval: print_int applied to a non-literal value %T", value)
		}
		return strconv.FormatInt(lit.Value, 10), nil
	case lir.PrintBool:
		if !isLit {
			return "", fmt.Errorf("eval: print_bool applied to a non-literal value %T", value)
		}
		if lit.Value != 0 {
			return "true", nil
		}
		return "false", nil
	case lir.PrintUnit:
		return "unit", nil
	case lir.PrintFunc:
		return "<function>", nil
	default:
		return "", fmt.Errorf("eval: unknown print specialization %v", prim)
	}
}
