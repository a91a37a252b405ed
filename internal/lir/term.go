// Package lir is the last intermediate representation before evaluation: a
// locally-nameless (De Bruijn indexed) term language with `let`, `fn` and
// sequencing already desugared into application/abstraction, and recursive
// bindings desugared into an explicit fixed-point operator.
package lir

import (
	"fmt"

	"flux/internal/ast"
)

// Literal values are erased to plain int64 during lowering: Unit becomes 0,
// false/true become 0/1, matching the evaluator's uniform treatment of
// conditionals, short-circuiting and printing (distinguished only by which
// Prim specialization is attached to the surrounding App).

// Prim is a print specialization, chosen during HIR->LIR lowering once the
// type checker has recorded the printed value's type.
type Prim int

const (
	PrintInt Prim = iota
	PrintBool
	PrintUnit
	PrintFunc
)

func (p Prim) String() string {
	switch p {
	case PrintInt:
		return "print_int"
	case PrintBool:
		return "print_bool"
	case PrintUnit:
		return "print_unit"
	case PrintFunc:
		return "print_func"
	default:
		return "<unknown prim>"
	}
}

// Term is a De Bruijn indexed term. Unlike hir.Term it carries no source
// location or variable names: by this stage those exist only for
// diagnostics, which have already been raised against HIR.
type Term interface {
	isTerm()
	fmt.Stringer
}

// Var references the enclosing binder Index abstractions out, counting from
// zero at the innermost Abs.
type Var struct{ Index int }

// Abs is a single-parameter abstraction; the parameter itself carries no
// name or type at this stage.
type Abs struct{ Body Term }

type App struct{ Fn, Arg Term }

type Lit struct{ Value int64 }

type UnaryOp struct {
	Op      ast.UnOp
	Operand Term
}

type BinaryOp struct {
	Op          ast.BinOp
	Left, Right Term
}

type Cond struct{ C, Then, Else Term }

// Fix is the fixed-point operator: Fix(Abs(body)) steps to body with its
// own bound occurrence replaced by a fresh copy of the whole Fix term,
// unfolding one level of recursion per evaluation step.
type Fix struct{ Body Term }

type PrimFn struct{ Prim Prim }

func (Var) isTerm()      {}
func (Abs) isTerm()      {}
func (App) isTerm()      {}
func (Lit) isTerm()      {}
func (UnaryOp) isTerm()  {}
func (BinaryOp) isTerm() {}
func (Cond) isTerm()     {}
func (Fix) isTerm()      {}
func (PrimFn) isTerm()   {}

func (v Var) String() string { return fmt.Sprintf("#%d", v.Index) }
func (a Abs) String() string { return fmt.Sprintf("(\\. %s)", a.Body) }
func (a App) String() string { return fmt.Sprintf("(%s %s)", a.Fn, a.Arg) }
func (l Lit) String() string { return fmt.Sprintf("%d", l.Value) }
func (u UnaryOp) String() string  { return fmt.Sprintf("(%s%s)", u.Op, u.Operand) }
func (b BinaryOp) String() string { return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right) }
func (c Cond) String() string     { return fmt.Sprintf("(if %s then %s else %s)", c.C, c.Then, c.Else) }
func (f Fix) String() string      { return fmt.Sprintf("(fix %s)", f.Body) }
func (p PrimFn) String() string   { return p.Prim.String() }
