package lir

import (
	"fmt"

	"flux/internal/ast"
	"flux/internal/hir"
	"flux/internal/types"
)

// literalValue erases a surface literal to the int64 encoding the evaluator
// works with: Unit and false are 0, true is 1, numbers pass through.
func literalValue(lit ast.Literal) int64 {
	switch v := lit.(type) {
	case ast.UnitLit:
		return 0
	case ast.BoolLit:
		if v.Value {
			return 1
		}
		return 0
	case ast.NumberLit:
		return v.Value
	default:
		return 0
	}
}

// binder is the De Bruijn naming context built up while descending into
// HIR's named Abs/Let bindings: nearer bindings sit at lower indices.
type binder struct {
	parent *binder
	name   string
}

func (b *binder) push(name string) *binder {
	return &binder{parent: b, name: name}
}

func (b *binder) index(name string) (int, bool) {
	i := 0
	for cur := b; cur != nil; cur = cur.parent {
		if cur.name == name {
			return i, true
		}
		i++
	}
	return 0, false
}

// Lower converts a type-checked HIR term into a De Bruijn LIR term,
// desugaring `let` and sequencing into application/abstraction and
// recursive bindings into Fix, and specializing each Print application
// using the argument type the type checker recorded on it.
func Lower(term hir.Term) (Term, error) {
	return lower(term, nil)
}

func lower(t hir.Term, env *binder) (Term, error) {
	switch n := t.(type) {
	case hir.Var:
		idx, ok := env.index(n.Name)
		if !ok {
			return nil, fmt.Errorf("lir: unbound name %q (should have been caught during lowering)", n.Name)
		}
		return Var{Index: idx}, nil

	case hir.Lit:
		return Lit{Value: literalValue(n.Value)}, nil

	case hir.Abs:
		body, err := lower(n.Body, env.push(n.Param))
		if err != nil {
			return nil, err
		}
		return Abs{Body: body}, nil

	case hir.App:
		if prim, ok := n.Fn.(hir.PrimFn); ok && prim.Prim == hir.Print {
			arg, err := lower(n.Arg, env)
			if err != nil {
				return nil, err
			}
			p, err := printSpecialization(n.PrintArgTy)
			if err != nil {
				return nil, err
			}
			return App{Fn: PrimFn{Prim: p}, Arg: arg}, nil
		}
		fn, err := lower(n.Fn, env)
		if err != nil {
			return nil, err
		}
		arg, err := lower(n.Arg, env)
		if err != nil {
			return nil, err
		}
		return App{Fn: fn, Arg: arg}, nil

	case hir.UnaryOp:
		operand, err := lower(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: n.Op, Operand: operand}, nil

	case hir.BinaryOp:
		left, err := lower(n.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := lower(n.Right, env)
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: n.Op, Left: left, Right: right}, nil

	case hir.Cond:
		c, err := lower(n.C, env)
		if err != nil {
			return nil, err
		}
		then, err := lower(n.Then, env)
		if err != nil {
			return nil, err
		}
		els, err := lower(n.Else, env)
		if err != nil {
			return nil, err
		}
		return Cond{C: c, Then: then, Else: els}, nil

	case hir.Seq:
		// `t1 ; t2` has no LIR representative of its own: it's just a let
		// binding whose bound name is never used.
		first, err := lower(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := lower(n.Second, env.push("_"))
		if err != nil {
			return nil, err
		}
		return App{Fn: Abs{Body: second}, Arg: first}, nil

	case hir.Let:
		return lowerLet(n, env)

	case hir.PrimFn:
		return nil, fmt.Errorf("lir: bare primitive reference outside of application")

	default:
		return nil, fmt.Errorf("lir: unhandled term %T", t)
	}
}

func lowerLet(n hir.Let, env *binder) (Term, error) {
	body, err := lower(n.Body, env.push(n.Name))
	if err != nil {
		return nil, err
	}

	switch n.Kind.(type) {
	case hir.NonRec:
		rhs, err := lower(n.Rhs, env)
		if err != nil {
			return nil, err
		}
		return App{Fn: Abs{Body: body}, Arg: rhs}, nil

	case hir.Rec:
		// `let rec f = M in N` becomes `(\. N) (fix (\. M))`, where M's
		// self-reference to f resolves to the fixed point's own parameter.
		rhs, err := lower(n.Rhs, env.push(n.Name))
		if err != nil {
			return nil, err
		}
		return App{Fn: Abs{Body: body}, Arg: Fix{Body: Abs{Body: rhs}}}, nil

	default:
		return nil, fmt.Errorf("lir: unhandled let kind %T", n.Kind)
	}
}

// printSpecialization picks the Print primitive variant for an argument of
// type ty, recorded on the HIR App node by the type checker.
func printSpecialization(ty *types.Ty) (Prim, error) {
	if ty == nil || *ty == nil {
		return 0, fmt.Errorf("lir: print argument type was never recorded by the type checker")
	}
	switch (*ty).(type) {
	case types.TyInt:
		return PrintInt, nil
	case types.TyBool:
		return PrintBool, nil
	case types.TyUnit:
		return PrintUnit, nil
	case types.TyArrow:
		return PrintFunc, nil
	default:
		return 0, fmt.Errorf("lir: cannot specialize print for type %s", (*ty).String())
	}
}
