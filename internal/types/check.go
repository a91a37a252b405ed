package types

import (
	"fmt"

	"flux/internal/ast"
	"flux/internal/hir"
)

// constraint is an equation between two types, solved by unify. Constraints
// are generated bottom-up while walking the term (mirroring the original
// implementation's Context/Unifier split) and solved in one pass afterward.
type constraint struct {
	want, got Ty
	loc       hir.Term // carries Location() for error reporting
}

// printSlot remembers where to write back a Print call's argument type once
// its unification variable has been resolved to a concrete type.
type printSlot struct {
	ptr *Ty
	raw Ty
}

type checker struct {
	constraints []constraint
	printSlots  []printSlot
	next        int
}

func (c *checker) fresh() Ty {
	v := TyVar{Index: c.next}
	c.next++
	return v
}

func (c *checker) require(want, got Ty, site hir.Term) {
	c.constraints = append(c.constraints, constraint{want: want, got: got, loc: site})
}

// Check type-checks term and returns its inferred type with every
// unification variable resolved. Print applications have their recorded
// argument type (App.PrintArgTy) filled in as a side effect.
func Check(term hir.Term) (Ty, error) {
	c := &checker{}
	ty, err := c.infer(term, nil)
	if err != nil {
		return nil, err
	}
	subst, err := c.unify()
	if err != nil {
		return nil, err
	}
	for _, slot := range c.printSlots {
		*slot.ptr = applySubst(subst, slot.raw)
	}
	return applySubst(subst, ty), nil
}

func (c *checker) infer(term hir.Term, e *env) (Ty, error) {
	switch t := term.(type) {
	case hir.Lit:
		switch t.Value.(type) {
		case ast.UnitLit:
			return TyUnit{}, nil
		case ast.BoolLit:
			return TyBool{}, nil
		case ast.NumberLit:
			return TyInt{}, nil
		default:
			return nil, fmt.Errorf("types: unhandled literal %T", t.Value)
		}

	case hir.Var:
		ty, ok := e.lookup(t.Name)
		if !ok {
			return nil, errUnbound(t.Name, t.Loc)
		}
		return ty, nil

	case hir.Abs:
		bodyTy, err := c.infer(t.Body, e.push(t.Param, t.ParamTy))
		if err != nil {
			return nil, err
		}
		return TyArrow{Param: t.ParamTy, Result: bodyTy}, nil

	case hir.App:
		// print is not an ordinary arrow-typed value: it accepts any argument
		// type and always produces Unit, so its application bypasses generic
		// arrow unification entirely rather than fabricating an open
		// TyArrow for the PrimFn case below to unify against.
		if prim, ok := t.Fn.(hir.PrimFn); ok && prim.Prim == hir.Print {
			argTy, err := c.infer(t.Arg, e)
			if err != nil {
				return nil, err
			}
			if t.PrintArgTy != nil {
				c.printSlots = append(c.printSlots, printSlot{ptr: t.PrintArgTy, raw: argTy})
			}
			return TyUnit{}, nil
		}

		fnTy, err := c.infer(t.Fn, e)
		if err != nil {
			return nil, err
		}
		argTy, err := c.infer(t.Arg, e)
		if err != nil {
			return nil, err
		}
		result := c.fresh()
		c.require(fnTy, TyArrow{Param: argTy, Result: result}, t)
		return result, nil

	case hir.UnaryOp:
		operandTy, err := c.infer(t.Operand, e)
		if err != nil {
			return nil, err
		}
		switch t.Op {
		case ast.Neg:
			c.require(TyInt{}, operandTy, t)
			return TyInt{}, nil
		case ast.Not:
			c.require(TyBool{}, operandTy, t)
			return TyBool{}, nil
		default:
			return nil, fmt.Errorf("types: unhandled unary op %v", t.Op)
		}

	case hir.BinaryOp:
		leftTy, err := c.infer(t.Left, e)
		if err != nil {
			return nil, err
		}
		rightTy, err := c.infer(t.Right, e)
		if err != nil {
			return nil, err
		}
		switch {
		case t.Op.IsArithmeticOrBitwise():
			c.require(TyInt{}, leftTy, t)
			c.require(TyInt{}, rightTy, t)
			return TyInt{}, nil
		case t.Op.IsLogical():
			c.require(TyBool{}, leftTy, t)
			c.require(TyBool{}, rightTy, t)
			return TyBool{}, nil
		case t.Op.IsOrder():
			c.require(TyInt{}, leftTy, t)
			c.require(TyInt{}, rightTy, t)
			return TyBool{}, nil
		case t.Op.IsEquality():
			c.require(leftTy, rightTy, t)
			return TyBool{}, nil
		default:
			return nil, fmt.Errorf("types: unhandled binary op %v", t.Op)
		}

	case hir.Cond:
		condTy, err := c.infer(t.C, e)
		if err != nil {
			return nil, err
		}
		c.require(TyBool{}, condTy, t)
		thenTy, err := c.infer(t.Then, e)
		if err != nil {
			return nil, err
		}
		elseTy, err := c.infer(t.Else, e)
		if err != nil {
			return nil, err
		}
		c.require(thenTy, elseTy, t)
		return thenTy, nil

	case hir.Seq:
		firstTy, err := c.infer(t.First, e)
		if err != nil {
			return nil, err
		}
		c.require(TyUnit{}, firstTy, t)
		return c.infer(t.Second, e)

	case hir.Let:
		switch kind := t.Kind.(type) {
		case hir.NonRec:
			rhsTy, err := c.infer(t.Rhs, e)
			if err != nil {
				return nil, err
			}
			if kind.Annotation != nil {
				c.require(kind.Annotation, rhsTy, t)
			}
			return c.infer(t.Body, e.push(t.Name, rhsTy))
		case hir.Rec:
			rhsTy, err := c.infer(t.Rhs, e.push(t.Name, kind.Annotation))
			if err != nil {
				return nil, err
			}
			c.require(kind.Annotation, rhsTy, t)
			return c.infer(t.Body, e.push(t.Name, kind.Annotation))
		default:
			return nil, fmt.Errorf("types: unhandled let kind %T", kind)
		}

	case hir.PrimFn:
		// Only reachable if a primitive is referenced without being called,
		// which the lowering stage never produces; give it an open type.
		return TyArrow{Param: c.fresh(), Result: c.fresh()}, nil

	default:
		return nil, fmt.Errorf("types: unhandled term %T", term)
	}
}
