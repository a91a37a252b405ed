package hir

import (
	"fmt"

	"flux/internal/ast"
	"flux/internal/source"
	"flux/internal/types"
)

// LowerBlock resolves names, checks recursion well-formedness, and produces
// a fully-named HIR term for the given top-level block.
func LowerBlock(block ast.Block) (Term, error) {
	return lowerFrom(block.Nodes, 0, nil)
}

// lowerFrom lowers nodes[idx:], threading scope so that let/fn bindings
// extend the names visible to everything after them (and, for the bound
// name itself, the recursion guard described in scope.go).
func lowerFrom(nodes []ast.Node, idx int, sc *scope) (Term, error) {
	if idx >= len(nodes) {
		return Lit{Value: ast.UnitLit{}}, nil
	}
	node := nodes[idx]

	switch n := node.(type) {
	case ast.LetBindNode:
		return lowerLet(n, nodes, idx, sc)
	case ast.FnRecDefNode:
		return lowerRecFn(n, nodes, idx, sc)
	case ast.FnDefNode:
		if n.Name != "" {
			return lowerNamedFn(n, nodes, idx, sc)
		}
		fallthrough
	default:
		term, err := lowerExpr(node, sc)
		if err != nil {
			return nil, err
		}
		if idx == len(nodes)-1 {
			return term, nil
		}
		rest, err := lowerFrom(nodes, idx+1, sc)
		if err != nil {
			return nil, err
		}
		return Seq{First: term, Second: rest, Loc: node.Location()}, nil
	}
}

func lowerLet(n ast.LetBindNode, nodes []ast.Node, idx int, sc *scope) (Term, error) {
	var rhsTerm Term
	var err error
	var fnAnn types.Ty

	if fn, ok := n.Rhs.(ast.FnDefNode); ok {
		guarded := sc.push(n.Name, bindGuarded)
		rhsTerm, err = buildAbsChain(fn.Params, fn.Body, guarded)
		if err != nil {
			return nil, err
		}
		// Thread the anonymous fn's own `-> T` annotation through the same
		// way lowerNamedFn does for the `fn f(...) -> T {...}` sugar, so
		// `let f = fn(x: Int) -> T {...}` doesn't silently drop it.
		if fn.ReturnType != nil {
			fnAnn, err = buildArrowType(fn.Params, fn.ReturnType)
			if err != nil {
				return nil, err
			}
		}
	} else {
		rhsTerm, err = lowerExpr(n.Rhs, sc)
		if err != nil {
			return nil, err
		}
	}

	// The let-keyword's own annotation takes precedence when both are
	// given; the fn's return-type annotation otherwise carries through.
	ann := fnAnn
	if n.Annotation != nil {
		ann, err = convertType(n.Annotation)
		if err != nil {
			return nil, err
		}
	}

	body, err := lowerFrom(nodes, idx+1, sc.push(n.Name, bindNormal))
	if err != nil {
		return nil, err
	}
	return Let{Kind: NonRec{Annotation: ann}, Name: n.Name, Rhs: rhsTerm, Body: body, Loc: n.Loc}, nil
}

func lowerNamedFn(fn ast.FnDefNode, nodes []ast.Node, idx int, sc *scope) (Term, error) {
	guarded := sc.push(fn.Name, bindGuarded)
	absTerm, err := buildAbsChain(fn.Params, fn.Body, guarded)
	if err != nil {
		return nil, err
	}

	var ann types.Ty
	if fn.ReturnType != nil {
		ann, err = buildArrowType(fn.Params, fn.ReturnType)
		if err != nil {
			return nil, err
		}
	}

	body, err := lowerFrom(nodes, idx+1, sc.push(fn.Name, bindNormal))
	if err != nil {
		return nil, err
	}
	return Let{Kind: NonRec{Annotation: ann}, Name: fn.Name, Rhs: absTerm, Body: body, Loc: fn.Loc}, nil
}

func lowerRecFn(fn ast.FnRecDefNode, nodes []ast.Node, idx int, sc *scope) (Term, error) {
	self := sc.push(fn.Name, bindNormal)
	absTerm, err := buildAbsChain(fn.Params, fn.Body, self)
	if err != nil {
		return nil, err
	}
	ann, err := buildArrowType(fn.Params, fn.ReturnType)
	if err != nil {
		return nil, err
	}
	body, err := lowerFrom(nodes, idx+1, self)
	if err != nil {
		return nil, err
	}
	return Let{Kind: Rec{Annotation: ann}, Name: fn.Name, Rhs: absTerm, Body: body, Loc: fn.Loc}, nil
}

// buildAbsChain lowers a function's body with its parameters bound, then
// wraps it in one Abs per parameter (innermost-first), matching the spec's
// `Abs(x1:T1, Abs(x2:T2, ...))` nesting. A nullary function still takes one
// Unit-typed parameter, since a nullary call applies `Lit(Unit)`.
func buildAbsChain(params []ast.Param, body ast.Block, sc *scope) (Term, error) {
	if err := checkDuplicateParams(params); err != nil {
		return nil, err
	}

	paramScope := sc
	for _, p := range params {
		paramScope = paramScope.push(p.Name, bindNormal)
	}
	bodyTerm, err := lowerFrom(body.Nodes, 0, paramScope)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return Abs{Param: "_", ParamTy: types.TyUnit{}, Body: bodyTerm, Loc: body.Loc}, nil
	}

	term := bodyTerm
	for i := len(params) - 1; i >= 0; i-- {
		ty, err := convertType(params[i].Type)
		if err != nil {
			return nil, err
		}
		term = Abs{Param: params[i].Name, ParamTy: ty, Body: term, Loc: source.Span(params[i].Loc, term.Location())}
	}
	return term, nil
}

// buildArrowType constructs `T1 -> T2 -> ... -> Tm -> R` for a function's
// full type, or `Unit -> R` for a nullary one.
func buildArrowType(params []ast.Param, ret ast.TypeExpr) (types.Ty, error) {
	result, err := convertType(ret)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return types.TyArrow{Param: types.TyUnit{}, Result: result}, nil
	}
	for i := len(params) - 1; i >= 0; i-- {
		paramTy, err := convertType(params[i].Type)
		if err != nil {
			return nil, err
		}
		result = types.TyArrow{Param: paramTy, Result: result}
	}
	return result, nil
}

func checkDuplicateParams(params []ast.Param) error {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return errDuplicateParam(p.Name, p.Loc)
		}
		seen[p.Name] = true
	}
	return nil
}

func lowerExpr(node ast.Node, sc *scope) (Term, error) {
	switch n := node.(type) {
	case ast.NameNode:
		found, ok := sc.lookup(n.Name)
		if !ok {
			return nil, errUnbound(n.Name, n.Loc)
		}
		if found.kind == bindGuarded {
			return nil, errRequiredTy(n.Loc)
		}
		return Var{Name: n.Name, Loc: n.Loc}, nil

	case ast.LiteralNode:
		return Lit{Value: n.Value, Loc: n.Loc}, nil

	case ast.UnaryOpNode:
		operand, err := lowerExpr(n.Operand, sc)
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: n.Op, Operand: operand, Loc: n.Loc}, nil

	case ast.BinaryOpNode:
		left, err := lowerExpr(n.Left, sc)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(n.Right, sc)
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: n.Op, Left: left, Right: right, Loc: n.Loc}, nil

	case ast.CondNode:
		c, err := lowerFrom(n.Cond.Nodes, 0, sc)
		if err != nil {
			return nil, err
		}
		t, err := lowerFrom(n.Then.Nodes, 0, sc)
		if err != nil {
			return nil, err
		}
		e, err := lowerFrom(n.Else.Nodes, 0, sc)
		if err != nil {
			return nil, err
		}
		return Cond{C: c, Then: t, Else: e, Loc: n.Loc}, nil

	case ast.FnDefNode:
		return buildAbsChain(n.Params, n.Body, sc)

	case ast.CallNode:
		return lowerCall(n, sc)

	default:
		return nil, fmt.Errorf("hir: unsupported node %T", node)
	}
}

func lowerCall(n ast.CallNode, sc *scope) (Term, error) {
	if name, ok := n.Callee.(ast.NameNode); ok && name.Name == "print" {
		if len(n.Args) != 1 {
			return nil, errPrintArity(n.Loc)
		}
		arg, err := lowerExpr(n.Args[0], sc)
		if err != nil {
			return nil, err
		}
		return App{Fn: PrimFn{Prim: Print, Loc: name.Loc}, Arg: arg, PrintArgTy: new(types.Ty), Loc: n.Loc}, nil
	}

	callee, err := lowerExpr(n.Callee, sc)
	if err != nil {
		return nil, err
	}
	if len(n.Args) == 0 {
		return App{Fn: callee, Arg: Lit{Value: ast.UnitLit{}, Loc: n.Loc}, Loc: n.Loc}, nil
	}
	term := callee
	for _, a := range n.Args {
		argTerm, err := lowerExpr(a, sc)
		if err != nil {
			return nil, err
		}
		term = App{Fn: term, Arg: argTerm, Loc: n.Loc}
	}
	return term, nil
}

func convertType(te ast.TypeExpr) (types.Ty, error) {
	switch t := te.(type) {
	case ast.TyName:
		switch t.Name {
		case "Int":
			return types.TyInt{}, nil
		case "Bool":
			return types.TyBool{}, nil
		case "Unit":
			return types.TyUnit{}, nil
		default:
			return nil, errUnbound(t.Name, t.Loc)
		}
	case ast.TyArrow:
		p, err := convertType(t.Param)
		if err != nil {
			return nil, err
		}
		r, err := convertType(t.Result)
		if err != nil {
			return nil, err
		}
		return types.TyArrow{Param: p, Result: r}, nil
	default:
		return nil, fmt.Errorf("hir: unsupported type expression %T", te)
	}
}
