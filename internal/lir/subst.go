package lir

// Shift renumbers every free variable in t by +1 (up) or -1 (down),
// treating any index below cutoff as bound locally and leaving it alone.
// It is applied when a term crosses into or out of a binder it didn't
// originate under — once when a beta-reduction argument moves under the
// abstraction it's replacing, and once more when the reduced body moves
// back out of it.
func Shift(t Term, up bool, cutoff int) Term {
	d := 1
	if !up {
		d = -1
	}
	return shift(t, d, cutoff)
}

func shift(t Term, d, cutoff int) Term {
	switch n := t.(type) {
	case Var:
		if n.Index >= cutoff {
			return Var{Index: n.Index + d}
		}
		return n
	case Abs:
		return Abs{Body: shift(n.Body, d, cutoff+1)}
	case App:
		return App{Fn: shift(n.Fn, d, cutoff), Arg: shift(n.Arg, d, cutoff)}
	case UnaryOp:
		return UnaryOp{Op: n.Op, Operand: shift(n.Operand, d, cutoff)}
	case BinaryOp:
		return BinaryOp{Op: n.Op, Left: shift(n.Left, d, cutoff), Right: shift(n.Right, d, cutoff)}
	case Cond:
		return Cond{C: shift(n.C, d, cutoff), Then: shift(n.Then, d, cutoff), Else: shift(n.Else, d, cutoff)}
	case Fix:
		return Fix{Body: shift(n.Body, d, cutoff)}
	default: // Lit, PrimFn: no variables to renumber
		return t
	}
}

// Replace substitutes every occurrence of the variable bound at index with
// repl, shifting repl by one each time the walk descends under an Abs so
// its free variables stay correctly scoped.
func Replace(t Term, index int, repl Term) Term {
	switch n := t.(type) {
	case Var:
		if n.Index == index {
			return repl
		}
		return n
	case Abs:
		return Abs{Body: Replace(n.Body, index+1, Shift(repl, true, 0))}
	case App:
		return App{Fn: Replace(n.Fn, index, repl), Arg: Replace(n.Arg, index, repl)}
	case UnaryOp:
		return UnaryOp{Op: n.Op, Operand: Replace(n.Operand, index, repl)}
	case BinaryOp:
		return BinaryOp{Op: n.Op, Left: Replace(n.Left, index, repl), Right: Replace(n.Right, index, repl)}
	case Cond:
		return Cond{C: Replace(n.C, index, repl), Then: Replace(n.Then, index, repl), Else: Replace(n.Else, index, repl)}
	case Fix:
		return Fix{Body: Replace(n.Body, index, repl)}
	default:
		return t
	}
}
