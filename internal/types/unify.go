package types

// subst maps a unification variable's index to the type it was resolved to.
// Entries may themselves mention other variables; applySubst follows the
// chain to a normal form.
type subst map[int]Ty

// unify pops constraints one at a time (last-in-first-out, as in the
// original unifier) until none remain, decomposing TyArrow against TyArrow
// into two fresh constraints and binding a bare TyVar to whatever it's
// equated with after an occurs check.
func (c *checker) unify() (subst, error) {
	s := subst{}
	work := c.constraints
	for len(work) > 0 {
		n := len(work) - 1
		cur := work[n]
		work = work[:n]

		want := applySubst(s, cur.want)
		got := applySubst(s, cur.got)

		if Equal(want, got) {
			continue
		}

		if v, ok := want.(TyVar); ok {
			if Contains(got, v.Index) {
				return nil, errRecursiveType(cur.loc.Location())
			}
			s[v.Index] = got
			continue
		}
		if v, ok := got.(TyVar); ok {
			if Contains(want, v.Index) {
				return nil, errRecursiveType(cur.loc.Location())
			}
			s[v.Index] = want
			continue
		}

		wantArrow, wantOk := want.(TyArrow)
		gotArrow, gotOk := got.(TyArrow)
		if wantOk && gotOk {
			work = append(work,
				constraint{want: wantArrow.Param, got: gotArrow.Param, loc: cur.loc},
				constraint{want: wantArrow.Result, got: gotArrow.Result, loc: cur.loc},
			)
			continue
		}

		return nil, errMismatch(want, got, cur.loc.Location())
	}
	return s, nil
}

// applySubst resolves every TyVar in ty to its bound type, recursing through
// TyArrow and following chains of variable-to-variable bindings.
func applySubst(s subst, ty Ty) Ty {
	switch t := ty.(type) {
	case TyVar:
		if rep, ok := s[t.Index]; ok {
			return applySubst(s, rep)
		}
		return t
	case TyArrow:
		return TyArrow{Param: applySubst(s, t.Param), Result: applySubst(s, t.Result)}
	default:
		return ty
	}
}
