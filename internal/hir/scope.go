package hir

// bindKind distinguishes a name that is safe to reference (normal) from one
// that is mid-binding and therefore an unguarded self-reference if looked
// up (guarded) — the recursion well-formedness check's whole mechanism.
type bindKind int

const (
	bindNormal bindKind = iota
	bindGuarded
)

// scope is an immutable, parent-linked lookup chain — the same shape as the
// teacher's SymbolTable (internal/semantic/symbols.go), but specialized to
// carry only what name resolution needs here: a guarded/normal flag per
// binding, so that shadowing is "just" nearer-frame-wins lookup.
type scope struct {
	parent *scope
	name   string
	kind   bindKind
}

func (s *scope) push(name string, kind bindKind) *scope {
	return &scope{parent: s, name: name, kind: kind}
}

func (s *scope) lookup(name string) (*scope, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur, true
		}
	}
	return nil, false
}
