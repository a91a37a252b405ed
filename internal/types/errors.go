package types

import (
	"fmt"

	cerrors "flux/internal/errors"
	"flux/internal/source"
)

type Kind int

const (
	Mismatch Kind = iota
	Unbound
	RecursiveType
)

// Error is the type checker's diagnostic type.
type Error struct {
	Kind             Kind
	Name             string
	Expected, Found  Ty
	Message          string
	Loc              source.Location
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Location() source.Location { return e.Loc }

func (e *Error) Code() cerrors.Code {
	switch e.Kind {
	case Mismatch:
		return cerrors.CodeMismatch
	case Unbound:
		return cerrors.CodeUnboundTy
	case RecursiveType:
		return cerrors.CodeRecursiveType
	default:
		return cerrors.CodeMismatch
	}
}

func errMismatch(expected, found Ty, loc source.Location) *Error {
	return &Error{
		Kind: Mismatch, Expected: expected, Found: found, Loc: loc,
		Message: fmt.Sprintf("type mismatch: expected %s, found %s", expected, found),
	}
}

func errUnbound(name string, loc source.Location) *Error {
	return &Error{Kind: Unbound, Name: name, Loc: loc, Message: fmt.Sprintf("unbound name %q", name)}
}

func errRecursiveType(loc source.Location) *Error {
	return &Error{Kind: RecursiveType, Loc: loc, Message: "recursive type (occurs check failed)"}
}
