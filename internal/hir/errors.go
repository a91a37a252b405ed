package hir

import (
	"fmt"

	cerrors "flux/internal/errors"
	"flux/internal/source"
)

type Kind int

const (
	RequiredTy Kind = iota
	Unbound
	DuplicateParam
	PrintArity
)

// Error is the lowering stage's diagnostic type.
type Error struct {
	Kind    Kind
	Name    string
	Message string
	Loc     source.Location
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Location() source.Location { return e.Loc }

func (e *Error) Code() cerrors.Code {
	switch e.Kind {
	case RequiredTy:
		return cerrors.CodeRequiredTy
	case Unbound:
		return cerrors.CodeUnboundLower
	case DuplicateParam:
		return cerrors.CodeDuplicateParam
	case PrintArity:
		return cerrors.CodePrintArity
	default:
		return cerrors.CodeRequiredTy
	}
}

func errRequiredTy(loc source.Location) *Error {
	return &Error{Kind: RequiredTy, Loc: loc, Message: "recursive binding requires `rec` and an explicit type"}
}

func errUnbound(name string, loc source.Location) *Error {
	return &Error{Kind: Unbound, Name: name, Loc: loc, Message: fmt.Sprintf("unbound name %q", name)}
}

func errDuplicateParam(name string, loc source.Location) *Error {
	return &Error{Kind: DuplicateParam, Name: name, Loc: loc, Message: fmt.Sprintf("duplicate parameter %q", name)}
}

func errPrintArity(loc source.Location) *Error {
	return &Error{Kind: PrintArity, Loc: loc, Message: "print takes exactly one argument"}
}
