package parser

import (
	"fmt"

	cerrors "flux/internal/errors"
	"flux/internal/source"
)

// Kind is the parser's own error discriminant, independent of the shared
// numeric Code (which is used only for display/taxonomy purposes).
type Kind int

const (
	UnexpectedToken Kind = iota
	UnexpectedEOF
	InvalidLiteral
	ExpectedType
)

// Error is the parser's diagnostic type. It implements cerrors.Diagnostic so
// the CLI/LSP front ends can render it without knowing which stage produced
// it.
type Error struct {
	Kind    Kind
	Message string
	Loc     source.Location
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Location() source.Location { return e.Loc }

func (e *Error) Code() cerrors.Code {
	switch e.Kind {
	case UnexpectedToken:
		return cerrors.CodeUnexpectedToken
	case UnexpectedEOF:
		return cerrors.CodeUnexpectedEOF
	case InvalidLiteral:
		return cerrors.CodeInvalidLiteral
	case ExpectedType:
		return cerrors.CodeExpectedType
	default:
		return cerrors.CodeUnexpectedToken
	}
}

func newUnexpectedToken(loc source.Location, want, got string) *Error {
	return &Error{Kind: UnexpectedToken, Loc: loc, Message: fmt.Sprintf("expected %s, found %s", want, got)}
}

func newUnexpectedEOF(loc source.Location, want string) *Error {
	return &Error{Kind: UnexpectedEOF, Loc: loc, Message: fmt.Sprintf("unexpected end of input, expected %s", want)}
}
