// Package errors defines the pipeline's error taxonomy and a caret-style
// terminal reporter for it, in the style of a compiler diagnostic engine
// rather than bare Go errors.
package errors

// Code is a stable numeric error code. Ranges follow the pipeline stage that
// raises them: 1xxx parser, 2xxx lowering, 3xxx type checker, 4xxx runtime.
type Code int

const (
	// Parser, 1000-1999.
	CodeUnexpectedToken Code = 1000 + iota
	CodeUnexpectedEOF
	CodeInvalidLiteral
	CodeExpectedType
)

const (
	// Lowering, 2000-2999.
	CodeRequiredTy Code = 2000 + iota
	CodeUnboundLower
	CodeDuplicateParam
	CodePrintArity
)

const (
	// Type checker, 3000-3999.
	CodeMismatch Code = 3000 + iota
	CodeUnboundTy
	CodeRecursiveType
)

const (
	// Runtime, 4000-4999.
	CodeDivByZero Code = 4000 + iota
	CodeOverflow
)

var descriptions = map[Code]string{
	CodeUnexpectedToken: "unexpected token",
	CodeUnexpectedEOF:   "unexpected end of input",
	CodeInvalidLiteral:  "invalid literal",
	CodeExpectedType:    "expected a type annotation",

	CodeRequiredTy:     "recursive binding requires an explicit type (use `rec` with a return type)",
	CodeUnboundLower:   "name is not bound",
	CodeDuplicateParam: "duplicate parameter name",
	CodePrintArity:     "print takes exactly one argument",

	CodeMismatch:      "type mismatch",
	CodeUnboundTy:      "name is not bound",
	CodeRecursiveType: "recursive type (occurs check failed)",

	CodeDivByZero: "division or remainder by zero",
	CodeOverflow:  "arithmetic overflow",
}

// Describe returns a short human-readable description for a code, or a
// generic fallback if the code is unknown.
func Describe(c Code) string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return "unknown error"
}

// Stage names the pipeline phase that produced a Code.
func Stage(c Code) string {
	switch {
	case c >= 1000 && c < 2000:
		return "parse"
	case c >= 2000 && c < 3000:
		return "lower"
	case c >= 3000 && c < 4000:
		return "type"
	case c >= 4000 && c < 5000:
		return "runtime"
	default:
		return "unknown"
	}
}
