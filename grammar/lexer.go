// Package grammar declares a second, independent description of the
// surface language using a participle/v2 grammar instead of the hand-rolled
// precedence-climbing parser in internal/parser. It exists purely to back
// cmd/flux-fmt's round-trip check (parse, pretty-print, re-parse, compare)
// and never feeds the driver pipeline.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// fluxLexer tokenizes the same surface syntax internal/lexer scans by
// hand. Newlines are kept as their own token (not elided) since they're a
// significant node separator, same as internal/lexer's NEWLINE token.
var fluxLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Operator", Pattern: `->|==|!=|<=|>=|&&|\|\||<<|>>|[-+*/%&|^<>!]`},
	{Name: "Punctuation", Pattern: `[(){}:;,=]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})
