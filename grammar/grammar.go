package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Sep is the token group that separates nodes inside a block: newline,
// semicolon, or the `in` keyword following a let-binding, mirroring
// internal/parser's parseBlock separator rule. It isn't its own grammar
// type; the alternation is inlined directly into Program and Block's tags
// below, same as kanso's grammar embeds uncaptured literal groups in place.

// Program is the root of a parsed source file: a non-empty sequence of
// top-level nodes separated by Sep, with any number of leading, trailing,
// or repeated separators tolerated.
type Program struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Nodes  []*Expr `{ (Newline | ";" | "in") } @@ { (Newline | ";" | "in") @@ } { (Newline | ";" | "in") }`
}

// Block is a braced `{ ... }` sequence of nodes, used for cond branches,
// fn bodies, and nested lets.
type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Nodes  []*Expr `"{" { (Newline | ";" | "in") } @@ { (Newline | ";" | "in") @@ } { (Newline | ";" | "in") } "}"`
}

// BranchBlock is a cond branch: either a braced Block or a single bare
// node, matching internal/parser's parseBranchBlock.
type BranchBlock struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Braced *Block `  @@`
	Single *Expr  `| @@`
}

// Expr is the entry point of the binary-operator precedence chain. The
// grammar doesn't encode precedence levels (unlike internal/parser's
// binding-power table): it records operators left-to-right in one flat
// list, same as kanso's BinaryExpr/Ops. That's sufficient here because the
// only property this grammar backs is print-then-reparse structural
// equality of its own AST, not semantic equivalence with internal/ast.
type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Binary *BinaryExpr `@@`
}

type BinaryExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *UnaryExpr `@@`
	Ops    []*BinOp   `{ @@ }`
}

type BinOp struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator string     `@("||" | "&&" | "==" | "!=" | "<=" | ">=" | "<<" | ">>" | "<" | ">" | "+" | "-" | "*" | "/" | "%" | "&" | "|" | "^")`
	Right    *UnaryExpr `@@`
}

type UnaryExpr struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Operator *string      `[ @("-" | "!") ]`
	Value    *PrimaryExpr `@@`
}

// PrimaryExpr is internal/parser's parseBaseNode: a let-binding, a cond, a
// fn definition, a literal, a name (optionally called), or a parenthesized
// expression.
type PrimaryExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Let    *LetExpr  `  @@`
	Cond   *CondExpr `| @@`
	Fn     *FnExpr   `| @@`
	Bool   *string   `| @("true" | "false")`
	Unit   bool      `| @"unit"`
	Number *string   `| @Integer`
	Call   *CallExpr `| @@`
	Parens *Expr     `| "(" @@ ")"`
}

// CallExpr is a bare name, or a name immediately applied to a
// parenthesized, comma-separated argument list. internal/parser's
// parseNameOrCall only ever forms calls on a preceding identifier, never
// on a parenthesized expression or literal, so Call lives on its own
// grammar type rather than as a generic postfix operator.
type CallExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string  `@Ident`
	Args   []*Expr `[ "(" [ @@ { "," @@ } ] ")" ]`
}

// LetExpr is `let name [: Type] = rhs`.
type LetExpr struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Name       string `"let" @Ident`
	Annotation *Type  `[ ":" @@ ]`
	Rhs        *Expr  `"=" @@`
}

// CondExpr is `if cond then branch else branch`.
type CondExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *BranchBlock `"if" @@`
	Then   *BranchBlock `"then" @@`
	Else   *BranchBlock `"else" @@`
}

// FnExpr is `fn [rec] [name] (params) [-> ReturnType] { body }`. Name is
// absent for anonymous functions; rec requires both a name and an explicit
// return type, enforced after parsing in internal/parser (this grammar
// accepts the looser shape and leaves that check to the real parser).
type FnExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Rec    bool     `"fn" [ @"rec" ]`
	Name   *string  `[ @Ident ]`
	Params []*Param `"(" [ @@ { "," @@ } ] ")"`
	Return *Type    `[ "->" @@ ]`
	Body   *Block   `@@`
}

type Param struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `@Ident ":"`
	Type   *Type  `@@`
}

// Type is a base name (Int, Bool, Unit) or a right-associative arrow chain
// `T1 -> T2 -> R`, with parentheses for grouping.
type Type struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Base   *BaseType `@@`
	Arrow  *Type     `[ "->" @@ ]`
}

type BaseType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parens *Type  `  "(" @@ ")"`
	Name   string `| @Ident`
}
