package parser

import (
	"flux/internal/ast"
	"flux/internal/lexer"
)

// binaryPrecedence maps each binary operator token to its binding power.
// Higher binds tighter. Resolved from the test corpus against the spec's
// own prose (see DESIGN.md, "Resolved open questions" — bitwise precedence):
//
//	* / %  (9)  tightest
//	+ -    (8)
//	&      (7)
//	^      (6)
//	|      (5)
//	<< >>  (4)
//	< > <= >= (3)
//	== !=  (2)
//	&&     (1)
//	||     (0)  loosest
var binaryPrecedence = map[lexer.TokenKind]int{
	lexer.OROR:   0,
	lexer.ANDAND: 1,
	lexer.EQEQ:   2,
	lexer.NEQ:    2,
	lexer.LT:     3,
	lexer.GT:     3,
	lexer.LTE:    3,
	lexer.GTE:    3,
	lexer.SHL:    4,
	lexer.SHR:    4,
	lexer.PIPE:   5,
	lexer.CARET:  6,
	lexer.AMP:    7,
	lexer.PLUS:   8,
	lexer.MINUS:  8,
	lexer.STAR:   9,
	lexer.SLASH:  9,
	lexer.PERCENT: 9,
}

var tokenToBinOp = map[lexer.TokenKind]ast.BinOp{
	lexer.OROR:    ast.Or,
	lexer.ANDAND:  ast.And,
	lexer.EQEQ:    ast.Eq,
	lexer.NEQ:     ast.Neq,
	lexer.LT:      ast.Lt,
	lexer.GT:      ast.Gt,
	lexer.LTE:     ast.Lte,
	lexer.GTE:     ast.Gte,
	lexer.SHL:     ast.Shl,
	lexer.SHR:     ast.Shr,
	lexer.PIPE:    ast.BitOr,
	lexer.CARET:   ast.BitXor,
	lexer.AMP:     ast.BitAnd,
	lexer.PLUS:    ast.Add,
	lexer.MINUS:   ast.Sub,
	lexer.STAR:    ast.Mul,
	lexer.SLASH:   ast.Div,
	lexer.PERCENT: ast.Rem,
}
