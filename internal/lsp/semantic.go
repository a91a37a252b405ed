package lsp

import (
	"github.com/alecthomas/participle/v2/lexer"

	"flux/grammar"
)

// SemanticToken is a single LSP semantic token entry; Line and StartChar
// are 0-based.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(program *grammar.Program) []SemanticToken {
	if program == nil {
		return nil
	}
	var tokens []SemanticToken
	for _, n := range program.Nodes {
		tokens = append(tokens, walkExpr(n)...)
	}
	return tokens
}

func walkExpr(e *grammar.Expr) []SemanticToken {
	if e == nil || e.Binary == nil {
		return nil
	}
	var tokens []SemanticToken
	tokens = append(tokens, walkUnary(e.Binary.Left)...)
	for _, op := range e.Binary.Ops {
		tokens = append(tokens, walkUnary(op.Right)...)
	}
	return tokens
}

func walkUnary(u *grammar.UnaryExpr) []SemanticToken {
	if u == nil {
		return nil
	}
	return walkPrimary(u.Value)
}

func walkPrimary(p *grammar.PrimaryExpr) []SemanticToken {
	if p == nil {
		return nil
	}
	var tokens []SemanticToken
	switch {
	case p.Let != nil:
		tokens = append(tokens, makeToken(p.Let.Pos, "variable", 1, p.Let.Name))
		tokens = append(tokens, walkExpr(p.Let.Rhs)...)
	case p.Cond != nil:
		tokens = append(tokens, walkBranch(p.Cond.Cond)...)
		tokens = append(tokens, walkBranch(p.Cond.Then)...)
		tokens = append(tokens, walkBranch(p.Cond.Else)...)
	case p.Fn != nil:
		if p.Fn.Name != nil {
			tokens = append(tokens, makeToken(p.Fn.Pos, "function", 1, *p.Fn.Name))
		}
		for _, param := range p.Fn.Params {
			tokens = append(tokens, makeToken(param.Pos, "parameter", 0, param.Name))
		}
		for _, n := range p.Fn.Body.Nodes {
			tokens = append(tokens, walkExpr(n)...)
		}
	case p.Call != nil:
		tokenType := "variable"
		if p.Call.Args != nil {
			tokenType = "function"
		}
		tokens = append(tokens, makeToken(p.Call.Pos, tokenType, 0, p.Call.Name))
		for _, arg := range p.Call.Args {
			tokens = append(tokens, walkExpr(arg)...)
		}
	case p.Parens != nil:
		tokens = append(tokens, walkExpr(p.Parens)...)
	}
	return tokens
}

func walkBranch(b *grammar.BranchBlock) []SemanticToken {
	if b == nil {
		return nil
	}
	if b.Single != nil {
		return walkExpr(b.Single)
	}
	var tokens []SemanticToken
	for _, n := range b.Braced.Nodes {
		tokens = append(tokens, walkExpr(n)...)
	}
	return tokens
}

func makeToken(pos lexer.Position, tokenType string, decl int, name string) SemanticToken {
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(len(name)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
