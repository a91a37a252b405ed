// Package parser turns source bytes into a located ast.Block using a
// hand-rolled precedence-climbing expression parser, in the style of
// the teacher's internal/parser/parser_pratt.go: a binding-power table plus
// a minimum-precedence loop, rather than a parser-generator grammar.
package parser

import (
	"fmt"

	"flux/internal/ast"
	"flux/internal/lexer"
	"flux/internal/source"
)

// Parser holds a fully-scanned token buffer and a cursor. Scanning the whole
// input up front (rather than streaming) keeps lookahead trivial and mirrors
// the teacher's own buffered-token parser.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse scans and parses src into a located top-level Block.
func Parse(src string) (source.Located[ast.Block], error) {
	toks, err := scanAll(src)
	if err != nil {
		if se, ok := err.(*lexer.ScanError); ok {
			loc := source.Location{Start: se.Pos, End: se.Pos}
			return source.Located[ast.Block]{}, &Error{Kind: UnexpectedToken, Loc: loc, Message: se.Message}
		}
		return source.Located[ast.Block]{}, err
	}
	p := &Parser{tokens: toks}
	block, err := p.parseBlock(blockStopEOF)
	if err != nil {
		return source.Located[ast.Block]{}, err
	}
	if p.cur().Kind != lexer.EOF {
		return source.Located[ast.Block]{}, newUnexpectedToken(p.cur().Loc, "end of input", p.cur().Kind.String())
	}
	return source.At(block.Loc, block), nil
}

func scanAll(src string) ([]lexer.Token, error) {
	s := lexer.New(src)
	var toks []lexer.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			return toks, nil
		}
	}
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peekAt(off int) lexer.Token {
	if p.pos+off >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+off]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == lexer.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	if p.cur().Kind == lexer.EOF && kind != lexer.EOF {
		return lexer.Token{}, newUnexpectedEOF(p.cur().Loc, kind.String())
	}
	if p.cur().Kind != kind {
		return lexer.Token{}, newUnexpectedToken(p.cur().Loc, kind.String(), p.cur().Kind.String())
	}
	return p.advance(), nil
}

type blockStop int

const (
	blockStopEOF blockStop = iota
	blockStopRBrace
	blockStopThen
	blockStopElse
)

func (p *Parser) atBlockStop(stop blockStop) bool {
	switch stop {
	case blockStopEOF:
		return p.cur().Kind == lexer.EOF
	case blockStopRBrace:
		return p.cur().Kind == lexer.RBRACE
	case blockStopThen:
		return p.cur().Kind == lexer.THEN
	case blockStopElse:
		return p.cur().Kind == lexer.ELSE
	default:
		return true
	}
}

// parseBlock parses a non-empty sequence of nodes separated by newline,
// semicolon, or the `in` keyword (sugar following a let-binding), until the
// given stop condition is reached.
func (p *Parser) parseBlock(stop blockStop) (ast.Block, error) {
	p.skipNewlines()
	start := p.cur().Loc

	var nodes []ast.Node
	for {
		node, err := p.parseNode()
		if err != nil {
			return ast.Block{}, err
		}
		nodes = append(nodes, node)

		// Consume separators. A run of NEWLINE/SEMI/IN counts as one
		// separator; trailing separators before the stop token are fine.
		sawSeparator := false
		for p.cur().Kind == lexer.NEWLINE || p.cur().Kind == lexer.SEMI || p.cur().Kind == lexer.IN {
			p.advance()
			sawSeparator = true
		}

		if p.atBlockStop(stop) {
			break
		}
		if !sawSeparator {
			return ast.Block{}, newUnexpectedToken(p.cur().Loc, "`;`, newline, or end of block", p.cur().Kind.String())
		}
	}

	end := p.tokens[p.pos-1].Loc
	if len(nodes) > 0 {
		end = nodes[len(nodes)-1].Location()
	}
	return ast.Block{Nodes: nodes, Loc: source.Span(start, end)}, nil
}

// parseBracedBlock parses `{ block }`.
func (p *Parser) parseBracedBlock() (ast.Block, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return ast.Block{}, err
	}
	block, err := p.parseBlock(blockStopRBrace)
	if err != nil {
		return ast.Block{}, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return ast.Block{}, err
	}
	return block, nil
}

// parseBranchBlock parses a cond branch: either a braced block (the "long
// block" form from the test corpus) or a single bare node.
func (p *Parser) parseBranchBlock(stop blockStop) (ast.Block, error) {
	if p.cur().Kind == lexer.LBRACE {
		return p.parseBracedBlock()
	}
	node, err := p.parseNode()
	if err != nil {
		return ast.Block{}, err
	}
	return ast.Block{Nodes: []ast.Node{node}, Loc: node.Location()}, nil
}

// parseNode parses a single `node`, i.e. the entry point of the
// precedence-climbing expression grammar.
func (p *Parser) parseNode() (ast.Node, error) {
	return p.parseBinaryExpr(0)
}

func (p *Parser) parseBinaryExpr(minPrec int) (ast.Node, error) {
	left, err := p.parseBaseNode()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrecedence[p.cur().Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryOpNode{
			Op:    tokenToBinOp[opTok.Kind],
			Left:  left,
			Right: right,
			Loc:   source.Span(left.Location(), right.Location()),
		}
	}
}

// parseBaseNode parses `base_node = unary_op / let_bind / cond / fn_def /
// fn_rec_def / call / "(" node ")"`, plus bare names and literals.
func (p *Parser) parseBaseNode() (ast.Node, error) {
	switch p.cur().Kind {
	case lexer.MINUS:
		tok := p.advance()
		operand, err := p.parseBaseNode()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOpNode{Op: ast.Neg, Operand: operand, Loc: source.Span(tok.Loc, operand.Location())}, nil
	case lexer.BANG:
		tok := p.advance()
		operand, err := p.parseBaseNode()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOpNode{Op: ast.Not, Operand: operand, Loc: source.Span(tok.Loc, operand.Location())}, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LET:
		return p.parseLetBind()
	case lexer.IF:
		return p.parseCond()
	case lexer.FN:
		return p.parseFn()
	case lexer.TRUE:
		tok := p.advance()
		return ast.LiteralNode{Value: ast.BoolLit{Value: true}, Loc: tok.Loc}, nil
	case lexer.FALSE:
		tok := p.advance()
		return ast.LiteralNode{Value: ast.BoolLit{Value: false}, Loc: tok.Loc}, nil
	case lexer.UNIT:
		tok := p.advance()
		return ast.LiteralNode{Value: ast.UnitLit{}, Loc: tok.Loc}, nil
	case lexer.NUMBER:
		return p.parseNumber()
	case lexer.IDENT:
		return p.parseNameOrCall()
	case lexer.EOF:
		return nil, newUnexpectedEOF(p.cur().Loc, "an expression")
	default:
		return nil, newUnexpectedToken(p.cur().Loc, "an expression", p.cur().Kind.String())
	}
}

func (p *Parser) parseNumber() (ast.Node, error) {
	tok := p.advance()
	var n int64
	if _, err := fmt.Sscanf(tok.Text, "%d", &n); err != nil {
		return nil, &Error{Kind: InvalidLiteral, Loc: tok.Loc, Message: fmt.Sprintf("invalid integer literal %q", tok.Text)}
	}
	return ast.LiteralNode{Value: ast.NumberLit{Value: n}, Loc: tok.Loc}, nil
}

func (p *Parser) parseNameOrCall() (ast.Node, error) {
	tok := p.advance()
	name := ast.NameNode{Name: tok.Text, Loc: tok.Loc}
	if p.cur().Kind != lexer.LPAREN {
		return name, nil
	}
	p.advance() // '('
	var args []ast.Node
	if p.cur().Kind != lexer.RPAREN {
		for {
			arg, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Kind != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	end, err := p.expect(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.CallNode{Callee: name, Args: args, Loc: source.Span(tok.Loc, end.Loc)}, nil
}

func (p *Parser) parseLetBind() (ast.Node, error) {
	start := p.advance() // 'let'
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	var annotation ast.TypeExpr
	if p.cur().Kind == lexer.COLON {
		p.advance()
		annotation, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.EQUAL); err != nil {
		return nil, err
	}
	rhs, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	return ast.LetBindNode{
		Name:       nameTok.Text,
		Annotation: annotation,
		Rhs:        rhs,
		Loc:        source.Span(start.Loc, rhs.Location()),
	}, nil
}

func (p *Parser) parseCond() (ast.Node, error) {
	start := p.advance() // 'if'
	condBlock, err := p.parseBranchBlock(blockStopThen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBranchBlock(blockStopElse)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ELSE); err != nil {
		return nil, err
	}
	elseBlock, err := p.parseBranchBlock(blockStopEOF)
	if err != nil {
		return nil, err
	}
	return ast.CondNode{
		Cond: condBlock, Then: thenBlock, Else: elseBlock,
		Loc: source.Span(start.Loc, elseBlock.Loc),
	}, nil
}

func (p *Parser) parseFn() (ast.Node, error) {
	start := p.advance() // 'fn'

	isRec := false
	if p.cur().Kind == lexer.REC {
		p.advance()
		isRec = true
	}

	name := ""
	if p.cur().Kind == lexer.IDENT {
		name = p.advance().Text
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var ret ast.TypeExpr
	if p.cur().Kind == lexer.ARROW {
		p.advance()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	if isRec && (name == "" || ret == nil) {
		loc := p.cur().Loc
		return nil, &Error{Kind: ExpectedType, Loc: loc, Message: "`fn rec` requires a name and an explicit return type"}
	}

	body, err := p.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	loc := source.Span(start.Loc, body.Loc)

	if isRec {
		return ast.FnRecDefNode{Name: name, Params: params, Body: body, ReturnType: ret, Loc: loc}, nil
	}
	return ast.FnDefNode{Name: name, Params: params, Body: body, ReturnType: ret, Loc: loc}, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	if p.cur().Kind != lexer.RPAREN {
		for {
			nameTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: nameTok.Text, Type: ty, Loc: source.Span(nameTok.Loc, ty.Location())})
			if p.cur().Kind != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// parseType parses a type annotation: a base name (Int/Bool/Unit) or a
// right-associative arrow chain `T1 -> T2 -> R`.
func (p *Parser) parseType() (ast.TypeExpr, error) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.ARROW {
		return base, nil
	}
	p.advance()
	rest, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.TyArrow{Param: base, Result: rest, Loc: source.Span(base.Location(), rest.Location())}, nil
}

func (p *Parser) parseBaseType() (ast.TypeExpr, error) {
	if p.cur().Kind == lexer.LPAREN {
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	tok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, &Error{Kind: ExpectedType, Loc: p.cur().Loc, Message: "expected a type name"}
	}
	return ast.TyName{Name: tok.Text, Loc: tok.Loc}, nil
}
