package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	s := New(src)
	var toks []Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestScanSimpleExpression(t *testing.T) {
	toks := scanAll(t, "a + b * c")
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{IDENT, PLUS, IDENT, STAR, IDENT, EOF}, kinds)
}

func TestScanKeywordsAndOperators(t *testing.T) {
	toks := scanAll(t, "let rec if then else fn in true false unit -> == != <= >= << >> && ||")
	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		LET, REC, IF, THEN, ELSE, FN, IN, TRUE, FALSE, UNIT,
		ARROW, EQEQ, NEQ, LTE, GTE, SHL, SHR, ANDAND, OROR, EOF,
	}, kinds)
}

func TestScanIdentifierNotKeywordPrefix(t *testing.T) {
	toks := scanAll(t, "lettuce")
	require.Len(t, toks, 2)
	assert.Equal(t, IDENT, toks[0].Kind)
	assert.Equal(t, "lettuce", toks[0].Text)
}

func TestScanSkipsComments(t *testing.T) {
	toks := scanAll(t, "a # this is a comment\nb")
	var kinds []TokenKind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{IDENT, NEWLINE, IDENT, EOF}, kinds)
}

func TestScanNumber(t *testing.T) {
	toks := scanAll(t, "42")
	require.Len(t, toks, 2)
	assert.Equal(t, NUMBER, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Text)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	s := New("@")
	_, err := s.Next()
	require.Error(t, err)
}
