package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flux/internal/lsp"
)

func TestTextDocumentDidOpenPublishesNoDiagnosticsForValidSource(t *testing.T) {
	handler := lsp.NewHandler()
	var published *protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		published, _ = params.(*protocol.PublishDiagnosticsParams)
	}}

	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  "file:///tmp/ok.flux",
			Text: "let x = 1\nprint(x)",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, published)
	assert.Empty(t, published.Diagnostics)
}

func TestTextDocumentDidOpenSurfacesTypeError(t *testing.T) {
	handler := lsp.NewHandler()
	var published *protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		published, _ = params.(*protocol.PublishDiagnosticsParams)
	}}

	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  "file:///tmp/bad.flux",
			Text: "-true",
		},
	})
	require.NoError(t, err, "handler itself should not error; diagnostics are published via notification")
	require.NotNil(t, published)
	assert.Len(t, published.Diagnostics, 1)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewHandler()
	ctx := &glsp.Context{}
	uri := protocol.DocumentUri("file:///tmp/tokens.flux")

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "let x = 1\nprint(x)"},
	}))

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.Data)
	assert.Equal(t, 0, len(tokens.Data)%5, "token data must decode in groups of 5")
}

func TestTextDocumentDidCloseClearsState(t *testing.T) {
	handler := lsp.NewHandler()
	ctx := &glsp.Context{}
	uri := protocol.DocumentUri("file:///tmp/close.flux")

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "1"},
	}))
	require.NoError(t, handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}
