// Package lsp implements a minimal Language Server Protocol front end for
// the pipeline, wired the way kanso's internal/lsp wires glsp: one handler
// struct holding per-document state behind a mutex, diagnostics published
// on open/change, and a semantic tokens provider.
package lsp

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flux/grammar"
	"flux/internal/driver"
)

// SemanticTokenTypes and SemanticTokenModifiers are advertised during
// Initialize and indexed by collectSemanticTokens/makeToken.
var SemanticTokenTypes = []string{
	"variable",
	"function",
	"parameter",
	"keyword",
	"number",
}

var SemanticTokenModifiers = []string{
	"declaration",
}

// Handler implements glsp's handler interface for the pipeline.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
	asts    map[string]*grammar.Program
}

// NewHandler returns a Handler with empty per-document state.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
		asts:    make(map[string]*grammar.Program),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange re-reads the file from disk rather than trying to
// apply the change event, since the client is configured for full-document
// sync (see Initialize's TextDocumentSyncKindFull) and the file is expected
// to already be saved or otherwise readable at this path.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return h.refresh(ctx, params.TextDocument.URI, string(text))
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.asts, path)
	return nil
}

func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	return &protocol.CompletionList{IsIncomplete: false, Items: []protocol.CompletionItem{}}, nil
}

func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	prog := h.asts[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(prog)
	var data []uint32
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.Line - prevLine
		deltaStart := t.StartChar
		if deltaLine == 0 {
			deltaStart = t.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.Length, uint32(t.TokenType), uint32(t.TokenModifiers))
		prevLine, prevStart = t.Line, t.StartChar
	}
	return &protocol.SemanticTokens{Data: data}, nil
}

// refresh re-parses and type-checks the document's content, caching the
// grammar AST for semantic tokens and publishing diagnostics either way.
func (h *Handler) refresh(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	var diagnostics []protocol.Diagnostic
	if err := driver.Check(context.Background(), text); err != nil {
		diagnostics = ConvertPipelineError(err)
	}

	if prog, perr := grammar.ParseString(text); perr == nil {
		h.mu.Lock()
		h.asts[path] = prog
		h.mu.Unlock()
	}

	if ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
	}
	return nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}
	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}
