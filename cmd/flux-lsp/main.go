// Command flux-lsp runs the language server over stdio.
package main

import (
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"flux/internal/lsp"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "flux"

func main() {
	commonlog.Configure(1, nil)

	handler := lsp.NewHandler()
	protocolHandler := protocol.Handler{
		Initialize:                     handler.Initialize,
		Initialized:                    handler.Initialized,
		Shutdown:                       handler.Shutdown,
		TextDocumentDidOpen:            handler.TextDocumentDidOpen,
		TextDocumentDidClose:           handler.TextDocumentDidClose,
		TextDocumentDidChange:          handler.TextDocumentDidChange,
		TextDocumentCompletion:         handler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: handler.TextDocumentSemanticTokensFull,
	}

	srv := server.NewServer(&protocolHandler, lsName, false)
	if err := srv.RunStdio(); err != nil {
		panic(err)
	}
}
