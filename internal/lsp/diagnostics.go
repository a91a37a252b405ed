package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flux/internal/driver"
	cerrors "flux/internal/errors"
)

// ConvertPipelineError turns the pipeline's diagnosable error into a single
// LSP diagnostic. A zero-value Location (LIR-stage errors erase spans, and
// some runtime-ish errors never carry one) is reported at the top of the
// document rather than dropped.
func ConvertPipelineError(err error) []protocol.Diagnostic {
	langErr, ok := err.(*driver.LangError)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    zeroRange(),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("flux"),
			Message:  err.Error(),
		}}
	}
	diag := langErr.Diagnostic()
	if diag == nil {
		return nil
	}
	return []protocol.Diagnostic{{
		Range:    locationToRange(diag.Code(), diag),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("flux-" + cerrors.Stage(diag.Code())),
		Message:  diag.Error(),
	}}
}

func locationToRange(_ cerrors.Code, diag cerrors.Diagnostic) protocol.Range {
	loc := diag.Location()
	if loc.Start.Line < 1 {
		return zeroRange()
	}
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(loc.Start.Line - 1),
			Character: uint32(loc.Start.Column - 1),
		},
		End: protocol.Position{
			Line:      uint32(loc.End.Line - 1),
			Character: uint32(loc.End.Column - 1),
		},
	}
}

func zeroRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
func ptrBool(b bool) *bool                                                  { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
