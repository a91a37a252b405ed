// Package logging wraps tliron/commonlog with the pipeline's own stage
// names, for logging pipeline transitions in one shared format. No front
// end imports it: cmd/flux-lsp configures commonlog directly.
package logging

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple" // registers the simple backend
)

// Stage names a pipeline phase for structured log fields. parse, lower and
// type match the internal/errors stage names; the evaluator is "eval" here
// (internal/errors calls it "runtime"), and "frontend" covers the callers.
type Stage string

const (
	StageParse    Stage = "parse"
	StageLower    Stage = "lower"
	StageType     Stage = "type"
	StageEval     Stage = "eval"
	StageFrontend Stage = "frontend"
)

// Logger is the logger handed to front ends; it's commonlog.Logger
// directly, kept as a named type so call sites don't need to import
// commonlog just to hold a reference.
type Logger = commonlog.Logger

// Configure sets up commonlog's simple backend at the given maximum
// verbosity (1 = debug, matching the level kanso-lsp's main.go configures),
// writing to the default destination (stderr).
func Configure(maxLevel int) {
	commonlog.Configure(maxLevel, nil)
}

// New returns a logger scoped to name (e.g. "flux.cli", "flux.lsp").
func New(name string) Logger {
	return commonlog.GetLogger(name)
}

// Transition logs a pipeline stage starting to process size bytes of
// source, at Debug level.
func Transition(log Logger, stage Stage, size int) {
	log.Debugf("%s: %d bytes", stage, size)
}
