// Package driver wires the parse -> lower -> type-check -> lower -> evaluate
// pipeline together behind two entry points, Run and RunWithMachine.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	cerrors "flux/internal/errors"
	"flux/internal/eval"
	"flux/internal/hir"
	"flux/internal/lir"
	"flux/internal/parser"
	"flux/internal/types"
)

// LangError is the pipeline's top-level error sum: exactly one of its
// fields is non-nil, identifying which stage failed.
type LangError struct {
	Parse   *parser.Error
	Lower   *hir.Error
	Ty      *types.Error
	Runtime *eval.Error
}

func (e *LangError) Error() string {
	switch {
	case e.Parse != nil:
		return e.Parse.Error()
	case e.Lower != nil:
		return e.Lower.Error()
	case e.Ty != nil:
		return e.Ty.Error()
	case e.Runtime != nil:
		return e.Runtime.Error()
	default:
		return "unknown pipeline error"
	}
}

// Diagnostic returns the underlying stage error as the shared Diagnostic
// interface, for reporting with internal/errors.Report.
func (e *LangError) Diagnostic() cerrors.Diagnostic {
	switch {
	case e.Parse != nil:
		return e.Parse
	case e.Lower != nil:
		return e.Lower
	case e.Ty != nil:
		return e.Ty
	case e.Runtime != nil:
		return e.Runtime
	default:
		return nil
	}
}

func wrap(err error) *LangError {
	if err == nil {
		return nil
	}
	var perr *parser.Error
	if errors.As(err, &perr) {
		return &LangError{Parse: perr}
	}
	var herr *hir.Error
	if errors.As(err, &herr) {
		return &LangError{Lower: herr}
	}
	var terr *types.Error
	if errors.As(err, &terr) {
		return &LangError{Ty: terr}
	}
	var everr *eval.Error
	if errors.As(err, &everr) {
		return &LangError{Runtime: everr}
	}
	// Any other error (an internal invariant violation, not a diagnosable
	// source-level failure) is reported as a runtime error with no span.
	return &LangError{Runtime: &eval.Error{Message: err.Error()}}
}

// Check parses, lowers and type-checks source without lowering to LIR or
// evaluating it, so front ends that only need diagnostics (the LSP's
// didOpen/didChange handlers) don't risk running a program's side effects
// just because the user is still typing it.
func Check(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	block, err := parser.Parse(source)
	if err != nil {
		return wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	hterm, err := hir.LowerBlock(block.Value)
	if err != nil {
		return wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := types.Check(hterm); err != nil {
		return wrap(err)
	}
	return nil
}

// Run parses, lowers, type-checks, lowers again and evaluates source,
// writing prints to os.Stdout, with the arithmetic strategy selected by
// overflowCheck.
func Run(ctx context.Context, source string, overflowCheck bool) error {
	machine := eval.NewMachine(os.Stdout, overflowCheck)
	return RunWithMachine(ctx, source, machine)
}

// RunWithMachine runs the full pipeline against a caller-provided Machine,
// so tests and front ends can supply their own sink and arithmetic
// strategy. ctx is checked once between each pipeline stage.
func RunWithMachine(ctx context.Context, source string, machine *eval.Machine) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	block, err := parser.Parse(source)
	if err != nil {
		return wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	hterm, err := hir.LowerBlock(block.Value)
	if err != nil {
		return wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := types.Check(hterm); err != nil {
		return wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	lterm, err := lir.Lower(hterm)
	if err != nil {
		return wrap(fmt.Errorf("driver: %w", err))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := machine.Eval(lterm); err != nil {
		return wrap(err)
	}
	return nil
}
