// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"flux/internal/driver"
	cerrors "flux/internal/errors"
	"flux/internal/eval"
)

const PROMPT = ">> "

// Start reads blocks from in, each terminated by a blank line, and runs
// every block through the full pipeline independently: no binding from one
// block is visible in the next.
func Start(in io.Reader, out io.Writer, overflowCheck bool) {
	scanner := bufio.NewScanner(in)
	var block []string

	flush := func() {
		src := strings.Join(block, "\n")
		block = block[:0]
		if strings.TrimSpace(src) == "" {
			return
		}
		machine := eval.NewMachine(out, overflowCheck)
		if err := driver.RunWithMachine(context.Background(), src, machine); err != nil {
			reportError(out, src, err)
		}
	}

	fmt.Fprint(out, PROMPT)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			fmt.Fprint(out, PROMPT)
			continue
		}
		block = append(block, line)
	}
	flush()
}

func reportError(out io.Writer, src string, err error) {
	langErr, ok := err.(*driver.LangError)
	if !ok {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	fmt.Fprint(out, cerrors.Report(src, langErr.Diagnostic()))
}
