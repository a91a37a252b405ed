// Command flux runs a source file through the full interpreter pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"flux/internal/config"
	"flux/internal/driver"
	cerrors "flux/internal/errors"
	"flux/repl"
)

func main() {
	overflowCheck := flag.Bool("overflow-check", false, "use checked arithmetic instead of wrapping (overrides flux.yaml)")
	flag.Parse()

	flagSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "overflow-check" {
			flagSet = true
		}
	})

	if flag.NArg() < 1 {
		cfg, err := config.Load(".")
		check := *overflowCheck
		if err == nil && !flagSet && cfg.OverflowCheck != nil {
			check = *cfg.OverflowCheck
		}
		if err == nil && cfg.Color != nil {
			color.NoColor = !*cfg.Color
		}
		repl.Start(os.Stdin, os.Stdout, check)
		return
	}
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	cfg, err := config.Load(filepath.Dir(path))
	if err != nil {
		color.Red("failed to read flux.yaml: %s", err)
		os.Exit(1)
	}

	check := *overflowCheck
	if !flagSet && cfg.OverflowCheck != nil {
		check = *cfg.OverflowCheck
	}
	if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}

	if err := driver.Run(context.Background(), string(source), check); err != nil {
		reportError(string(source), err)
		os.Exit(1)
	}
}

func reportError(src string, err error) {
	langErr, ok := err.(*driver.LangError)
	if !ok {
		color.Red("error: %s", err)
		return
	}
	fmt.Print(cerrors.Report(src, langErr.Diagnostic()))
}
