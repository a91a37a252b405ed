// Command flux-fmt pretty-prints a source file through the grammar
// package's participle grammar, rewriting the file in place (or printing to
// stdout with -l, or only checking with -check) the same way gofmt formats
// Go source.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"flux/grammar"
)

func main() {
	list := flag.Bool("l", false, "print the formatted output to stdout instead of rewriting the file")
	check := flag.Bool("check", false, "exit non-zero if the file isn't already formatted, without writing anything")
	flag.Parse()

	if flag.NArg() < 1 {
		color.Red("usage: flux-fmt [-l] [-check] <file>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	prog, err := grammar.ParseString(string(src))
	if err != nil {
		color.Red("%s: %s", path, err)
		os.Exit(1)
	}
	formatted := grammar.Print(prog)

	if *check {
		if formatted != string(src) {
			fmt.Println(path)
			os.Exit(1)
		}
		return
	}
	if *list {
		fmt.Print(formatted)
		return
	}
	if formatted == string(src) {
		return
	}
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		color.Red("failed to write %s: %s", path, err)
		os.Exit(1)
	}
}
