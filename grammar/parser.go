package grammar

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var fluxParser = participle.MustBuild[Program](
	participle.Lexer(fluxLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseFile reads and parses the file at path into a Program.
func ParseFile(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseString(string(src))
}

// ParseString parses src into a Program, reporting a caret-annotated error
// on failure.
func ParseString(src string) (*Program, error) {
	prog, err := fluxParser.ParseString("", src)
	if err != nil {
		return nil, reportParseError(src, err)
	}
	return prog, nil
}

// reportParseError turns a participle.Error into a one-line, caret-pointed
// message, mirroring kanso's grammar.reportParseError.
func reportParseError(src string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err
	}
	pos := perr.Position()
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return fmt.Errorf("%s", perr.Message())
	}
	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"
	return fmt.Errorf("%d:%d: %s\n%s\n%s", pos.Line, pos.Column, perr.Message(), line, caret)
}
