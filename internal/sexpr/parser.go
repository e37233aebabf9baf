package sexpr

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = participle.MustBuild[Document](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseString parses a single printed expression, e.g. "(add (const x) (i32 4))".
func ParseString(src string) (*Node, error) {
	doc, err := parser.ParseString("", src)
	if err != nil {
		reportParseError(src, err)
		return nil, err
	}
	return doc.Expr, nil
}

// reportParseError prints a caret-style parse error, grounded on
// grammar/parser.go's reportParseError.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error at line %d, column %d:", pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
