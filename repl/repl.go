// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"

	"symex/internal/egraph"
	"symex/internal/ematch"
	"symex/internal/ir"
	"symex/internal/sexpr"
)

const PROMPT = ">> "

// Start runs an interactive read-simplify-print loop: each line is read as
// a printed expression (internal/sexpr), added to a fresh e-graph,
// saturated against the built-in commutativity/associativity rules for
// add, mul, and, or and xor, and the extracted canonical form is printed.
// Rewritten from the teacher's repl.go, whose lexer/parser imports
// (kanso-lang/lexer, kanso-lang/parser) referenced a module that doesn't
// exist in this repo.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	reader := sexpr.NewReader()
	matcher := defaultMatcher()

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		op, err := reader.Read(line)
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}

		g := egraph.New()
		id := g.Add(op)
		g.Simplify(matcher)
		canonical := g.Extract(id)

		fmt.Fprintf(out, "%s\n", sexpr.Write(canonical))
	}
}

func defaultMatcher() *ematch.EMatcher {
	builder := ematch.NewBuilder()
	for _, op := range []ir.BinOp{ir.BinAdd, ir.BinMul, ir.BinAnd, ir.BinOr, ir.BinXor} {
		builder.Add(ematch.CommutativityOf(op))
		builder.Add(ematch.AssociativityOf(op))
	}
	return builder.Build()
}
