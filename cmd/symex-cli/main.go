// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"

	"symex/internal/egraph"
	"symex/internal/ematch"
	"symex/internal/ir"
	"symex/internal/sexpr"
	"symex/repl"
)

func main() {
	if len(os.Args) < 2 {
		repl.Start(bufio.NewReader(os.Stdin), os.Stdout)
		return
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	r := sexpr.NewReader()
	op, err := r.Read(string(source))
	if err != nil {
		os.Exit(1)
	}

	fmt.Println("before:")
	fmt.Println(sexpr.Write(op))

	g := egraph.New()
	id := g.Add(op)
	g.Simplify(defaultMatcher())
	canonical := g.Extract(id)

	fmt.Println("after:")
	fmt.Println(sexpr.Write(canonical))

	color.Green("simplified %s", path)
}

func defaultMatcher() *ematch.EMatcher {
	builder := ematch.NewBuilder()
	for _, op := range []ir.BinOp{ir.BinAdd, ir.BinMul, ir.BinAnd, ir.BinOr, ir.BinXor} {
		builder.Add(ematch.CommutativityOf(op))
		builder.Add(ematch.AssociativityOf(op))
	}
	return builder.Build()
}
