package ematch

import (
	"symex/internal/egraph"
	"symex/internal/ir"
)

// Rule is a single rewrite: whenever LHS matches some e-node, Build
// constructs (or locates) the e-class the matched e-class should be
// merged with (spec §4.3 "clause: sub-clause plus an updater that
// performs the merge"). Filter, if set, is the clause's optional
// top-level filter on the root match; a nil Filter always accepts.
type Rule struct {
	LHS    Pattern
	Filter func(g *egraph.EGraph, node egraph.ENode) bool
	Build  func(g *egraph.EGraph, node egraph.ENode, vars map[string]int) int
}

// Clause is a Rule after compilation: its LHS has been lowered into a
// hash-consed SubClause id (shared with every other compiled rule in the
// same EMatcher), and its variable names have been resolved to positions
// in the capture tuple that SubClause produces (spec §4.3 "Clause:
// sub-clause-id, optional top-level filter on the root match, updater").
type Clause struct {
	SubClauseID int
	VarPos      map[string][]int
	Filter      func(g *egraph.EGraph, node egraph.ENode) bool
	Build       func(g *egraph.EGraph, node egraph.ENode, vars map[string]int) int
}

// Commutativity returns the rule "op(a, b) -> op(b, a)" for a binary
// opcode (spec §4.3's named rewrite family).
func Commutativity(category ir.Category, aux uint8) Rule {
	return Rule{
		LHS: Op(category, aux, V("a"), V("b")),
		Build: func(g *egraph.EGraph, node egraph.ENode, vars map[string]int) int {
			swapped := node
			swapped.Operands = []int{g.Find(vars["b"]), g.Find(vars["a"])}
			return g.AddENode(swapped)
		},
	}
}

// Associativity returns the rule "op(op(a, b), c) -> op(a, op(b, c))" for
// a binary opcode.
func Associativity(category ir.Category, aux uint8) Rule {
	return Rule{
		LHS: Op(category, aux,
			Op(category, aux, V("a"), V("b")),
			V("c"),
		),
		Build: func(g *egraph.EGraph, node egraph.ENode, vars map[string]int) int {
			inner := node
			inner.Operands = []int{g.Find(vars["b"]), g.Find(vars["c"])}
			innerID := g.AddENode(inner)

			outer := node
			outer.Operands = []int{g.Find(vars["a"]), innerID}
			return g.AddENode(outer)
		},
	}
}
