package ematch

import "symex/internal/ir"

// Pattern is a small expression tree used to describe one side of a
// rewrite rule. A Var pattern matches any e-class and binds it under Name
// for use by other occurrences of the same variable within the rule (spec
// §4.3 "sub-clauses capture bindings shared across a rule"). An Op pattern
// matches any e-node whose opcode's Category/Aux agree, for a specific
// arity, and recursively matches each operand sub-pattern against some
// e-node selection in that operand's class.
type Pattern struct {
	Var      string
	Category ir.Category
	Aux      uint8
	Operands []Pattern
}

// V returns a variable pattern: binds whatever e-class it matches.
func V(name string) Pattern { return Pattern{Var: name} }

// Op returns a pattern matching any e-node of the given category/aux with
// the given operand sub-patterns.
func Op(category ir.Category, aux uint8, operands ...Pattern) Pattern {
	return Pattern{Category: category, Aux: aux, Operands: operands}
}

func (p Pattern) isVar() bool { return p.Var != "" }
