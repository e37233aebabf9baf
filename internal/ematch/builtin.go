package ematch

import "symex/internal/ir"

// CommutativityOf returns the commutativity rule for a specific binary
// opcode, e.g. CommutativityOf(ir.BinAdd) for "a + b -> b + a".
func CommutativityOf(op ir.BinOp) Rule {
	return Commutativity(ir.CategoryBinary, uint8(op))
}

// AssociativityOf returns the associativity rule for a specific binary
// opcode, e.g. AssociativityOf(ir.BinAdd) for "(a + b) + c -> a + (b + c)".
func AssociativityOf(op ir.BinOp) Rule {
	return Associativity(ir.CategoryBinary, uint8(op))
}
