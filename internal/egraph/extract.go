package egraph

import (
	"math"
	"math/big"

	"symex/internal/ir"
)

// extracted pairs the rebuilt operation tree for an e-class with the
// node-count cost of the e-node it was built from, so a parent can
// compare candidate operands by their true subtree size rather than a
// single node's shape (spec §4.2's cost function, "default: tree size").
type extracted struct {
	op   *ir.Operation
	cost int
}

// unboundedCost marks an e-class whose extraction is currently in
// progress on the call stack: a cyclic congruence (should never occur for
// a DAG built from ir.Operation) would otherwise recurse forever. Giving
// it an unbounded cost means the cycle is never the cheapest choice for
// any other candidate in the same class, rather than looping.
const unboundedCost = math.MaxInt32

// Extract picks, for each e-class reachable from id, the e-node whose
// recursively-extracted subtree has the lowest total node count, and
// rebuilds an *ir.Operation tree from it. Since Go map iteration is
// randomized, ties are broken by choosing the e-node with the smallest key
// string, so the same e-graph state always extracts the same tree (spec §8
// "Extractor determinism").
func (g *EGraph) Extract(id int) *ir.Operation {
	memo := make(map[int]*extracted)
	visiting := make(map[int]bool)
	return g.extract(g.Find(id), memo, visiting).op
}

func (g *EGraph) extract(id int, memo map[int]*extracted, visiting map[int]bool) *extracted {
	id = g.Find(id)
	if e, ok := memo[id]; ok {
		return e
	}
	if visiting[id] {
		return &extracted{cost: unboundedCost}
	}
	visiting[id] = true
	defer delete(visiting, id)

	cls := g.classes[id]
	var bestKey string
	var best ENode
	var bestOperands []*extracted
	bestCost := -1
	for key, n := range cls.Nodes {
		c := 1
		var operands []*extracted
		if len(n.Operands) > 0 {
			operands = make([]*extracted, len(n.Operands))
			for i, operandID := range n.Operands {
				sub := g.extract(operandID, memo, visiting)
				operands[i] = sub
				c += sub.cost
			}
		}
		if bestCost == -1 || c < bestCost || (c == bestCost && key < bestKey) {
			bestCost, best, bestKey, bestOperands = c, n, key, operands
		}
	}

	op := &ir.Operation{
		Op:        best.Op,
		Type:      best.Type,
		IntValue:  best.IntValue,
		FloatBits: best.FloatBits,
		Name:      best.Name,
		Numbered:  best.Numbered,
		Bytes:     best.Bytes,
	}
	result := &extracted{op: op, cost: bestCost}
	memo[id] = result
	if len(bestOperands) > 0 {
		op.Operands = make([]*ir.Operation, len(bestOperands))
		for i, sub := range bestOperands {
			op.Operands[i] = sub.op
		}
	}
	return result
}

// ExtractInt is a convenience for tests and callers that know the result
// is an integer constant: it extracts and returns the literal value.
func (g *EGraph) ExtractInt(id int) (*big.Int, bool) {
	op := g.Extract(id)
	if op.IntValue == nil {
		return nil, false
	}
	return op.IntValue, true
}
