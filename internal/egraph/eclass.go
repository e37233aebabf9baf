package egraph

import "symex/internal/types"

// parentEdge records an ENode that references this e-class as an operand,
// so that a merge can find every enode whose congruence needs re-checking
// (spec §4.2, "parent pointers for congruence maintenance").
type parentEdge struct {
	key   string
	node  ENode
	class int
}

// EClass is an equivalence class of e-nodes, all of the same type (spec
// §4.2 invariant: every node in a class shares the class's type).
type EClass struct {
	ID      int
	Type    types.Type
	Nodes   map[string]ENode
	Parents []parentEdge
}
