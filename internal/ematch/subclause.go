package ematch

import (
	"fmt"
	"strings"

	"symex/internal/egraph"
	"symex/internal/ir"
)

// SubClauseKind distinguishes a leaf capture slot from an opcode-shaped
// match (spec §4.3's SubClause).
type SubClauseKind uint8

const (
	// SubClauseVar matches any e-class and captures it, one tuple entry.
	SubClauseVar SubClauseKind = iota
	// SubClauseOp matches any e-node whose opcode's Category/Aux agree and
	// whose i-th operand's class matches the i-th entry of Operands.
	SubClauseOp
)

// SubClause is one node of the hash-consed pattern forest described in
// spec §4.3: "{ opcode, sub-matcher-ids: ordered list, optional filter }".
// Sub-clauses carry no variable names — naming and cross-occurrence
// consistency are a Clause-level concern (rule.go) — so two patterns with
// the same opcode shape always compile to the same SubClause, letting
// shared sub-patterns across different rules (e.g. Associativity's
// "op(a, b)" inner shape and Commutativity's whole LHS) evaluate once.
type SubClause struct {
	Kind     SubClauseKind
	Category ir.Category
	Aux      uint8
	Operands []int // sub-clause ids, one per operand position; SubClauseOp only
}

func (s SubClause) key() string {
	if s.Kind == SubClauseVar {
		return "var"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "op:%d:%d:", s.Category, s.Aux)
	for _, id := range s.Operands {
		fmt.Fprintf(&b, "%d,", id)
	}
	return b.String()
}

type opcodeKey struct {
	category ir.Category
	aux      uint8
}

// index hash-conses SubClauses and records an opcode -> sub-clause-ids
// mapping (byOpcode) for every opcode-shaped sub-clause. Matching does not
// read byOpcode: EMatcher.RunOnce selects candidate root clauses through
// its own clausesByOpcode map, and captures tests each node's opcode
// directly.
type index struct {
	clauses  []SubClause
	byKey    map[string]int
	byOpcode map[opcodeKey][]int
}

func newIndex() *index {
	return &index{byKey: make(map[string]int), byOpcode: make(map[opcodeKey][]int)}
}

func (ix *index) intern(s SubClause) int {
	k := s.key()
	if id, ok := ix.byKey[k]; ok {
		return id
	}
	id := len(ix.clauses)
	ix.clauses = append(ix.clauses, s)
	ix.byKey[k] = id
	if s.Kind == SubClauseOp {
		ok := opcodeKey{s.Category, s.Aux}
		ix.byOpcode[ok] = append(ix.byOpcode[ok], id)
	}
	return id
}

// compilePattern lowers a Pattern into a hash-consed sub-clause id,
// recording each named variable leaf's position in the capture tuple a
// match produces. Positions are assigned in left-to-right DFS order,
// which is exactly the order combineOperands concatenates tuples in, so
// the two stay in sync without needing to carry names into SubClause
// itself.
func (ix *index) compilePattern(p Pattern, pos *int, varPos map[string][]int) int {
	if p.isVar() {
		varPos[p.Var] = append(varPos[p.Var], *pos)
		*pos++
		return ix.intern(SubClause{Kind: SubClauseVar})
	}
	operands := make([]int, len(p.Operands))
	for i, sub := range p.Operands {
		operands[i] = ix.compilePattern(sub, pos, varPos)
	}
	return ix.intern(SubClause{Kind: SubClauseOp, Category: p.Category, Aux: p.Aux, Operands: operands})
}

// captures returns, for subClauseID matched against classID, the list of
// capture tuples recorded there — spec §3's "Match data: per sub-clause, a
// mapping eclass-id -> list of capture tuples". Results are memoized in
// data keyed by (sub-clause, e-class) (spec §4.3 step 1's "dynamic
// programming" requirement), so a sub-pattern shared by several rules, or
// revisited through several parents, is evaluated against a given class at
// most once per pass.
func (ix *index) captures(g *egraph.EGraph, subClauseID, classID int, data *MatchData) [][]int {
	classID = g.Find(classID)
	if tuples, ok := data.bySubClause[subClauseID][classID]; ok {
		return tuples
	}

	sc := ix.clauses[subClauseID]
	var tuples [][]int
	if sc.Kind == SubClauseVar {
		tuples = [][]int{{classID}}
	} else {
		for _, node := range g.NodesOf(classID) {
			if node.Op.Category() != sc.Category || node.Op.Aux() != sc.Aux {
				continue
			}
			if len(node.Operands) != len(sc.Operands) {
				continue
			}
			tuples = append(tuples, ix.combineOperands(g, sc.Operands, node.Operands, data)...)
		}
	}

	data.bySubClause[subClauseID][classID] = tuples
	return tuples
}

// combineOperands threads capture tuples across an operand sequence,
// cross-producting each operand's own tuple set, backed by the memoized
// per-(sub-clause,class) index above.
func (ix *index) combineOperands(g *egraph.EGraph, subIDs, classIDs []int, data *MatchData) [][]int {
	if len(subIDs) == 0 {
		return [][]int{{}}
	}
	head := ix.captures(g, subIDs[0], classIDs[0], data)
	rest := ix.combineOperands(g, subIDs[1:], classIDs[1:], data)

	out := make([][]int, 0, len(head)*len(rest))
	for _, h := range head {
		for _, r := range rest {
			combined := make([]int, 0, len(h)+len(r))
			combined = append(combined, h...)
			combined = append(combined, r...)
			out = append(out, combined)
		}
	}
	return out
}
