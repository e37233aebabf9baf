package ematch

import "symex/internal/egraph"

// EMatcher holds a compiled rule set and runs it against an e-graph,
// implementing egraph.Matcher so it can be handed directly to
// EGraph.Simplify (spec §4.3 "ematcher: compiled rule set plus a driver
// that runs each rule to a fixed point"). Compilation lowers every rule's
// Pattern into the shared index's hash-consed SubClause forest and
// records each rule as a Clause, so structurally identical sub-patterns
// across different rules (e.g. Associativity's inner "op(a, b)" and
// Commutativity's whole LHS) are represented — and matched — once.
type EMatcher struct {
	rules           []Rule
	index           *index
	clauses         []Clause
	clausesByOpcode map[opcodeKey][]int
}

// NewEMatcher compiles a fixed rule set into an EMatcher.
func NewEMatcher(rules ...Rule) *EMatcher {
	m := &EMatcher{
		rules:           append([]Rule(nil), rules...),
		index:           newIndex(),
		clausesByOpcode: make(map[opcodeKey][]int),
	}
	for _, rule := range m.rules {
		pos := 0
		varPos := make(map[string][]int)
		subID := m.index.compilePattern(rule.LHS, &pos, varPos)

		clause := Clause{SubClauseID: subID, VarPos: varPos, Filter: rule.Filter, Build: rule.Build}
		ci := len(m.clauses)
		m.clauses = append(m.clauses, clause)

		sc := m.index.clauses[subID]
		key := opcodeKey{sc.Category, sc.Aux}
		m.clausesByOpcode[key] = append(m.clausesByOpcode[key], ci)
	}
	return m
}

// Builder accumulates rules before constructing an EMatcher (spec §4.3
// "EMatcherBuilder"), mirroring the teacher's OptimizationPipeline builder
// pattern for assembling an ordered set of passes.
type Builder struct {
	rules []Rule
}

// NewBuilder returns an empty rule builder.
func NewBuilder() *Builder { return &Builder{} }

// Add appends a rule to the builder and returns it for chaining.
func (b *Builder) Add(rule Rule) *Builder {
	b.rules = append(b.rules, rule)
	return b
}

// Build finalizes the rule set into a compiled EMatcher.
func (b *Builder) Build() *EMatcher {
	return NewEMatcher(b.rules...)
}

// SubClauseCount reports the number of distinct hash-consed sub-clauses
// the compiled rule set lowered to — exposed for tests to confirm shared
// sub-patterns are deduplicated rather than compiled once per rule.
func (m *EMatcher) SubClauseCount() int {
	return len(m.index.clauses)
}

// RunOnce evaluates the compiled clauses against every live e-node
// exactly once, using the opcode-keyed sub-index (clausesByOpcode) so a
// node is only tested against clauses whose root shape could possibly
// match it, and the per-(sub-clause, e-class) memoized MatchData so a
// shared sub-pattern is only evaluated once against a given class even
// when several clauses or several parents depend on it (spec §4.3 steps
// 1-2). It merges each match's class with the rule's constructed
// replacement and reports whether any merge happened, so EGraph.Simplify
// can detect a fixed point.
func (m *EMatcher) RunOnce(g *egraph.EGraph) bool {
	data := newMatchData(len(m.index.clauses))
	changed := false

	for _, classID := range g.Classes() {
		for _, node := range g.NodesOf(classID) {
			key := opcodeKey{node.Op.Category(), node.Op.Aux()}
			for _, ci := range m.clausesByOpcode[key] {
				clause := m.clauses[ci]
				sc := m.index.clauses[clause.SubClauseID]
				if len(node.Operands) != len(sc.Operands) {
					continue
				}
				for _, tuple := range m.index.combineOperands(g, sc.Operands, node.Operands, data) {
					vars, ok := resolveVars(g, clause.VarPos, tuple)
					if !ok {
						continue
					}
					if clause.Filter != nil && !clause.Filter(g, node) {
						continue
					}
					replacement := clause.Build(g, node, vars)
					if g.Find(classID) != g.Find(replacement) {
						g.Merge(classID, replacement)
						changed = true
					}
				}
			}
		}
	}
	return changed
}

// resolveVars maps each variable name to the single e-class its captured
// positions agree on, failing the match if two occurrences of the same
// variable name landed in different classes (spec §4.3's implicit
// requirement that repeated pattern variables denote the same e-class).
func resolveVars(g *egraph.EGraph, varPos map[string][]int, tuple []int) (map[string]int, bool) {
	vars := make(map[string]int, len(varPos))
	for name, positions := range varPos {
		class := g.Find(tuple[positions[0]])
		for _, p := range positions[1:] {
			if g.Find(tuple[p]) != class {
				return nil, false
			}
		}
		vars[name] = class
	}
	return vars, true
}
