package egraph

// Matcher runs one round of pattern matching and rewriting against g,
// applying merges for every match it finds, and reports whether any of
// those merges joined two distinct classes. Implemented by internal/ematch.EMatcher (spec §4.3);
// declared here rather than imported to avoid a cycle between egraph and
// ematch, which itself depends on egraph's types.
type Matcher interface {
	RunOnce(g *EGraph) bool
}

// Simplify runs matcher to a fixed point (spec §4.2 "simplify: repeatedly
// match-and-merge, rebuild, until no clause fires"), rebuilding the
// congruence invariant after every round.
func (g *EGraph) Simplify(matcher Matcher) {
	for {
		before := g.unions
		matcher.RunOnce(g)
		g.Rebuild()
		if g.unions == before {
			return
		}
	}
}
