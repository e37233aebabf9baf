package extern

import (
	"sync"
	"sync/atomic"

	"symex/internal/ir"
)

// StubSolver is a deterministic, in-memory Solver (no real SMT dependency —
// out of scope per spec.md §1) used by tests and the demo CLI/REPL so the
// executor is runnable end-to-end. It only distinguishes the trivially
// decidable cases: an assertion set containing a literal false constant is
// Unsat, an empty or all-true set is Sat, anything else is Unknown. It
// supports Interrupt via an atomic flag, honoring spec.md §5's cancellation
// model (Check returns Interrupted once set).
type StubSolver struct {
	mu          sync.Mutex
	assertions  []*ir.Operation
	interrupted atomic.Bool
}

// NewStubSolver returns an empty solver.
func NewStubSolver() *StubSolver { return &StubSolver{} }

func (s *StubSolver) Add(assertion *ir.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assertions = append(s.assertions, assertion)
}

func (s *StubSolver) Check() CheckOutcome {
	if s.interrupted.Load() {
		return Interrupted
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	allTrue := true
	for _, a := range s.assertions {
		if s.interrupted.Load() {
			return Interrupted
		}
		v, ok := boolConstValue(a)
		if !ok {
			allTrue = false
			continue
		}
		if !v {
			return Unsat
		}
	}
	if allTrue {
		return Sat
	}
	return Unknown
}

// Model returns an empty model: StubSolver never produces a satisfying
// assignment since it does no real solving beyond literal-boolean checks.
func (s *StubSolver) Model() map[string][]byte { return map[string][]byte{} }

func (s *StubSolver) Interrupt() { s.interrupted.Store(true) }

func boolConstValue(o *ir.Operation) (bool, bool) {
	if o == nil || o.IntValue == nil {
		return false, false
	}
	return o.IntValue.Sign() != 0, true
}
