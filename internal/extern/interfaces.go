// Package extern declares the collaborator interfaces the core consumes
// from outside (spec.md §6: Solver, Module, FailureLogger, Policy) and
// ships small reference implementations of each so the engine is runnable
// end-to-end without a real SMT binding, source-language parser, or
// logging framework — none of which are in scope here.
package extern

import (
	"symex/internal/errors"
	"symex/internal/ir"
)

// CheckOutcome is a Solver.Check result.
type CheckOutcome int

const (
	Sat CheckOutcome = iota
	Unsat
	Unknown
	Interrupted
)

func (o CheckOutcome) String() string {
	switch o {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case Unknown:
		return "unknown"
	case Interrupted:
		return "interrupted"
	default:
		return "invalid"
	}
}

// Solver is the opaque SMT binding (spec.md §6): add assertions, check
// satisfiability, recover a model, and accept a cooperative interrupt from
// another goroutine. Real bindings wrap an actual solver process; StubSolver
// is the in-repo stand-in used by tests and the demo CLI.
type Solver interface {
	Add(assertion *ir.Operation)
	Check() CheckOutcome
	Model() map[string][]byte
	Interrupt()
}

// Module is the source-IR loader's data-layout surface (spec.md §6),
// queried when building size-dependent operations (e.g. pointer-width
// array index types).
type Module interface {
	PointerWidth() uint8
	LittleEndian() bool
}

// FailureRecord is everything a FailureLogger needs to render a failure
// (spec.md §7, supplemented by original_source's PrintingFailureLogger):
// the satisfying model if one was found, which context hit the failure,
// the predicate that failed, its error kind, and a backtrace.
type FailureRecord struct {
	Model      map[string][]byte
	ContextID  uint64
	Predicate  *ir.Operation
	Kind       errors.Kind
	Backtrace  []string
}

// FailureLogger reports a failure discovered during execution (spec.md
// §6/§7). ConsoleFailureLogger is the reference implementation.
type FailureLogger interface {
	LogFailure(record FailureRecord)
}

// Policy decides whether a fork produced by a data-dependent resolution
// should actually be explored (spec.md §6).
type Policy interface {
	ShouldExplore(contextID uint64, candidate *ir.Operation) bool
}

// AllowAll is a Policy that explores every candidate; the default for the
// demo CLI and tests.
type AllowAll struct{}

func (AllowAll) ShouldExplore(uint64, *ir.Operation) bool { return true }
