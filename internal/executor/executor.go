package executor

import (
	"runtime"
	"sync"
	"sync/atomic"

	"symex/internal/errors"
	"symex/internal/extern"
)

// Config configures an Executor (spec.md §4.4/§5). Workers <= 0 means "use
// runtime.NumCPU()", mirroring oisee-z80-optimizer's search.NewWorkerPool;
// Workers == 1 is a special case that runs the identical loop without
// spawning a goroutine (spec.md §5: "a single-thread configuration must be
// a special case that avoids thread creation but runs the identical
// loop").
type Config struct {
	Workers       int
	SolverFactory func() extern.Solver
}

func (c Config) workerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// StepResult is what a Step returns after running one batch on the active
// context (spec.md §4.4 step 4): whether the context is now dead, which
// forks it queued, and any failure it raised.
type StepResult struct {
	Dead  bool
	Forks []*Context
	Err   error
}

// Step runs the (externally-defined) interpreter for one batch on active,
// using env for solver/external-function access. The interpreter itself
// is out of scope (spec.md §1) — Step is supplied by the caller (the demo
// CLI, the REPL, or a test).
type Step func(env *Environment, active *Context) StepResult

// Environment bundles the per-worker collaborators a Step needs: the
// worker's own Solver (scope-bound to its lifetime, spec.md §5), the
// shared external-function table, and the shared failure logger.
type Environment struct {
	Solver extern.Solver
	Table  *extern.ExternalFunctionTable
	Logger extern.FailureLogger
}

// Executor runs a worker pool over a ContextStore (spec.md §4.4), grounded
// on oisee-z80-optimizer's pkg/search/worker.go WorkerPool — generalized
// from a fixed, pre-loaded, closeable channel to a dynamic queue that
// accepts pushes from in-flight forks via ContextStore's mutex+condvar.
type Executor struct {
	cfg    Config
	store  *ContextStore
	table  *extern.ExternalFunctionTable
	logger extern.FailureLogger

	solversMu  sync.Mutex
	solvers    []extern.Solver
	shouldStop atomic.Bool
	live       atomic.Int64 // contexts not yet retired; 0 triggers store shutdown
}

// New returns an Executor backed by a fresh ContextStore.
func New(cfg Config, table *extern.ExternalFunctionTable, logger extern.FailureLogger) *Executor {
	return &Executor{
		cfg:    cfg,
		store:  NewContextStore(),
		table:  table,
		logger: logger,
	}
}

// Store exposes the underlying ContextStore directly. Contexts pushed
// through it bypass Run's liveness accounting, so a caller that mixes
// manual pushes with Run must shut the store down itself (e.g. via
// Interrupt) rather than relying on auto-termination.
func (e *Executor) Store() *ContextStore { return e.store }

// Run seeds the store with the initial contexts and drives the worker pool
// to completion. It blocks until every context (and every fork it
// produces) has been retired, at which point it shuts the store down and
// every worker exits (spec.md §8 "Executor liveness": with N workers, K
// contexts, and no forks, all contexts are processed in finite time).
func (e *Executor) Run(initial []*Context, step Step) {
	e.live.Store(int64(len(initial)))
	for _, c := range initial {
		e.store.AddContext(c)
	}

	n := e.cfg.workerCount()
	if n == 1 {
		e.runWorker(step)
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			e.runWorker(step)
		}()
	}
	wg.Wait()
}

// Interrupt implements cooperative cancellation (spec.md §5): it sets the
// shared stop flag, shuts down the store so no further contexts are
// popped, and interrupts every currently registered solver.
func (e *Executor) Interrupt() {
	e.shouldStop.Store(true)
	e.store.Shutdown()

	e.solversMu.Lock()
	defer e.solversMu.Unlock()
	for _, s := range e.solvers {
		s.Interrupt()
	}
	e.solvers = nil
}

func (e *Executor) registerSolver(s extern.Solver) {
	e.solversMu.Lock()
	defer e.solversMu.Unlock()
	e.solvers = append(e.solvers, s)
}

// retire decrements the live-context count; when it reaches zero, every
// context this Run seeded (plus every fork they produced) has been
// accounted for, so the store is closed and workers drain.
func (e *Executor) retire(n int64) {
	if e.live.Add(-n) <= 0 {
		e.store.Shutdown()
	}
}

// runWorker implements the per-worker loop of spec.md §4.4.
func (e *Executor) runWorker(step Step) {
	solver := e.cfg.SolverFactory()
	e.registerSolver(solver)
	env := &Environment{Solver: solver, Table: e.table, Logger: e.logger}

	for {
		ctx, ok := e.store.NextContext()
		if !ok {
			return
		}
		e.runBacking(env, step, ctx)
	}
}

// runBacking runs the local backing-list loop described in spec.md §4.4
// steps 3–5: the popped context stays local as long as it's the sole
// entry; forks beyond the first are spilled back to the shared store.
func (e *Executor) runBacking(env *Environment, step Step, seed *Context) {
	backing := []*Context{seed}

	for len(backing) > 0 && !e.shouldStop.Load() {
		active := backing[0]
		rest := backing[1:]
		result := step(env, active)

		if result.Err != nil {
			e.reportFailure(active, result.Err)
			e.retire(1)
			backing = rest
			continue
		}

		if len(result.Forks) > 0 {
			e.live.Add(int64(len(result.Forks)))
		}
		rest = append(rest, result.Forks...)

		if result.Dead {
			e.retire(1)
			backing = rest
			continue
		}

		backing = append([]*Context{active}, rest...)
		if len(backing) > 1 {
			for _, spill := range backing[1:] {
				e.store.AddContext(spill)
			}
			backing = backing[:1]
		}
	}
}

func (e *Executor) reportFailure(active *Context, err error) {
	if errors.IsCancelled(err) || e.logger == nil {
		return
	}
	kind := errors.KindUnevaluatable
	if re, ok := err.(*errors.RuntimeError); ok {
		kind = re.Kind
	}
	e.logger.LogFailure(extern.FailureRecord{
		ContextID: active.ID,
		Kind:      kind,
	})
}
