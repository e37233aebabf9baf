package executor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symex/internal/extern"
)

func newTestExecutor(workers int) *Executor {
	cfg := Config{Workers: workers, SolverFactory: func() extern.Solver { return extern.NewStubSolver() }}
	return New(cfg, extern.NewExternalFunctionTable(), nil)
}

func TestRunProcessesAllContextsWithNoForks(t *testing.T) {
	e := newTestExecutor(4)
	var processed atomic.Int64

	contexts := make([]*Context, 10)
	for i := range contexts {
		contexts[i] = NewContext()
	}

	done := make(chan struct{})
	go func() {
		e.Run(contexts, func(env *Environment, active *Context) StepResult {
			processed.Add(1)
			return StepResult{Dead: true}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not terminate")
	}
	assert.Equal(t, int64(10), processed.Load())
}

func TestRunDrainsForkedContexts(t *testing.T) {
	e := newTestExecutor(2)
	var processed atomic.Int64

	seed := NewContext()
	done := make(chan struct{})
	go func() {
		e.Run([]*Context{seed}, func(env *Environment, active *Context) StepResult {
			n := processed.Add(1)
			if n <= 3 {
				child := NewContext()
				return StepResult{Dead: true, Forks: []*Context{child}}
			}
			return StepResult{Dead: true}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not terminate")
	}
	assert.Equal(t, int64(4), processed.Load())
}

func TestInterruptStopsWorkersPromptly(t *testing.T) {
	e := newTestExecutor(2)
	seed := NewContext()

	done := make(chan struct{})
	go func() {
		e.Run([]*Context{seed}, func(env *Environment, active *Context) StepResult {
			// Forks indefinitely until interrupted.
			return StepResult{Dead: false, Forks: []*Context{NewContext()}}
		})
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	e.Interrupt()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not exit after Interrupt")
	}
}

func TestSingleWorkerConfigRunsSynchronously(t *testing.T) {
	e := newTestExecutor(1)
	var processed atomic.Int64

	contexts := []*Context{NewContext(), NewContext(), NewContext()}
	e.Run(contexts, func(env *Environment, active *Context) StepResult {
		processed.Add(1)
		return StepResult{Dead: true}
	})
	assert.Equal(t, int64(3), processed.Load())
}

func TestContextStoreShutdownDropsNewPushes(t *testing.T) {
	s := NewContextStore()
	s.Shutdown()
	s.AddContext(NewContext())

	c, ok := s.NextContext()
	assert.Nil(t, c)
	assert.False(t, ok)
}

func TestContextForkCopiesPathAndOwnsGraph(t *testing.T) {
	parent := NewContext()
	parent.AddAssertion(nil)

	child := parent.fork()
	require.Len(t, child.Assertions, 1)
	assert.NotSame(t, parent.Graph, child.Graph)
	assert.NotEqual(t, parent.ID, child.ID)
}
