package extern

import (
	"fmt"
	"sync"

	"symex/internal/errors"
	"symex/internal/ir"
)

// PathSink is the minimal surface a Callable needs to affect the calling
// context: extend its path-condition, queue up a fork, or identify itself
// to a Policy deciding whether a fork should be explored. Implemented by
// executor.Context without extern needing to import the executor package.
type PathSink interface {
	AddAssertion(op *ir.Operation)
	Fork(branch *ir.Operation)
	ContextID() uint64
}

// Callable is an external function bound into an ExternalFunctionTable
// (spec.md §6: "name -> callable(context, args)").
type Callable func(sink PathSink, args []*ir.Operation) (*ir.Operation, error)

// ExternalFunctionTable is a name -> Callable registry, generalizing the
// teacher's internal/stdlib.ModuleDefinition / internal/builtins.BuiltinType
// name-keyed registries to the interpreter's external-function surface.
type ExternalFunctionTable struct {
	mu  sync.RWMutex
	fns map[string]Callable
}

// NewExternalFunctionTable returns an empty table.
func NewExternalFunctionTable() *ExternalFunctionTable {
	return &ExternalFunctionTable{fns: make(map[string]Callable)}
}

// Register binds name to fn, overwriting any previous binding.
func (t *ExternalFunctionTable) Register(name string, fn Callable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fns[name] = fn
}

// Lookup returns the Callable bound to name, if any.
func (t *ExternalFunctionTable) Lookup(name string) (Callable, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.fns[name]
	return fn, ok
}

// Call looks up name and invokes it, returning an unsupported-operation
// error (spec.md §7: fixed-message "Unsupported" kind) if nothing is bound.
func (t *ExternalFunctionTable) Call(name string, sink PathSink, args []*ir.Operation) (*ir.Operation, error) {
	fn, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("external function %q: %w", name, errors.Unsupported())
	}
	return fn(sink, args)
}
