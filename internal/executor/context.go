package executor

import (
	"sync/atomic"

	"symex/internal/egraph"
	"symex/internal/ir"
)

var nextContextID atomic.Uint64

// Context is a point in symbolic execution (spec.md glossary): program
// state plus a set of path assertions, a local e-graph for simplifying
// values as they're produced, and a dictionary of symbolic constants
// introduced along this path. Contexts are move-only in spirit — a
// context never exists in two places at once (spec.md §4.4) — enforced
// here by convention (callers stop using a Context once it's been handed
// to a ContextStore or consumed by a step) rather than by the type system,
// since Go has no move semantics.
type Context struct {
	ID                uint64
	Assertions        []*ir.Operation
	Locals            map[string]*ir.Operation
	SymbolicConstants map[string]*ir.Operation
	Graph             *egraph.EGraph

	pendingForks []*Context
}

// NewContext returns a fresh, empty context with its own e-graph.
func NewContext() *Context {
	return &Context{
		ID:                nextContextID.Add(1),
		Locals:            make(map[string]*ir.Operation),
		SymbolicConstants: make(map[string]*ir.Operation),
		Graph:             egraph.New(),
	}
}

// AddAssertion appends a path-condition predicate (spec.md §6's external
// functions call this through the extern.PathSink interface).
func (c *Context) AddAssertion(op *ir.Operation) {
	c.Assertions = append(c.Assertions, op)
}

// ContextID reports the context's identity, so an extern.Policy can key
// its ShouldExplore decision to the context a resolve() call forks from
// (spec.md §6's PathSink surface).
func (c *Context) ContextID() uint64 { return c.ID }

// Fork queues a new child context asserting branch in addition to this
// context's existing path condition (spec.md glossary: "Fork: splitting a
// context at a data-dependent branch into two contexts, each extended with
// one branch condition"). Queued forks are drained by TakeForks after the
// step that produced them returns, rather than being pushed to the store
// immediately, so a single step can request any number of forks.
func (c *Context) Fork(branch *ir.Operation) {
	child := c.fork()
	child.AddAssertion(branch)
	c.pendingForks = append(c.pendingForks, child)
}

// fork returns a new context that otherwise starts from the same state as
// c: a copied assertion list, copied symbol dictionaries, and its own
// e-graph clone (spec.md §5: "EGraph instances are not shared; each
// context owns its own").
func (c *Context) fork() *Context {
	child := &Context{
		ID:                nextContextID.Add(1),
		Assertions:        append([]*ir.Operation(nil), c.Assertions...),
		Locals:            make(map[string]*ir.Operation, len(c.Locals)),
		SymbolicConstants: make(map[string]*ir.Operation, len(c.SymbolicConstants)),
		Graph:             c.Graph.Clone(),
	}
	for k, v := range c.Locals {
		child.Locals[k] = v
	}
	for k, v := range c.SymbolicConstants {
		child.SymbolicConstants[k] = v
	}
	return child
}

// TakeForks returns and clears the forks queued by Fork calls since the
// last TakeForks.
func (c *Context) TakeForks() []*Context {
	forks := c.pendingForks
	c.pendingForks = nil
	return forks
}
