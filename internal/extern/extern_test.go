package extern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symex/internal/ir"
	"symex/internal/types"
)

type fakeSink struct {
	id         uint64
	assertions []*ir.Operation
	forks      []*ir.Operation
}

func (f *fakeSink) AddAssertion(op *ir.Operation) { f.assertions = append(f.assertions, op) }
func (f *fakeSink) Fork(branch *ir.Operation)      { f.forks = append(f.forks, branch) }
func (f *fakeSink) ContextID() uint64              { return f.id }

// firstOnly is a Policy that only approves the first candidate it's asked
// about for a given context, rejecting every other ShouldExplore call —
// used to confirm resolveFn actually consults the policy instead of
// forking unconditionally.
type firstOnly struct {
	seen map[uint64]bool
}

func (p *firstOnly) ShouldExplore(contextID uint64, _ *ir.Operation) bool {
	if p.seen == nil {
		p.seen = make(map[uint64]bool)
	}
	if p.seen[contextID] {
		return false
	}
	p.seen[contextID] = true
	return true
}

func TestExternalFunctionTableLookupAndCall(t *testing.T) {
	table := NewExternalFunctionTable()
	table.Register("double", func(sink PathSink, args []*ir.Operation) (*ir.Operation, error) {
		return ir.CreateBinOp(ir.BinAdd, args[0], args[0]), nil
	})

	sink := &fakeSink{}
	x := ir.NewConstIntU64(types.I32, 5)
	result, err := table.Call("double", sink, []*ir.Operation{x})
	require.NoError(t, err)
	v, ok := result.Type.(types.IntType)
	require.True(t, ok)
	_ = v
	assert.Equal(t, "10", result.IntValue.String())
}

func TestExternalFunctionTableUnboundIsUnsupported(t *testing.T) {
	table := NewExternalFunctionTable()
	_, err := table.Call("nope", &fakeSink{}, nil)
	assert.Error(t, err)
}

func TestAssumeAddsAssertion(t *testing.T) {
	sink := &fakeSink{}
	cond := ir.NewNamedConstant(types.Bool(), "c")
	result, err := assume(sink, []*ir.Operation{cond})
	require.NoError(t, err)
	assert.Same(t, cond, result)
	require.Len(t, sink.assertions, 1)
	assert.Same(t, cond, sink.assertions[0])
}

func TestAssertAddsNegatedAssertion(t *testing.T) {
	sink := &fakeSink{}
	cond := ir.NewNamedConstant(types.Bool(), "c")
	_, err := assertFn(sink, []*ir.Operation{cond})
	require.NoError(t, err)
	require.Len(t, sink.assertions, 1)
	assert.Equal(t, "not", ir.UnaryOp(sink.assertions[0].Op.Aux()).String())
}

func TestResolveForksPerCandidate(t *testing.T) {
	sink := &fakeSink{}
	symbolic := ir.NewNamedConstant(types.I32, "s")
	a := ir.NewConstIntU64(types.I32, 1)
	b := ir.NewConstIntU64(types.I32, 2)

	fn := resolveFn(AllowAll{})
	result, err := fn(sink, []*ir.Operation{symbolic, a, b})
	require.NoError(t, err)
	assert.Same(t, symbolic, result)
	assert.Len(t, sink.forks, 2)
}

func TestResolveConsultsPolicy(t *testing.T) {
	sink := &fakeSink{id: 7}
	symbolic := ir.NewNamedConstant(types.I32, "s")
	a := ir.NewConstIntU64(types.I32, 1)
	b := ir.NewConstIntU64(types.I32, 2)

	fn := resolveFn(&firstOnly{})
	result, err := fn(sink, []*ir.Operation{symbolic, a, b})
	require.NoError(t, err)
	assert.Same(t, symbolic, result)
	assert.Len(t, sink.forks, 1, "a restrictive policy must prune candidates, not be ignored")
}

func TestZeroMinMaxValue(t *testing.T) {
	x := ir.NewNamedConstant(types.I8, "x")
	z, err := zeroFn(nil, []*ir.Operation{x})
	require.NoError(t, err)
	assert.Equal(t, "0", z.IntValue.String())

	min, err := minValueFn(nil, []*ir.Operation{x})
	require.NoError(t, err)
	assert.Equal(t, "0", min.IntValue.String())

	max, err := maxValueFn(nil, []*ir.Operation{x})
	require.NoError(t, err)
	assert.Equal(t, "255", max.IntValue.String())
}

func TestStubSolverLiteralFalseIsUnsat(t *testing.T) {
	s := NewStubSolver()
	s.Add(ir.NewConstIntU64(types.Bool(), 0))
	assert.Equal(t, Unsat, s.Check())
}

func TestStubSolverInterrupt(t *testing.T) {
	s := NewStubSolver()
	s.Interrupt()
	assert.Equal(t, Interrupted, s.Check())
}
