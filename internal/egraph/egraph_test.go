package egraph

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symex/internal/ir"
	"symex/internal/types"
)

func c32(v int64) *ir.Operation {
	return ir.NewConstInt(types.I32, big.NewInt(v))
}

func TestAddHashConsesStructurallyEqualNodes(t *testing.T) {
	g := New()
	x := ir.NewNamedConstant(types.I32, "x")
	a := ir.CreateBinOp(ir.BinAdd, x, x)

	id1 := g.Add(a)
	id2 := g.Add(a)
	assert.Equal(t, id1, id2)

	xID := g.Add(x)
	addAgain := ir.CreateBinOp(ir.BinAdd, x, x)
	id3 := g.Add(addAgain)
	assert.Equal(t, g.Find(id1), g.Find(id3))
	assert.Equal(t, xID, g.Find(g.Add(x)))
}

func TestMergeAndFindIdempotent(t *testing.T) {
	g := New()
	a := g.Add(c32(1))
	b := g.Add(c32(2))
	merged := g.Merge(a, b)
	assert.Equal(t, g.Find(a), g.Find(b))
	assert.Equal(t, merged, g.Find(a))
	assert.Equal(t, g.Find(merged), g.Find(g.Find(merged)))
}

func TestRebuildPropagatesCongruence(t *testing.T) {
	g := New()
	a := g.Add(c32(1))
	b := g.Add(c32(2))

	x := ir.NewNamedConstant(types.I32, "x")
	addA := g.Add(ir.CreateBinOp(ir.BinAdd, x, c32(1)))
	addB := g.Add(ir.CreateBinOp(ir.BinAdd, x, c32(2)))
	require.NotEqual(t, g.Find(addA), g.Find(addB))

	g.Merge(a, b)
	g.Rebuild()

	assert.Equal(t, g.Find(addA), g.Find(addB), "congruence: equal operands after merge should unify the parent nodes")
}

func TestExtractDeterministic(t *testing.T) {
	g := New()
	id := g.Add(c32(7))
	op1 := g.Extract(id)
	op2 := g.Extract(id)
	assert.True(t, op1.Equal(op2))
}

func TestExtractSharedSubexpression(t *testing.T) {
	g := New()
	x := ir.NewNamedConstant(types.I32, "x")
	sum := ir.CreateBinOp(ir.BinAdd, x, x)
	id := g.Add(sum)
	extracted := g.Extract(id)
	require.Equal(t, 2, len(extracted.Operands))
	assert.True(t, extracted.Operands[0].Equal(extracted.Operands[1]))
}

func TestClassesExcludesMergedAway(t *testing.T) {
	g := New()
	a := g.Add(c32(1))
	b := g.Add(c32(2))
	g.Merge(a, b)
	for _, id := range g.Classes() {
		assert.Equal(t, g.Find(id), id)
	}
}

// TestExtractPrefersSmallerSubtree exercises the recursive tree-size cost:
// two compound e-nodes in the same class with different true subtree
// sizes must be told apart by total node count, not just by whether each
// node itself is constant.
func TestExtractPrefersSmallerSubtree(t *testing.T) {
	g := New()
	x := ir.NewNamedConstant(types.I32, "x")
	y := ir.NewNamedConstant(types.I32, "y")

	small := g.Add(ir.CreateBinOp(ir.BinAdd, x, y))
	large := g.Add(ir.CreateBinOp(ir.BinAdd,
		ir.CreateBinOp(ir.BinMul, x, y),
		ir.CreateBinOp(ir.BinMul, y, x),
	))
	g.Merge(small, large)
	g.Rebuild()

	extracted := g.Extract(small)
	assert.Equal(t, ir.CategoryBinary, extracted.Op.Category())
	assert.Equal(t, uint8(ir.BinAdd), extracted.Op.Aux())
	require.Len(t, extracted.Operands, 2)
	assert.Equal(t, "x", extracted.Operands[0].Name)
	assert.Equal(t, "y", extracted.Operands[1].Name)
}
