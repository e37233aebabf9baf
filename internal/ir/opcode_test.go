package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	op := Pack(CategoryBinary, uint8(BinMul), 2)
	assert.Equal(t, CategoryBinary, op.Category())
	assert.Equal(t, uint8(BinMul), op.Aux())
	assert.Equal(t, 2, op.NumOperands())
}

func TestConstantCategoryBitTest(t *testing.T) {
	op := constantOpcode(ConstInt)
	assert.True(t, op.IsConstant())
	assert.Equal(t, uint16(1), uint16(op)>>6)
}

func TestICmpIsContiguousRange(t *testing.T) {
	for p := ICmpPredicate(0); p < 10; p++ {
		for arity := uint8(0); arity <= 3; arity++ {
			op := Pack(CategoryICmp, uint8(p), arity)
			assert.True(t, op.IsICmp(), "predicate %v arity %d should be in ICmp range", p, arity)
			assert.False(t, op.IsFCmp())
		}
	}
}

func TestFCmpIsContiguousRange(t *testing.T) {
	for p := FCmpPredicate(0); p < 14; p++ {
		op := Pack(CategoryFCmp, uint8(p), 2)
		assert.True(t, op.IsFCmp())
		assert.False(t, op.IsICmp())
	}
}

func TestICmpSignedness(t *testing.T) {
	signed := []ICmpPredicate{ICmpSGT, ICmpSGE, ICmpSLT, ICmpSLE}
	unsigned := []ICmpPredicate{ICmpEQ, ICmpNE, ICmpUGT, ICmpUGE, ICmpULT, ICmpULE}
	for _, p := range signed {
		assert.True(t, p.IsSigned(), "%v should be signed", p)
	}
	for _, p := range unsigned {
		assert.False(t, p.IsSigned(), "%v should be unsigned", p)
	}
}

func TestFCmpOrdered(t *testing.T) {
	assert.True(t, FCmpOEQ.IsOrdered())
	assert.True(t, FCmpORD.IsOrdered())
	assert.False(t, FCmpUEQ.IsOrdered())
	assert.False(t, FCmpUNO.IsOrdered())
}
