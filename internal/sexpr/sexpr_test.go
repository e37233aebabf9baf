package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symex/internal/ir"
	"symex/internal/types"
)

func TestReadIntConstant(t *testing.T) {
	r := NewReader()
	op, err := r.Read("(i32 7)")
	require.NoError(t, err)
	assert.Equal(t, "7", op.IntValue.String())
	assert.Equal(t, types.I32, op.Type)
}

func TestReadNamedConstantUsesDeclaredType(t *testing.T) {
	r := NewReader()
	r.Declare("x", types.I64)
	op, err := r.Read("(const x)")
	require.NoError(t, err)
	assert.Equal(t, "x", op.Name)
	assert.Equal(t, types.I64, op.Type)
}

func TestReadBinOp(t *testing.T) {
	r := NewReader()
	r.Declare("x", types.I32)
	op, err := r.Read("(add (const x) (i32 4))")
	require.NoError(t, err)
	assert.Equal(t, "(add (const x) (i32 4))", Write(op))
}

func TestReadICmp(t *testing.T) {
	r := NewReader()
	r.Declare("x", types.I32)
	r.Declare("y", types.I32)
	op, err := r.Read("(icmp.slt (const x) (const y))")
	require.NoError(t, err)
	assert.True(t, op.Op.IsICmp())
}

func TestReadConstantFoldsAtConstruction(t *testing.T) {
	r := NewReader()
	op, err := r.Read("(add (i32 3) (i32 4))")
	require.NoError(t, err)
	assert.Equal(t, "7", op.IntValue.String())
}

func TestRoundTripWriteThenRead(t *testing.T) {
	x := ir.NewNamedConstant(types.I32, "x")
	original := ir.CreateBinOp(ir.BinAdd, x, ir.NewConstIntU64(types.I32, 4))
	printed := Write(original)

	r := NewReader()
	r.Declare("x", types.I32)
	reread, err := r.Read(printed)
	require.NoError(t, err)
	assert.True(t, original.Equal(reread))
}

func TestReadCastIncludesTargetType(t *testing.T) {
	r := NewReader()
	r.Declare("x", types.I8)
	op, err := r.Read("(sext (const x) i32)")
	require.NoError(t, err)
	assert.Equal(t, types.I32, op.Type)
}

func TestUnrecognizedFormIsAnError(t *testing.T) {
	r := NewReader()
	_, err := r.Read("(bogus 1 2)")
	assert.Error(t, err)
}
