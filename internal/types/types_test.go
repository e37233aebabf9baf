package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntTypeEquality(t *testing.T) {
	assert.True(t, I32.Equal(NewIntType(32)))
	assert.False(t, I32.Equal(I64))
	assert.False(t, I32.Equal(Void))
}

func TestFloatTypeEquality(t *testing.T) {
	assert.True(t, F32.Equal(FloatType{ExponentBits: 8, MantissaBits: 23}))
	assert.False(t, F32.Equal(F64))
	assert.Equal(t, 32, F32.Bits())
	assert.Equal(t, 64, F64.Bits())
}

func TestArrayTypeElement(t *testing.T) {
	arr := ArrayType{IndexBits: 64}
	assert.Equal(t, IntType{Width: 8}, ElementType())
	assert.Equal(t, "array<i64>", arr.String())
	assert.False(t, arr.Equal(ArrayType{IndexBits: 32}))
}

func TestNewIntTypeValidatesWidth(t *testing.T) {
	assert.Panics(t, func() { NewIntType(0) })
	assert.Panics(t, func() { NewIntType(200) })
	assert.NotPanics(t, func() { NewIntType(1) })
	assert.NotPanics(t, func() { NewIntType(128) })
}

func TestLookup(t *testing.T) {
	ty, ok := Lookup("i32")
	assert.True(t, ok)
	assert.Equal(t, I32, ty)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestStringForm(t *testing.T) {
	assert.Equal(t, "i32", I32.String())
	assert.Equal(t, "void", Void.String())
	assert.Equal(t, "f32", F32.String())
}
