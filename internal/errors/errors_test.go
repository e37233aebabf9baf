package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindStructural, KindOf(ErrTypeMismatch))
	assert.Equal(t, KindUnevaluatable, KindOf(ErrUnencodableConstant))
	assert.Equal(t, KindUnsupported, KindOf(ErrUnsupportedOperation))
	assert.Equal(t, KindAssertion, KindOf(ErrAssertionViolated))
	assert.Equal(t, KindCancellation, KindOf(ErrCancelled))
}

func TestRequireStructuralPanics(t *testing.T) {
	assert.Panics(t, func() {
		RequireStructural(false, ErrTypeMismatch, "boom")
	})
	assert.NotPanics(t, func() {
		RequireStructural(true, ErrTypeMismatch, "fine")
	})
}

func TestRequireStructuralPanicValue(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		se, ok := r.(*StructuralError)
		require.True(t, ok)
		assert.Equal(t, ErrNilOperand, se.Code)
	}()
	RequireStructural(false, ErrNilOperand, "operand is nil")
}

func TestCancelledIsDistinguishable(t *testing.T) {
	err := Cancelled()
	assert.True(t, IsCancelled(err))
	assert.False(t, IsCancelled(Unsupported()))
}

func TestDescribeUnknown(t *testing.T) {
	assert.Contains(t, Describe("E9999"), "unknown error code")
}
