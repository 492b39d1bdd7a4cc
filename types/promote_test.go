package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteTypesIsSymmetric(t *testing.T) {
	operands := []*Type{
		Bit(false), Bool(false),
		Int(NoWidth, false), Int(8, false), Int(32, false),
		UInt(NoWidth, false), UInt(16, false),
		Float(NoWidth, false), Float(64, false),
		Complex(NoWidth, false), Complex(64, false),
		Angle(NoWidth, false), Angle(16, false),
	}

	for _, lhs := range operands {
		for _, rhs := range operands {
			forward := PromoteTypes(lhs, rhs)
			backward := PromoteTypes(rhs, lhs)
			assert.True(t, Equal(forward, backward),
				"promote(%s, %s) = %s but promote(%s, %s) = %s",
				lhs, rhs, forward, rhs, lhs, backward)
		}
	}
}

func TestPromoteTypesLattice(t *testing.T) {
	cases := []struct {
		lhs, rhs, want *Type
	}{
		{Int(NoWidth, false), Float(NoWidth, false), Float(NoWidth, false)},
		{UInt(8, false), Int(16, false), Int(16, false)},
		{Int(8, false), Int(32, false), Int(32, false)},
		{Float(32, false), Complex(64, false), Complex(64, false)},
		{Bool(false), Int(32, false), Int(32, false)},
		{Bit(false), Bool(false), Bool(false)},
		{Bit(false), Angle(8, false), Angle(8, false)},
		{Angle(16, false), Float(NoWidth, false), Float(NoWidth, false)},
	}

	for _, c := range cases {
		got := PromoteTypes(c.lhs, c.rhs)
		assert.True(t, Equal(c.want, got),
			"promote(%s, %s): want %s, got %s", c.lhs, c.rhs, c.want, got)
	}
}

func TestPromoteTypesUnsizedAbsorbsWidth(t *testing.T) {
	// An unsized operand can hold any width, so mixing sized and unsized
	// yields the unsized type.
	got := PromoteTypes(Int(32, false), Int(NoWidth, false))
	assert.Equal(t, NoWidth, got.Width)
	assert.Equal(t, KInt, got.Kind)
}

func TestPromoteTypesConstness(t *testing.T) {
	both := PromoteTypes(Int(NoWidth, true), Float(NoWidth, true))
	assert.True(t, both.IsConst())

	mixed := PromoteTypes(Int(NoWidth, true), Float(NoWidth, false))
	assert.False(t, mixed.IsConst())
}

func TestPromoteTypesIncompatible(t *testing.T) {
	got := PromoteTypes(Duration(false), Int(NoWidth, false))
	assert.Equal(t, KVoid, got.Kind)
}

func TestPromoteToUInt(t *testing.T) {
	ty, lhs, rhs := PromoteToUInt(Int(8, false), BitArray(16, false))
	require.NotNil(t, ty)
	assert.Equal(t, 16, ty.Width)
	assert.Equal(t, 8, lhs.Width)
	assert.Equal(t, 16, rhs.Width)

	ty, _, rhs = PromoteToUInt(Int(8, false), Float(NoWidth, false))
	assert.Nil(t, ty)
	assert.Nil(t, rhs)
}

func TestTryPromoteWithCastingBitArray(t *testing.T) {
	// A bit register promotes against an int of matching width.
	got := TryPromoteWithCasting(BitArray(8, false), Int(8, false))
	assert.Equal(t, KInt, got.Kind)

	// Mismatched widths fall through to the float path.
	got = TryPromoteWithCasting(BitArray(8, false), Int(16, false))
	assert.Equal(t, KFloat, got.Kind)
	assert.Equal(t, NoWidth, got.Width)
}
