package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCastScalars(t *testing.T) {
	cases := []struct {
		target, source *Type
		want           bool
	}{
		{Float(NoWidth, false), Int(NoWidth, false), true},
		{Int(NoWidth, false), Float(NoWidth, false), true},
		{Complex(NoWidth, false), Float(64, false), true},
		{Float(NoWidth, false), Complex(NoWidth, false), false},
		{Bool(false), Bit(false), true},
		{Bit(false), Bool(false), true},
		{Angle(NoWidth, false), Float(NoWidth, false), true},
		{Float(NoWidth, false), Angle(NoWidth, false), false},
		{Int(NoWidth, false), Qubit(), false},
		{Duration(false), Float(NoWidth, false), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CanCast(c.target, c.source),
			"CanCast(%s, %s)", c.target, c.source)
	}
}

func TestCanCastBitRegisterWidths(t *testing.T) {
	// A sized int casts to a bit register of exactly its own width.
	assert.True(t, CanCast(BitArray(8, false), Int(8, false)))
	assert.False(t, CanCast(BitArray(8, false), Int(16, false)))
	assert.False(t, CanCast(BitArray(8, false), Int(NoWidth, false)))

	// A bit register casts to an int of matching or unset width.
	assert.True(t, CanCast(Int(8, false), BitArray(8, false)))
	assert.True(t, CanCast(Int(NoWidth, false), BitArray(8, false)))
	assert.False(t, CanCast(Int(16, false), BitArray(8, false)))

	// Angle conversions require the exact width on both sides.
	assert.True(t, CanCast(BitArray(16, false), Angle(16, false)))
	assert.False(t, CanCast(BitArray(16, false), Angle(NoWidth, false)))
	assert.True(t, CanCast(Angle(16, false), BitArray(16, false)))
	assert.False(t, CanCast(Angle(8, false), BitArray(16, false)))
}

func TestCanCastLiteral(t *testing.T) {
	assert.True(t, CanCastLiteral(Float(NoWidth, true), Int(NoWidth, true)))
	assert.True(t, CanCastLiteral(Angle(NoWidth, true), Float(NoWidth, true)))
	assert.True(t, CanCastLiteral(Int(NoWidth, true), UInt(NoWidth, true)))
	assert.True(t, CanCastLiteral(Complex(NoWidth, true), Float(NoWidth, true)))

	// An int literal coerces to a bit register of any size; range checking
	// happens against the value, not the type.
	assert.True(t, CanCastLiteral(BitArray(4, true), Int(NoWidth, true)))

	assert.False(t, CanCastLiteral(Qubit(), Int(NoWidth, true)))
	assert.False(t, CanCastLiteral(Duration(true), Int(NoWidth, true)))
}

func TestCanCastLiteralWithKnownIntValue(t *testing.T) {
	assert.True(t, CanCastLiteralWithKnownIntValue(Bit(true), 0))
	assert.True(t, CanCastLiteralWithKnownIntValue(Bit(true), 1))
	assert.False(t, CanCastLiteralWithKnownIntValue(Bit(true), 2))

	assert.True(t, CanCastLiteralWithKnownIntValue(UInt(8, true), 255))
	assert.False(t, CanCastLiteralWithKnownIntValue(UInt(8, true), -1))

	// The zero literal is tolerated as an angle for compatibility.
	assert.True(t, CanCastLiteralWithKnownIntValue(Angle(NoWidth, true), 0))
	assert.False(t, CanCastLiteralWithKnownIntValue(Angle(NoWidth, true), 1))
}
