package semast

import (
	"fmt"
	"math"
	"math/big"

	"qasmc/syntax"
)

// Angle is the fixed-point representation of an OpenQASM angle: a Size-bit
// unsigned fraction of a full turn.  Value is always reduced modulo 2^Size.
type Angle struct {
	Value uint64
	Size  int
}

// AngleDefaultSize is the precision used for angles written without an
// explicit width: the mantissa width of a float64.
const AngleDefaultSize = 53

// AngleFromFloat converts radians to a fixed-point angle of the given size,
// wrapping modulo 2π.
func AngleFromFloat(val float64, size int) Angle {
	turns := val / (2 * math.Pi)
	turns -= math.Floor(turns)

	scale := math.Exp2(float64(size))
	value := uint64(math.Round(turns*scale)) % angleModulus(size)

	return Angle{Value: value, Size: size}
}

// AngleFromFloatMaybeSized converts radians to a fixed-point angle, using the
// default precision when no width was written.
func AngleFromFloatMaybeSized(val float64, width int) Angle {
	if width == 0 {
		width = AngleDefaultSize
	}

	return AngleFromFloat(val, width)
}

func angleModulus(size int) uint64 {
	if size >= 64 {
		return math.MaxUint64
	}

	return uint64(1) << size
}

// Float returns the angle in radians.
func (a Angle) Float() float64 {
	return float64(a.Value) / math.Exp2(float64(a.Size)) * 2 * math.Pi
}

// Cast rescales the angle to a new size, truncating or zero-extending the
// fraction bits.
func (a Angle) Cast(size int) Angle {
	switch {
	case size == a.Size:
		return a
	case size > a.Size:
		return Angle{Value: a.Value << (size - a.Size), Size: size}
	default:
		return Angle{Value: a.Value >> (a.Size - size), Size: size}
	}
}

func (a Angle) Add(b Angle) Angle {
	return Angle{Value: (a.Value + b.Value) % angleModulus(a.Size), Size: a.Size}
}

func (a Angle) Sub(b Angle) Angle {
	m := angleModulus(a.Size)
	return Angle{Value: (a.Value + m - b.Value%m) % m, Size: a.Size}
}

func (a Angle) Neg() Angle {
	m := angleModulus(a.Size)
	return Angle{Value: (m - a.Value%m) % m, Size: a.Size}
}

func (a Angle) MulUInt(k uint64) Angle {
	return Angle{Value: (a.Value * k) % angleModulus(a.Size), Size: a.Size}
}

func (a Angle) DivUInt(k uint64) Angle {
	return Angle{Value: a.Value / k, Size: a.Size}
}

// DivAngle returns the dimensionless ratio of two angles of equal size.
func (a Angle) DivAngle(b Angle) uint64 {
	return a.Value / b.Value
}

func (a Angle) NotB() Angle {
	return Angle{Value: ^a.Value & (angleModulus(a.Size) - 1), Size: a.Size}
}

func (a Angle) AndB(b Angle) Angle { return Angle{Value: a.Value & b.Value, Size: a.Size} }
func (a Angle) OrB(b Angle) Angle  { return Angle{Value: a.Value | b.Value, Size: a.Size} }
func (a Angle) XorB(b Angle) Angle { return Angle{Value: a.Value ^ b.Value, Size: a.Size} }

func (a Angle) Shl(k uint64) Angle {
	return Angle{Value: (a.Value << k) & (angleModulus(a.Size) - 1), Size: a.Size}
}

func (a Angle) Shr(k uint64) Angle {
	return Angle{Value: a.Value >> k, Size: a.Size}
}

func (a Angle) String() string {
	return fmt.Sprintf("%v", a.Float())
}

// -----------------------------------------------------------------------------

// ValueKind enumerates the constant value variants.
type ValueKind int

const (
	VInt ValueKind = iota
	VBigInt
	VFloat
	VComplex
	VBool
	VBit
	VBitstring
	VAngle
	VDuration
)

// Value is a compile-time constant value: the result of lowering a literal
// or of constant evaluation.
type Value struct {
	Kind ValueKind

	Int     int64      // VInt
	Big     *big.Int   // VBigInt, VBitstring
	Float   float64    // VFloat, VDuration
	Complex complex128 // VComplex
	Bool    bool       // VBool, VBit
	Width   int        // VBitstring
	Angle   Angle      // VAngle

	Unit syntax.TimeUnit // VDuration
}

func IntValue(v int64) *Value          { return &Value{Kind: VInt, Int: v} }
func BigIntValue(v *big.Int) *Value    { return &Value{Kind: VBigInt, Big: v} }
func FloatValue(v float64) *Value      { return &Value{Kind: VFloat, Float: v} }
func ComplexValue(v complex128) *Value { return &Value{Kind: VComplex, Complex: v} }
func BoolValue(v bool) *Value          { return &Value{Kind: VBool, Bool: v} }
func BitValue(v bool) *Value           { return &Value{Kind: VBit, Bool: v} }
func AngleValue(a Angle) *Value        { return &Value{Kind: VAngle, Angle: a} }

func BitstringValue(v *big.Int, width int) *Value {
	return &Value{Kind: VBitstring, Big: v, Width: width}
}

func DurationValue(v float64, unit syntax.TimeUnit) *Value {
	return &Value{Kind: VDuration, Float: v, Unit: unit}
}

// AsInt returns the value as an int64 if it has an integral kind small
// enough to fit.
func (v *Value) AsInt() (int64, bool) {
	switch v.Kind {
	case VInt:
		return v.Int, true
	case VBigInt, VBitstring:
		if v.Big.IsInt64() {
			return v.Big.Int64(), true
		}
	case VBool, VBit:
		if v.Bool {
			return 1, true
		}
		return 0, true
	}

	return 0, false
}

func (v *Value) String() string {
	switch v.Kind {
	case VInt:
		return fmt.Sprintf("%d", v.Int)
	case VBigInt:
		return v.Big.String()
	case VFloat:
		return fmt.Sprintf("%v", v.Float)
	case VComplex:
		return fmt.Sprintf("%v", v.Complex)
	case VBool:
		return fmt.Sprintf("%v", v.Bool)
	case VBit:
		if v.Bool {
			return "1"
		}
		return "0"
	case VBitstring:
		return fmt.Sprintf("\"%0*b\"", v.Width, v.Big)
	case VAngle:
		return v.Angle.String()
	case VDuration:
		return fmt.Sprintf("%v %s", v.Float, v.Unit)
	}

	return "?"
}
