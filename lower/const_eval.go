package lower

import (
	"math"
	"math/big"

	"qasmc/semast"
	"qasmc/syntax"
	"qasmc/types"
)

// ConstEval evaluates an already-lowered expression to a constant value, or
// returns nil when the expression is not compile-time evaluable.  Evaluation
// itself is silent; the arithmetic errors it can surface (eg. division by
// zero) do report diagnostics.
func (l *Lowerer) ConstEval(expr *semast.Expr) *semast.Value {
	if expr.ConstValue != nil {
		return expr.ConstValue
	}

	switch kind := expr.Kind.(type) {
	case *semast.LitExpr:
		return kind.Value

	case *semast.IdentExpr:
		return l.symbols.Get(kind.Symbol).ConstValue

	case *semast.CapturedIdentExpr:
		return l.symbols.Get(kind.Symbol).ConstValue

	case *semast.CastExpr:
		arg := l.ConstEval(kind.Arg)
		if arg == nil {
			return nil
		}
		return l.constEvalCast(kind.Ty, kind.Arg.Ty, arg, expr)

	case *semast.UnaryOpExpr:
		operand := l.ConstEval(kind.Operand)
		if operand == nil {
			return nil
		}
		return constEvalUnary(kind.Op, operand)

	case *semast.BinaryOpExpr:
		lhs := l.ConstEval(kind.Lhs)
		rhs := l.ConstEval(kind.Rhs)
		if lhs == nil || rhs == nil {
			return nil
		}
		return l.constEvalBinary(kind.Op, lhs, rhs, expr)
	}

	return nil
}

// -----------------------------------------------------------------------------

func constEvalUnary(op syntax.UnaryOp, v *semast.Value) *semast.Value {
	switch op {
	case syntax.OpNeg:
		switch v.Kind {
		case semast.VInt:
			return semast.IntValue(-v.Int)
		case semast.VBigInt:
			return semast.BigIntValue(new(big.Int).Neg(v.Big))
		case semast.VFloat:
			return semast.FloatValue(-v.Float)
		case semast.VAngle:
			return semast.AngleValue(v.Angle.Neg())
		}

	case syntax.OpNotL:
		if v.Kind == semast.VBool {
			return semast.BoolValue(!v.Bool)
		}

	case syntax.OpNotB:
		switch v.Kind {
		case semast.VBit:
			return semast.BitValue(!v.Bool)
		case semast.VInt:
			return semast.IntValue(^v.Int)
		case semast.VAngle:
			return semast.AngleValue(v.Angle.NotB())
		case semast.VBitstring:
			mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(v.Width)), big.NewInt(1))
			return semast.BitstringValue(new(big.Int).Xor(v.Big, mask), v.Width)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (l *Lowerer) constEvalBinary(op syntax.BinOp, lhs, rhs *semast.Value, expr *semast.Expr) *semast.Value {
	switch lhs.Kind {
	case semast.VInt:
		return l.constEvalBinaryInt(op, lhs, rhs, expr)
	case semast.VFloat:
		return constEvalBinaryFloat(op, lhs, rhs)
	case semast.VComplex:
		return constEvalBinaryComplex(op, lhs, rhs)
	case semast.VBool:
		return constEvalBinaryBool(op, lhs, rhs)
	case semast.VBit:
		return constEvalBinaryBit(op, lhs, rhs)
	case semast.VAngle:
		return l.constEvalBinaryAngle(op, lhs, rhs, expr)
	case semast.VBitstring:
		return constEvalBinaryBitstring(op, lhs, rhs)
	}

	return nil
}

func (l *Lowerer) constEvalBinaryInt(op syntax.BinOp, lhs, rhs *semast.Value, expr *semast.Expr) *semast.Value {
	a := lhs.Int

	// Shift counts come pre-cast to uint, so the right side may legitimately
	// be a different kind than the left.
	b, ok := rhs.AsInt()
	if !ok {
		return nil
	}

	// The operand types match by construction; the result width of a sized
	// operation wraps modulo 2^w.
	wrap := func(v int64) *semast.Value {
		if w := expr.Ty.Width; w != types.NoWidth && w < 64 && expr.Ty.Kind == types.KUInt {
			v &= int64(1)<<w - 1
		}
		return semast.IntValue(v)
	}

	switch op {
	case syntax.OpAdd:
		return wrap(a + b)
	case syntax.OpSub:
		return wrap(a - b)
	case syntax.OpMul:
		return wrap(a * b)
	case syntax.OpDiv:
		if b == 0 {
			l.errorf(ErrDivisionByZero, expr.Span, "division by zero error during const evaluation")
			return nil
		}
		return wrap(a / b)
	case syntax.OpMod:
		if b == 0 {
			l.errorf(ErrDivisionByZero, expr.Span, "division by zero error during const evaluation")
			return nil
		}
		return wrap(a % b)
	case syntax.OpExp:
		if b < 0 {
			return nil
		}
		result := int64(1)
		for i := int64(0); i < b; i++ {
			result *= a
		}
		return wrap(result)
	case syntax.OpAndB:
		return wrap(a & b)
	case syntax.OpOrB:
		return wrap(a | b)
	case syntax.OpXorB:
		return wrap(a ^ b)
	case syntax.OpShl:
		if b >= 64 {
			return wrap(0)
		}
		return wrap(a << b)
	case syntax.OpShr:
		if b >= 64 {
			return wrap(0)
		}
		return wrap(a >> b)
	case syntax.OpEq:
		return semast.BoolValue(a == b)
	case syntax.OpNeq:
		return semast.BoolValue(a != b)
	case syntax.OpGt:
		return semast.BoolValue(a > b)
	case syntax.OpGte:
		return semast.BoolValue(a >= b)
	case syntax.OpLt:
		return semast.BoolValue(a < b)
	case syntax.OpLte:
		return semast.BoolValue(a <= b)
	}

	return nil
}

func constEvalBinaryFloat(op syntax.BinOp, lhs, rhs *semast.Value) *semast.Value {
	if rhs.Kind != semast.VFloat {
		return nil
	}

	a, b := lhs.Float, rhs.Float
	switch op {
	case syntax.OpAdd:
		return semast.FloatValue(a + b)
	case syntax.OpSub:
		return semast.FloatValue(a - b)
	case syntax.OpMul:
		return semast.FloatValue(a * b)
	case syntax.OpDiv:
		return semast.FloatValue(a / b)
	case syntax.OpMod:
		return semast.FloatValue(math.Mod(a, b))
	case syntax.OpExp:
		return semast.FloatValue(math.Pow(a, b))
	case syntax.OpEq:
		return semast.BoolValue(a == b)
	case syntax.OpNeq:
		return semast.BoolValue(a != b)
	case syntax.OpGt:
		return semast.BoolValue(a > b)
	case syntax.OpGte:
		return semast.BoolValue(a >= b)
	case syntax.OpLt:
		return semast.BoolValue(a < b)
	case syntax.OpLte:
		return semast.BoolValue(a <= b)
	}

	return nil
}

func constEvalBinaryComplex(op syntax.BinOp, lhs, rhs *semast.Value) *semast.Value {
	if rhs.Kind != semast.VComplex {
		return nil
	}

	a, b := lhs.Complex, rhs.Complex
	switch op {
	case syntax.OpAdd:
		return semast.ComplexValue(a + b)
	case syntax.OpSub:
		return semast.ComplexValue(a - b)
	case syntax.OpMul:
		return semast.ComplexValue(a * b)
	case syntax.OpDiv:
		return semast.ComplexValue(a / b)
	case syntax.OpExp:
		return semast.ComplexValue(cpow(a, b))
	}

	return nil
}

func cpow(a, b complex128) complex128 {
	if a == 0 && b == 0 {
		return 1
	}

	mag := math.Hypot(real(a), imag(a))
	arg := math.Atan2(imag(a), real(a))
	lr := complex(math.Log(mag), arg) * b
	e := math.Exp(real(lr))
	return complex(e*math.Cos(imag(lr)), e*math.Sin(imag(lr)))
}

func constEvalBinaryBool(op syntax.BinOp, lhs, rhs *semast.Value) *semast.Value {
	if rhs.Kind != semast.VBool {
		return nil
	}

	a, b := lhs.Bool, rhs.Bool
	switch op {
	case syntax.OpAndL:
		return semast.BoolValue(a && b)
	case syntax.OpOrL:
		return semast.BoolValue(a || b)
	case syntax.OpEq:
		return semast.BoolValue(a == b)
	case syntax.OpNeq:
		return semast.BoolValue(a != b)
	}

	return nil
}

func constEvalBinaryBit(op syntax.BinOp, lhs, rhs *semast.Value) *semast.Value {
	a := lhs.Bool
	switch op {
	case syntax.OpShl, syntax.OpShr:
		k, ok := rhs.AsInt()
		if !ok {
			return nil
		}
		return semast.BitValue(a && k == 0)
	}

	if rhs.Kind != semast.VBit {
		return nil
	}

	b := rhs.Bool
	switch op {
	case syntax.OpAndB:
		return semast.BitValue(a && b)
	case syntax.OpOrB:
		return semast.BitValue(a || b)
	case syntax.OpXorB:
		return semast.BitValue(a != b)
	case syntax.OpEq:
		return semast.BoolValue(a == b)
	case syntax.OpNeq:
		return semast.BoolValue(a != b)
	}

	return nil
}

func (l *Lowerer) constEvalBinaryAngle(op syntax.BinOp, lhs, rhs *semast.Value, expr *semast.Expr) *semast.Value {
	a := lhs.Angle

	// Division by an angle or integer, multiplication by an integer, and
	// shifts pair an angle with an integer operand.
	if k, ok := rhs.AsInt(); ok && rhs.Kind != semast.VBit {
		switch op {
		case syntax.OpMul:
			return semast.AngleValue(a.MulUInt(uint64(k)))
		case syntax.OpDiv:
			if k == 0 {
				l.errorf(ErrDivisionByZero, expr.Span, "division by zero error during const evaluation")
				return nil
			}
			return semast.AngleValue(a.DivUInt(uint64(k)))
		case syntax.OpShl:
			return semast.AngleValue(a.Shl(uint64(k)))
		case syntax.OpShr:
			return semast.AngleValue(a.Shr(uint64(k)))
		}
	}

	if rhs.Kind != semast.VAngle {
		return nil
	}

	b := rhs.Angle
	switch op {
	case syntax.OpAdd:
		return semast.AngleValue(a.Add(b))
	case syntax.OpSub:
		return semast.AngleValue(a.Sub(b))
	case syntax.OpDiv:
		if b.Value == 0 {
			l.errorf(ErrDivisionByZero, expr.Span, "division by zero error during const evaluation")
			return nil
		}
		return semast.IntValue(int64(a.DivAngle(b)))
	case syntax.OpAndB:
		return semast.AngleValue(a.AndB(b))
	case syntax.OpOrB:
		return semast.AngleValue(a.OrB(b))
	case syntax.OpXorB:
		return semast.AngleValue(a.XorB(b))
	case syntax.OpEq:
		return semast.BoolValue(a.Value == b.Value)
	case syntax.OpNeq:
		return semast.BoolValue(a.Value != b.Value)
	case syntax.OpGt:
		return semast.BoolValue(a.Value > b.Value)
	case syntax.OpGte:
		return semast.BoolValue(a.Value >= b.Value)
	case syntax.OpLt:
		return semast.BoolValue(a.Value < b.Value)
	case syntax.OpLte:
		return semast.BoolValue(a.Value <= b.Value)
	}

	return nil
}

func constEvalBinaryBitstring(op syntax.BinOp, lhs, rhs *semast.Value) *semast.Value {
	a := lhs.Big

	if k, ok := rhs.AsInt(); ok && rhs.Kind != semast.VBitstring {
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(lhs.Width)), big.NewInt(1))
		switch op {
		case syntax.OpShl:
			out := new(big.Int).Lsh(a, uint(k))
			return semast.BitstringValue(out.And(out, mask), lhs.Width)
		case syntax.OpShr:
			return semast.BitstringValue(new(big.Int).Rsh(a, uint(k)), lhs.Width)
		}
	}

	if rhs.Kind != semast.VBitstring {
		return nil
	}

	b := rhs.Big
	width := max(lhs.Width, rhs.Width)
	switch op {
	case syntax.OpAndB:
		return semast.BitstringValue(new(big.Int).And(a, b), min(lhs.Width, rhs.Width))
	case syntax.OpOrB:
		return semast.BitstringValue(new(big.Int).Or(a, b), width)
	case syntax.OpXorB:
		return semast.BitstringValue(new(big.Int).Xor(a, b), width)
	case syntax.OpEq:
		return semast.BoolValue(a.Cmp(b) == 0)
	case syntax.OpNeq:
		return semast.BoolValue(a.Cmp(b) != 0)
	case syntax.OpGt:
		return semast.BoolValue(a.Cmp(b) > 0)
	case syntax.OpGte:
		return semast.BoolValue(a.Cmp(b) >= 0)
	case syntax.OpLt:
		return semast.BoolValue(a.Cmp(b) < 0)
	case syntax.OpLte:
		return semast.BoolValue(a.Cmp(b) <= 0)
	}

	return nil
}

// -----------------------------------------------------------------------------

// constEvalCast converts a constant value across a cast node.  The cast was
// admitted by the feasibility matrices; a pair with no evaluation rule simply
// stays symbolic.
func (l *Lowerer) constEvalCast(target, source *types.Type, v *semast.Value, expr *semast.Expr) *semast.Value {
	switch target.Kind {
	case types.KBool:
		switch v.Kind {
		case semast.VBool, semast.VBit:
			return semast.BoolValue(v.Bool)
		case semast.VInt:
			return semast.BoolValue(v.Int != 0)
		case semast.VBigInt, semast.VBitstring:
			return semast.BoolValue(v.Big.Sign() != 0)
		case semast.VFloat:
			return semast.BoolValue(v.Float != 0)
		case semast.VAngle:
			return semast.BoolValue(v.Angle.Value != 0)
		}

	case types.KBit:
		switch v.Kind {
		case semast.VBool, semast.VBit:
			return semast.BitValue(v.Bool)
		case semast.VAngle:
			return semast.BitValue(v.Angle.Value != 0)
		case semast.VInt:
			return semast.BitValue(v.Int != 0)
		}

	case types.KInt, types.KUInt:
		switch v.Kind {
		case semast.VBool, semast.VBit:
			i, _ := v.AsInt()
			return semast.IntValue(i)
		case semast.VInt:
			if !intFitsWidth(target, v.Int) {
				l.errorf(ErrValueOverflow, expr.Span, "value %d does not fit in type %s", v.Int, target)
				return nil
			}
			return semast.IntValue(v.Int)
		case semast.VBigInt:
			if !bigFitsWidth(target, v.Big) {
				l.errorf(ErrValueOverflow, expr.Span, "value %s does not fit in type %s", v.Big, target)
				return nil
			}
			return semast.BigIntValue(v.Big)
		case semast.VFloat:
			return semast.IntValue(int64(v.Float))
		case semast.VBitstring:
			if v.Big.IsInt64() {
				return semast.IntValue(v.Big.Int64())
			}
			return semast.BigIntValue(v.Big)
		}

	case types.KFloat:
		switch v.Kind {
		case semast.VBool, semast.VBit:
			i, _ := v.AsInt()
			return semast.FloatValue(float64(i))
		case semast.VInt:
			return semast.FloatValue(float64(v.Int))
		case semast.VFloat:
			return semast.FloatValue(v.Float)
		}

	case types.KAngle:
		w := target.Width
		if w == types.NoWidth {
			w = semast.AngleDefaultSize
		}
		switch v.Kind {
		case semast.VFloat:
			return semast.AngleValue(semast.AngleFromFloat(v.Float, w))
		case semast.VAngle:
			return semast.AngleValue(v.Angle.Cast(w))
		case semast.VBitstring:
			if target.Width == v.Width {
				return semast.AngleValue(semast.Angle{Value: v.Big.Uint64(), Size: v.Width})
			}
		}

	case types.KComplex:
		switch v.Kind {
		case semast.VInt:
			return semast.ComplexValue(complex(float64(v.Int), 0))
		case semast.VFloat:
			return semast.ComplexValue(complex(v.Float, 0))
		case semast.VComplex:
			return semast.ComplexValue(v.Complex)
		}

	case types.KBitArray:
		switch v.Kind {
		case semast.VBool, semast.VBit:
			i, _ := v.AsInt()
			return semast.BitstringValue(big.NewInt(i), target.Size)
		case semast.VInt:
			if v.Int < 0 || !fitsBits(big.NewInt(v.Int), target.Size) {
				l.errorf(ErrValueOverflow, expr.Span, "value %d does not fit in bit[%d]", v.Int, target.Size)
				return nil
			}
			return semast.BitstringValue(big.NewInt(v.Int), target.Size)
		case semast.VBigInt:
			if v.Big.Sign() < 0 || !fitsBits(v.Big, target.Size) {
				l.errorf(ErrValueOverflow, expr.Span, "value %s does not fit in bit[%d]", v.Big, target.Size)
				return nil
			}
			return semast.BitstringValue(v.Big, target.Size)
		case semast.VBitstring:
			if !fitsBits(v.Big, target.Size) {
				l.errorf(ErrValueOverflow, expr.Span, "value %s does not fit in bit[%d]", v, target.Size)
				return nil
			}
			return semast.BitstringValue(v.Big, target.Size)
		case semast.VAngle:
			if target.Size == v.Angle.Size {
				return semast.BitstringValue(new(big.Int).SetUint64(v.Angle.Value), target.Size)
			}
		}
	}

	_ = source
	return nil
}

// -----------------------------------------------------------------------------

// constEvalInt lowers an expression, casts it to const int, and evaluates
// it.  The designator helpers build on this.
func (l *Lowerer) constEvalInt(expr syntax.Expr) (*semast.Expr, *semast.Value) {
	lowered := l.lowerExpr(expr)
	if lowered.Ty.IsErr() {
		return lowered, nil
	}

	cast := l.castToType(types.Int(types.NoWidth, true), lowered)
	if cast.Ty.IsErr() || !types.EqualExceptConst(cast.Ty, types.Int(types.NoWidth, true)) {
		return cast, nil
	}

	return cast, l.ConstEval(cast)
}

// maxDesignator bounds every designator: sizes and widths must fit in an
// unsigned 32-bit integer.
const maxDesignator = int64(1)<<32 - 1

// constEvalArraySizeDesignator evaluates an array or register size, which
// must be a non-negative const integer.
func (l *Lowerer) constEvalArraySizeDesignator(expr syntax.Expr) (int, bool) {
	cast, val := l.constEvalInt(expr)
	if val == nil {
		if !cast.Ty.IsErr() {
			l.errorf(ErrExprMustBeConst, cast.Span, "array size must be a const expression")
		}
		return 0, false
	}

	v, ok := val.AsInt()
	if !ok || v < 0 {
		l.errorf(ErrExprMustBeNonNegativeInt, cast.Span, "array size must be a non-negative integer const expression")
		return 0, false
	}

	if v > maxDesignator {
		l.errorf(ErrDesignatorTooLarge, cast.Span, "designator is too large")
		return 0, false
	}

	return int(v), true
}

// constEvalTypeWidthDesignator evaluates a scalar type width, which must be a
// positive const integer.
func (l *Lowerer) constEvalTypeWidthDesignator(expr syntax.Expr) (int, bool) {
	cast, val := l.constEvalInt(expr)
	if val == nil {
		if !cast.Ty.IsErr() {
			l.errorf(ErrExprMustBeConst, cast.Span, "type width must be a const expression")
		}
		return 0, false
	}

	v, ok := val.AsInt()
	if !ok || v < 1 {
		l.errorf(ErrExprMustBePositiveInt, cast.Span, "type width must be a positive integer const expression")
		return 0, false
	}

	if v > maxDesignator {
		l.errorf(ErrDesignatorTooLarge, cast.Span, "designator is too large")
		return 0, false
	}

	return int(v), true
}

// constEvalQuantumRegisterSize evaluates a qubit register size, which must be
// a positive const integer.
func (l *Lowerer) constEvalQuantumRegisterSize(expr syntax.Expr) (int, bool) {
	cast, val := l.constEvalInt(expr)
	if val == nil {
		if !cast.Ty.IsErr() {
			l.errorf(ErrExprMustBeConst, cast.Span, "quantum register size must be a const expression")
		}
		return 0, false
	}

	v, ok := val.AsInt()
	if !ok || v < 1 {
		l.errorf(ErrExprMustBePositiveInt, cast.Span, "quantum register size must be a positive integer const expression")
		return 0, false
	}

	if v > maxDesignator {
		l.errorf(ErrDesignatorTooLarge, cast.Span, "designator is too large")
		return 0, false
	}

	return int(v), true
}
