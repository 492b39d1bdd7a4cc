package lower

import (
	"math/big"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/types"
)

// castToType converts an expression to a target type, inserting an implicit
// cast node when the types differ, and reports a diagnostic when no
// conversion exists.  Literals take the value-aware coercion path so that eg.
// `bit[4] b = 10;` lowers to the exact bitstring rather than a runtime cast.
func (l *Lowerer) castToType(ty *types.Type, expr *semast.Expr) *semast.Expr {
	if lit, ok := expr.Kind.(*semast.LitExpr); ok && l.literalCoercible(ty, expr, lit.Value) {
		return l.coerceLiteral(ty, expr, lit.Value)
	}

	return l.castExpr(ty, expr)
}

// castExpr converts a non-literal expression to a target type, reporting a
// diagnostic on failure and returning the unconverted expression so lowering
// can continue.
func (l *Lowerer) castExpr(ty *types.Type, expr *semast.Expr) *semast.Expr {
	if ty.IsErr() || expr.Ty.IsErr() {
		// The error type absorbs conversions silently; a diagnostic has
		// already been reported for whatever made it an error.
		return semast.ErrExpr(expr.Span)
	}

	if cast := tryCastExpr(ty, expr); cast != nil {
		return cast
	}

	l.pushInvalidCastError(ty, expr.Ty, expr.Span)
	return expr
}

// tryCastExpr converts an expression to a target type if a conversion exists,
// or returns nil.  It never reports diagnostics.
func tryCastExpr(ty *types.Type, expr *semast.Expr) *semast.Expr {
	if types.Equal(ty, expr.Ty) {
		return expr
	}

	if types.EqualExceptConst(ty, expr.Ty) {
		if expr.Ty.IsConst() {
			// A const value converts to its non-const type without a cast.
			out := *expr
			out.Ty = ty
			return &out
		}

		// A non-const value can never become const.
		return nil
	}

	if ty.IsErr() || expr.Ty.IsErr() {
		// The error type absorbs conversions silently; a diagnostic has
		// already been reported for whatever made it an error.
		return nil
	}

	if sameFamilyWidening(ty, expr.Ty) || types.CanCast(ty, expr.Ty) {
		return wrapInCast(ty, expr)
	}

	return nil
}

// sameFamilyWidening reports the conversions between two widths of the same
// scalar family that are always safe: dropping the width entirely, or growing
// it.
func sameFamilyWidening(target, source *types.Type) bool {
	switch target.Kind {
	case types.KAngle, types.KFloat, types.KComplex:
	default:
		return false
	}

	if target.Kind != source.Kind {
		return false
	}

	if target.Width == types.NoWidth && source.Width != types.NoWidth {
		return true
	}

	return source.Width != types.NoWidth && target.Width >= source.Width
}

func wrapInCast(ty *types.Type, expr *semast.Expr) *semast.Expr {
	return semast.NewExpr(expr.Span, &semast.CastExpr{Ty: ty, Arg: expr}, ty)
}

// -----------------------------------------------------------------------------

// literalCoercible reports whether a literal can be converted to the target
// type by rebuilding its value rather than wrapping it in a cast.
func (l *Lowerer) literalCoercible(ty *types.Type, expr *semast.Expr, val *semast.Value) bool {
	if types.CanCastLiteral(ty, expr.Ty) {
		return true
	}

	if v, ok := val.AsInt(); ok && val.Kind == semast.VInt {
		return types.CanCastLiteralWithKnownIntValue(ty, v)
	}

	return false
}

// coerceLiteral rebuilds a literal with the target type, converting its value
// directly.  The feasibility predicates have already accepted the conversion;
// only value-range failures report diagnostics here.
func (l *Lowerer) coerceLiteral(ty *types.Type, expr *semast.Expr, val *semast.Value) *semast.Expr {
	if types.Equal(ty, expr.Ty) {
		return expr
	}

	if types.BaseTypesEqual(ty, expr.Ty) && expr.Ty.IsConst() && ty.Width == expr.Ty.Width {
		out := *expr
		out.Ty = ty
		return &out
	}

	out := l.coerceLiteralValue(ty, val, expr.Span)
	if out == nil {
		report.ICE("cannot coerce literal of type %s to type %s", expr.Ty, ty)
	}

	return out
}

// coerceLiteralValue builds the literal of the target type holding the given
// value, or nil when no rule covers the pair.
func (l *Lowerer) coerceLiteralValue(ty *types.Type, val *semast.Value, span *report.TextSpan) *semast.Expr {
	lit := func(v *semast.Value) *semast.Expr {
		return semast.NewExpr(span, &semast.LitExpr{Value: v}, ty.AsConst())
	}

	switch ty.Kind {
	case types.KBit:
		switch val.Kind {
		case semast.VInt:
			if val.Int == 0 || val.Int == 1 {
				return lit(semast.BitValue(val.Int == 1))
			}
			l.errorf(ErrInvalidCastValueRange, span, "value %d is not a valid bit", val.Int)
			return semast.ErrExprOf(span, ty)
		case semast.VBool, semast.VBit:
			return lit(semast.BitValue(val.Bool))
		case semast.VAngle:
			return lit(semast.BitValue(val.Angle.Value != 0))
		}

	case types.KBool:
		switch val.Kind {
		case semast.VBool, semast.VBit:
			return lit(semast.BoolValue(val.Bool))
		case semast.VInt:
			return lit(semast.BoolValue(val.Int != 0))
		}

	case types.KInt, types.KUInt:
		switch val.Kind {
		case semast.VInt:
			if !intFitsWidth(ty, val.Int) {
				l.errorf(ErrInvalidCastValueRange, span, "value %d does not fit in type %s", val.Int, ty)
				return semast.ErrExprOf(span, ty)
			}
			return lit(semast.IntValue(val.Int))
		case semast.VBigInt:
			if !bigFitsWidth(ty, val.Big) {
				l.errorf(ErrInvalidCastValueRange, span, "value %s does not fit in type %s", val.Big, ty)
				return semast.ErrExprOf(span, ty)
			}
			return lit(semast.BigIntValue(val.Big))
		case semast.VBool, semast.VBit:
			v, _ := val.AsInt()
			return lit(semast.IntValue(v))
		case semast.VFloat:
			return lit(semast.IntValue(int64(val.Float)))
		}

	case types.KFloat:
		switch val.Kind {
		case semast.VInt:
			return lit(semast.FloatValue(float64(val.Int)))
		case semast.VFloat:
			return lit(semast.FloatValue(val.Float))
		}

	case types.KAngle:
		switch val.Kind {
		case semast.VFloat:
			return lit(semast.AngleValue(semast.AngleFromFloatMaybeSized(val.Float, ty.Width)))
		case semast.VAngle:
			w := ty.Width
			if w == types.NoWidth {
				w = semast.AngleDefaultSize
			}
			return lit(semast.AngleValue(val.Angle.Cast(w)))
		case semast.VInt:
			// Only the literal zero reaches here, by the value-aware rule.
			return lit(semast.AngleValue(semast.AngleFromFloatMaybeSized(0, ty.Width)))
		case semast.VBitstring:
			if ty.Width == val.Width {
				return lit(semast.AngleValue(semast.Angle{Value: val.Big.Uint64(), Size: ty.Width}))
			}
		}

	case types.KComplex:
		switch val.Kind {
		case semast.VInt:
			return lit(semast.ComplexValue(complex(float64(val.Int), 0)))
		case semast.VFloat:
			return lit(semast.ComplexValue(complex(val.Float, 0)))
		case semast.VComplex:
			return lit(semast.ComplexValue(val.Complex))
		}

	case types.KBitArray:
		switch val.Kind {
		case semast.VInt:
			if val.Int < 0 || !fitsBits(big.NewInt(val.Int), ty.Size) {
				l.errorf(ErrInvalidCastValueRange, span, "value %d does not fit in bit[%d]", val.Int, ty.Size)
				return semast.ErrExprOf(span, ty)
			}
			return lit(semast.BitstringValue(big.NewInt(val.Int), ty.Size))
		case semast.VBigInt:
			if val.Big.Sign() < 0 || !fitsBits(val.Big, ty.Size) {
				l.errorf(ErrInvalidCastValueRange, span, "value %s does not fit in bit[%d]", val.Big, ty.Size)
				return semast.ErrExprOf(span, ty)
			}
			return lit(semast.BitstringValue(val.Big, ty.Size))
		case semast.VBitstring:
			if !fitsBits(val.Big, ty.Size) {
				l.errorf(ErrInvalidCastValueRange, span, "value %s does not fit in bit[%d]", val, ty.Size)
				return semast.ErrExprOf(span, ty)
			}
			return lit(semast.BitstringValue(val.Big, ty.Size))
		case semast.VAngle:
			if val.Angle.Size == ty.Size {
				return lit(semast.BitstringValue(new(big.Int).SetUint64(val.Angle.Value), ty.Size))
			}
		}
	}

	return nil
}

// intFitsWidth reports whether a value fits in the signed or unsigned range
// of a sized integer type.  Unsized types always fit.
func intFitsWidth(ty *types.Type, v int64) bool {
	if ty.Kind == types.KUInt && v < 0 {
		return false
	}

	w := ty.Width
	if w == types.NoWidth || w >= 64 {
		return true
	}

	if ty.Kind == types.KUInt {
		return v < int64(1)<<w
	}

	return v >= -(int64(1)<<(w-1)) && v < int64(1)<<(w-1)
}

func bigFitsWidth(ty *types.Type, v *big.Int) bool {
	w := ty.Width
	if w == types.NoWidth {
		return true
	}

	if ty.Kind == types.KUInt {
		return v.Sign() >= 0 && v.BitLen() <= w
	}

	bound := new(big.Int).Lsh(big.NewInt(1), uint(w-1))
	return v.Cmp(new(big.Int).Neg(bound)) >= 0 && v.Cmp(bound) < 0
}

func fitsBits(v *big.Int, size int) bool {
	return v.BitLen() <= size
}
