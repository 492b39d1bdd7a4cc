package lower

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/syntax"
	"qasmc/types"
)

// lowerBinaryOp builds a binary operation from two lowered operands,
// inserting the implicit conversions the operator requires.  The result is
// fully typed; failed conversions yield error-typed operands and the walk
// continues.
func (l *Lowerer) lowerBinaryOp(op syntax.BinOp, lhs, rhs *semast.Expr, span *report.TextSpan) *semast.Expr {
	if lhs.Ty.IsQuantum() || rhs.Ty.IsQuantum() {
		l.errorf(ErrQuantumTypesInBinaryExpr, span, "quantum typed values cannot be used in binary expressions")
		return semast.ErrExpr(span)
	}

	lhs = l.retypeShiftedLiteral(op, lhs)

	leftTy := lhs.Ty.AsNonConst()

	switch {
	case binOpIsBitwiseOnBits(op, leftTy):
		return l.lowerBitwiseOp(op, lhs, rhs, span)

	case op == syntax.OpAndL || op == syntax.OpOrL:
		lhs = l.castToType(types.Bool(lhs.Ty.IsConst()), lhs)
		rhs = l.castToType(types.Bool(rhs.Ty.IsConst()), rhs)
		return l.finishBinaryOp(op, lhs, rhs, types.Bool(types.RelaxConstness(lhs.Ty, rhs.Ty)), span)

	case types.BinOpRequiresAsymmetricAngleOp(op, lhs.Ty, rhs.Ty):
		return l.lowerAngleOp(op, lhs, rhs, span)

	case types.BinOpRequiresIntConversion(op, lhs.Ty, rhs.Ty):
		intTy := types.Int(types.NoWidth, false)
		lhs = l.castToType(intTy, lhs)
		rhs = l.castToType(intTy, rhs)
		return l.finishBinaryOp(op, lhs, rhs, types.Bool(false), span)

	case types.RequiresSymmetricConversion(op):
		promoted := types.TryPromoteWithCasting(lhs.Ty, rhs.Ty)
		lhs = l.castToType(promoted, lhs)
		rhs = l.castToType(promoted, rhs)
		resultTy := promoted
		if op.IsComparison() {
			resultTy = types.Bool(types.RelaxConstness(lhs.Ty, rhs.Ty))
		}
		return l.finishBinaryOp(op, lhs, rhs, resultTy, span)

	default:
		// Shifts: the count converts to uint, the shifted side keeps its type.
		rhs = l.castToType(types.UInt(types.NoWidth, rhs.Ty.IsConst()), rhs)
		return l.finishBinaryOp(op, lhs, rhs, leftTy, span)
	}
}

// retypeShiftedLiteral re-types an untyped integer literal on the left of a
// shift as uint, so `1 << n` shifts an unsigned value.
func (l *Lowerer) retypeShiftedLiteral(op syntax.BinOp, lhs *semast.Expr) *semast.Expr {
	if op != syntax.OpShl && op != syntax.OpShr {
		return lhs
	}

	if _, ok := lhs.Kind.(*semast.LitExpr); !ok || lhs.Ty.Kind != types.KInt {
		return lhs
	}

	out := *lhs
	out.Ty = types.UInt(lhs.Ty.Width, true)
	return &out
}

// binOpIsBitwiseOnBits reports whether the operation is a bitwise operation
// whose left side already has a bit-like representation, which triggers the
// uint conversion path.
func binOpIsBitwiseOnBits(op syntax.BinOp, leftTy *types.Type) bool {
	switch op {
	case syntax.OpAndB, syntax.OpOrB, syntax.OpXorB, syntax.OpShl, syntax.OpShr:
	default:
		return false
	}

	switch leftTy.Kind {
	case types.KBit, types.KUInt, types.KBitArray:
		return true
	}

	return false
}

// lowerBitwiseOp lowers a bitwise operation by promoting both sides to a
// common uint, then casting the result back to the left operand's type so
// that eg. a bit register AND yields a bit register.
func (l *Lowerer) lowerBitwiseOp(op syntax.BinOp, lhs, rhs *semast.Expr, span *report.TextSpan) *semast.Expr {
	leftTy := lhs.Ty.AsNonConst()

	promoted, lhsUInt, rhsUInt := types.PromoteToUInt(lhs.Ty, rhs.Ty)
	if promoted == nil {
		if lhsUInt == nil {
			l.pushInvalidCastError(types.UInt(types.NoWidth, false), lhs.Ty, lhs.Span)
		}
		if rhsUInt == nil {
			l.pushInvalidCastError(types.UInt(types.NoWidth, false), rhs.Ty, rhs.Span)
		}
		return semast.ErrExpr(span)
	}

	lhs = l.castToType(promoted, lhs)
	if types.RequiresSymmetricUIntConversion(op) {
		// A shift count converts to uint but does not join the promotion.
		rhs = l.castToType(types.UInt(types.NoWidth, rhs.Ty.IsConst()), rhs)
	} else {
		rhs = l.castToType(promoted, rhs)
	}

	bin := l.finishBinaryOp(op, lhs, rhs, promoted, span)
	if op.IsComparison() {
		return bin
	}

	return l.castToType(leftTy, bin)
}

// lowerAngleOp lowers the asymmetric angle operations: angle/angle yields a
// dimensionless uint, and angle scaled by an integer keeps the angle's
// width.
func (l *Lowerer) lowerAngleOp(op syntax.BinOp, lhs, rhs *semast.Expr, span *report.TextSpan) *semast.Expr {
	if lhs.Ty.Kind == types.KAngle && rhs.Ty.Kind == types.KAngle {
		promoted := types.Angle(types.PromoteWidth(lhs.Ty, rhs.Ty), types.RelaxConstness(lhs.Ty, rhs.Ty))
		lhs = l.castToType(promoted, lhs)
		rhs = l.castToType(promoted, rhs)
		return l.finishBinaryOp(op, lhs, rhs, types.UInt(promoted.Width, promoted.IsConst()), span)
	}

	// One side is the angle, the other an integer scale factor that converts
	// to a uint of the angle's width.
	angle, other := lhs, rhs
	if rhs.Ty.Kind == types.KAngle {
		angle, other = rhs, lhs
	}

	uintTy := types.UInt(angle.Ty.Width, other.Ty.IsConst())
	converted := l.castToType(uintTy, other)

	resultTy := types.Angle(angle.Ty.Width, types.RelaxConstness(angle.Ty, other.Ty))
	if angle == lhs {
		return l.finishBinaryOp(op, angle, converted, resultTy, span)
	}

	return l.finishBinaryOp(op, converted, angle, resultTy, span)
}

// finishBinaryOp builds the final node, rejecting operand types the operator
// is not defined on and complex operands of non-arithmetic operators.
func (l *Lowerer) finishBinaryOp(op syntax.BinOp, lhs, rhs *semast.Expr, ty *types.Type, span *report.TextSpan) *semast.Expr {
	if lhs.Ty.IsErr() || rhs.Ty.IsErr() {
		return semast.ErrExprOf(span, ty)
	}

	if (lhs.Ty.Kind == types.KComplex || rhs.Ty.Kind == types.KComplex) && !types.IsComplexBinOpSupported(op) {
		l.errorf(ErrOperatorNotAllowedForComplex, span, "the operator %s is not allowed for complex values", op)
		return semast.ErrExpr(span)
	}

	if !types.BinaryOpSupported(op, lhs.Ty, rhs.Ty) {
		l.errorf(ErrCannotCast, span, "operator %s is not supported between types %s and %s", op, lhs.Ty, rhs.Ty)
		return semast.ErrExprOf(span, ty)
	}

	expr := semast.NewExpr(span, &semast.BinaryOpExpr{Op: op, Lhs: lhs, Rhs: rhs}, ty)
	if ty.IsConst() {
		expr.ConstValue = l.ConstEval(expr)
	}

	return expr
}
