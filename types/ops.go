package types

import "qasmc/syntax"

// UnaryOpApplies returns whether the unary operator can be applied to the
// type directly, without coercion.
func UnaryOpApplies(op syntax.UnaryOp, ty *Type) bool {
	switch op {
	case syntax.OpNotB:
		switch ty.Kind {
		case KBit, KUInt, KAngle, KBitArray:
			return true
		}
		return false
	case syntax.OpNotL:
		return ty.Kind == KBool
	case syntax.OpNeg:
		switch ty.Kind {
		case KInt, KFloat, KAngle:
			return true
		}
		return false
	}

	return false
}

// BinOpRequiresAsymmetricAngleOp reports the angle operations that do not
// follow the symmetric promotion lattice: dividing an angle by an angle or an
// integer, and multiplying an angle by an integer on either side.
func BinOpRequiresAsymmetricAngleOp(op syntax.BinOp, lhs, rhs *Type) bool {
	intKind := func(t *Type) bool { return t.Kind == KInt || t.Kind == KUInt }

	switch op {
	case syntax.OpDiv:
		return lhs.Kind == KAngle && (intKind(rhs) || rhs.Kind == KAngle)
	case syntax.OpMul:
		return (lhs.Kind == KAngle && intKind(rhs)) || (intKind(lhs) && rhs.Kind == KAngle)
	}

	return false
}

// BinOpRequiresIntConversion reports whether the operands are equal-size bit
// registers under a comparison: bit registers can be compared, but need to be
// converted to int first.
func BinOpRequiresIntConversion(op syntax.BinOp, lhs, rhs *Type) bool {
	switch op {
	case syntax.OpEq, syntax.OpNeq, syntax.OpGt, syntax.OpGte, syntax.OpLt, syntax.OpLte:
		return lhs.Kind == KBitArray && rhs.Kind == KBitArray && lhs.Size == rhs.Size
	}

	return false
}

// RequiresSymmetricConversion reports whether the operator applies symmetric
// arithmetic conversions to its operands.  Every operator does except the
// shifts.
func RequiresSymmetricConversion(op syntax.BinOp) bool {
	switch op {
	case syntax.OpShl, syntax.OpShr:
		return false
	}

	return true
}

// RequiresSymmetricUIntConversion reports whether the operator promotes its
// right operand to uint: only the shift operators.
func RequiresSymmetricUIntConversion(op syntax.BinOp) bool {
	return op == syntax.OpShl || op == syntax.OpShr
}

// IsComplexBinOpSupported reports whether the operator is defined on complex
// operands.
func IsComplexBinOpSupported(op syntax.BinOp) bool {
	switch op {
	case syntax.OpAdd, syntax.OpSub, syntax.OpMul, syntax.OpDiv, syntax.OpExp:
		return true
	}

	return false
}

// BinaryOpSupported returns whether the binary op is defined for operands of
// the given types once all conversions have been made explicit by the
// lowerer's inserted casts.
func BinaryOpSupported(op syntax.BinOp, lhs, rhs *Type) bool {
	bitLike := func(t *Type) bool {
		switch t.Kind {
		case KUInt, KAngle, KBit, KBitArray:
			return true
		}
		return false
	}

	switch op {
	case syntax.OpShl, syntax.OpShr:
		// The shift count must always be uint.
		return bitLike(lhs) && rhs.Kind == KUInt
	case syntax.OpAndB, syntax.OpOrB, syntax.OpXorB:
		return BaseTypesEqual(lhs, rhs) && bitLike(lhs)
	case syntax.OpAndL, syntax.OpOrL:
		return lhs.Kind == KBool && rhs.Kind == KBool
	case syntax.OpEq, syntax.OpNeq, syntax.OpGt, syntax.OpGte, syntax.OpLt, syntax.OpLte:
		if !BaseTypesEqual(lhs, rhs) {
			return false
		}
		switch lhs.Kind {
		case KInt, KUInt, KAngle, KBit, KBitArray, KBool, KFloat:
			return true
		}
		return false
	default:
		if !BaseTypesEqual(lhs, rhs) {
			return false
		}
		switch lhs.Kind {
		case KInt, KUInt, KFloat, KComplex, KAngle:
			return true
		}
		return false
	}
}
