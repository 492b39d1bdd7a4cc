package types

// This file implements the implicit-conversion lattice used when lowering
// binary operators: int/uint < float < complex, with explicit widths
// promoted to the wider of the two and a missing width only yielding to
// nothing.

// RelaxConstness returns the constness of the type two operand types promote
// to: const only when both operands are const.
func RelaxConstness(lhs, rhs *Type) bool {
	return lhs.IsConst() && rhs.IsConst()
}

// PromoteWidth computes the width of the promotion of two sized scalars.  If
// both types have a width, the result is the maximum of the two; otherwise
// the result is unsized, since an unsized type can hold any explicit width.
func PromoteWidth(lhs, rhs *Type) int {
	if lhs.Width != NoWidth && rhs.Width != NoWidth {
		return max(lhs.Width, rhs.Width)
	}

	return NoWidth
}

// effectiveWidth is like PromoteWidth except that a single explicit width
// wins over a missing one.
func effectiveWidth(lhs, rhs *Type) int {
	switch {
	case lhs.Width != NoWidth && rhs.Width != NoWidth:
		return max(lhs.Width, rhs.Width)
	case lhs.Width != NoWidth:
		return lhs.Width
	default:
		return rhs.Width
	}
}

// PromoteTypes computes the common type two operand types promote to.  If the
// types are not compatible, the result is the void type.
func PromoteTypes(lhs, rhs *Type) *Type {
	if Equal(lhs, rhs) {
		return lhs
	}

	if EqualExceptConst(lhs, rhs) {
		// If one of the types is non-const, the promotion is non-const.
		return lhs.AsNonConst()
	}

	if ty := promoteSymmetric(lhs, rhs); ty.Kind != KVoid {
		return ty
	}

	if ty := promoteAsymmetric(lhs, rhs); ty.Kind != KVoid {
		return ty
	}

	return promoteAsymmetric(rhs, lhs)
}

// promoteSymmetric promotes two types sharing a base type by relaxing their
// constness and promoting their width.
func promoteSymmetric(lhs, rhs *Type) *Type {
	isConst := RelaxConstness(lhs, rhs)

	if lhs.Kind != rhs.Kind {
		return Void()
	}

	switch lhs.Kind {
	case KBit:
		return Bit(isConst)
	case KBool:
		return Bool(isConst)
	case KInt:
		return Int(PromoteWidth(lhs, rhs), isConst)
	case KUInt:
		return UInt(PromoteWidth(lhs, rhs), isConst)
	case KAngle:
		return Angle(PromoteWidth(lhs, rhs), isConst)
	case KFloat:
		return Float(PromoteWidth(lhs, rhs), isConst)
	case KComplex:
		return Complex(PromoteWidth(lhs, rhs), isConst)
	}

	return Void()
}

// promoteAsymmetric promotes from a lesser type to a greater type following
// the casting rules.  Only one direction is matched: both combinations are
// covered by calling it twice with the arguments swapped.  C99 promotion
// covers the simple types; complex and angle follow their own rules.
func promoteAsymmetric(lhs, rhs *Type) *Type {
	isConst := RelaxConstness(lhs, rhs)

	switch lhs.Kind {
	case KBit:
		switch rhs.Kind {
		case KBool:
			return Bool(isConst)
		case KInt:
			return Int(rhs.Width, isConst)
		case KUInt:
			return UInt(rhs.Width, isConst)
		case KAngle:
			return Angle(rhs.Width, isConst)
		}
	case KBool:
		switch rhs.Kind {
		case KInt:
			return Int(rhs.Width, isConst)
		case KUInt:
			return UInt(rhs.Width, isConst)
		case KFloat:
			return Float(rhs.Width, isConst)
		case KComplex:
			return Complex(rhs.Width, isConst)
		}
	case KUInt:
		switch rhs.Kind {
		case KInt:
			return Int(PromoteWidth(lhs, rhs), isConst)
		case KFloat:
			return Float(PromoteWidth(lhs, rhs), isConst)
		case KComplex:
			return Complex(PromoteWidth(lhs, rhs), isConst)
		}
	case KInt:
		switch rhs.Kind {
		case KFloat:
			return Float(PromoteWidth(lhs, rhs), isConst)
		case KComplex:
			return Complex(PromoteWidth(lhs, rhs), isConst)
		}
	case KAngle:
		if rhs.Kind == KFloat {
			return Float(PromoteWidth(lhs, rhs), isConst)
		}
	case KFloat:
		if rhs.Kind == KComplex {
			return Complex(PromoteWidth(lhs, rhs), isConst)
		}
	}

	return Void()
}

// -----------------------------------------------------------------------------

// PromoteToUInt computes the common uint type for a bitwise operation.  It
// returns the promoted type and the per-side uint conversions; a nil promoted
// type means at least one side has no uint representation, and the nil side
// conversions identify which.
func PromoteToUInt(lhs, rhs *Type) (ty, lhsUInt, rhsUInt *Type) {
	isConst := RelaxConstness(lhs, rhs)
	lhsUInt = uintTy(lhs)
	rhsUInt = uintTy(rhs)

	if lhsUInt != nil && rhsUInt != nil {
		ty = UInt(effectiveWidth(lhsUInt, rhsUInt), isConst)
	}

	return ty, lhsUInt, rhsUInt
}

// uintTy returns the uint representation of the type, or nil if it has none.
func uintTy(ty *Type) *Type {
	switch ty.Kind {
	case KInt, KUInt, KAngle:
		return UInt(ty.Width, ty.IsConst())
	case KBool, KBit:
		return UInt(1, ty.IsConst())
	case KBitArray:
		return UInt(ty.Size, ty.IsConst())
	}

	return nil
}

// -----------------------------------------------------------------------------

// TryPromoteWithCasting is the fallback promotion used when the regular
// lattice fails: it promotes a bit register against a matching int, and
// otherwise promotes each side against an unsized float and takes the greater
// of the two results (complex > float).
func TryPromoteWithCasting(lhs, rhs *Type) *Type {
	promoted := PromoteTypes(lhs, rhs)
	if promoted.Kind != KVoid {
		return promoted
	}

	if ty := promoteBitArrayToInt(lhs, rhs); ty != nil {
		return ty
	}

	// Simple promotion failed; try a lossless cast of each side to double.
	promotedLhs := PromoteTypes(lhs, Float(NoWidth, lhs.IsConst()))
	promotedRhs := PromoteTypes(Float(NoWidth, rhs.IsConst()), rhs)

	switch {
	case promotedLhs.Kind == KVoid && promotedRhs.Kind == KVoid:
		return Float(NoWidth, false)
	case promotedLhs.Kind == KVoid:
		return promotedRhs
	case promotedRhs.Kind == KVoid:
		return promotedLhs
	case promotedLhs.Kind == KComplex:
		return promotedLhs
	case promotedRhs.Kind == KComplex:
		return promotedRhs
	case promotedLhs.Kind == KFloat:
		return promotedLhs
	case promotedRhs.Kind == KFloat:
		return promotedRhs
	default:
		return Float(NoWidth, false)
	}
}

// promoteBitArrayToInt promotes a bit register against an int or uint whose
// width matches the register size or is unset.  It returns nil if the pair
// does not qualify.
func promoteBitArrayToInt(lhs, rhs *Type) *Type {
	intKind := func(t *Type) bool { return t.Kind == KInt || t.Kind == KUInt }

	if intKind(lhs) && rhs.Kind == KBitArray {
		if lhs.Width != NoWidth && lhs.Width != rhs.Size {
			return nil
		}
		return lhs
	}

	if lhs.Kind == KBitArray && intKind(rhs) {
		if rhs.Width != NoWidth && rhs.Width != lhs.Size {
			return nil
		}
		return rhs
	}

	return nil
}
