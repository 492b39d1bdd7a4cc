package types

// This file holds the cast-feasibility matrices between the classical types.
// The lowerer consults these predicates before wrapping an expression in a
// cast node; a failed predicate surfaces as a CannotCast diagnostic at the
// call site, never here.

// CanCast returns whether an expression of the source type can be cast to
// the target type.  This covers general expressions; literals get the more
// permissive CanCastLiteral path since their value is known at lowering time.
func CanCast(target, source *Type) bool {
	switch source.Kind {
	case KAngle:
		// angle casts to angle, bit, bool, and a bit register of exactly its
		// own width.
		switch target.Kind {
		case KAngle, KBit, KBool:
			return true
		case KBitArray:
			return source.Width != NoWidth && target.Size == source.Width
		}
	case KBit:
		switch target.Kind {
		case KFloat, KBool, KInt, KUInt, KBitArray:
			return true
		}
	case KBool:
		switch target.Kind {
		case KBit, KBitArray, KFloat, KInt, KUInt:
			return true
		}
	case KComplex:
		// complex only casts to complex; widths are ignored since a complex
		// number is a pair of floats.
		return target.Kind == KComplex
	case KFloat:
		switch target.Kind {
		case KAngle, KInt, KUInt, KFloat, KBool, KBit, KComplex:
			return true
		}
	case KInt, KUInt:
		switch target.Kind {
		case KFloat, KInt, KUInt, KBool, KBit, KComplex:
			return true
		case KBitArray:
			return source.Width != NoWidth && target.Size == source.Width
		}
	case KBitArray:
		switch target.Kind {
		case KBool, KBit:
			return true
		case KInt, KUInt:
			return target.Width == NoWidth || target.Width == source.Size
		case KAngle:
			return target.Width == source.Size
		}
	}

	return false
}

// CanCastLiteral returns whether a literal whose lowered type is litTy can be
// coerced to the target type.
func CanCastLiteral(target, litTy *Type) bool {
	if target.Kind == KInt && litTy.Kind == KUInt {
		return true
	}

	if target.Kind == KUInt {
		return litTy.Kind == KComplex
	}

	if BaseTypesEqual(target, litTy) {
		return true
	}

	switch {
	case target.Kind == KAngle && litTy.Kind == KFloat,
		target.Kind == KBit && litTy.Kind == KAngle,
		target.Kind == KFloat && (litTy.Kind == KInt || litTy.Kind == KUInt),
		target.Kind == KComplex && (litTy.Kind == KInt || litTy.Kind == KUInt || litTy.Kind == KFloat):
		return true
	}

	if (target.Kind == KBit || target.Kind == KBool) && (litTy.Kind == KBit || litTy.Kind == KBool) {
		return true
	}

	switch target.Kind {
	case KBitArray:
		if litTy.Kind == KInt || litTy.Kind == KUInt {
			return true
		}
		return litTy.Kind == KAngle && litTy.Width == target.Size
	case KAngle:
		return litTy.Kind == KBitArray && target.Width != NoWidth && litTy.Size == target.Width
	}

	return false
}

// CanCastLiteralWithKnownIntValue returns whether an integer literal with the
// given value can be coerced to the target type based on its value alone.
func CanCastLiteralWithKnownIntValue(target *Type, value int64) bool {
	switch target.Kind {
	case KBit:
		return value == 0 || value == 1
	case KUInt:
		return value >= 0
	case KAngle:
		// Much existing OpenQASM code, and the output of common circuit
		// generators, uses the literal 0 for angles.  The language spec does
		// not allow it, but it is accepted for compatibility.
		return value == 0
	}

	return false
}
