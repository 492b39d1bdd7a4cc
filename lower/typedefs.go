package lower

import (
	"math/big"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/syntax"
	"qasmc/types"
)

// maxScalarWidth bounds the widths of float and angle types, whose values
// are represented in 64 bits.
const maxScalarWidth = 64

// lowerTypeDef converts a written type to a semantic type, evaluating its
// designators.  Failures produce the error type after reporting.
func (l *Lowerer) lowerTypeDef(td syntax.TypeDef, isConst bool) *types.Type {
	switch t := td.(type) {
	case *syntax.ScalarTypeDef:
		return l.lowerScalarTypeDef(t, isConst)

	case *syntax.ArrayTypeDef:
		return l.lowerArrayTypeDef(t)

	case *syntax.ArrayRefTypeDef:
		return l.lowerArrayRefTypeDef(t)
	}

	report.ICE("unhandled type definition %T", td)
	return nil
}

func (l *Lowerer) lowerScalarTypeDef(t *syntax.ScalarTypeDef, isConst bool) *types.Type {
	width := types.NoWidth
	if t.Designator != nil && t.Kind != syntax.ScalarBit {
		w, ok := l.constEvalTypeWidthDesignator(t.Designator)
		if !ok {
			return types.Err()
		}
		width = w
	}

	switch t.Kind {
	case syntax.ScalarBit:
		if t.Designator == nil {
			return types.Bit(isConst)
		}
		size, ok := l.constEvalArraySizeDesignator(t.Designator)
		if !ok {
			return types.Err()
		}
		return types.BitArray(size, isConst)

	case syntax.ScalarBool:
		return types.Bool(isConst)

	case syntax.ScalarInt:
		return types.Int(width, isConst)

	case syntax.ScalarUInt:
		return types.UInt(width, isConst)

	case syntax.ScalarFloat:
		if width > maxScalarWidth {
			l.errorf(ErrTypeMaxWidthExceeded, t.Span, "float max width is %d but %d was provided", maxScalarWidth, width)
			return types.Err()
		}
		return types.Float(width, isConst)

	case syntax.ScalarAngle:
		if width > maxScalarWidth {
			l.errorf(ErrTypeMaxWidthExceeded, t.Span, "angle max width is %d but %d was provided", maxScalarWidth, width)
			return types.Err()
		}
		return types.Angle(width, isConst)

	case syntax.ScalarComplex:
		return types.Complex(width, isConst)

	case syntax.ScalarDuration:
		return types.Duration(isConst)

	case syntax.ScalarStretch:
		return types.Stretch(isConst)
	}

	report.ICE("unhandled scalar kind %d", t.Kind)
	return nil
}

func (l *Lowerer) lowerArrayTypeDef(t *syntax.ArrayTypeDef) *types.Type {
	elem := l.lowerScalarTypeDef(t.Base, false)
	if elem.IsErr() {
		return types.Err()
	}

	if len(t.Dims) > types.MaxDims {
		l.unsupported("arrays with more than 7 dimensions", t.Span)
		return types.Err()
	}

	dims := make([]int, len(t.Dims))
	for i, d := range t.Dims {
		size, ok := l.constEvalArraySizeDesignator(d)
		if !ok {
			return types.Err()
		}
		dims[i] = size
	}

	return types.Array(elem, dims)
}

func (l *Lowerer) lowerArrayRefTypeDef(t *syntax.ArrayRefTypeDef) *types.Type {
	elem := l.lowerScalarTypeDef(t.Base, false)
	if elem.IsErr() {
		return types.Err()
	}

	if t.DimCount != nil {
		n, ok := l.constEvalArraySizeDesignator(t.DimCount)
		if !ok {
			return types.Err()
		}
		if n > types.MaxDims {
			l.unsupported("arrays with more than 7 dimensions", t.Span)
			return types.Err()
		}
		return types.DynArrayRef(elem, n, t.Mutable)
	}

	if len(t.Dims) > types.MaxDims {
		l.unsupported("arrays with more than 7 dimensions", t.Span)
		return types.Err()
	}

	dims := make([]int, len(t.Dims))
	for i, d := range t.Dims {
		size, ok := l.constEvalArraySizeDesignator(d)
		if !ok {
			return types.Err()
		}
		dims[i] = size
	}

	return types.StaticArrayRef(elem, dims, t.Mutable)
}

// -----------------------------------------------------------------------------

// defaultValue synthesizes the zero value of a classical type, used when a
// declaration has no initializer.
func (l *Lowerer) defaultValue(ty *types.Type, span *report.TextSpan) *semast.Expr {
	lit := func(v *semast.Value) *semast.Expr {
		e := semast.NewExpr(span, &semast.LitExpr{Value: v}, ty)
		e.ConstValue = v
		return e
	}

	switch ty.Kind {
	case types.KBit:
		return lit(semast.BitValue(false))
	case types.KBool:
		return lit(semast.BoolValue(false))
	case types.KInt, types.KUInt:
		return lit(semast.IntValue(0))
	case types.KFloat:
		return lit(semast.FloatValue(0))
	case types.KAngle:
		return lit(semast.AngleValue(semast.AngleFromFloatMaybeSized(0, ty.Width)))
	case types.KComplex:
		return lit(semast.ComplexValue(0))
	case types.KBitArray:
		return lit(semast.BitstringValue(big.NewInt(0), ty.Size))
	case types.KDuration, types.KStretch:
		return lit(semast.DurationValue(0, syntax.UnitDt))
	case types.KArray:
		l.unimplemented("default values for array declarations", span)
		return semast.ErrExprOf(span, ty)
	case types.KErr:
		return semast.ErrExpr(span)
	}

	report.ICE("no default value for type %s", ty)
	return nil
}
