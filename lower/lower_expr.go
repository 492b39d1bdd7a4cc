package lower

import (
	"math"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// lowerExpr lowers a syntax expression to a typed semantic expression.  It
// never returns nil: failures produce error-typed expressions that absorb
// whatever is applied to them downstream.
func (l *Lowerer) lowerExpr(expr syntax.Expr) *semast.Expr {
	switch e := expr.(type) {
	case *syntax.Lit:
		return l.lowerLit(e)

	case *syntax.IdentExpr:
		return l.lowerIdent(e.Ident)

	case *syntax.IndexedIdentExpr:
		return l.lowerIndexedIdent(e.Indexed)

	case *syntax.IndexExpr:
		return l.lowerIndexExpr(e)

	case *syntax.BinaryExpr:
		lhs := l.lowerExpr(e.Lhs)
		rhs := l.lowerExpr(e.Rhs)
		return l.lowerBinaryOp(e.Op, lhs, rhs, e.Span)

	case *syntax.UnaryExpr:
		return l.lowerUnaryOp(e)

	case *syntax.ParenExpr:
		inner := l.lowerExpr(e.Inner)
		out := *inner
		out.Span = e.Span
		return &out

	case *syntax.CastExpr:
		return l.lowerCastExpr(e)

	case *syntax.CallExpr:
		return l.lowerCallExpr(e)

	case *syntax.MeasureExpr:
		return l.lowerMeasureExpr(e)

	case *syntax.ErrExpr:
		return semast.ErrExpr(e.Span)
	}

	report.ICE("unhandled expression kind %T", expr)
	return nil
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerLit(lit *syntax.Lit) *semast.Expr {
	build := func(ty *types.Type, v *semast.Value) *semast.Expr {
		e := semast.NewExpr(lit.Span, &semast.LitExpr{Value: v}, ty)
		e.ConstValue = v
		return e
	}

	switch lit.Kind {
	case syntax.LitInt:
		return build(types.Int(types.NoWidth, true), semast.IntValue(lit.Int))
	case syntax.LitBigInt:
		return build(types.Int(types.NoWidth, true), semast.BigIntValue(lit.BigVal))
	case syntax.LitFloat:
		return build(types.Float(types.NoWidth, true), semast.FloatValue(lit.Float))
	case syntax.LitImaginary:
		return build(types.Complex(types.NoWidth, true), semast.ComplexValue(complex(0, lit.Float)))
	case syntax.LitBool:
		return build(types.Bool(true), semast.BoolValue(lit.Bool))
	case syntax.LitBitstring:
		return build(types.BitArray(lit.Width, true), semast.BitstringValue(lit.BigVal, lit.Width))
	case syntax.LitDuration:
		return build(types.Duration(true), semast.DurationValue(lit.Float, lit.Unit))
	case syntax.LitString:
		l.unsupported("string literals", lit.Span)
		return semast.ErrExpr(lit.Span)
	}

	report.ICE("unhandled literal kind %d", lit.Kind)
	return nil
}

// builtinConstants are the math constants with fixed lowering.  References
// to these exact names always resolve to the builtin value, even when a user
// declaration shadows them.
var builtinConstants = map[string]bool{
	"pi": true, "π": true, "tau": true, "τ": true, "euler": true, "ℇ": true,
}

// lowerIdent resolves an identifier reference.  Reading a symbol declared
// outside the innermost gate or def body is a capture, and only const
// symbols with a known value can be captured.
func (l *Lowerer) lowerIdent(ident *syntax.Ident) *semast.Expr {
	if builtinConstants[ident.Name] {
		return l.lowerBuiltinConstant(ident)
	}

	id, sym, res := l.symbols.TryGetExistingOrInsertErr(ident.Name, ident.Span)
	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(ident.Name, ident.Span)
		return semast.ErrExpr(ident.Span)
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(ident.Span)
		return semast.ErrExpr(ident.Span)
	}

	if l.symbols.IsSymbolOutsideMostInnerGateOrFunctionScope(id) && !sym.Ty.IsQuantum() {
		switch {
		case sym.Ty.IsConst() && sym.ConstValue != nil:
			e := semast.NewExpr(ident.Span, &semast.CapturedIdentExpr{Symbol: id}, sym.Ty)
			e.ConstValue = sym.ConstValue
			return e
		case sym.Ty.IsErr():
			return semast.ErrExpr(ident.Span)
		case sym.Ty.Kind == types.KGate || sym.Ty.Kind == types.KFunction:
			// Callables cross the boundary freely.
		default:
			l.pushConstCaptureError(ident.Span)
			return semast.ErrExpr(ident.Span)
		}
	}

	e := semast.NewExpr(ident.Span, &semast.IdentExpr{Symbol: id}, sym.Ty)
	if sym.Ty.IsConst() {
		e.ConstValue = sym.ConstValue
	}

	return e
}

// lowerBuiltinConstant lowers a reference to one of the fixed math constant
// names as the builtin value directly, bypassing any shadowing declaration.
func (l *Lowerer) lowerBuiltinConstant(ident *syntax.Ident) *semast.Expr {
	var value float64
	switch ident.Name {
	case "pi", "π":
		value = math.Pi
	case "tau", "τ":
		value = 2 * math.Pi
	default:
		value = math.E
	}

	v := semast.FloatValue(value)
	e := semast.NewExpr(ident.Span, &semast.LitExpr{Value: v}, types.Float(types.NoWidth, true))
	e.ConstValue = v
	return e
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerUnaryOp(e *syntax.UnaryExpr) *semast.Expr {
	// The parser emits the logical and bitwise not tokens swapped; undo the
	// swap here so the semantic operator matches the written source.
	op := e.Op
	switch op {
	case syntax.OpNotB:
		op = syntax.OpNotL
	case syntax.OpNotL:
		op = syntax.OpNotB
	}

	operand := l.lowerExpr(e.Operand)
	if operand.Ty.IsErr() {
		return semast.ErrExpr(e.Span)
	}

	switch op {
	case syntax.OpNeg:
		if !types.UnaryOpApplies(op, operand.Ty) {
			l.errorf(ErrTypeDoesNotSupportNegation, operand.Span, "unary negation is not allowed for instances of %s", operand.Ty)
			return semast.ErrExpr(e.Span)
		}

	case syntax.OpNotB:
		if !types.UnaryOpApplies(op, operand.Ty) {
			l.errorf(ErrTypeDoesNotSupportBitwiseNot, operand.Span, "binary negation is not allowed for instances of %s", operand.Ty)
			return semast.ErrExpr(e.Span)
		}

	case syntax.OpNotL:
		// Logical not applies to anything that converts to bool.
		operand = l.castToType(types.Bool(operand.Ty.IsConst()), operand)
	}

	out := semast.NewExpr(e.Span, &semast.UnaryOpExpr{Op: op, Operand: operand}, operand.Ty)
	if operand.Ty.IsConst() {
		out.ConstValue = l.ConstEval(out)
	}

	return out
}

// -----------------------------------------------------------------------------

// lowerCastExpr lowers an explicit cast like `int[8](x)`.  Explicit casts use
// the same feasibility matrices as implicit conversions but are marked so
// later stages keep them.
func (l *Lowerer) lowerCastExpr(e *syntax.CastExpr) *semast.Expr {
	ty := l.lowerTypeDef(e.Ty, false)
	arg := l.lowerExpr(e.Arg)
	if ty.IsErr() || arg.Ty.IsErr() {
		return semast.ErrExprOf(e.Span, ty)
	}

	cast := l.castToType(ty, arg)
	if explicit, ok := cast.Kind.(*semast.CastExpr); ok {
		explicit.Explicit = true
	}

	out := *cast
	out.Span = e.Span
	if ty.IsConst() || out.Ty.IsConst() {
		out.ConstValue = l.ConstEval(&out)
	}

	return &out
}

// lowerCallExpr lowers a def call.
func (l *Lowerer) lowerCallExpr(e *syntax.CallExpr) *semast.Expr {
	id, sym, res := l.symbols.TryGetExistingOrInsertErr(e.Name.Name, e.Name.Span)
	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(e.Name.Name, e.Name.Span)
		return semast.ErrExpr(e.Span)
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(e.Name.Span)
		return semast.ErrExpr(e.Span)
	}

	if sym.Ty.IsErr() {
		return semast.ErrExpr(e.Span)
	}

	if sym.Ty.Kind != types.KFunction {
		l.errorf(ErrCannotCallNonFunction, e.Name.Span, "cannot call a value of type %s", sym.Ty)
		return semast.ErrExpr(e.Span)
	}

	if len(e.Args) != len(sym.Ty.Params) {
		l.errorf(ErrInvalidNumberOfClassicalArgs, e.Span,
			"gate expects %d classical arguments, but %d were provided", len(sym.Ty.Params), len(e.Args))
		return semast.ErrExpr(e.Span)
	}

	args := make([]*semast.Expr, len(e.Args))
	for i, arg := range e.Args {
		lowered := l.lowerExpr(arg)
		if paramTy := sym.Ty.Params[i]; paramTy.IsQuantum() {
			args[i] = lowered
		} else {
			args[i] = l.castToType(paramTy, lowered)
		}
	}

	return semast.NewExpr(e.Span, &semast.CallExpr{Symbol: id, Args: args}, sym.Ty.Return.AsNonConst())
}

// lowerMeasureExpr lowers a measurement used as an expression; the result
// type mirrors the operand's shape.
func (l *Lowerer) lowerMeasureExpr(e *syntax.MeasureExpr) *semast.Expr {
	operand := l.lowerGateOperand(e.Operand)
	ty := l.measurementTy(operand)
	return semast.NewExpr(e.Span, &semast.MeasureExpr{Operand: operand}, ty)
}

// measurementTy returns the classical result type of measuring the operand: a
// bit per qubit.
func (l *Lowerer) measurementTy(operand semast.GateOperand) *types.Type {
	if operand.IsErr {
		return types.Err()
	}

	if operand.IsHW {
		return types.Bit(false)
	}

	switch operand.Expr.Ty.Kind {
	case types.KQubitArray:
		return types.BitArray(operand.Expr.Ty.Size, false)
	case types.KQubit, types.KHardwareQubit:
		return types.Bit(false)
	case types.KErr:
		return types.Err()
	}

	l.errorf(ErrInvalidGateOperand, operand.Span, "measure operands must be of quantum type")
	return types.Err()
}

// lowerGateOperand lowers one quantum operand of a gate call, barrier,
// reset, or measurement.
func (l *Lowerer) lowerGateOperand(op *syntax.GateOperand) semast.GateOperand {
	switch {
	case op.Hardware != nil:
		l.unsupported("hardware qubit operands", op.Span)
		return semast.GateOperand{Span: op.Span, Hardware: op.Hardware.Name, IsHW: true, IsErr: true}

	case op.Ident != nil:
		var expr *semast.Expr
		if op.Ident.Ident != nil {
			expr = l.lowerIdent(op.Ident.Ident)
		} else {
			expr = l.lowerIndexedIdent(op.Ident.Indexed)
		}

		if expr.Ty.IsErr() {
			return semast.GateOperand{Span: op.Span, Expr: expr, IsErr: true}
		}

		if !expr.Ty.IsQuantum() {
			l.errorf(ErrInvalidGateOperand, op.Span, "gate operands must be of quantum type, found %s", expr.Ty)
			return semast.GateOperand{Span: op.Span, Expr: expr, IsErr: true}
		}

		return semast.GateOperand{Span: op.Span, Expr: expr}
	}

	return semast.GateOperand{Span: op.Span, IsErr: true}
}
