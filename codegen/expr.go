package codegen

import (
	"qasmc/qsast"
	"qasmc/report"
	"qasmc/semast"
	"qasmc/syntax"
	"qasmc/types"
)

func (c *Compiler) compileExpr(e *semast.Expr) qsast.Expr {
	switch k := e.Kind.(type) {
	case *semast.LitExpr:
		return compileValue(k.Value)

	case *semast.IdentExpr:
		return qsast.Name(c.symName(k.Symbol))

	case *semast.CapturedIdentExpr:
		// A captured constant reads exactly like a local reference; the
		// capture distinction only mattered for lowering-time validation.
		return qsast.Name(c.symName(k.Symbol))

	case *semast.IndexedIdentExpr:
		return c.compileIndices(qsast.Name(c.symName(k.Symbol)), k.Indices)

	case *semast.IndexExpr:
		return c.compileIndices(c.compileExpr(k.Collection), k.Indices)

	case *semast.BinaryOpExpr:
		return &qsast.BinExpr{
			Op:  binOpSpelling(k.Op),
			Lhs: c.compileExpr(k.Lhs),
			Rhs: c.compileExpr(k.Rhs),
		}

	case *semast.UnaryOpExpr:
		return &qsast.UnaryExpr{
			Op:      unaryOpSpelling(k.Op),
			Operand: c.compileExpr(k.Operand),
		}

	case *semast.CastExpr:
		return c.compileCast(k.Ty, k.Arg)

	case *semast.CallExpr:
		args := make([]qsast.Expr, len(k.Args))
		for i, arg := range k.Args {
			args[i] = c.compileExpr(arg)
		}
		return qsast.NewCall(c.symName(k.Symbol), args...)

	case *semast.BuiltinCallExpr:
		args := make([]qsast.Expr, len(k.Args))
		for i, arg := range k.Args {
			args[i] = c.compileExpr(arg)
		}
		return qsast.NewCall(k.Name, args...)

	case *semast.MeasureExpr:
		if k.Operand.IsErr {
			return &qsast.Tuple{}
		}
		if k.Operand.Expr.Ty.Kind == types.KQubitArray {
			return qsast.NewCall("MeasureEachZ", c.compileExpr(k.Operand.Expr))
		}
		return qsast.NewCall("M", c.compileExpr(k.Operand.Expr))

	case *semast.SetExpr:
		elems := make([]qsast.Expr, len(k.Values))
		for i, v := range k.Values {
			elems[i] = c.compileExpr(v)
		}
		return &qsast.ArrayLit{Elems: elems}

	case *semast.ErrExprKind:
		// Error expressions only survive alongside reported diagnostics; the
		// generated text is never used.
		return &qsast.Tuple{}
	}

	report.ICE("unhandled expression kind %T", e.Kind)
	return nil
}

// -----------------------------------------------------------------------------

func compileValue(v *semast.Value) qsast.Expr {
	switch v.Kind {
	case semast.VInt:
		return qsast.Int(v.Int)
	case semast.VBigInt:
		return qsast.Int(v.Big.Int64())
	case semast.VFloat:
		return qsast.Double(v.Float)
	case semast.VComplex:
		return &qsast.Tuple{Elems: []qsast.Expr{
			qsast.Double(real(v.Complex)),
			qsast.Double(imag(v.Complex)),
		}}
	case semast.VBool:
		return qsast.Bool(v.Bool)
	case semast.VBit:
		return &qsast.ResultLit{One: v.Bool}
	case semast.VBitstring:
		// Most significant bit first, matching the written literal.
		elems := make([]qsast.Expr, v.Width)
		for i := 0; i < v.Width; i++ {
			elems[i] = &qsast.ResultLit{One: v.Big.Bit(v.Width-1-i) == 1}
		}
		return &qsast.ArrayLit{Elems: elems}
	case semast.VAngle:
		return qsast.Double(v.Angle.Float())
	case semast.VDuration:
		return qsast.Double(v.Float)
	}

	report.ICE("unhandled value kind %d", v.Kind)
	return nil
}

// -----------------------------------------------------------------------------

func (c *Compiler) compileIndices(collection qsast.Expr, indices []semast.Index) qsast.Expr {
	for _, idx := range indices {
		if idx.Expr != nil {
			collection = &qsast.IndexExpr{Collection: collection, Index: c.compileExpr(idx.Expr)}
			continue
		}

		collection = &qsast.IndexExpr{
			Collection: collection,
			Index:      c.compileRangeIndex(collection, idx.Range),
		}
	}

	return collection
}

// compileRangeIndex builds a range index, filling omitted bounds with the
// collection's limits.
func (c *Compiler) compileRangeIndex(collection qsast.Expr, r *semast.Range) qsast.Expr {
	out := &qsast.RangeLit{}

	if r.Start != nil {
		out.Start = c.compileExpr(r.Start)
	} else {
		out.Start = qsast.Int(0)
	}

	if r.Step != nil {
		out.Step = c.compileExpr(r.Step)
	}

	if r.End != nil {
		out.End = c.compileExpr(r.End)
	} else {
		out.End = &qsast.BinExpr{
			Op:  "-",
			Lhs: qsast.NewCall("Length", collection),
			Rhs: qsast.Int(1),
		}
	}

	return out
}

// -----------------------------------------------------------------------------

// binOpSpelling maps a source operator to its target spelling.  Bitwise
// operators take the target's triple-character integer forms.
func binOpSpelling(op syntax.BinOp) string {
	switch op {
	case syntax.OpAdd:
		return "+"
	case syntax.OpSub:
		return "-"
	case syntax.OpMul:
		return "*"
	case syntax.OpDiv:
		return "/"
	case syntax.OpMod:
		return "%"
	case syntax.OpExp:
		return "^"
	case syntax.OpAndB:
		return "&&&"
	case syntax.OpOrB:
		return "|||"
	case syntax.OpXorB:
		return "^^^"
	case syntax.OpShl:
		return "<<<"
	case syntax.OpShr:
		return ">>>"
	case syntax.OpAndL:
		return "and"
	case syntax.OpOrL:
		return "or"
	case syntax.OpEq:
		return "=="
	case syntax.OpNeq:
		return "!="
	case syntax.OpGt:
		return ">"
	case syntax.OpGte:
		return ">="
	case syntax.OpLt:
		return "<"
	case syntax.OpLte:
		return "<="
	}

	report.ICE("unhandled binary operator %d", op)
	return ""
}

func unaryOpSpelling(op syntax.UnaryOp) string {
	switch op {
	case syntax.OpNeg:
		return "-"
	case syntax.OpNotB:
		return "~~~"
	case syntax.OpNotL:
		return "not "
	}

	report.ICE("unhandled unary operator %d", op)
	return ""
}

// -----------------------------------------------------------------------------

// compileCast translates a lowered conversion.  Representation-preserving
// casts compile to nothing; conversions that change the runtime
// representation go through the standard library or a runtime stub.
func (c *Compiler) compileCast(ty *types.Type, arg *semast.Expr) qsast.Expr {
	x := c.compileExpr(arg)
	from := arg.Ty

	switch ty.Kind {
	case types.KBit:
		switch from.Kind {
		case types.KBool:
			return qsast.NewCall(c.need(stubBoolAsResult), x)
		case types.KInt, types.KUInt:
			return qsast.NewCall(c.need(stubBoolAsResult),
				&qsast.BinExpr{Op: "!=", Lhs: x, Rhs: qsast.Int(0)})
		}

	case types.KBool:
		switch from.Kind {
		case types.KBit:
			return qsast.NewCall(c.need(stubResultAsBool), x)
		case types.KInt, types.KUInt:
			return &qsast.BinExpr{Op: "!=", Lhs: x, Rhs: qsast.Int(0)}
		case types.KFloat, types.KAngle:
			return &qsast.BinExpr{Op: "!=", Lhs: x, Rhs: qsast.Double(0)}
		case types.KBitArray:
			return &qsast.BinExpr{
				Op:  "!=",
				Lhs: qsast.NewCall(c.need(stubResultArrayAsInt), x),
				Rhs: qsast.Int(0),
			}
		}

	case types.KInt, types.KUInt:
		switch from.Kind {
		case types.KBit:
			return qsast.NewCall(c.need(stubResultAsBoolAsInt), x)
		case types.KBitArray:
			return qsast.NewCall(c.need(stubResultArrayAsInt), x)
		case types.KBool:
			return qsast.NewCall("BoolAsInt", x)
		case types.KFloat:
			return qsast.NewCall("Truncate", x)
		}

	case types.KFloat:
		switch from.Kind {
		case types.KInt, types.KUInt:
			return qsast.NewCall("IntAsDouble", x)
		case types.KBool:
			return qsast.NewCall("IntAsDouble", qsast.NewCall("BoolAsInt", x))
		}

	case types.KBitArray:
		switch from.Kind {
		case types.KInt, types.KUInt:
			return qsast.NewCall(c.need(stubIntAsResultArray), x, qsast.Int(int64(ty.Size)))
		}
	}

	return x
}
