package lower

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// lowerGateCall lowers a gate application.  Derived library gates resolve to
// their base gate plus an implicit modifier; register operands broadcast the
// call over their elements.  One syntactic call can therefore produce several
// semantic calls.
func (l *Lowerer) lowerGateCall(stmt *syntax.Stmt, call *syntax.GateCallStmt) []*semast.Stmt {
	name := call.Name.Name
	modifiers := l.lowerModifiers(call.Modifiers)

	// A derived library gate, eg. cy or sdg, lowers as its base gate wrapped
	// in one more modifier, innermost since it binds closest to the gate.
	if alias, ok := implicitGateModifiers[name]; ok && l.libGates[name] {
		name = alias.base
		modifiers = append(modifiers, semast.GateModifier{
			Kind:  alias.kind,
			Ctrls: alias.ctrls,
			Span:  call.Name.Span,
		})
	}

	id, sym, res := l.symbols.TryGetExistingOrInsertErr(name, call.Name.Span)
	if res == symbols.LookupNotFound && l.defineExtraGateOnDemand(name) {
		id, sym, res = l.symbols.TryGetExistingOrInsertErr(name, call.Name.Span)
	}

	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(name, call.Name.Span)
		return []*semast.Stmt{l.errStmt(stmt)}
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(call.Name.Span)
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	if sym.Ty.IsErr() {
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	if sym.Ty.Kind != types.KGate {
		l.errorf(ErrCannotCallNonFunction, call.Name.Span, "cannot call a value of type %s as a gate", sym.Ty)
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	return l.buildGateCall(stmt, gateCallParts{
		symbol:    id,
		gateTy:    sym.Ty,
		nameSpan:  call.Name.Span,
		modifiers: modifiers,
		args:      call.Args,
		duration:  call.Duration,
		operands:  call.Qubits,
	})
}

// lowerGPhase lowers a global-phase application, which behaves as a call to
// the zero-qubit builtin gphase gate.
func (l *Lowerer) lowerGPhase(stmt *syntax.Stmt, call *syntax.GPhaseStmt) []*semast.Stmt {
	id, sym, res := l.symbols.TryGetExistingOrInsertErr("gphase", call.NameSpan)
	if res != symbols.LookupOk || sym.Ty.Kind != types.KGate {
		l.pushMissingSymbolError("gphase", call.NameSpan)
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	return l.buildGateCall(stmt, gateCallParts{
		symbol:    id,
		gateTy:    sym.Ty,
		nameSpan:  call.NameSpan,
		modifiers: l.lowerModifiers(call.Modifiers),
		args:      call.Args,
		duration:  call.Duration,
		operands:  call.Qubits,
	})
}

// gateCallParts carries the pieces of a gate call shared between the plain
// and gphase forms.
type gateCallParts struct {
	symbol    semast.SymbolID
	gateTy    *types.Type
	nameSpan  *report.TextSpan
	modifiers []semast.GateModifier
	args      []syntax.Expr
	duration  syntax.Expr
	operands  []*syntax.GateOperand
}

// buildGateCall checks arities, lowers arguments and operands, and unrolls
// register broadcasting.
func (l *Lowerer) buildGateCall(stmt *syntax.Stmt, parts gateCallParts) []*semast.Stmt {
	cArity := parts.gateTy.CArity
	qArity := parts.gateTy.QArity

	// Every control modifier adds its control count to the quantum arity.
	for _, mod := range parts.modifiers {
		if mod.Kind == syntax.ModCtrl || mod.Kind == syntax.ModNegCtrl {
			qArity += mod.Ctrls
		}
	}

	if len(parts.args) != cArity {
		l.errorf(ErrInvalidNumberOfClassicalArgs, stmt.Span,
			"gate expects %d classical arguments, but %d were provided", cArity, len(parts.args))
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	if len(parts.operands) != qArity {
		l.errorf(ErrInvalidNumberOfQubitArgs, stmt.Span,
			"gate expects %d qubit arguments, but %d were provided", qArity, len(parts.operands))
		return []*semast.Stmt{l.errStmt(stmt)}
	}

	// Classical gate arguments are always angles.
	args := make([]*semast.Expr, len(parts.args))
	for i, arg := range parts.args {
		args[i] = l.castToType(types.Angle(types.NoWidth, false), l.lowerExpr(arg))
	}

	operands := make([]semast.GateOperand, len(parts.operands))
	for i, op := range parts.operands {
		operands[i] = l.lowerGateOperand(op)
	}

	var duration *semast.Expr
	if parts.duration != nil {
		l.unimplemented("gate call duration", stmt.Span)
	}

	template := &semast.GateCallStmt{
		Symbol:         parts.symbol,
		NameSpan:       parts.nameSpan,
		Modifiers:      parts.modifiers,
		Args:           args,
		Duration:       duration,
		ClassicalArity: cArity,
		QuantumArity:   qArity,
	}

	return l.broadcastGateCall(stmt, template, operands)
}

// broadcastGateCall unrolls a gate call over register operands.  All register
// operands must have the same size; each copy of the call indexes one element
// out of every register while scalar operands repeat unchanged.
func (l *Lowerer) broadcastGateCall(stmt *syntax.Stmt, template *semast.GateCallStmt, operands []semast.GateOperand) []*semast.Stmt {
	broadcastSize := 0
	for _, op := range operands {
		if op.IsErr || op.Expr == nil {
			continue
		}

		if op.Expr.Ty.Kind == types.KQubitArray {
			size := op.Expr.Ty.Size
			if broadcastSize != 0 && size != broadcastSize {
				l.errorf(ErrBroadcastSizeMismatch, stmt.Span,
					"broadcast quantum arguments must have the same size")
				return []*semast.Stmt{l.errStmt(stmt)}
			}
			broadcastSize = size
		}
	}

	if broadcastSize == 0 {
		out := *template
		out.Operands = operands
		return []*semast.Stmt{{Span: stmt.Span, Annotations: stmt.Annotations, Kind: &out}}
	}

	stmts := make([]*semast.Stmt, broadcastSize)
	for i := 0; i < broadcastSize; i++ {
		copied := *template
		copied.Args = template.Args
		copied.Operands = make([]semast.GateOperand, len(operands))

		for j, op := range operands {
			if !op.IsErr && op.Expr != nil && op.Expr.Ty.Kind == types.KQubitArray {
				copied.Operands[j] = l.indexQubitRegister(op, i)
			} else {
				copied.Operands[j] = op
			}
		}

		stmts[i] = &semast.Stmt{Span: stmt.Span, Annotations: stmt.Annotations, Kind: &copied}
	}

	return stmts
}

// indexQubitRegister builds the operand selecting element i of a register
// operand.
func (l *Lowerer) indexQubitRegister(op semast.GateOperand, i int) semast.GateOperand {
	index := semast.Index{Expr: l.intLit(int64(i), op.Span)}

	if ident, ok := op.Expr.Kind.(*semast.IdentExpr); ok {
		kind := &semast.IndexedIdentExpr{
			Symbol:   ident.Symbol,
			NameSpan: op.Expr.Span,
			Indices:  []semast.Index{index},
		}
		return semast.GateOperand{Span: op.Span, Expr: semast.NewExpr(op.Span, kind, types.Qubit())}
	}

	kind := &semast.IndexExpr{Collection: op.Expr, Indices: []semast.Index{index}}
	return semast.GateOperand{Span: op.Span, Expr: semast.NewExpr(op.Span, kind, types.Qubit())}
}

// -----------------------------------------------------------------------------

// lowerModifiers lowers the written gate modifiers, keeping their source
// order: the first entry is the outermost wrapper.
func (l *Lowerer) lowerModifiers(mods []*syntax.GateModifier) []semast.GateModifier {
	out := make([]semast.GateModifier, 0, len(mods))
	for _, mod := range mods {
		out = append(out, l.lowerModifier(mod))
	}

	return out
}

func (l *Lowerer) lowerModifier(mod *syntax.GateModifier) semast.GateModifier {
	out := semast.GateModifier{Kind: mod.Kind, Span: mod.Span}

	switch mod.Kind {
	case syntax.ModInv:

	case syntax.ModPow:
		if mod.Arg == nil {
			l.errorf(ErrExprMustBeConst, mod.Span, "pow gate modifiers must have an exponent")
			break
		}
		out.Arg = l.castToType(types.Int(types.NoWidth, false), l.lowerExpr(mod.Arg))

	case syntax.ModCtrl, syntax.ModNegCtrl:
		out.Ctrls = l.lowerControlCount(mod)
	}

	return out
}

// lowerControlCount evaluates the control count of a ctrl/negctrl modifier:
// a const unsigned integer that fits in 32 bits, defaulting to one.
func (l *Lowerer) lowerControlCount(mod *syntax.GateModifier) int {
	if mod.Arg == nil {
		return 1
	}

	cast, val := l.constEvalInt(mod.Arg)
	if val == nil {
		if !cast.Ty.IsErr() {
			l.errorf(ErrExprMustBeConst, mod.Span, "ctrl modifier control counts must be const expressions")
		}
		return 1
	}

	v, ok := val.AsInt()
	if !ok || v < 0 || v > maxDesignator {
		l.errorf(ErrExprMustFitInU32, mod.Span, "control counts must fit in a 32-bit unsigned integer")
		return 1
	}

	return int(v)
}

// errStmt wraps a failed statement in the error placeholder kind.
func (l *Lowerer) errStmt(stmt *syntax.Stmt) *semast.Stmt {
	return &semast.Stmt{Span: stmt.Span, Annotations: stmt.Annotations, Kind: &semast.ErrStmt{}}
}
