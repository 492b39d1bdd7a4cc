package lower

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// lowerStmt lowers one statement.  Most statements lower one-to-one; gate
// call broadcasting is the exception and can produce several.
func (l *Lowerer) lowerStmt(stmt *syntax.Stmt) []*semast.Stmt {
	one := func(kind semast.StmtKind) []*semast.Stmt {
		return []*semast.Stmt{{Span: stmt.Span, Annotations: stmt.Annotations, Kind: kind}}
	}

	l.checkAnnotations(stmt)

	switch kind := stmt.Kind.(type) {
	case *syntax.AliasStmt:
		return one(l.lowerAlias(kind, stmt))

	case *syntax.AssignStmt:
		return one(l.lowerAssign(kind, stmt))

	case *syntax.AssignOpStmt:
		return one(l.lowerAssignOp(kind, stmt))

	case *syntax.BarrierStmt:
		operands := make([]semast.GateOperand, len(kind.Qubits))
		for i, q := range kind.Qubits {
			operands[i] = l.lowerGateOperand(q)
		}
		return one(&semast.BarrierStmt{Operands: operands})

	case *syntax.BoxStmt:
		return one(l.lowerBox(kind, stmt))

	case *syntax.BreakStmt:
		if !l.symbols.IsScopeRootedInLoop() {
			l.errorf(ErrInvalidScope, stmt.Span, "break can only appear in loop scopes")
			return one(&semast.ErrStmt{})
		}
		return one(&semast.BreakStmt{})

	case *syntax.ContinueStmt:
		if !l.symbols.IsScopeRootedInLoop() {
			l.errorf(ErrInvalidScope, stmt.Span, "continue can only appear in loop scopes")
			return one(&semast.ErrStmt{})
		}
		return one(&semast.ContinueStmt{})

	case *syntax.CalStmt:
		l.errorf(ErrCalibrationsNotSupported, stmt.Span, "cal statements are not supported")
		return one(&semast.ErrStmt{})

	case *syntax.CalGrammarStmt:
		l.errorf(ErrCalibrationsNotSupported, stmt.Span, "defcalgrammar statements are not supported")
		return one(&semast.ErrStmt{})

	case *syntax.DefCalStmt:
		l.errorf(ErrCalibrationsNotSupported, stmt.Span, "defcal statements are not supported")
		return one(&semast.ErrStmt{})

	case *syntax.ClassicalDeclStmt:
		return one(l.lowerClassicalDecl(kind, stmt))

	case *syntax.ConstDeclStmt:
		return one(l.lowerConstDecl(kind, stmt))

	case *syntax.DefStmt:
		return one(l.lowerDef(kind, stmt))

	case *syntax.DelayStmt:
		l.unimplemented("delay statements", stmt.Span)
		return one(&semast.ErrStmt{})

	case *syntax.EndStmt:
		return one(&semast.EndStmt{})

	case *syntax.ExprStmt:
		return one(&semast.ExprStmt{Expr: l.lowerExpr(kind.Expr)})

	case *syntax.ExternStmt:
		return one(l.lowerExtern(kind, stmt))

	case *syntax.ForStmt:
		return one(l.lowerFor(kind))

	case *syntax.GateCallStmt:
		return l.lowerGateCall(stmt, kind)

	case *syntax.GPhaseStmt:
		return l.lowerGPhase(stmt, kind)

	case *syntax.GateStmt:
		return one(l.lowerGateDecl(kind, stmt))

	case *syntax.IfStmt:
		return one(l.lowerIf(kind))

	case *syntax.IncludeStmt:
		l.lowerInclude(stmt, kind)
		return nil

	case *syntax.IODeclStmt:
		return one(l.lowerIODecl(kind, stmt))

	case *syntax.MeasureArrowStmt:
		return one(l.lowerMeasureArrow(kind, stmt))

	case *syntax.PragmaStmt:
		pragma := &semast.PragmaStmt{Content: kind.Content, Span: stmt.Span}
		l.pragmas = append(l.pragmas, pragma)
		return nil

	case *syntax.QuantumDeclStmt:
		return one(l.lowerQuantumDecl(kind, stmt))

	case *syntax.ResetStmt:
		return one(&semast.ResetStmt{Operand: l.lowerGateOperand(kind.Operand)})

	case *syntax.ReturnStmt:
		return one(l.lowerReturn(kind, stmt))

	case *syntax.SwitchStmt:
		return one(l.lowerSwitch(kind, stmt))

	case *syntax.WhileStmt:
		return one(l.lowerWhile(kind))

	case *syntax.BlockStmt:
		return one(l.lowerBlock(kind, symbols.ScopeBlock))

	case *syntax.ErrStmt:
		return one(&semast.ErrStmt{})
	}

	report.ICE("unhandled statement kind %T", stmt.Kind)
	return nil
}

// checkAnnotations rejects annotations on statements that cannot carry them:
// only gate and def declarations accept annotations.
func (l *Lowerer) checkAnnotations(stmt *syntax.Stmt) {
	if len(stmt.Annotations) == 0 {
		return
	}

	switch stmt.Kind.(type) {
	case *syntax.DefStmt, *syntax.GateStmt:
		return
	}

	for _, a := range stmt.Annotations {
		l.errorf(ErrInvalidAnnotationTarget, a.Span, "invalid annotation target: annotations only apply to gate and def declarations")
	}
}

// -----------------------------------------------------------------------------

// lowerBlock lowers a statement block under a fresh scope of the given kind.
func (l *Lowerer) lowerBlock(block *syntax.BlockStmt, kind symbols.ScopeKind) *semast.BlockStmt {
	l.symbols.PushScope(kind)
	defer l.symbols.PopScope()

	return l.lowerBlockWithoutScope(block)
}

// lowerBlockWithoutScope lowers a statement block into the current scope,
// for bodies whose callable already pushed one.
func (l *Lowerer) lowerBlockWithoutScope(block *syntax.BlockStmt) *semast.BlockStmt {
	var stmts []*semast.Stmt
	for _, s := range block.Stmts {
		stmts = append(stmts, l.lowerStmt(s)...)
	}

	return &semast.BlockStmt{Span: block.Span, Stmts: stmts}
}

// lowerBody lowers a loop or branch body, which may be a block or a single
// statement.  Blocks get a scope of the given kind; a bare statement gets
// its own scope too so declarations in it stay local.
func (l *Lowerer) lowerBody(stmt *syntax.Stmt, kind symbols.ScopeKind) *semast.Stmt {
	if block, ok := stmt.Kind.(*syntax.BlockStmt); ok {
		lowered := l.lowerBlock(block, kind)
		return &semast.Stmt{Span: stmt.Span, Annotations: stmt.Annotations, Kind: lowered}
	}

	l.symbols.PushScope(kind)
	defer l.symbols.PopScope()

	out := l.lowerStmt(stmt)
	if len(out) == 1 {
		return out[0]
	}

	return &semast.Stmt{Span: stmt.Span, Kind: &semast.BlockStmt{Span: stmt.Span, Stmts: out}}
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerIf(stmt *syntax.IfStmt) semast.StmtKind {
	cond := l.lowerExpr(stmt.Cond)
	cond = l.castToType(types.Bool(cond.Ty.IsConst()), cond)

	out := &semast.IfStmt{Cond: cond, Then: l.lowerBody(stmt.Then, symbols.ScopeBlock)}
	if stmt.Else != nil {
		out.Else = l.lowerBody(stmt.Else, symbols.ScopeBlock)
	}

	return out
}

func (l *Lowerer) lowerWhile(stmt *syntax.WhileStmt) semast.StmtKind {
	cond := l.lowerExpr(stmt.Cond)
	cond = l.castToType(types.Bool(cond.Ty.IsConst()), cond)

	return &semast.WhileStmt{Cond: cond, Body: l.lowerBody(stmt.Body, symbols.ScopeLoop)}
}

func (l *Lowerer) lowerFor(stmt *syntax.ForStmt) semast.StmtKind {
	iterable, elemTy := l.lowerEnumerableSet(stmt.Iterable)

	loopTy := l.lowerTypeDef(stmt.Ty, false)
	if !loopTy.IsErr() && !elemTy.IsErr() &&
		!types.EqualExceptConst(loopTy, elemTy) && !types.CanCast(loopTy, elemTy) {
		l.pushInvalidCastError(loopTy, elemTy, stmt.Ident.Span)
	}

	l.symbols.PushScope(symbols.ScopeLoop)
	defer l.symbols.PopScope()

	id, ok := l.symbols.Insert(&symbols.Symbol{
		Name:   stmt.Ident.Name,
		Span:   stmt.Ident.Span,
		TySpan: stmt.Ty.TypeSpan(),
		Ty:     loopTy,
	})
	if !ok {
		l.pushRedefinedSymbolError(stmt.Ident.Name, stmt.Ident.Span)
		id = l.symbols.InsertErrSymbol(stmt.Ident.Name, stmt.Ident.Span)
	}

	return &semast.ForStmt{
		LoopVar:  id,
		Iterable: iterable,
		Body:     l.lowerBody(stmt.Body, symbols.ScopeBlock),
	}
}

// lowerEnumerableSet lowers a for-loop iterable and reports the element type
// iterated over.
func (l *Lowerer) lowerEnumerableSet(set *syntax.EnumerableSet) (semast.EnumerableSet, *types.Type) {
	switch {
	case set.Range != nil:
		r := l.lowerRange(set.Range)
		return semast.EnumerableSet{Range: r}, types.Int(types.NoWidth, false)

	case set.Set != nil:
		values := make([]*semast.Expr, len(set.Set.Values))
		for i, v := range set.Set.Values {
			values[i] = l.lowerExpr(v)
		}
		return semast.EnumerableSet{Set: &semast.Set{Span: set.Set.Span, Values: values}}, types.Int(types.NoWidth, false)

	default:
		expr := l.lowerExpr(set.Expr)
		elem := types.Err()
		switch expr.Ty.Kind {
		case types.KBitArray:
			elem = types.Bit(false)
		case types.KQubitArray:
			elem = types.Qubit()
		case types.KArray, types.KStaticArrayRef, types.KDynArrayRef:
			elem = l.indexedType(expr.Ty, []semast.Index{{Expr: l.intLit(0, expr.Span)}}, expr.Span)
		default:
			if !expr.Ty.IsErr() {
				l.errorf(ErrCannotIndexType, expr.Span, "cannot iterate over expressions of type %s", expr.Ty)
			}
		}
		return semast.EnumerableSet{Expr: expr}, elem
	}
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerSwitch(stmt *syntax.SwitchStmt, outer *syntax.Stmt) semast.StmtKind {
	if !l.supportsV31() {
		l.errorf(ErrNotSupportedInThisVersion, outer.Span, "switch statements were introduced in version 3.1")
		return &semast.ErrStmt{}
	}

	if len(stmt.Cases) == 0 {
		l.errorf(ErrMissingSwitchCases, outer.Span, "switch statements must have at least one non-default case")
	}

	target := l.lowerExpr(stmt.Target)
	target = l.castToType(types.Int(types.NoWidth, target.Ty.IsConst()), target)

	out := &semast.SwitchStmt{Target: target}
	for _, c := range stmt.Cases {
		labels := make([]*semast.Expr, len(c.Labels))
		for i, label := range c.Labels {
			lowered := l.lowerExpr(label)
			labels[i] = l.castToType(types.Int(types.NoWidth, lowered.Ty.IsConst()), lowered)
		}

		out.Cases = append(out.Cases, semast.SwitchCase{
			Labels: labels,
			Body:   l.lowerBlock(c.Body, symbols.ScopeBlock),
		})
	}

	if stmt.Default != nil {
		out.Default = l.lowerBlock(stmt.Default, symbols.ScopeBlock)
	}

	return out
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerReturn(stmt *syntax.ReturnStmt, outer *syntax.Stmt) semast.StmtKind {
	returnTy, inSubroutine := l.symbols.SubroutineReturnTy()
	if !inSubroutine {
		l.errorf(ErrReturnNotInSubroutine, outer.Span, "return statements can only appear in subroutine scopes")
		return &semast.ErrStmt{}
	}

	isVoid := returnTy == nil || returnTy.Kind == types.KVoid

	if stmt.Value == nil {
		if !isVoid {
			l.errorf(ErrMissingTargetInReturnStmt, outer.Span, "return statements on a non-void subroutine should have a target expression")
			return &semast.ErrStmt{}
		}
		return &semast.ReturnStmt{}
	}

	if isVoid {
		l.errorf(ErrReturningExprFromVoidDef, outer.Span, "cannot return an expression from a void subroutine")
		return &semast.ErrStmt{}
	}

	value := l.lowerExpr(stmt.Value)
	return &semast.ReturnStmt{Value: l.castToType(returnTy, value)}
}

// -----------------------------------------------------------------------------

// lowerBox validates that a box contains only quantum statements.  Boxes
// have no lowering beyond that yet.
func (l *Lowerer) lowerBox(stmt *syntax.BoxStmt, outer *syntax.Stmt) semast.StmtKind {
	l.symbols.PushScope(symbols.ScopeBlock)
	defer l.symbols.PopScope()

	var body []*semast.Stmt
	for _, s := range stmt.Body {
		switch s.Kind.(type) {
		case *syntax.BarrierStmt, *syntax.BoxStmt, *syntax.DelayStmt,
			*syntax.GateCallStmt, *syntax.GPhaseStmt, *syntax.ResetStmt,
			*syntax.BreakStmt, *syntax.ContinueStmt:
		default:
			l.errorf(ErrClassicalStmtInBox, s.Span, "invalid classical statement in box")
			continue
		}

		body = append(body, l.lowerStmt(s)...)
	}

	var duration *semast.Expr
	if stmt.Duration != nil {
		duration = l.castToType(types.Duration(false), l.lowerExpr(stmt.Duration))
	}

	l.unimplemented("box statements", outer.Span)
	return &semast.BoxStmt{Duration: duration, Body: body}
}
