package lower

import (
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// declareSymbol inserts a declaration into the current scope, reporting a
// redefinition and falling back to an error placeholder so lowering can
// continue referencing the id.
func (l *Lowerer) declareSymbol(sym *symbols.Symbol) semast.SymbolID {
	id, ok := l.symbols.Insert(sym)
	if !ok {
		l.pushRedefinedSymbolError(sym.Name, sym.Span)
		return l.symbols.InsertErrSymbol(sym.Name, sym.Span)
	}

	return id
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerClassicalDecl(decl *syntax.ClassicalDeclStmt, stmt *syntax.Stmt) semast.StmtKind {
	ty := l.lowerTypeDef(decl.Ty, false)

	var init *semast.Expr
	if decl.Init == nil {
		init = l.defaultValue(ty, stmt.Span)
	} else if measure, ok := decl.Init.(*syntax.MeasureExpr); ok {
		init = l.castToType(ty, l.lowerMeasureExpr(measure))
	} else {
		init = l.castToType(ty, l.lowerExpr(decl.Init))
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name:   decl.Ident.Name,
		Span:   decl.Ident.Span,
		TySpan: decl.Ty.TypeSpan(),
		Ty:     ty,
	})

	return &semast.ClassicalDeclStmt{Symbol: id, TySpan: decl.Ty.TypeSpan(), Init: init}
}

func (l *Lowerer) lowerConstDecl(decl *syntax.ConstDeclStmt, stmt *syntax.Stmt) semast.StmtKind {
	ty := l.lowerTypeDef(decl.Ty, true)
	init := l.castToType(ty, l.lowerExpr(decl.Init))

	value := l.ConstEval(init)
	if value == nil && !init.Ty.IsErr() {
		l.errorf(ErrExprMustBeConst, init.Span, "const declaration initializers must be const expressions")
	}
	init.ConstValue = value

	id := l.declareSymbol(&symbols.Symbol{
		Name:       decl.Ident.Name,
		Span:       decl.Ident.Span,
		TySpan:     decl.Ty.TypeSpan(),
		Ty:         ty,
		ConstValue: value,
	})

	return &semast.ClassicalDeclStmt{Symbol: id, TySpan: decl.Ty.TypeSpan(), Init: init}
}

func (l *Lowerer) lowerQuantumDecl(decl *syntax.QuantumDeclStmt, stmt *syntax.Stmt) semast.StmtKind {
	if !l.symbols.IsCurrentScopeGlobal() {
		l.errorf(ErrQuantumDeclInNonGlobal, stmt.Span, "qubit declarations must be done in global scope")
		return &semast.ErrStmt{}
	}

	if decl.Size == nil {
		id := l.declareSymbol(&symbols.Symbol{
			Name: decl.Ident.Name,
			Span: decl.Ident.Span,
			Ty:   types.Qubit(),
		})
		return &semast.QubitDeclStmt{Symbol: id}
	}

	size, ok := l.constEvalQuantumRegisterSize(decl.Size)
	if !ok {
		l.declareSymbol(&symbols.Symbol{
			Name: decl.Ident.Name,
			Span: decl.Ident.Span,
			Ty:   types.Err(),
		})
		return &semast.ErrStmt{}
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name: decl.Ident.Name,
		Span: decl.Ident.Span,
		Ty:   types.QubitArray(size),
	})

	return &semast.QubitArrayDeclStmt{Symbol: id, Size: size}
}

func (l *Lowerer) lowerIODecl(decl *syntax.IODeclStmt, stmt *syntax.Stmt) semast.StmtKind {
	ty := l.lowerTypeDef(decl.Ty, false)

	io := symbols.IOOutput
	if decl.IsInput {
		io = symbols.IOInput
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name:   decl.Ident.Name,
		Span:   decl.Ident.Span,
		TySpan: decl.Ty.TypeSpan(),
		Ty:     ty,
		IO:     io,
	})

	if decl.IsInput {
		return &semast.InputDeclStmt{Symbol: id}
	}

	return &semast.OutputDeclStmt{Symbol: id, Init: l.defaultValue(ty, stmt.Span)}
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerAlias(alias *syntax.AliasStmt, stmt *syntax.Stmt) semast.StmtKind {
	exprs := make([]*semast.Expr, len(alias.Exprs))
	size := 0
	failed := false

	for i, e := range alias.Exprs {
		lowered := l.lowerAliasTarget(e)
		exprs[i] = lowered

		switch lowered.Ty.Kind {
		case types.KQubit:
			size++
		case types.KQubitArray, types.KBitArray:
			size += lowered.Ty.Size
		case types.KErr:
			failed = true
		default:
			l.errorf(ErrCannotAliasType, lowered.Span, "cannot alias type %s; only quantum bits and registers are supported", lowered.Ty)
			failed = true
		}
	}

	ty := types.Err()
	if !failed {
		if len(exprs) == 1 {
			ty = exprs[0].Ty
		} else {
			ty = types.QubitArray(size)
		}
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name: alias.Ident.Name,
		Span: alias.Ident.Span,
		Ty:   ty,
	})

	return &semast.AliasDeclStmt{Symbol: id, Exprs: exprs}
}

// lowerAliasTarget lowers one alias source.  Index sets are legal here, and
// only here: a set selects an arbitrary subset of a register.
func (l *Lowerer) lowerAliasTarget(expr syntax.Expr) *semast.Expr {
	indexed, ok := expr.(*syntax.IndexedIdentExpr)
	if !ok {
		return l.lowerExpr(expr)
	}

	// Check for a set index; everything else goes down the normal path.
	hasSet := false
	for _, ix := range indexed.Indexed.Indices {
		if ix.Set != nil {
			hasSet = true
		}
	}
	if !hasSet {
		return l.lowerExpr(expr)
	}

	if len(indexed.Indexed.Indices) != 1 {
		l.errorf(ErrTooManyIndices, indexed.Indexed.IndexSpan, "too many indices provided")
		return semast.ErrExpr(indexed.Indexed.Span)
	}

	name := indexed.Indexed.Ident.Name
	id, sym, res := l.symbols.TryGetExistingOrInsertErr(name, indexed.Indexed.Ident.Span)
	if res != symbols.LookupOk {
		l.pushMissingSymbolError(name, indexed.Indexed.Ident.Span)
		return semast.ErrExpr(indexed.Indexed.Span)
	}

	if sym.Ty.Kind != types.KQubitArray && sym.Ty.Kind != types.KBitArray {
		l.errorf(ErrCannotAliasType, indexed.Indexed.Span, "cannot alias type %s; only quantum bits and registers are supported", sym.Ty)
		return semast.ErrExpr(indexed.Indexed.Span)
	}

	set := indexed.Indexed.Indices[0].Set
	values := make([]*semast.Expr, len(set.Values))
	for i, v := range set.Values {
		cast, val := l.constEvalInt(v)
		if val == nil {
			if !cast.Ty.IsErr() {
				l.errorf(ErrExprMustBeConst, cast.Span, "index set values must be const expressions")
			}
			return semast.ErrExpr(indexed.Indexed.Span)
		}
		values[i] = l.intLit(mustInt(val), cast.Span)
	}

	ty := types.QubitArray(len(values))
	if sym.Ty.Kind == types.KBitArray {
		ty = types.BitArray(len(values), sym.Ty.IsConst())
	}

	kind := &semast.IndexedIdentExpr{
		Symbol:    id,
		NameSpan:  indexed.Indexed.Ident.Span,
		IndexSpan: indexed.Indexed.IndexSpan,
		Indices:   []semast.Index{{Expr: semast.NewExpr(set.Span, &semast.SetExpr{Values: values}, types.SetTy())}},
	}

	return semast.NewExpr(indexed.Indexed.Span, kind, ty)
}

func mustInt(v *semast.Value) int64 {
	i, _ := v.AsInt()
	return i
}

// isReadonlyRef reports whether the type is an immutable array reference
// parameter, which can be read and indexed but never assigned through.
func isReadonlyRef(ty *types.Type) bool {
	switch ty.Kind {
	case types.KStaticArrayRef, types.KDynArrayRef:
		return !ty.Mutable
	}

	return false
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerAssign(assign *syntax.AssignStmt, stmt *syntax.Stmt) semast.StmtKind {
	name := assign.Lhs.Name()
	id, sym, res := l.symbols.TryGetExistingOrInsertErr(name, assign.Lhs.Span())
	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(name, assign.Lhs.Span())
		return &semast.ErrStmt{}
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(assign.Lhs.Span())
		return &semast.ErrStmt{}
	}

	if sym.Ty.IsConst() {
		l.errorf(ErrCannotUpdateConstVariable, assign.Lhs.Span(), "cannot update const variable %s", name)
		return &semast.ErrStmt{}
	}

	if isReadonlyRef(sym.Ty) {
		l.errorf(ErrCannotUpdateReadonlyArrayRef, assign.Lhs.Span(), "cannot update readonly array reference %s", name)
		return &semast.ErrStmt{}
	}

	if assign.Lhs.Indexed != nil {
		return l.lowerIndexedAssign(id, assign.Lhs.Indexed, assign.Rhs)
	}

	rhs := l.lowerAssignRhs(sym.Ty, assign.Rhs)
	return &semast.AssignStmt{Symbol: id, LhsSpan: assign.Lhs.Span(), Rhs: rhs}
}

// lowerAssignRhs lowers the right side of an assignment, which may be a
// measurement, and converts it to the target type.
func (l *Lowerer) lowerAssignRhs(ty *types.Type, rhs syntax.Expr) *semast.Expr {
	if measure, ok := rhs.(*syntax.MeasureExpr); ok {
		return l.castToType(ty, l.lowerMeasureExpr(measure))
	}

	return l.castToType(ty, l.lowerExpr(rhs))
}

func (l *Lowerer) lowerIndexedAssign(id semast.SymbolID, indexed *syntax.IndexedIdent, rhs syntax.Expr) semast.StmtKind {
	lhs := l.lowerIndexedIdent(indexed)
	if lhs.Ty.IsErr() {
		return &semast.ErrStmt{}
	}

	value := l.lowerAssignRhs(lhs.Ty, rhs)

	switch kind := lhs.Kind.(type) {
	case *semast.IndexedIdentExpr:
		return &semast.IndexedAssignStmt{Symbol: id, LhsSpan: indexed.Span, Indices: kind.Indices, Rhs: value}

	case *semast.IndexExpr:
		// A sized scalar assigned through its bit view keeps the flipped
		// indices computed for the read path.
		return &semast.IndexedAssignStmt{Symbol: id, LhsSpan: indexed.Span, Indices: kind.Indices, Rhs: value}
	}

	return &semast.ErrStmt{}
}

// lowerAssignOp desugars a compound assignment into a plain assignment whose
// right side is the binary operation applied to the current value.
func (l *Lowerer) lowerAssignOp(assign *syntax.AssignOpStmt, stmt *syntax.Stmt) semast.StmtKind {
	name := assign.Lhs.Name()
	id, sym, res := l.symbols.TryGetExistingOrInsertErr(name, assign.Lhs.Span())
	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(name, assign.Lhs.Span())
		return &semast.ErrStmt{}
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(assign.Lhs.Span())
		return &semast.ErrStmt{}
	}

	if sym.Ty.IsConst() {
		l.errorf(ErrCannotUpdateConstVariable, assign.Lhs.Span(), "cannot update const variable %s", name)
		return &semast.ErrStmt{}
	}

	if isReadonlyRef(sym.Ty) {
		l.errorf(ErrCannotUpdateReadonlyArrayRef, assign.Lhs.Span(), "cannot update readonly array reference %s", name)
		return &semast.ErrStmt{}
	}

	if assign.Lhs.Indexed != nil {
		lhs := l.lowerIndexedIdent(assign.Lhs.Indexed)
		if lhs.Ty.IsErr() {
			return &semast.ErrStmt{}
		}

		rhs := l.lowerBinaryOp(assign.Op, lhs, l.lowerExpr(assign.Rhs), stmt.Span)
		value := l.castToType(lhs.Ty, rhs)

		var indices []semast.Index
		switch kind := lhs.Kind.(type) {
		case *semast.IndexedIdentExpr:
			indices = kind.Indices
		case *semast.IndexExpr:
			indices = kind.Indices
		}

		return &semast.IndexedAssignStmt{Symbol: id, LhsSpan: assign.Lhs.Span(), Indices: indices, Rhs: value}
	}

	lhs := semast.NewExpr(assign.Lhs.Span(), &semast.IdentExpr{Symbol: id}, sym.Ty)
	rhs := l.lowerBinaryOp(assign.Op, lhs, l.lowerExpr(assign.Rhs), stmt.Span)
	return &semast.AssignStmt{Symbol: id, LhsSpan: assign.Lhs.Span(), Rhs: l.castToType(sym.Ty, rhs)}
}

func (l *Lowerer) lowerMeasureArrow(measure *syntax.MeasureArrowStmt, stmt *syntax.Stmt) semast.StmtKind {
	if measure.Target == nil {
		return &semast.ExprStmt{Expr: l.lowerMeasureExpr(measure.Measure)}
	}

	return l.lowerAssign(&syntax.AssignStmt{Lhs: measure.Target, Rhs: measure.Measure}, stmt)
}

// -----------------------------------------------------------------------------

func (l *Lowerer) lowerDef(def *syntax.DefStmt, stmt *syntax.Stmt) semast.StmtKind {
	if !l.symbols.IsCurrentScopeGlobal() {
		l.errorf(ErrDefDeclarationInNonGlobal, stmt.Span, "def declarations must be done in global scope")
		return &semast.ErrStmt{}
	}

	returnTy := types.Void()
	if def.ReturnTy != nil {
		returnTy = l.lowerTypeDef(def.ReturnTy, false)
	}

	paramTys := make([]*types.Type, len(def.Params))
	for i, p := range def.Params {
		paramTys[i] = l.lowerDefParamTy(p)
	}

	// The def symbol is declared before the body so recursive calls resolve.
	id := l.declareSymbol(&symbols.Symbol{
		Name: def.Ident.Name,
		Span: def.Ident.Span,
		Ty:   types.Function(paramTys, returnTy),
	})

	l.symbols.PushFunctionScope(returnTy)
	defer l.symbols.PopScope()

	params := make([]semast.SymbolID, len(def.Params))
	for i, p := range def.Params {
		params[i] = l.declareSymbol(&symbols.Symbol{
			Name: p.Ident.Name,
			Span: p.Ident.Span,
			Ty:   paramTys[i],
		})
	}

	body := l.lowerBlockWithoutScope(def.Body)

	if returnTy.Kind != types.KVoid && !returnTy.IsErr() && !blockAlwaysReturns(body.Stmts) {
		l.errorf(ErrNonVoidDefShouldAlwaysReturn, def.Ident.Span,
			"non-void def should always return")
	}

	return &semast.DefStmt{Symbol: id, Params: params, Body: body}
}

func (l *Lowerer) lowerDefParamTy(p *syntax.TypedParameter) *types.Type {
	if p.Quantum != nil {
		if p.Quantum.Size == nil {
			return types.Qubit()
		}
		size, ok := l.constEvalQuantumRegisterSize(p.Quantum.Size)
		if !ok {
			return types.Err()
		}
		return types.QubitArray(size)
	}

	return l.lowerTypeDef(p.Ty, false)
}

func (l *Lowerer) lowerExtern(ext *syntax.ExternStmt, stmt *syntax.Stmt) semast.StmtKind {
	if !l.symbols.IsCurrentScopeGlobal() {
		l.errorf(ErrExternDeclarationInNonGlobal, stmt.Span, "extern declarations must be done in global scope")
		return &semast.ErrStmt{}
	}

	returnTy := types.Void()
	if ext.ReturnTy != nil {
		returnTy = l.lowerTypeDef(ext.ReturnTy, false)
	}

	paramTys := make([]*types.Type, len(ext.Params))
	for i, p := range ext.Params {
		paramTys[i] = l.lowerTypeDef(p, false)
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name: ext.Ident.Name,
		Span: ext.Ident.Span,
		Ty:   types.Function(paramTys, returnTy),
	})

	return &semast.ExternStmt{Symbol: id}
}

func (l *Lowerer) lowerGateDecl(gate *syntax.GateStmt, stmt *syntax.Stmt) semast.StmtKind {
	if !l.symbols.IsCurrentScopeGlobal() {
		l.errorf(ErrGateDeclarationInNonGlobal, stmt.Span, "gate declarations must be done in global scope")
		return &semast.ErrStmt{}
	}

	id := l.declareSymbol(&symbols.Symbol{
		Name: gate.Ident.Name,
		Span: gate.Ident.Span,
		Ty:   types.Gate(len(gate.Params), len(gate.Qubits)),
	})

	l.symbols.PushScope(symbols.ScopeGate)
	defer l.symbols.PopScope()

	params := make([]semast.SymbolID, len(gate.Params))
	for i, p := range gate.Params {
		params[i] = l.declareSymbol(&symbols.Symbol{
			Name: p.Name,
			Span: p.Span,
			Ty:   types.Angle(types.NoWidth, false),
		})
	}

	qubits := make([]semast.SymbolID, len(gate.Qubits))
	for i, q := range gate.Qubits {
		qubits[i] = l.declareSymbol(&symbols.Symbol{
			Name: q.Name,
			Span: q.Span,
			Ty:   types.Qubit(),
		})
	}

	body := l.lowerBlockWithoutScope(gate.Body)

	return &semast.GateDeclStmt{Symbol: id, Params: params, Qubits: qubits, Body: body}
}
