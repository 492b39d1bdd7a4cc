package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// ---------------------------------------------------------------------------
// fixture helpers

func sp() *report.TextSpan { return &report.TextSpan{} }

func id(name string) *syntax.Ident {
	return &syntax.Ident{Name: name, Span: sp()}
}

func stmt(kind syntax.StmtKind) *syntax.Stmt {
	return &syntax.Stmt{Span: sp(), Kind: kind}
}

func intLit(v int64) syntax.Expr {
	return &syntax.Lit{Kind: syntax.LitInt, Int: v, Span: sp()}
}

func floatLit(v float64) syntax.Expr {
	return &syntax.Lit{Kind: syntax.LitFloat, Float: v, Span: sp()}
}

func identExpr(name string) syntax.Expr {
	return &syntax.IdentExpr{Ident: id(name)}
}

func scalarTy(kind syntax.ScalarKind, designator syntax.Expr) *syntax.ScalarTypeDef {
	return &syntax.ScalarTypeDef{Kind: kind, Designator: designator, Span: sp()}
}

func operand(name string) *syntax.GateOperand {
	return &syntax.GateOperand{
		Ident: &syntax.IdentOrIndexedIdent{Ident: id(name)},
		Span:  sp(),
	}
}

func block(stmts ...*syntax.Stmt) *syntax.BlockStmt {
	return &syntax.BlockStmt{Stmts: stmts, Span: sp()}
}

func includeStd() *syntax.Stmt {
	return stmt(&syntax.IncludeStmt{Path: "stdgates.inc", PathSpan: sp()})
}

func qubitDecl(name string, size int64) *syntax.Stmt {
	decl := &syntax.QuantumDeclStmt{Ident: id(name)}
	if size > 0 {
		decl.Size = intLit(size)
	}
	return stmt(decl)
}

func lowerProgram(t *testing.T, stmts ...*syntax.Stmt) (*semast.Program, *symbols.Table, *report.Bag) {
	t.Helper()

	bag := report.NewBag()
	l := New("test.qasm", bag)
	prog := l.Lower(&syntax.Program{Stmts: stmts})
	require.NotNil(t, prog)

	return prog, l.Symbols(), bag
}

// ---------------------------------------------------------------------------

func TestConstDeclEvaluatesInitializer(t *testing.T) {
	_, table, bag := lowerProgram(t,
		stmt(&syntax.ConstDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("n"),
			Init: &syntax.BinaryExpr{
				Op:  syntax.OpAdd,
				Lhs: intLit(2),
				Rhs: &syntax.BinaryExpr{Op: syntax.OpMul, Lhs: intLit(3), Rhs: intLit(4), Span: sp()},
				Span: sp(),
			},
		}),
	)

	assert.False(t, bag.HasErrors())

	_, sym, res := table.GetByName("n")
	require.Equal(t, symbols.LookupOk, res)
	require.NotNil(t, sym.ConstValue)
	got, ok := sym.ConstValue.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(14), got)
}

func TestConstDeclRequiresConstInitializer(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("x"),
			Init:  intLit(1),
		}),
		stmt(&syntax.ConstDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("n"),
			Init:  identExpr("x"),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrExprMustBeConst))
}

func TestConstDivisionByZero(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ConstDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("n"),
			Init: &syntax.BinaryExpr{
				Op: syntax.OpDiv, Lhs: intLit(1), Rhs: intLit(0), Span: sp(),
			},
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrDivisionByZero))
}

func TestGateBodyCapturesConstGlobal(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		stmt(&syntax.ConstDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("n"),
			Init:  intLit(4),
		}),
		stmt(&syntax.GateStmt{
			Ident:  id("g"),
			Qubits: []*syntax.Ident{id("q")},
			Body: block(
				stmt(&syntax.ClassicalDeclStmt{
					Ty:    scalarTy(syntax.ScalarInt, nil),
					Ident: id("x"),
					Init:  identExpr("n"),
				}),
			),
		}),
	)

	require.False(t, bag.HasErrors())

	gate, ok := prog.Stmts[1].Kind.(*semast.GateDeclStmt)
	require.True(t, ok)

	decl, ok := gate.Body.Stmts[0].Kind.(*semast.ClassicalDeclStmt)
	require.True(t, ok)
	_, ok = decl.Init.Kind.(*semast.CapturedIdentExpr)
	assert.True(t, ok, "const global reference should lower as a capture, got %T", decl.Init.Kind)
}

func TestGateBodyRejectsNonConstCapture(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("m"),
			Init:  intLit(1),
		}),
		stmt(&syntax.GateStmt{
			Ident:  id("g"),
			Qubits: []*syntax.Ident{id("q")},
			Body: block(
				stmt(&syntax.ClassicalDeclStmt{
					Ty:    scalarTy(syntax.ScalarInt, nil),
					Ident: id("x"),
					Init:  identExpr("m"),
				}),
			),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrExprMustBeConst))
}

func TestBuiltinConstantsResistShadowing(t *testing.T) {
	// Shadowing "pi" in an inner scope is a legal declaration, but references
	// to the name still resolve to the builtin value.
	prog, _, bag := lowerProgram(t,
		stmt(&syntax.DefStmt{
			Ident: id("f"),
			Body: block(
				stmt(&syntax.ClassicalDeclStmt{
					Ty:    scalarTy(syntax.ScalarFloat, nil),
					Ident: id("pi"),
					Init:  floatLit(3),
				}),
				stmt(&syntax.ClassicalDeclStmt{
					Ty:    scalarTy(syntax.ScalarFloat, nil),
					Ident: id("x"),
					Init:  identExpr("pi"),
				}),
			),
		}),
	)

	require.False(t, bag.HasErrors())

	def, ok := prog.Stmts[0].Kind.(*semast.DefStmt)
	require.True(t, ok)
	decl, ok := def.Body.Stmts[1].Kind.(*semast.ClassicalDeclStmt)
	require.True(t, ok)
	require.NotNil(t, decl.Init.ConstValue)
	assert.Equal(t, types.KFloat, decl.Init.Ty.Kind)
	assert.InDelta(t, 3.14159265, decl.Init.ConstValue.Float, 1e-8)
}

// ---------------------------------------------------------------------------

func TestNonVoidDefMustAlwaysReturn(t *testing.T) {
	body := block(
		stmt(&syntax.IfStmt{
			Cond: &syntax.Lit{Kind: syntax.LitBool, Bool: true, Span: sp()},
			Then: stmt(&syntax.BlockStmt{
				Stmts: []*syntax.Stmt{stmt(&syntax.ReturnStmt{Value: intLit(1)})},
				Span:  sp(),
			}),
		}),
	)

	_, _, bag := lowerProgram(t,
		stmt(&syntax.DefStmt{
			Ident:    id("f"),
			ReturnTy: scalarTy(syntax.ScalarInt, nil),
			Body:     body,
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrNonVoidDefShouldAlwaysReturn))
}

func TestNonVoidDefReturningBothBranches(t *testing.T) {
	thenBlock := stmt(&syntax.BlockStmt{
		Stmts: []*syntax.Stmt{stmt(&syntax.ReturnStmt{Value: intLit(1)})},
		Span:  sp(),
	})
	elseBlock := stmt(&syntax.BlockStmt{
		Stmts: []*syntax.Stmt{stmt(&syntax.ReturnStmt{Value: intLit(2)})},
		Span:  sp(),
	})

	_, _, bag := lowerProgram(t,
		stmt(&syntax.DefStmt{
			Ident:    id("f"),
			ReturnTy: scalarTy(syntax.ScalarInt, nil),
			Body: block(
				stmt(&syntax.IfStmt{
					Cond: &syntax.Lit{Kind: syntax.LitBool, Bool: true, Span: sp()},
					Then: thenBlock,
					Else: elseBlock,
				}),
			),
		}),
	)

	assert.False(t, bag.HasErrors())
}

func TestReturnOutsideSubroutine(t *testing.T) {
	_, _, bag := lowerProgram(t, stmt(&syntax.ReturnStmt{Value: intLit(1)}))
	assert.Equal(t, 1, bag.CountCode(ErrReturnNotInSubroutine))
}

func TestQubitDeclInNonGlobalScope(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.DefStmt{
			Ident: id("f"),
			Body:  block(qubitDecl("q", 0)),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrQuantumDeclInNonGlobal))
}

// ---------------------------------------------------------------------------

func TestGateCallBroadcastUnrolls(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		includeStd(),
		qubitDecl("a", 3),
		qubitDecl("b", 3),
		stmt(&syntax.GateCallStmt{
			Name:   id("cx"),
			Qubits: []*syntax.GateOperand{operand("a"), operand("b")},
		}),
	)

	require.False(t, bag.HasErrors())

	// The two register declarations plus three unrolled calls.
	var calls []*semast.GateCallStmt
	for _, s := range prog.Stmts {
		if call, ok := s.Kind.(*semast.GateCallStmt); ok {
			calls = append(calls, call)
		}
	}
	require.Len(t, calls, 3)

	for i, call := range calls {
		require.Len(t, call.Operands, 2)
		for _, op := range call.Operands {
			indexed, ok := op.Expr.Kind.(*semast.IndexedIdentExpr)
			require.True(t, ok)
			require.Len(t, indexed.Indices, 1)
			got, ok := indexed.Indices[0].Expr.ConstValue.AsInt()
			require.True(t, ok)
			assert.Equal(t, int64(i), got)
		}
	}
}

func TestGateCallBroadcastSizeMismatch(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		includeStd(),
		qubitDecl("a", 3),
		qubitDecl("b", 2),
		stmt(&syntax.GateCallStmt{
			Name:   id("cx"),
			Qubits: []*syntax.GateOperand{operand("a"), operand("b")},
		}),
	)

	// Exactly one diagnostic for the whole call, not one per unrolled copy.
	assert.Equal(t, 1, bag.CountCode(ErrBroadcastSizeMismatch))

	var calls int
	for _, s := range prog.Stmts {
		if _, ok := s.Kind.(*semast.GateCallStmt); ok {
			calls++
		}
	}
	assert.Zero(t, calls)
}

func TestGateCallModifierOrder(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		includeStd(),
		qubitDecl("q0", 0),
		qubitDecl("q1", 0),
		qubitDecl("q2", 0),
		stmt(&syntax.GateCallStmt{
			Modifiers: []*syntax.GateModifier{
				{Kind: syntax.ModInv, Span: sp(), KeywordSpan: sp()},
				{Kind: syntax.ModCtrl, Arg: intLit(2), Span: sp(), KeywordSpan: sp()},
				{Kind: syntax.ModPow, Arg: intLit(3), Span: sp(), KeywordSpan: sp()},
			},
			Name:   id("rx"),
			Args:   []syntax.Expr{floatLit(0.5)},
			Qubits: []*syntax.GateOperand{operand("q0"), operand("q1"), operand("q2")},
		}),
	)

	require.False(t, bag.HasErrors())

	call, ok := prog.Stmts[len(prog.Stmts)-1].Kind.(*semast.GateCallStmt)
	require.True(t, ok)

	// Modifiers keep source order: outermost first.
	require.Len(t, call.Modifiers, 3)
	assert.Equal(t, syntax.ModInv, call.Modifiers[0].Kind)
	assert.Equal(t, syntax.ModCtrl, call.Modifiers[1].Kind)
	assert.Equal(t, 2, call.Modifiers[1].Ctrls)
	assert.Equal(t, syntax.ModPow, call.Modifiers[2].Kind)

	// The control qubits fold into the call's quantum arity.
	assert.Equal(t, 3, call.QuantumArity)
	assert.Len(t, call.Operands, 3)
}

func TestImplicitModifierGates(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		includeStd(),
		qubitDecl("q", 0),
		stmt(&syntax.GateCallStmt{
			Name:   id("sdg"),
			Qubits: []*syntax.GateOperand{operand("q")},
		}),
	)

	require.False(t, bag.HasErrors())

	call, ok := prog.Stmts[len(prog.Stmts)-1].Kind.(*semast.GateCallStmt)
	require.True(t, ok)

	// sdg lowers to an inverse-modified call of s.
	require.Len(t, call.Modifiers, 1)
	assert.Equal(t, syntax.ModInv, call.Modifiers[0].Kind)
}

func TestGateArityChecking(t *testing.T) {
	_, _, bag := lowerProgram(t,
		includeStd(),
		qubitDecl("q", 0),
		stmt(&syntax.GateCallStmt{
			Name:   id("rx"),
			Qubits: []*syntax.GateOperand{operand("q")},
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrInvalidNumberOfClassicalArgs))
}

func TestUndefinedGateWithoutInclude(t *testing.T) {
	_, _, bag := lowerProgram(t,
		qubitDecl("q", 0),
		stmt(&syntax.GateCallStmt{
			Name:   id("h"),
			Qubits: []*syntax.GateOperand{operand("q")},
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrUndefinedSymbol))
}

func TestHardwareQubitOperandRejected(t *testing.T) {
	_, _, bag := lowerProgram(t,
		includeStd(),
		stmt(&syntax.GateCallStmt{
			Name: id("x"),
			Qubits: []*syntax.GateOperand{{
				Hardware: &syntax.HardwareQubit{Name: "0", Span: sp()},
				Span:     sp(),
			}},
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrNotSupported))
}

// ---------------------------------------------------------------------------

func TestUnaryNotTokensAreSwappedBack(t *testing.T) {
	// The parser swaps the `!` and `~` tokens, so an OpNotB node means the
	// source wrote `!`: applying it to a float is a bool conversion, not an
	// error.
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBool, nil),
			Ident: id("b"),
			Init:  &syntax.UnaryExpr{Op: syntax.OpNotB, Operand: floatLit(1), Span: sp()},
		}),
	)
	assert.False(t, bag.HasErrors())

	// And an OpNotL node means the source wrote `~`, which floats reject.
	_, _, bag = lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarFloat, nil),
			Ident: id("f"),
			Init:  &syntax.UnaryExpr{Op: syntax.OpNotL, Operand: floatLit(1), Span: sp()},
		}),
	)
	assert.Equal(t, 1, bag.CountCode(ErrTypeDoesNotSupportBitwiseNot))
}

func TestSwitchRequiresVersion31(t *testing.T) {
	sw := func() *syntax.Stmt {
		return stmt(&syntax.SwitchStmt{
			Target: intLit(1),
			Cases: []*syntax.SwitchCase{{
				Labels: []syntax.Expr{intLit(1)},
				Body:   block(),
				Span:   sp(),
			}},
		})
	}

	bag := report.NewBag()
	l := New("test.qasm", bag)
	l.Lower(&syntax.Program{
		Version: &syntax.Version{Major: 3, Minor: 0, HasMinor: true, Span: sp()},
		Stmts:   []*syntax.Stmt{sw()},
	})
	assert.Equal(t, 1, bag.CountCode(ErrNotSupportedInThisVersion))

	bag = report.NewBag()
	l = New("test.qasm", bag)
	l.Lower(&syntax.Program{
		Version: &syntax.Version{Major: 3, Minor: 1, HasMinor: true, Span: sp()},
		Stmts:   []*syntax.Stmt{sw()},
	})
	assert.False(t, bag.HasErrors())
}

func TestUnsupportedVersionRejected(t *testing.T) {
	bag := report.NewBag()
	l := New("test.qasm", bag)
	l.Lower(&syntax.Program{
		Version: &syntax.Version{Major: 4, Span: sp()},
	})
	assert.Equal(t, 1, bag.CountCode(ErrUnsupportedVersion))
}

func TestQasm2ImplicitlyIncludesLibrary(t *testing.T) {
	bag := report.NewBag()
	l := New("test.qasm", bag)
	prog := l.Lower(&syntax.Program{
		Version: &syntax.Version{Major: 2, Minor: 0, HasMinor: true, Span: sp()},
		Stmts: []*syntax.Stmt{
			qubitDecl("q", 0),
			stmt(&syntax.GateCallStmt{
				Name:   id("h"),
				Qubits: []*syntax.GateOperand{operand("q")},
			}),
		},
	})

	assert.False(t, bag.HasErrors())
	assert.Equal(t, "2.0", prog.Version)
}

// ---------------------------------------------------------------------------

func TestRedefinedSymbol(t *testing.T) {
	_, _, bag := lowerProgram(t,
		qubitDecl("q", 0),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, nil),
			Ident: id("q"),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrRedefinedSymbol))
}

func TestBreakOutsideLoop(t *testing.T) {
	_, _, bag := lowerProgram(t, stmt(&syntax.BreakStmt{}))
	assert.Equal(t, 1, bag.CountCode(ErrInvalidScope))
}

func TestSizedUIntValueRangeChecked(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ConstDeclStmt{
			Ty:    scalarTy(syntax.ScalarUInt, intLit(4)),
			Ident: id("n"),
			Init:  intLit(16),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrInvalidCastValueRange))
}
