package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/qsast"
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/types"
)

// ---------------------------------------------------------------------------
// fixture helpers

func sp() *report.TextSpan { return &report.TextSpan{} }

func newCompiler(cfg Config, table *symbols.Table) (*Compiler, *report.Bag) {
	bag := report.NewBag()
	c := New(cfg, "test.qasm", bag, nil)
	c.table = table
	return c, bag
}

func intExpr(v int64) *semast.Expr {
	val := semast.IntValue(v)
	e := semast.NewExpr(sp(), &semast.LitExpr{Value: val}, types.Int(types.NoWidth, true))
	e.ConstValue = val
	return e
}

func floatExpr(v float64) *semast.Expr {
	val := semast.FloatValue(v)
	e := semast.NewExpr(sp(), &semast.LitExpr{Value: val}, types.Float(types.NoWidth, true))
	e.ConstValue = val
	return e
}

func identOf(table *symbols.Table, id semast.SymbolID) *semast.Expr {
	return semast.NewExpr(sp(), &semast.IdentExpr{Symbol: id}, table.Get(id).Ty)
}

func qubitOperand(table *symbols.Table, id semast.SymbolID) semast.GateOperand {
	return semast.GateOperand{Span: sp(), Expr: identOf(table, id)}
}

func semStmt(kind semast.StmtKind) *semast.Stmt {
	return &semast.Stmt{Span: sp(), Kind: kind}
}

// ---------------------------------------------------------------------------

func TestOperationSignatureString(t *testing.T) {
	sig := &OperationSignature{
		Namespace: "qasm_import",
		Name:      "program",
		Input:     []SignatureParam{{Name: "n", Ty: "Int"}, {Name: "theta", Ty: "Double"}},
		Output:    "Result",
	}

	assert.Equal(t, "program(n : Int, theta : Double) : Result", sig.String())

	empty := &OperationSignature{Name: "program", Output: "Unit"}
	assert.Equal(t, "program() : Unit", empty.String())
}

func TestOutputSemantics(t *testing.T) {
	table := symbols.NewTable(false)
	table.Insert(&symbols.Symbol{Name: "c", Ty: types.BitArray(2, false)})
	table.Insert(&symbols.Symbol{Name: "n", Ty: types.Int(types.NoWidth, false)})
	table.Insert(&symbols.Symbol{Name: "b", Ty: types.Bit(false)})

	// Declaration order, all classical outputs.
	c, _ := newCompiler(Config{Output: OutputOpenQasm}, table)
	ty, value := c.outputReturn()
	assert.Equal(t, "(Result[], Int, Result)", ty)
	assert.Equal(t, "(c, n, b)", qsast.ExprString(value))

	// Bit registers only, most recently declared first.
	c, _ = newCompiler(Config{Output: OutputQiskit}, table)
	ty, value = c.outputReturn()
	assert.Equal(t, "(Result, Result[])", ty)
	assert.Equal(t, "(b, c)", qsast.ExprString(value))

	// No output at all.
	c, _ = newCompiler(Config{Output: OutputResourceEstimation}, table)
	ty, value = c.outputReturn()
	assert.Equal(t, "Unit", ty)
	assert.Nil(t, value)
}

func TestOutputSingleRegisterIsUnwrapped(t *testing.T) {
	table := symbols.NewTable(false)
	table.Insert(&symbols.Symbol{Name: "c", Ty: types.BitArray(4, false)})

	c, _ := newCompiler(Config{Output: OutputQiskit}, table)
	ty, value := c.outputReturn()
	assert.Equal(t, "Result[]", ty)
	assert.Equal(t, "c", qsast.ExprString(value))
}

func TestQubitAllocationModes(t *testing.T) {
	table := symbols.NewTable(false)

	c, _ := newCompiler(Config{Qubits: QubitQSharp}, table)
	use, ok := c.allocQubit("q", 0).(*qsast.QubitUseStmt)
	require.True(t, ok)
	assert.Equal(t, "q", use.Name)
	assert.Equal(t, 0, use.Size)

	c, _ = newCompiler(Config{Qubits: QubitQiskit}, table)
	local, ok := c.allocQubit("q", 0).(*qsast.LocalStmt)
	require.True(t, ok)
	assert.Equal(t, "QIR.Runtime.__quantum__rt__qubit_allocate()", qsast.ExprString(local.Value))

	local, ok = c.allocQubit("r", 3).(*qsast.LocalStmt)
	require.True(t, ok)
	assert.Equal(t, "QIR.Runtime.AllocateQubitArray(3)", qsast.ExprString(local.Value))
}

func TestSwitchDesugarsToIfChain(t *testing.T) {
	table := symbols.NewTable(false)
	n, _ := table.Insert(&symbols.Symbol{Name: "n", Ty: types.Int(types.NoWidth, false)})

	c, bag := newCompiler(Config{}, table)

	s := &semast.SwitchStmt{
		Target: identOf(table, n),
		Cases: []semast.SwitchCase{
			{
				Labels: []*semast.Expr{intExpr(1), intExpr(2)},
				Body:   &semast.BlockStmt{Stmts: []*semast.Stmt{semStmt(&semast.EndStmt{})}},
			},
			{
				Labels: []*semast.Expr{intExpr(3)},
				Body:   &semast.BlockStmt{},
			},
		},
		Default: &semast.BlockStmt{Stmts: []*semast.Stmt{semStmt(&semast.EndStmt{})}},
	}

	stmts := c.compileSwitch(s)
	require.False(t, bag.HasErrors())
	require.Len(t, stmts, 2)

	// The target binds once to a generated local.
	local, ok := stmts[0].(*qsast.LocalStmt)
	require.True(t, ok)
	assert.Equal(t, "n", qsast.ExprString(local.Value))

	root, ok := stmts[1].(*qsast.IfStmt)
	require.True(t, ok)
	assert.Equal(t,
		"(("+local.Name+" == 1) or ("+local.Name+" == 2))",
		qsast.ExprString(root.Cond))

	// The second arm chains in the else branch, with the default as its else.
	require.NotNil(t, root.Else)
	require.Len(t, root.Else.Stmts, 1)
	second, ok := root.Else.Stmts[0].(*qsast.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "("+local.Name+" == 3)", qsast.ExprString(second.Cond))
	require.NotNil(t, second.Else)
	assert.Len(t, second.Else.Stmts, 1)
}

func TestIndexedAssignThroughRangeRejected(t *testing.T) {
	table := symbols.NewTable(false)
	r, _ := table.Insert(&symbols.Symbol{Name: "r", Ty: types.BitArray(4, false)})

	c, bag := newCompiler(Config{}, table)
	out := c.compileIndexedAssign(&semast.IndexedAssignStmt{
		Symbol:  r,
		LhsSpan: sp(),
		Indices: []semast.Index{{Range: &semast.Range{Span: sp()}}},
		Rhs:     intExpr(0),
	})

	assert.Nil(t, out)
	assert.Equal(t, 1, bag.CountCode(ErrNotSupported))
}

func TestCompileFileProgram(t *testing.T) {
	table := symbols.NewTable(false)
	q, _ := table.Insert(&symbols.Symbol{Name: "q", Ty: types.Qubit()})
	bTy := types.Bit(false)
	b, _ := table.Insert(&symbols.Symbol{Name: "b", Ty: bTy})

	bitInit := semast.NewExpr(sp(), &semast.LitExpr{Value: semast.BitValue(false)}, bTy)
	measured := semast.NewExpr(sp(), &semast.MeasureExpr{Operand: qubitOperand(table, q)}, bTy)

	prog := &semast.Program{Stmts: []*semast.Stmt{
		semStmt(&semast.QubitDeclStmt{Symbol: q}),
		semStmt(&semast.ClassicalDeclStmt{Symbol: b, Init: bitInit}),
		semStmt(&semast.AssignStmt{Symbol: b, LhsSpan: sp(), Rhs: measured}),
	}}

	c, bag := newCompiler(Config{}, table)
	pkg, sig := c.Compile(prog, table)

	require.False(t, bag.HasErrors())
	require.NotNil(t, sig)
	assert.Equal(t, "qasm_import", pkg.Namespace)
	assert.Equal(t, "program() : Result", sig.String())

	entry, ok := pkg.Items[len(pkg.Items)-1].(*qsast.OperationDecl)
	require.True(t, ok)
	assert.Equal(t, "program", entry.Name)
	assert.Equal(t, "Result", entry.ReturnTy)

	// The inferred output is returned as the final statement.
	last, ok := entry.Body.Stmts[len(entry.Body.Stmts)-1].(*qsast.ReturnStmt)
	require.True(t, ok)
	assert.Equal(t, "b", qsast.ExprString(last.Value))
}

func TestFragmentsSkipEntryWrapper(t *testing.T) {
	table := symbols.NewTable(false)
	f, _ := table.Insert(&symbols.Symbol{
		Name: "f",
		Ty:   types.Function(nil, types.Void()),
	})

	prog := &semast.Program{Stmts: []*semast.Stmt{
		semStmt(&semast.DefStmt{Symbol: f, Body: &semast.BlockStmt{}}),
	}}

	c, bag := newCompiler(Config{Program: ProgramFragments}, table)
	pkg, sig := c.Compile(prog, table)

	require.False(t, bag.HasErrors())
	assert.Nil(t, sig)
	assert.Empty(t, pkg.Namespace)

	// Only the hoisted declaration survives; no entry operation is emitted
	// for an empty body.
	require.Len(t, pkg.Items, 1)
	decl, ok := pkg.Items[0].(*qsast.OperationDecl)
	require.True(t, ok)
	assert.Equal(t, "f", decl.Name)
}

func TestCompileCasts(t *testing.T) {
	table := symbols.NewTable(false)
	c, _ := newCompiler(Config{}, table)

	bitExpr := semast.NewExpr(sp(), &semast.LitExpr{Value: semast.BitValue(true)}, types.Bit(false))
	assert.Equal(t, "__ResultAsInt__(One)",
		qsast.ExprString(c.compileCast(types.Int(types.NoWidth, false), bitExpr)))
	assert.Equal(t, "__ResultAsBool__(One)",
		qsast.ExprString(c.compileCast(types.Bool(false), bitExpr)))

	n := intExpr(5)
	n.Ty = types.Int(types.NoWidth, false)
	assert.Equal(t, "__IntAsResultArrayBE__(5, 4)",
		qsast.ExprString(c.compileCast(types.BitArray(4, false), n)))
	assert.Equal(t, "IntAsDouble(5)",
		qsast.ExprString(c.compileCast(types.Float(types.NoWidth, false), n)))
	assert.Equal(t, "__BoolAsResult__((5 != 0))",
		qsast.ExprString(c.compileCast(types.Bit(false), n)))

	f := floatExpr(1.5)
	f.Ty = types.Float(types.NoWidth, false)
	assert.Equal(t, "Truncate(1.5)",
		qsast.ExprString(c.compileCast(types.Int(types.NoWidth, false), f)))

	// Angles share the float representation, so the cast is the identity.
	a := floatExpr(1.5)
	a.Ty = types.Angle(types.NoWidth, false)
	assert.Equal(t, "1.5",
		qsast.ExprString(c.compileCast(types.Float(types.NoWidth, false), a)))
}
