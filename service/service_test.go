package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/types"
)

// span builds a single-line span on the given line from startCol to endCol.
func span(line, startCol, endCol int) *report.TextSpan {
	return &report.TextSpan{StartLine: line, StartCol: startCol, EndLine: line, EndCol: endCol}
}

// fixtureProgram models:
//
//	qubit q;        // line 0, "q" at col 6
//	bit b = 0;      // line 1, "b" at col 4
//	h q;            // line 2, "h" at col 0, "q" at col 2
//	b = measure q;  // line 3, "b" at col 0, "q" at col 12
func fixtureProgram(t *testing.T) (*semast.Program, *symbols.Table, map[string]semast.SymbolID) {
	t.Helper()

	table := symbols.NewTable(false)

	q, ok := table.Insert(&symbols.Symbol{Name: "q", Span: span(0, 6, 6), Ty: types.Qubit()})
	require.True(t, ok)
	b, ok := table.Insert(&symbols.Symbol{Name: "b", Span: span(1, 4, 4), Ty: types.Bit(false)})
	require.True(t, ok)
	h, ok := table.Insert(&symbols.Symbol{Name: "h", Span: nil, Ty: types.Gate(0, 1)})
	require.True(t, ok)

	qAt := func(line, col int) semast.GateOperand {
		s := span(line, col, col)
		return semast.GateOperand{
			Span: s,
			Expr: semast.NewExpr(s, &semast.IdentExpr{Symbol: q}, types.Qubit()),
		}
	}

	bitLit := semast.NewExpr(span(1, 8, 8),
		&semast.LitExpr{Value: semast.BitValue(false)}, types.Bit(true))

	measured := semast.NewExpr(span(3, 4, 12),
		&semast.MeasureExpr{Operand: qAt(3, 12)}, types.Bit(false))

	prog := &semast.Program{Stmts: []*semast.Stmt{
		{Span: span(0, 0, 7), Kind: &semast.QubitDeclStmt{Symbol: q}},
		{Span: span(1, 0, 9), Kind: &semast.ClassicalDeclStmt{Symbol: b, Init: bitLit}},
		{Span: span(2, 0, 3), Kind: &semast.GateCallStmt{
			Symbol:       h,
			NameSpan:     span(2, 0, 0),
			Operands:     []semast.GateOperand{qAt(2, 2)},
			QuantumArity: 1,
		}},
		{Span: span(3, 0, 14), Kind: &semast.AssignStmt{
			Symbol:  b,
			LhsSpan: span(3, 0, 0),
			Rhs:     measured,
		}},
	}}

	return prog, table, map[string]semast.SymbolID{"q": q, "b": b, "h": h}
}

func TestSymbolAtResolvesDeclarationsAndReferences(t *testing.T) {
	prog, table, ids := fixtureProgram(t)

	// The declaration of q.
	id, sym, ok := SymbolAt(prog, table, 0, 6)
	require.True(t, ok)
	assert.Equal(t, ids["q"], id)
	assert.Equal(t, "q", sym.Name)

	// The gate name in the call.
	id, sym, ok = SymbolAt(prog, table, 2, 0)
	require.True(t, ok)
	assert.Equal(t, ids["h"], id)
	assert.Equal(t, types.KGate, sym.Ty.Kind)

	// The measured operand.
	id, _, ok = SymbolAt(prog, table, 3, 12)
	require.True(t, ok)
	assert.Equal(t, ids["q"], id)

	// A position covering nothing.
	_, _, ok = SymbolAt(prog, table, 5, 0)
	assert.False(t, ok)
}

func TestSymbolAtPrefersInnermostOccurrence(t *testing.T) {
	table := symbols.NewTable(false)

	f, _ := table.Insert(&symbols.Symbol{
		Name: "f",
		Span: span(0, 4, 4),
		Ty:   types.Function([]*types.Type{types.Int(types.NoWidth, false)}, types.Void()),
	})
	n, _ := table.Insert(&symbols.Symbol{Name: "n", Span: span(1, 4, 4), Ty: types.Int(types.NoWidth, false)})

	// f(n) on line 2: the call occurrence spans the whole expression, the
	// argument's occurrence sits inside it.
	arg := semast.NewExpr(span(2, 2, 2), &semast.IdentExpr{Symbol: n}, table.Get(n).Ty)
	call := semast.NewExpr(span(2, 0, 3),
		&semast.CallExpr{Symbol: f, Args: []*semast.Expr{arg}}, types.Void())

	prog := &semast.Program{Stmts: []*semast.Stmt{
		{Span: span(2, 0, 4), Kind: &semast.ExprStmt{Expr: call}},
	}}

	// Inside the argument both occurrences cover the position; the argument
	// wins.
	id, _, ok := SymbolAt(prog, table, 2, 2)
	require.True(t, ok)
	assert.Equal(t, n, id)

	// On the callee only the call occurrence applies.
	id, _, ok = SymbolAt(prog, table, 2, 0)
	require.True(t, ok)
	assert.Equal(t, f, id)
}

func TestReferencesIncludeDeclaration(t *testing.T) {
	prog, table, ids := fixtureProgram(t)

	refs := References(prog, table, ids["q"])
	want := []*report.TextSpan{span(0, 6, 6), span(2, 2, 2), span(3, 12, 12)}
	assert.Empty(t, cmp.Diff(want, refs))

	refs = References(prog, table, ids["b"])
	want = []*report.TextSpan{span(1, 4, 4), span(3, 0, 0)}
	assert.Empty(t, cmp.Diff(want, refs))
}

func TestDefinitionJumpsToDeclaration(t *testing.T) {
	prog, table, _ := fixtureProgram(t)

	// From the reference on line 2 back to the declaration on line 0.
	got, ok := Definition(prog, table, 2, 2)
	require.True(t, ok)
	assert.Equal(t, span(0, 6, 6), got)

	// The builtin gate has no declaration span.
	_, ok = Definition(prog, table, 2, 0)
	assert.False(t, ok)
}
