package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/qsast"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

func gateCallExpr(t *testing.T, c *Compiler, g *semast.GateCallStmt) qsast.Expr {
	t.Helper()

	stmts := c.compileGateCall(g)
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*qsast.ExprStmt)
	require.True(t, ok)
	return es.Expr
}

func TestIntrinsicGateNames(t *testing.T) {
	table := symbols.NewTable(false)
	c, _ := newCompiler(Config{}, table)

	assert.Equal(t, "CNOT", c.targetGateName("cx"))
	assert.Equal(t, "CNOT", c.targetGateName("CX"))
	assert.Equal(t, "CCNOT", c.targetGateName("ccx"))
	assert.Equal(t, "I", c.targetGateName("id"))

	// User-defined gates keep their declared name.
	assert.Equal(t, "bell", c.targetGateName("bell"))

	// The builtins without intrinsics pull in their runtime stubs.
	assert.Equal(t, stubU, c.targetGateName("U"))
	assert.Equal(t, stubGphase, c.targetGateName("gphase"))
	assert.True(t, c.stubs[stubU])
	assert.True(t, c.stubs[stubGphase])
}

func TestGateCallWithoutModifiers(t *testing.T) {
	table := symbols.NewTable(false)
	rx, _ := table.Insert(&symbols.Symbol{Name: "rx", Ty: types.Gate(1, 1)})
	q, _ := table.Insert(&symbols.Symbol{Name: "q", Ty: types.Qubit()})

	c, _ := newCompiler(Config{}, table)
	expr := gateCallExpr(t, c, &semast.GateCallStmt{
		Symbol:   rx,
		Args:     []*semast.Expr{floatExpr(0.5)},
		Operands: []semast.GateOperand{qubitOperand(table, q)},
	})

	assert.Equal(t, "Rx(0.5, q)", qsast.ExprString(expr))
}

func TestGateModifierNesting(t *testing.T) {
	table := symbols.NewTable(false)
	rx, _ := table.Insert(&symbols.Symbol{Name: "rx", Ty: types.Gate(1, 1)})

	var qs []semast.GateOperand
	for _, name := range []string{"q0", "q1", "q2"} {
		id, _ := table.Insert(&symbols.Symbol{Name: name, Ty: types.Qubit()})
		qs = append(qs, qubitOperand(table, id))
	}

	c, _ := newCompiler(Config{}, table)

	// inv @ ctrl(2) @ pow(3) @ rx(0.5) q0, q1, q2: the ctrl modifier takes
	// q1 and q2 off the end, rx itself applies to q0, and the wrappers nest
	// with the written outermost modifier outermost.
	expr := gateCallExpr(t, c, &semast.GateCallStmt{
		Symbol: rx,
		Modifiers: []semast.GateModifier{
			{Kind: syntax.ModInv, Span: sp()},
			{Kind: syntax.ModCtrl, Ctrls: 2, Span: sp()},
			{Kind: syntax.ModPow, Arg: intExpr(3), Span: sp()},
		},
		Args:     []*semast.Expr{floatExpr(0.5)},
		Operands: qs,
	})

	assert.Equal(t,
		"Adjoint Controlled __Pow__([q1, q2], (3, Rx, (0.5, q0)))",
		qsast.ExprString(expr))
	assert.True(t, c.stubs[stubPow])
}

func TestNegCtrlCompilesToOnZeroStub(t *testing.T) {
	table := symbols.NewTable(false)
	x, _ := table.Insert(&symbols.Symbol{Name: "x", Ty: types.Gate(0, 1)})
	q0, _ := table.Insert(&symbols.Symbol{Name: "q0", Ty: types.Qubit()})
	q1, _ := table.Insert(&symbols.Symbol{Name: "q1", Ty: types.Qubit()})

	c, _ := newCompiler(Config{}, table)
	expr := gateCallExpr(t, c, &semast.GateCallStmt{
		Symbol: x,
		Modifiers: []semast.GateModifier{
			{Kind: syntax.ModNegCtrl, Ctrls: 1, Span: sp()},
		},
		Operands: []semast.GateOperand{qubitOperand(table, q0), qubitOperand(table, q1)},
	})

	assert.Equal(t, "__ControlledOnZero__([q1], X, (q0))", qsast.ExprString(expr))
	assert.True(t, c.stubs[stubNegCtrl])
}

func TestStackedCtrlModifiersPeelFromTheEnd(t *testing.T) {
	table := symbols.NewTable(false)
	h, _ := table.Insert(&symbols.Symbol{Name: "h", Ty: types.Gate(0, 1)})

	var qs []semast.GateOperand
	for _, name := range []string{"a", "b", "c"} {
		id, _ := table.Insert(&symbols.Symbol{Name: name, Ty: types.Qubit()})
		qs = append(qs, qubitOperand(table, id))
	}

	c, _ := newCompiler(Config{}, table)

	// ctrl @ ctrl @ h a, b, c: the outer ctrl binds c, the inner binds b.
	expr := gateCallExpr(t, c, &semast.GateCallStmt{
		Symbol: h,
		Modifiers: []semast.GateModifier{
			{Kind: syntax.ModCtrl, Ctrls: 1, Span: sp()},
			{Kind: syntax.ModCtrl, Ctrls: 1, Span: sp()},
		},
		Operands: qs,
	})

	assert.Equal(t,
		"Controlled Controlled H([c], ([b], (a)))",
		qsast.ExprString(expr))
}

func TestGateCallWithErrOperandIsDropped(t *testing.T) {
	table := symbols.NewTable(false)
	h, _ := table.Insert(&symbols.Symbol{Name: "h", Ty: types.Gate(0, 1)})

	c, bag := newCompiler(Config{}, table)
	stmts := c.compileGateCall(&semast.GateCallStmt{
		Symbol:   h,
		Operands: []semast.GateOperand{{Span: sp(), IsErr: true}},
	})

	assert.Nil(t, stmts)
	assert.False(t, bag.HasErrors())
}
