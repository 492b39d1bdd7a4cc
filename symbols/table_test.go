package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/semast"
	"qasmc/types"
)

func TestNewTableBuiltins(t *testing.T) {
	table := NewTable(false)

	_, sym, res := table.GetByName("U")
	require.Equal(t, LookupOk, res)
	assert.Equal(t, types.KGate, sym.Ty.Kind)
	assert.Equal(t, 3, sym.Ty.CArity)
	assert.Equal(t, 1, sym.Ty.QArity)

	_, _, res = table.GetByName("gphase")
	assert.Equal(t, LookupOk, res)

	_, pi, res := table.GetByName("pi")
	require.Equal(t, LookupOk, res)
	require.NotNil(t, pi.ConstValue)
	assert.InDelta(t, 3.14159265, pi.ConstValue.Float, 1e-8)

	// The legacy table carries CX instead of gphase.
	legacy := NewTable(true)
	_, _, res = legacy.GetByName("CX")
	assert.Equal(t, LookupOk, res)
	_, _, res = legacy.GetByName("gphase")
	assert.Equal(t, LookupNotFound, res)
}

func TestInsertRejectsSameScopeRedefinition(t *testing.T) {
	table := NewTable(false)

	first, ok := table.Insert(&Symbol{Name: "x", Ty: types.Int(types.NoWidth, false)})
	require.True(t, ok)

	// The second insertion fails and reports the first symbol's id, so the
	// original declaration stays authoritative.
	second, ok := table.Insert(&Symbol{Name: "x", Ty: types.Float(types.NoWidth, false)})
	assert.False(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, types.KInt, table.Get(first).Ty.Kind)
}

func TestShadowingInInnerScope(t *testing.T) {
	table := NewTable(false)

	outer, ok := table.Insert(&Symbol{Name: "x", Ty: types.Int(types.NoWidth, false)})
	require.True(t, ok)

	table.PushScope(ScopeBlock)
	inner, ok := table.Insert(&Symbol{Name: "x", Ty: types.Bool(false)})
	require.True(t, ok)
	require.NotEqual(t, outer, inner)

	id, sym, res := table.GetByName("x")
	require.Equal(t, LookupOk, res)
	assert.Equal(t, inner, id)
	assert.Equal(t, types.KBool, sym.Ty.Kind)

	table.PopScope()

	id, _, res = table.GetByName("x")
	require.Equal(t, LookupOk, res)
	assert.Equal(t, outer, id)
}

func TestGlobalVisibilityFromGateScope(t *testing.T) {
	table := NewTable(false)

	_, ok := table.Insert(&Symbol{Name: "runtimeVar", Ty: types.Int(types.NoWidth, false)})
	require.True(t, ok)
	_, ok = table.Insert(&Symbol{Name: "limit", Ty: types.Int(types.NoWidth, true)})
	require.True(t, ok)

	table.PushScope(ScopeGate)

	// Non-const globals are invisible from inside a gate body.
	_, _, res := table.GetByName("runtimeVar")
	assert.Equal(t, LookupNotVisible, res)

	// Const globals and callables stay visible.
	_, _, res = table.GetByName("limit")
	assert.Equal(t, LookupOk, res)
	_, _, res = table.GetByName("U")
	assert.Equal(t, LookupOk, res)

	table.PopScope()

	// From a plain block the non-const global is visible again.
	table.PushScope(ScopeBlock)
	_, _, res = table.GetByName("runtimeVar")
	assert.Equal(t, LookupOk, res)
}

func TestCaptureBoundaryDetection(t *testing.T) {
	table := NewTable(false)

	global, ok := table.Insert(&Symbol{Name: "c", Ty: types.Int(types.NoWidth, true)})
	require.True(t, ok)

	table.PushFunctionScope(types.Int(types.NoWidth, false))
	local, ok := table.Insert(&Symbol{Name: "p", Ty: types.Int(types.NoWidth, false)})
	require.True(t, ok)

	assert.True(t, table.IsSymbolOutsideMostInnerGateOrFunctionScope(global))
	assert.False(t, table.IsSymbolOutsideMostInnerGateOrFunctionScope(local))

	// A nested block inside the function still resolves the local without a
	// boundary crossing.
	table.PushScope(ScopeBlock)
	assert.False(t, table.IsSymbolOutsideMostInnerGateOrFunctionScope(local))

	returnTy, ok := table.SubroutineReturnTy()
	require.True(t, ok)
	assert.Equal(t, types.KInt, returnTy.Kind)
}

func TestIsScopeRootedInLoopStopsAtCallables(t *testing.T) {
	table := NewTable(false)

	table.PushScope(ScopeLoop)
	assert.True(t, table.IsScopeRootedInLoop())

	// A function body inside a loop cannot break out of it.
	table.PushFunctionScope(types.Void())
	assert.False(t, table.IsScopeRootedInLoop())

	table.PushScope(ScopeLoop)
	assert.True(t, table.IsScopeRootedInLoop())
}

func TestInferredOutputs(t *testing.T) {
	table := NewTable(false)

	a, _ := table.Insert(&Symbol{Name: "a", Ty: types.BitArray(2, false)})
	table.Insert(&Symbol{Name: "k", Ty: types.Int(types.NoWidth, true)})
	b, _ := table.Insert(&Symbol{Name: "b", Ty: types.Bit(false)})
	table.Insert(&Symbol{Name: "q", Ty: types.Qubit()})

	// With no explicit outputs, the non-const classical globals are the
	// program's outputs, in declaration order.
	assert.Equal(t, []semast.SymbolID{a, b}, table.InferredOutputs())

	// An explicit output suppresses inference.
	out, _ := table.Insert(&Symbol{Name: "r", Ty: types.Bit(false), IO: IOOutput})
	assert.Equal(t, []semast.SymbolID{out}, table.Outputs())
	assert.Nil(t, table.InferredOutputs())
}
