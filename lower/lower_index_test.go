package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qasmc/semast"
	"qasmc/syntax"
	"qasmc/types"
)

// ---------------------------------------------------------------------------
// fixture helpers

func indexOf(items ...*syntax.IndexItem) *syntax.Index {
	return &syntax.Index{List: &syntax.IndexList{Items: items, Span: sp()}, Span: sp()}
}

func exprItem(e syntax.Expr) *syntax.IndexItem {
	return &syntax.IndexItem{Expr: e}
}

func rangeItem(start, step, end syntax.Expr) *syntax.IndexItem {
	return &syntax.IndexItem{Range: &syntax.Range{Start: start, Step: step, End: end, Span: sp()}}
}

func indexedExpr(name string, items ...*syntax.IndexItem) syntax.Expr {
	return &syntax.IndexedIdentExpr{Indexed: &syntax.IndexedIdent{
		Ident:     id(name),
		Indices:   []*syntax.Index{indexOf(items...)},
		IndexSpan: sp(),
		Span:      sp(),
	}}
}

// ---------------------------------------------------------------------------

func TestFlipBitIndexIsItsOwnInverse(t *testing.T) {
	for w := 1; w <= 16; w++ {
		for i := 0; i < w; i++ {
			assert.Equal(t, i, FlipBitIndex(FlipBitIndex(i, w), w))
		}
	}

	assert.Equal(t, 7, FlipBitIndex(0, 8))
	assert.Equal(t, 0, FlipBitIndex(7, 8))
}

func TestSizedScalarIndexReadsBitView(t *testing.T) {
	// Indexing a sized int views it as a bit register: the identifier is cast
	// to bit[w] and the element index is mirrored so that n[0] reads the
	// least significant bit.
	prog, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, intLit(8)),
			Ident: id("n"),
			Init:  intLit(0),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, nil),
			Ident: id("b"),
			Init:  indexedExpr("n", exprItem(intLit(0))),
		}),
	)

	require.False(t, bag.HasErrors())

	decl, ok := prog.Stmts[1].Kind.(*semast.ClassicalDeclStmt)
	require.True(t, ok)

	ix, ok := decl.Init.Kind.(*semast.IndexExpr)
	require.True(t, ok)

	cast, ok := ix.Collection.Kind.(*semast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, types.KBitArray, cast.Ty.Kind)
	assert.Equal(t, 8, cast.Ty.Size)

	require.Len(t, ix.Indices, 1)
	require.NotNil(t, ix.Indices[0].Expr.ConstValue)
	got, _ := ix.Indices[0].Expr.ConstValue.AsInt()
	assert.Equal(t, int64(7), got)
}

func TestSizedScalarRangeSliceIsMirrored(t *testing.T) {
	// A slice over the bit view is mirrored with a negated step so the same
	// bits come out in the flipped element order.
	prog, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarInt, intLit(8)),
			Ident: id("n"),
			Init:  intLit(0),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(4)),
			Ident: id("s"),
			Init:  indexedExpr("n", rangeItem(intLit(0), nil, intLit(3))),
		}),
	)

	require.False(t, bag.HasErrors())

	decl, ok := prog.Stmts[1].Kind.(*semast.ClassicalDeclStmt)
	require.True(t, ok)

	ix, ok := decl.Init.Kind.(*semast.IndexExpr)
	require.True(t, ok)
	require.Len(t, ix.Indices, 1)

	r := ix.Indices[0].Range
	require.NotNil(t, r)

	start, _ := r.Start.ConstValue.AsInt()
	end, _ := r.End.ConstValue.AsInt()
	step, _ := r.Step.ConstValue.AsInt()
	assert.Equal(t, int64(7), start)
	assert.Equal(t, int64(4), end)
	assert.Equal(t, int64(-1), step)
}

func TestBitRegisterSliceTyping(t *testing.T) {
	prog, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(8)),
			Ident: id("r"),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(4)),
			Ident: id("s"),
			Init:  indexedExpr("r", rangeItem(intLit(2), nil, intLit(5))),
		}),
	)

	require.False(t, bag.HasErrors())

	decl, ok := prog.Stmts[1].Kind.(*semast.ClassicalDeclStmt)
	require.True(t, ok)
	assert.Equal(t, types.KBitArray, decl.Init.Ty.Kind)
	assert.Equal(t, 4, decl.Init.Ty.Size)
}

func TestRangeStepCannotBeZero(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(8)),
			Ident: id("r"),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(4)),
			Ident: id("s"),
			Init:  indexedExpr("r", rangeItem(intLit(0), intLit(0), intLit(3))),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrZeroStepInRange))
}

func TestIndexSetRejectedOutsideAlias(t *testing.T) {
	setIndex := &syntax.Index{
		Set:  &syntax.Set{Values: []syntax.Expr{intLit(0), intLit(2)}, Span: sp()},
		Span: sp(),
	}

	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(8)),
			Ident: id("r"),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(2)),
			Ident: id("s"),
			Init: &syntax.IndexedIdentExpr{Indexed: &syntax.IndexedIdent{
				Ident:     id("r"),
				Indices:   []*syntax.Index{setIndex},
				IndexSpan: sp(),
				Span:      sp(),
			}},
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrIndexSetOnlyInAlias))
}

func TestTooManyIndicesOnBitRegister(t *testing.T) {
	_, _, bag := lowerProgram(t,
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, intLit(8)),
			Ident: id("r"),
		}),
		stmt(&syntax.ClassicalDeclStmt{
			Ty:    scalarTy(syntax.ScalarBit, nil),
			Ident: id("b"),
			Init:  indexedExpr("r", exprItem(intLit(0)), exprItem(intLit(1))),
		}),
	)

	assert.Equal(t, 1, bag.CountCode(ErrTooManyIndices))
}
