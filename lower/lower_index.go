package lower

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// lowerIndexOps flattens a chain of bracketed index operations into a single
// index list: `a[1, 2][5]` indexes the same element as `a[1, 2, 5]`.  It
// returns nil when any component fails to lower.
func (l *Lowerer) lowerIndexOps(ops []*syntax.Index) ([]semast.Index, bool) {
	var out []semast.Index
	ok := true

	for _, op := range ops {
		indices, opOk := l.lowerIndexOp(op)
		out = append(out, indices...)
		ok = ok && opOk
	}

	return out, ok
}

// lowerIndexOp lowers one bracketed index operation.
func (l *Lowerer) lowerIndexOp(op *syntax.Index) ([]semast.Index, bool) {
	if op.Set != nil {
		l.errorf(ErrIndexSetOnlyInAlias, op.Span, "index sets are only allowed in alias statements")
		return nil, false
	}

	out := make([]semast.Index, 0, len(op.List.Items))
	ok := true

	for _, item := range op.List.Items {
		switch {
		case item.Range != nil:
			r := l.lowerConstRange(item.Range)
			if r == nil {
				ok = false
				continue
			}
			out = append(out, semast.Index{Range: r})
		case item.Expr != nil:
			out = append(out, semast.Index{Expr: l.lowerExpr(item.Expr)})
		default:
			out = append(out, semast.Index{Expr: semast.ErrExpr(op.Span)})
			ok = false
		}
	}

	return out, ok
}

// lowerConstRange lowers a range used as an index.  Each written component
// must be a const integer expression; a zero step is rejected.  Returns nil
// on failure.
func (l *Lowerer) lowerConstRange(r *syntax.Range) *semast.Range {
	comp := func(expr syntax.Expr) (*semast.Expr, bool) {
		if expr == nil {
			return nil, true
		}

		cast, val := l.constEvalInt(expr)
		if val == nil {
			if !cast.Ty.IsErr() {
				l.errorf(ErrExprMustBeConst, cast.Span, "range components must be const expressions")
			}
			return nil, false
		}

		lit := semast.NewExpr(cast.Span, &semast.LitExpr{Value: val}, types.Int(types.NoWidth, true))
		lit.ConstValue = val
		return lit, true
	}

	start, okStart := comp(r.Start)
	step, okStep := comp(r.Step)
	end, okEnd := comp(r.End)
	if !okStart || !okStep || !okEnd {
		return nil
	}

	if step != nil {
		if v, ok := step.ConstValue.AsInt(); ok && v == 0 {
			l.errorf(ErrZeroStepInRange, r.Span, "range step cannot be zero")
			return nil
		}
	}

	return &semast.Range{Span: r.Span, Start: start, Step: step, End: end}
}

// lowerRange lowers the range of a for-loop iterable, where both bounds are
// mandatory but need not be const.
func (l *Lowerer) lowerRange(r *syntax.Range) *semast.Range {
	out := &semast.Range{Span: r.Span}

	intTy := types.Int(types.NoWidth, false)
	if r.Start != nil {
		out.Start = l.castToType(intTy, l.lowerExpr(r.Start))
	} else {
		l.errorf(ErrExprMustBeConst, r.Span, "range expressions must have a start when used in for loops")
	}

	if r.End != nil {
		out.End = l.castToType(intTy, l.lowerExpr(r.End))
	} else {
		l.errorf(ErrExprMustBeConst, r.Span, "range expressions must have an end when used in for loops")
	}

	if r.Step != nil {
		out.Step = l.castToType(intTy, l.lowerExpr(r.Step))
		if v := l.ConstEval(out.Step); v != nil {
			if i, ok := v.AsInt(); ok && i == 0 {
				l.errorf(ErrZeroStepInRange, r.Span, "range step cannot be zero")
			}
		}
	}

	return out
}

// -----------------------------------------------------------------------------

// indexedType computes the type of applying the given indices to a
// collection type, reporting diagnostics for non-indexable types and excess
// indices.
func (l *Lowerer) indexedType(ty *types.Type, indices []semast.Index, span *report.TextSpan) *types.Type {
	if ty.IsErr() {
		return ty
	}

	if !ty.IsIndexable() {
		l.errorf(ErrCannotIndexType, span, "cannot index expressions of type %s", ty)
		return types.Err()
	}

	if len(indices) > ty.NumDims() {
		l.errorf(ErrTooManyIndices, span, "too many indices provided")
		return types.Err()
	}

	switch ty.Kind {
	case types.KBitArray, types.KQubitArray:
		ix := indices[0]
		if ix.Range != nil {
			size := l.sliceSize(ix.Range, ty.Size)
			if ty.Kind == types.KQubitArray {
				return types.QubitArray(size)
			}
			return types.BitArray(size, ty.IsConst())
		}

		if ty.Kind == types.KQubitArray {
			return types.Qubit()
		}
		return types.Bit(ty.IsConst())

	case types.KArray, types.KStaticArrayRef, types.KDynArrayRef:
		return l.indexedArrayType(ty, indices)
	}

	return types.Err()
}

// indexedArrayType peels one array dimension per index component; a range
// keeps the dimension with the slice's length, an expression removes it.
func (l *Lowerer) indexedArrayType(ty *types.Type, indices []semast.Index) *types.Type {
	if ty.Kind == types.KDynArrayRef {
		// The dimension lengths of a #dim reference are unknown; only full
		// element access with expression indices is typed.
		remaining := ty.DimCount - len(indices)
		if remaining == 0 {
			return ty.Elem
		}
		return types.DynArrayRef(ty.Elem, remaining, ty.Mutable)
	}

	var dims []int
	for i, d := range ty.Dims {
		if i >= len(indices) {
			dims = append(dims, d)
			continue
		}

		if r := indices[i].Range; r != nil {
			dims = append(dims, l.sliceSize(r, d))
		}
	}

	if len(dims) == 0 {
		return ty.Elem
	}

	return types.Array(ty.Elem, dims)
}

// sliceSize computes the number of elements a const range selects out of a
// dimension of the given size.  Negative bounds count from the end.
func (l *Lowerer) sliceSize(r *semast.Range, size int) int {
	bound := func(e *semast.Expr, fallback int64) int64 {
		if e == nil || e.ConstValue == nil {
			return fallback
		}

		v, ok := e.ConstValue.AsInt()
		if !ok {
			return fallback
		}

		if v < 0 {
			v += int64(size)
		}
		return v
	}

	step := int64(1)
	if r.Step != nil && r.Step.ConstValue != nil {
		if v, ok := r.Step.ConstValue.AsInt(); ok && v != 0 {
			step = v
		}
	}

	var start, end int64
	if step > 0 {
		start = bound(r.Start, 0)
		end = bound(r.End, int64(size)-1)
	} else {
		start = bound(r.Start, int64(size)-1)
		end = bound(r.End, 0)
	}

	n := (end-start)/step + 1
	if n < 0 {
		n = 0
	}

	return int(n)
}

// -----------------------------------------------------------------------------

// FlipBitIndex converts a bit position between the little-endian order sized
// scalars use and the big-endian order of bit registers.  The conversion is
// its own inverse.
func FlipBitIndex(i, width int) int {
	return width - 1 - i
}

// flipIndices rewrites index components over a width-w bit view of a sized
// scalar so that element order matches the scalar's little-endian bits.
func (l *Lowerer) flipIndices(indices []semast.Index, width int) []semast.Index {
	out := make([]semast.Index, len(indices))
	for i, ix := range indices {
		if ix.Range != nil {
			out[i] = semast.Index{Range: l.flipRange(ix.Range, width)}
			continue
		}

		out[i] = semast.Index{Expr: l.flipIndexExpr(ix.Expr, width)}
	}

	return out
}

// flipIndexExpr rewrites a single index expression to width-1-i, folding the
// subtraction when the index is const.
func (l *Lowerer) flipIndexExpr(e *semast.Expr, width int) *semast.Expr {
	if v := l.ConstEval(e); v != nil {
		if i, ok := v.AsInt(); ok {
			if i < 0 {
				i += int64(width)
			}
			flipped := semast.IntValue(int64(FlipBitIndex(int(i), width)))
			lit := semast.NewExpr(e.Span, &semast.LitExpr{Value: flipped}, types.Int(types.NoWidth, true))
			lit.ConstValue = flipped
			return lit
		}
	}

	wm1 := semast.NewExpr(e.Span, &semast.LitExpr{Value: semast.IntValue(int64(width - 1))}, types.Int(types.NoWidth, true))
	return semast.NewExpr(e.Span, &semast.BinaryOpExpr{Op: syntax.OpSub, Lhs: wm1, Rhs: e}, types.Int(types.NoWidth, e.Ty.IsConst()))
}

// flipRange mirrors a const range across the bit view and negates its step,
// so the selected elements are the same bits in the flipped order.
func (l *Lowerer) flipRange(r *semast.Range, width int) *semast.Range {
	out := &semast.Range{Span: r.Span}

	if r.Start != nil {
		out.Start = l.flipIndexExpr(r.Start, width)
	} else {
		out.Start = l.flipIndexExpr(l.intLit(0, r.Span), width)
	}

	if r.End != nil {
		out.End = l.flipIndexExpr(r.End, width)
	} else {
		out.End = l.flipIndexExpr(l.intLit(int64(width-1), r.Span), width)
	}

	step := int64(1)
	if r.Step != nil && r.Step.ConstValue != nil {
		if v, ok := r.Step.ConstValue.AsInt(); ok {
			step = v
		}
	}
	negStep := semast.IntValue(-step)
	out.Step = semast.NewExpr(r.Span, &semast.LitExpr{Value: negStep}, types.Int(types.NoWidth, true))
	out.Step.ConstValue = negStep

	return out
}

func (l *Lowerer) intLit(v int64, span *report.TextSpan) *semast.Expr {
	val := semast.IntValue(v)
	lit := semast.NewExpr(span, &semast.LitExpr{Value: val}, types.Int(types.NoWidth, true))
	lit.ConstValue = val
	return lit
}

// -----------------------------------------------------------------------------

// lowerIndexedIdent lowers an identifier with index operations.  Sized
// scalars are viewed as bit registers first: the identifier is cast to
// bit[w] and the indices are flipped into bit order.
func (l *Lowerer) lowerIndexedIdent(indexed *syntax.IndexedIdent) *semast.Expr {
	name := indexed.Ident.Name
	id, sym, res := l.symbols.TryGetExistingOrInsertErr(name, indexed.Ident.Span)
	switch res {
	case symbols.LookupNotFound:
		l.pushMissingSymbolError(name, indexed.Ident.Span)
		return semast.ErrExpr(indexed.Span)
	case symbols.LookupNotVisible:
		l.pushConstCaptureError(indexed.Ident.Span)
		return semast.ErrExpr(indexed.Span)
	}

	indices, ok := l.lowerIndexOps(indexed.Indices)
	if !ok && len(indices) == 0 {
		return semast.ErrExpr(indexed.Span)
	}

	if sym.Ty.HasZeroSize() {
		l.errorf(ErrZeroSizeArrayAccess, indexed.Span, "zero size array access is not allowed")
		return semast.ErrExpr(indexed.Span)
	}

	if sym.Ty.IsSizedScalar() {
		bitTy := types.BitArray(sym.Ty.Width, sym.Ty.IsConst())
		ident := semast.NewExpr(indexed.Ident.Span, &semast.IdentExpr{Symbol: id}, sym.Ty)
		collection := wrapInCast(bitTy, ident)
		flipped := l.flipIndices(indices, sym.Ty.Width)
		ty := l.indexedType(bitTy, flipped, indexed.IndexSpan)
		return semast.NewExpr(indexed.Span, &semast.IndexExpr{Collection: collection, Indices: flipped}, ty)
	}

	ty := l.indexedType(sym.Ty, indices, indexed.IndexSpan)
	kind := &semast.IndexedIdentExpr{
		Symbol:    id,
		NameSpan:  indexed.Ident.Span,
		IndexSpan: indexed.IndexSpan,
		Indices:   indices,
	}

	return semast.NewExpr(indexed.Span, kind, ty)
}

// lowerIndexExpr lowers an index operation over an arbitrary collection
// expression.
func (l *Lowerer) lowerIndexExpr(e *syntax.IndexExpr) *semast.Expr {
	collection := l.lowerExpr(e.Collection)
	indices, ok := l.lowerIndexOp(e.Index)
	if !ok && len(indices) == 0 {
		return semast.ErrExpr(e.Span)
	}

	if collection.Ty.HasZeroSize() {
		l.errorf(ErrZeroSizeArrayAccess, e.Span, "zero size array access is not allowed")
		return semast.ErrExpr(e.Span)
	}

	if collection.Ty.IsSizedScalar() {
		bitTy := types.BitArray(collection.Ty.Width, collection.Ty.IsConst())
		flipped := l.flipIndices(indices, collection.Ty.Width)
		ty := l.indexedType(bitTy, flipped, e.Span)
		return semast.NewExpr(e.Span, &semast.IndexExpr{Collection: wrapInCast(bitTy, collection), Indices: flipped}, ty)
	}

	ty := l.indexedType(collection.Ty, indices, e.Span)
	return semast.NewExpr(e.Span, &semast.IndexExpr{Collection: collection, Indices: indices}, ty)
}
