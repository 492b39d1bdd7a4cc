// Package service implements read-only queries over a lowered program for
// editor tooling: resolving the symbol under a cursor position and collecting
// every reference to a symbol.
package service

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
)

// occurrence is one appearance of a symbol: its declaration or a reference.
type occurrence struct {
	id   semast.SymbolID
	span *report.TextSpan
	decl bool
}

// SymbolAt returns the symbol whose declaration or reference covers the
// given position.  When occurrences nest, the innermost one wins.
func SymbolAt(prog *semast.Program, table *symbols.Table, line, col int) (semast.SymbolID, *symbols.Symbol, bool) {
	var best *occurrence
	collect(prog, table, func(occ occurrence) {
		if occ.span == nil || !occ.span.Contains(line, col) {
			return
		}

		if best == nil || spanWithin(occ.span, best.span) {
			o := occ
			best = &o
		}
	})

	if best == nil {
		return 0, nil, false
	}

	return best.id, table.Get(best.id), true
}

// References returns the spans of every occurrence of the symbol, the
// declaration included, in traversal order.
func References(prog *semast.Program, table *symbols.Table, id semast.SymbolID) []*report.TextSpan {
	var out []*report.TextSpan
	collect(prog, table, func(occ occurrence) {
		if occ.id == id && occ.span != nil {
			out = append(out, occ.span)
		}
	})

	return out
}

// Definition returns the declaration span of the symbol under the given
// position.
func Definition(prog *semast.Program, table *symbols.Table, line, col int) (*report.TextSpan, bool) {
	_, sym, ok := SymbolAt(prog, table, line, col)
	if !ok {
		return nil, false
	}

	return sym.Span, sym.Span != nil
}

// spanWithin reports whether inner lies entirely inside outer.
func spanWithin(inner, outer *report.TextSpan) bool {
	return outer.Contains(inner.StartLine, inner.StartCol) &&
		outer.Contains(inner.EndLine, inner.EndCol)
}
