package symbols

import (
	"math"

	"qasmc/report"
	"qasmc/semast"
	"qasmc/types"
)

// LookupResult distinguishes the three outcomes of a scoped name lookup.
type LookupResult int

const (
	LookupOk LookupResult = iota

	// LookupNotFound means no symbol of that name exists in any visible
	// scope.
	LookupNotFound

	// LookupNotVisible means the symbol exists but is non-const and lies
	// outside the nearest enclosing gate or function boundary: capturing a
	// non-const outer variable is forbidden.
	LookupNotVisible
)

// Table is the symbol table for one compilation unit: a growable symbol
// arena indexed by SymbolID plus a stack of scopes.  The bottom of the stack
// is always the single global scope.
type Table struct {
	scopes  []*Scope
	symbols []*Symbol
}

// NewTable creates a symbol table holding only the global scope, the builtin
// gates of the given major language version, and the builtin constants.
func NewTable(qasm2 bool) *Table {
	t := &Table{scopes: []*Scope{newScope(ScopeGlobal)}}

	if qasm2 {
		t.mustInsert(&Symbol{Name: "U", Ty: types.Gate(3, 1)})
		t.mustInsert(&Symbol{Name: "CX", Ty: types.Gate(0, 2)})
	} else {
		t.mustInsert(&Symbol{Name: "U", Ty: types.Gate(3, 1)})
		t.mustInsert(&Symbol{Name: "gphase", Ty: types.Gate(1, 0)})
	}

	// The builtin math constants, under both their ASCII and unicode names.
	for _, c := range []struct {
		name  string
		value float64
	}{
		{"pi", math.Pi}, {"π", math.Pi},
		{"tau", math.Pi * 2}, {"τ", math.Pi * 2},
		{"euler", math.E}, {"ℇ", math.E},
	} {
		t.mustInsert(&Symbol{
			Name:       c.name,
			Ty:         types.Float(types.NoWidth, true),
			ConstValue: semast.FloatValue(c.value),
		})
	}

	return t
}

func (t *Table) mustInsert(sym *Symbol) {
	if _, ok := t.Insert(sym); !ok {
		report.ICE("failed to insert builtin symbol %s", sym.Name)
	}
}

// -----------------------------------------------------------------------------

// PushScope pushes a new scope of the given kind.  Pushing a second global
// scope is an internal error.
func (t *Table) PushScope(kind ScopeKind) {
	if kind == ScopeGlobal {
		report.ICE("cannot push a global scope")
	}

	t.scopes = append(t.scopes, newScope(kind))
}

// PushFunctionScope pushes a function scope remembering the declared return
// type.
func (t *Table) PushFunctionScope(returnTy *types.Type) {
	s := newScope(ScopeFunction)
	s.ReturnTy = returnTy
	t.scopes = append(t.scopes, s)
}

// PopScope removes the innermost scope.  Popping the global scope is an
// internal error.
func (t *Table) PopScope() {
	if len(t.scopes) == 1 {
		report.ICE("cannot pop the global scope")
	}

	t.scopes = t.scopes[:len(t.scopes)-1]
}

// -----------------------------------------------------------------------------

// Insert adds a symbol to the current scope.  It fails, returning the
// existing symbol's id, if a symbol of the same name already exists in the
// current scope; shadowing an outer scope is allowed and is not an error.
func (t *Table) Insert(sym *Symbol) (semast.SymbolID, bool) {
	scope := t.scopes[len(t.scopes)-1]
	if existing, ok := scope.get(sym.Name); ok {
		return existing, false
	}

	id := semast.SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, sym)
	scope.nameToID[sym.Name] = id
	scope.order = append(scope.order, id)
	return id, true
}

// TryInsertOrGetExisting is Insert for callers that treat "already exists"
// as recoverable rather than fatal.
func (t *Table) TryInsertOrGetExisting(sym *Symbol) (semast.SymbolID, bool) {
	return t.Insert(sym)
}

// InsertErrSymbol records an error-typed placeholder in the symbol arena
// without binding a name, so that re-lookups still report the missing name.
func (t *Table) InsertErrSymbol(name string, span *report.TextSpan) semast.SymbolID {
	id := semast.SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, ErrSymbol(name, span))
	return id
}

// Get returns the symbol with the given id.
func (t *Table) Get(id semast.SymbolID) *Symbol {
	return t.symbols[id]
}

// Replace swaps in a new symbol record for the given id.  Used to attach
// const values after evaluation; the old record is discarded, never mutated.
func (t *Table) Replace(id semast.SymbolID, sym *Symbol) {
	t.symbols[id] = sym
}

// Len returns the number of symbols in the arena.
func (t *Table) Len() int {
	return len(t.symbols)
}

// -----------------------------------------------------------------------------

// GetByName searches the scope stack innermost-first for a symbol with the
// given name.  Symbols found in the global scope from inside a gate or
// function body are only visible if they are const or callable: everything
// else would be an invalid capture.
func (t *Table) GetByName(name string) (semast.SymbolID, *Symbol, LookupResult) {
	for i := len(t.scopes) - 1; i >= 1; i-- {
		if id, ok := t.scopes[i].get(name); ok {
			return id, t.symbols[id], LookupOk
		}
	}

	if id, ok := t.scopes[0].get(name); ok {
		sym := t.symbols[id]
		if sym.Ty.IsConst() || isAlwaysVisible(sym.Ty) || !t.IsScopeRootedInGateOrFunction() {
			return id, sym, LookupOk
		}

		return 0, nil, LookupNotVisible
	}

	return 0, nil, LookupNotFound
}

// isAlwaysVisible reports the types whose symbols cross gate and function
// boundaries freely: callables and error placeholders.
func isAlwaysVisible(ty *types.Type) bool {
	switch ty.Kind {
	case types.KGate, types.KFunction, types.KVoid, types.KErr:
		return true
	}

	return false
}

// TryGetExistingOrInsertErr looks up a name, and on both failure paths
// inserts an error placeholder so the caller always gets a valid id to
// continue lowering with.
func (t *Table) TryGetExistingOrInsertErr(name string, span *report.TextSpan) (semast.SymbolID, *Symbol, LookupResult) {
	id, sym, res := t.GetByName(name)
	if res == LookupOk {
		return id, sym, res
	}

	id = t.InsertErrSymbol(name, span)
	return id, t.symbols[id], res
}

// -----------------------------------------------------------------------------

// IsSymbolOutsideMostInnerGateOrFunctionScope returns whether a reference to
// the symbol from the current scope crosses the innermost gate or function
// boundary: the condition under which only const captures are legal.
func (t *Table) IsSymbolOutsideMostInnerGateOrFunctionScope(id semast.SymbolID) bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		scope := t.scopes[i]
		if scope.contains(id) {
			return false
		}

		switch scope.Kind {
		case ScopeGate, ScopeFunction, ScopeGlobal:
			return true
		}
	}

	report.ICE("scope stack has no global scope")
	return false
}

// IsCurrentScopeGlobal returns whether the innermost scope is the global
// scope.
func (t *Table) IsCurrentScopeGlobal() bool {
	return t.scopes[len(t.scopes)-1].Kind == ScopeGlobal
}

// IsScopeRootedInSubroutine returns whether any enclosing scope is a
// function scope.
func (t *Table) IsScopeRootedInSubroutine() bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if t.scopes[i].Kind == ScopeFunction {
			return true
		}
	}

	return false
}

// IsScopeRootedInGateOrFunction returns whether any enclosing scope is a
// gate or function scope.
func (t *Table) IsScopeRootedInGateOrFunction() bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		switch t.scopes[i].Kind {
		case ScopeGate, ScopeFunction:
			return true
		}
	}

	return false
}

// IsScopeRootedInLoop returns whether a break or continue at the current
// scope has a loop to bind to.  The search stops at gate and function
// boundaries: a loop outside the enclosing callable does not count.
func (t *Table) IsScopeRootedInLoop() bool {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		switch t.scopes[i].Kind {
		case ScopeLoop:
			return true
		case ScopeGate, ScopeFunction:
			return false
		}
	}

	return false
}

// SubroutineReturnTy returns the declared return type of the innermost
// enclosing function scope, or nil if there is none.
func (t *Table) SubroutineReturnTy() (*types.Type, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if t.scopes[i].Kind == ScopeFunction {
			return t.scopes[i].ReturnTy, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// Inputs returns the declared input symbols in declaration order.
func (t *Table) Inputs() []semast.SymbolID {
	return t.globalsByIO(IOInput)
}

// Outputs returns the declared output symbols in declaration order, or nil
// if no explicit outputs were declared.
func (t *Table) Outputs() []semast.SymbolID {
	return t.globalsByIO(IOOutput)
}

// InferredOutputs returns the global non-const classical symbols used as
// outputs when no explicit output declarations exist.
func (t *Table) InferredOutputs() []semast.SymbolID {
	if len(t.Outputs()) > 0 {
		return nil
	}

	var out []semast.SymbolID
	for _, id := range t.scopes[0].order {
		sym := t.symbols[id]
		if sym.IO != IODefault || sym.Ty.IsConst() {
			continue
		}

		switch sym.Ty.Kind {
		case types.KBit, types.KBitArray, types.KBool, types.KInt, types.KUInt,
			types.KFloat, types.KAngle, types.KComplex:
			out = append(out, id)
		}
	}

	return out
}

func (t *Table) globalsByIO(kind IOKind) []semast.SymbolID {
	var out []semast.SymbolID
	for _, id := range t.scopes[0].order {
		if t.symbols[id].IO == kind {
			out = append(out, id)
		}
	}

	return out
}
