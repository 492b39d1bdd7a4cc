package symbols

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/types"
)

// IOKind classifies a symbol's role in the program interface.
type IOKind int

const (
	IODefault IOKind = iota
	IOInput
	IOOutput
)

// Symbol is a named program entity: its declared type, span, I/O role, and
// constant value if one is known.  Symbols are immutable once constructed;
// updates replace the record through the table, never mutate it in place.
type Symbol struct {
	Name string

	// The span of the declaring identifier.
	Span *report.TextSpan

	// The span of the declared type.
	TySpan *report.TextSpan

	Ty *types.Type
	IO IOKind

	// The constant value of the symbol, populated only after successful
	// constant evaluation of a const initializer.
	ConstValue *semast.Value
}

// ErrSymbol creates an error-typed placeholder symbol inserted when lookup
// or insertion fails, so downstream lowering always holds a valid id.
func ErrSymbol(name string, span *report.TextSpan) *Symbol {
	return &Symbol{Name: name, Span: span, Ty: types.Err()}
}

// -----------------------------------------------------------------------------

// ScopeKind classifies the construct that introduced a scope.
type ScopeKind int

const (
	// ScopeGlobal is the bottom scope: the only scope where gates, qubits,
	// defs, and I/O can be declared.
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeGate
	ScopeBlock
	ScopeLoop
)

// Scope is one frame of the scope stack.
type Scope struct {
	Kind ScopeKind

	// The declared return type of a function scope, so return statements can
	// insert an implicit cast.  Nil outside function scopes.
	ReturnTy *types.Type

	nameToID map[string]semast.SymbolID
	order    []semast.SymbolID
}

func newScope(kind ScopeKind) *Scope {
	return &Scope{Kind: kind, nameToID: make(map[string]semast.SymbolID)}
}

func (s *Scope) get(name string) (semast.SymbolID, bool) {
	id, ok := s.nameToID[name]
	return id, ok
}

func (s *Scope) contains(id semast.SymbolID) bool {
	for _, other := range s.order {
		if other == id {
			return true
		}
	}

	return false
}
