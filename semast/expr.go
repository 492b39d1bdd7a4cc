package semast

import (
	"qasmc/report"
	"qasmc/syntax"
	"qasmc/types"
)

// SymbolID is the dense index identifying a symbol in the symbol table.
// Semantic nodes reference their declarations by id, never by pointer.
type SymbolID int32

// Expr is a type-annotated semantic expression.  Each expression exclusively
// owns its child expressions.
type Expr struct {
	Span *report.TextSpan
	Kind ExprKind
	Ty   *types.Type

	// The constant value of the expression, populated by constant evaluation
	// when requested and successful.
	ConstValue *Value
}

// NewExpr creates a new expression node.
func NewExpr(span *report.TextSpan, kind ExprKind, ty *types.Type) *Expr {
	return &Expr{Span: span, Kind: kind, Ty: ty}
}

// ErrExpr creates an error-typed sentinel expression.  Error expressions
// absorb every operation applied to them without further diagnostics.
func ErrExpr(span *report.TextSpan) *Expr {
	return &Expr{Span: span, Kind: &ErrExprKind{}, Ty: types.Err()}
}

// ErrExprOf creates an error sentinel expression carrying a known type.
func ErrExprOf(span *report.TextSpan, ty *types.Type) *Expr {
	return &Expr{Span: span, Kind: &ErrExprKind{}, Ty: ty}
}

// ExprKind is the closed set of expression variants.
type ExprKind interface {
	exprKind()
}

// LitExpr is a literal.
type LitExpr struct {
	Value *Value
}

// IdentExpr is a resolved identifier reference.
type IdentExpr struct {
	Symbol SymbolID
}

// CapturedIdentExpr is a reference to a constant symbol declared outside the
// innermost enclosing gate or function scope.  The capture decision is made
// once during lowering so later stages never re-derive scope boundaries.
type CapturedIdentExpr struct {
	Symbol SymbolID
}

// IndexedIdentExpr is a resolved identifier with flattened index operations.
type IndexedIdentExpr struct {
	Symbol    SymbolID
	NameSpan  *report.TextSpan
	IndexSpan *report.TextSpan
	Indices   []Index
}

// BinaryOpExpr is a binary operation whose operands have already been
// cast-normalized.
type BinaryOpExpr struct {
	Op       syntax.BinOp
	Lhs, Rhs *Expr
}

// UnaryOpExpr is a unary operation.
type UnaryOpExpr struct {
	Op      syntax.UnaryOp
	Operand *Expr
}

// CastExpr is an implicit or explicit conversion to a target type.
type CastExpr struct {
	Ty       *types.Type
	Arg      *Expr
	Explicit bool
}

// IndexExpr is an index operation over an arbitrary collection expression.
type IndexExpr struct {
	Collection *Expr
	Indices    []Index
}

// CallExpr is a subroutine call.
type CallExpr struct {
	Symbol SymbolID
	Args   []*Expr
}

// BuiltinCallExpr is a call to a compile-time builtin function, eg. sizeof.
type BuiltinCallExpr struct {
	Name string
	Args []*Expr
}

// MeasureExpr is a qubit measurement used as an expression.
type MeasureExpr struct {
	Operand GateOperand
}

// SetExpr is a lowered discrete index set, legal only in alias targets.
type SetExpr struct {
	Values []*Expr
}

// ErrExprKind marks an expression that failed to lower.
type ErrExprKind struct{}

func (*LitExpr) exprKind()          {}
func (*IdentExpr) exprKind()        {}
func (*CapturedIdentExpr) exprKind() {}
func (*IndexedIdentExpr) exprKind() {}
func (*BinaryOpExpr) exprKind()     {}
func (*UnaryOpExpr) exprKind()      {}
func (*CastExpr) exprKind()         {}
func (*IndexExpr) exprKind()        {}
func (*CallExpr) exprKind()         {}
func (*BuiltinCallExpr) exprKind()  {}
func (*MeasureExpr) exprKind()      {}
func (*SetExpr) exprKind()          {}
func (*ErrExprKind) exprKind()      {}

// -----------------------------------------------------------------------------

// Index is one component of an index operation: an expression or a
// const-evaluated range.  Exactly one field is non-nil.
type Index struct {
	Expr  *Expr
	Range *Range
}

// Range is a lowered `start:step:end` range.  Components may be nil where the
// source omitted them.
type Range struct {
	Span  *report.TextSpan
	Start *Expr
	Step  *Expr
	End   *Expr
}

// Set is a lowered discrete set.
type Set struct {
	Span   *report.TextSpan
	Values []*Expr
}

// EnumerableSet is a lowered for-loop iterable.  Exactly one field is
// non-nil.
type EnumerableSet struct {
	Set   *Set
	Range *Range
	Expr  *Expr
}

// -----------------------------------------------------------------------------

// GateOperand is a lowered quantum operand.
type GateOperand struct {
	Span *report.TextSpan

	// The operand expression; nil for hardware qubits and parse errors.
	Expr *Expr

	// The hardware qubit name, if the operand was a `$n` reference.
	Hardware string
	IsHW     bool

	// Whether the operand failed to parse.
	IsErr bool
}

// GateModifier is a lowered gate-call modifier.  For ctrl/negctrl, Ctrls is
// the const-evaluated control count; for pow, Arg is the exponent
// expression.
type GateModifier struct {
	Kind  syntax.GateModifierKind
	Arg   *Expr
	Ctrls int
	Span  *report.TextSpan
}
