package syntax

import (
	"math/big"

	"qasmc/report"
)

// Expr is the closed set of expression variants.  Every expression carries
// its own span.
type Expr interface {
	ExprSpan() *report.TextSpan
}

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op       BinOp
	Lhs, Rhs Expr
	Span     *report.TextSpan
}

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Span    *report.TextSpan
}

// IdentExpr is a bare identifier used as an expression.
type IdentExpr struct {
	Ident *Ident
}

// IndexedIdentExpr is an indexed identifier used as an expression.
type IndexedIdentExpr struct {
	Indexed *IndexedIdent
}

// IndexExpr is an index operation applied to an arbitrary collection
// expression.
type IndexExpr struct {
	Collection Expr
	Index      *Index
	Span       *report.TextSpan
}

// CastExpr is an explicit cast, eg. `int[8](x)`.
type CastExpr struct {
	Ty   TypeDef
	Arg  Expr
	Span *report.TextSpan
}

// CallExpr is a function (def) call expression.
type CallExpr struct {
	Name *Ident
	Args []Expr
	Span *report.TextSpan
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Inner Expr
	Span  *report.TextSpan
}

// MeasureExpr is a `measure q` expression.
type MeasureExpr struct {
	Operand *GateOperand
	Span    *report.TextSpan
}

// ErrExpr is an expression the parser could not produce; lowering turns it
// into an error-typed semantic expression without further diagnostics.
type ErrExpr struct {
	Span *report.TextSpan
}

func (e *BinaryExpr) ExprSpan() *report.TextSpan       { return e.Span }
func (e *UnaryExpr) ExprSpan() *report.TextSpan        { return e.Span }
func (e *IdentExpr) ExprSpan() *report.TextSpan        { return e.Ident.Span }
func (e *IndexedIdentExpr) ExprSpan() *report.TextSpan { return e.Indexed.Span }
func (e *IndexExpr) ExprSpan() *report.TextSpan        { return e.Span }
func (e *CastExpr) ExprSpan() *report.TextSpan         { return e.Span }
func (e *CallExpr) ExprSpan() *report.TextSpan         { return e.Span }
func (e *ParenExpr) ExprSpan() *report.TextSpan        { return e.Span }
func (e *MeasureExpr) ExprSpan() *report.TextSpan      { return e.Span }
func (e *ErrExpr) ExprSpan() *report.TextSpan          { return e.Span }
func (e *Lit) ExprSpan() *report.TextSpan              { return e.Span }

// -----------------------------------------------------------------------------

// LitKind enumerates the literal variants.
type LitKind int

const (
	LitInt LitKind = iota
	LitBigInt
	LitFloat
	LitImaginary
	LitBool
	LitBitstring
	LitDuration
	LitString
)

// Lit is a literal expression.  Which value field is meaningful depends on
// Kind.
type Lit struct {
	Kind LitKind

	Int      int64    // LitInt
	BigVal   *big.Int // LitBigInt, LitBitstring
	Float    float64  // LitFloat, LitImaginary, LitDuration
	Bool     bool     // LitBool
	String   string   // LitString
	Width    int      // LitBitstring: number of digits written
	Unit     TimeUnit // LitDuration

	Span *report.TextSpan
}

// -----------------------------------------------------------------------------

// Index is a single bracketed index operation: either an index list or a set
// expression (the latter is only legal in alias statements).
type Index struct {
	// Exactly one of List and Set is non-nil.
	List *IndexList
	Set  *Set

	Span *report.TextSpan
}

// NumIndices returns the number of index components supplied.
func (ix *Index) NumIndices() int {
	if ix.Set != nil {
		return 1
	}

	return len(ix.List.Items)
}

// IndexList is a comma-separated list of index items.
type IndexList struct {
	Items []*IndexItem
	Span  *report.TextSpan
}

// IndexItem is one component of an index list: a range, an expression, or a
// parse error placeholder.
type IndexItem struct {
	// At most one of Range and Expr is non-nil; both nil marks a parse error.
	Range *Range
	Expr  Expr
}

// Range is a `start:step:end` range; any component may be omitted.
type Range struct {
	Start Expr
	Step  Expr
	End   Expr
	Span  *report.TextSpan
}

// Set is a `{a, b, c}` discrete set.
type Set struct {
	Values []Expr
	Span   *report.TextSpan
}

// EnumerableSet is the iterable of a for statement: a set, a range, or an
// arbitrary expression.  Exactly one field is non-nil.
type EnumerableSet struct {
	Set   *Set
	Range *Range
	Expr  Expr
}

// -----------------------------------------------------------------------------

// GateOperand is a quantum argument to a gate call, reset, barrier, delay, or
// measurement.
type GateOperand struct {
	// At most one of the following is non-nil; all nil marks a parse error.
	Ident    *IdentOrIndexedIdent
	Hardware *HardwareQubit

	Span *report.TextSpan
}

// HardwareQubit is a `$n` physical qubit reference.
type HardwareQubit struct {
	Name string
	Span *report.TextSpan
}
