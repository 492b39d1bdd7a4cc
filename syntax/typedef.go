package syntax

import "qasmc/report"

// ScalarKind enumerates the scalar classical type keywords.
type ScalarKind int

const (
	ScalarBit ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarUInt
	ScalarFloat
	ScalarAngle
	ScalarComplex
	ScalarDuration
	ScalarStretch
)

func (k ScalarKind) String() string {
	return [...]string{
		"bit", "bool", "int", "uint", "float", "angle", "complex",
		"duration", "stretch",
	}[k]
}

// -----------------------------------------------------------------------------

// TypeDef is a written classical type: scalar, array, or array reference.
type TypeDef interface {
	TypeSpan() *report.TextSpan
}

// ScalarTypeDef is a scalar type with an optional width designator, eg.
// `int[32]` or `bit`.
type ScalarTypeDef struct {
	Kind ScalarKind

	// The width designator expression, or nil if unsized.
	Designator Expr

	Span *report.TextSpan
}

// ArrayTypeDef is an `array[base, d1, ...]` type.
type ArrayTypeDef struct {
	Base *ScalarTypeDef
	Dims []Expr
	Span *report.TextSpan
}

// ArrayRefTypeDef is a `readonly array[...]`/`mutable array[...]` reference
// parameter type.  Either Dims or DimCount is set: `#dim = n` declarations
// carry only a dimension count.
type ArrayRefTypeDef struct {
	Base     *ScalarTypeDef
	Dims     []Expr
	DimCount Expr
	Mutable  bool
	Span     *report.TextSpan
}

func (t *ScalarTypeDef) TypeSpan() *report.TextSpan   { return t.Span }
func (t *ArrayTypeDef) TypeSpan() *report.TextSpan    { return t.Span }
func (t *ArrayRefTypeDef) TypeSpan() *report.TextSpan { return t.Span }

// -----------------------------------------------------------------------------

// TypedParameter is a parameter of a def declaration.
type TypedParameter struct {
	// The parameter type.  For quantum parameters Ty is nil and Quantum
	// describes the qubit or qubit register.
	Ty      TypeDef
	Quantum *QuantumParameter

	Ident *Ident
	Span  *report.TextSpan
}

// QuantumParameter is a `qubit` or `qubit[n]` def parameter.
type QuantumParameter struct {
	// The register size designator, or nil for a single qubit.
	Size Expr
}
