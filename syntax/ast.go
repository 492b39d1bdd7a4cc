package syntax

import "qasmc/report"

// Program is the root node of a parsed OpenQASM compilation unit.  It is
// produced by the parser and consumed as an opaque input by the lowerer.
type Program struct {
	// The version statement, if one was present.
	Version *Version

	// The top level statements in source order.
	Stmts []*Stmt
}

// Version is a parsed OPENQASM version statement.
type Version struct {
	Major int
	Minor int

	// Whether a minor version was written at all: `OPENQASM 3;` and
	// `OPENQASM 3.0;` are distinguishable.
	HasMinor bool

	Span *report.TextSpan
}

func (v *Version) String() string {
	if v.HasMinor {
		return itoa(v.Major) + "." + itoa(v.Minor)
	}

	return itoa(v.Major)
}

func itoa(n int) string {
	if n < 0 {
		return "-" + itoa(-n)
	}

	if n < 10 {
		return string(rune('0' + n))
	}

	return itoa(n/10) + string(rune('0'+n%10))
}

// -----------------------------------------------------------------------------

// Stmt is a statement: a span, leading annotations, and the statement kind.
type Stmt struct {
	Span        *report.TextSpan
	Annotations []*Annotation
	Kind        StmtKind
}

// StmtKind is the closed set of statement variants.  Each concrete kind is a
// struct in stmt.go.
type StmtKind interface {
	stmtKind()
}

// Annotation is an `@name value` annotation attached to a statement.
type Annotation struct {
	Name  string
	Value string
	Span  *report.TextSpan
}

// Ident is a bare identifier.
type Ident struct {
	Name string
	Span *report.TextSpan
}

// IndexedIdent is an identifier followed by one or more bracketed index
// operations, eg. `a[1, 2][3]`.
type IndexedIdent struct {
	Ident *Ident

	// The index operations in source order.  Guaranteed non-empty.
	Indices []*Index

	// The span of just the index operations.
	IndexSpan *report.TextSpan

	Span *report.TextSpan
}

// IdentOrIndexedIdent is either a bare or an indexed identifier.  Exactly one
// field is non-nil.
type IdentOrIndexedIdent struct {
	Ident   *Ident
	Indexed *IndexedIdent
}

// Name returns the identifier name regardless of form.
func (ii *IdentOrIndexedIdent) Name() string {
	if ii.Ident != nil {
		return ii.Ident.Name
	}

	return ii.Indexed.Ident.Name
}

// Span returns the full span regardless of form.
func (ii *IdentOrIndexedIdent) Span() *report.TextSpan {
	if ii.Ident != nil {
		return ii.Ident.Span
	}

	return ii.Indexed.Span
}
