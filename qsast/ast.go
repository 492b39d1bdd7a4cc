// Package qsast defines the target-language abstract syntax emitted by the
// compiler: a compact Q#-shaped tree of namespaces, callables, statements,
// and expressions, together with builder helpers.  The tree is built
// programmatically and rendered by its String methods; there is no parser.
package qsast

import (
	"fmt"
	"strings"
)

// Package is the root of a generated compilation unit.
type Package struct {
	// The wrapping namespace; empty when generating bare fragments.
	Namespace string

	Items []Item
}

// Item is a top-level declaration.
type Item interface {
	item()
}

// OperationDecl declares a callable operation.
type OperationDecl struct {
	Name     string
	Params   []Param
	ReturnTy string

	// Functor support: whether Adjoint and Controlled specializations are
	// auto-generated.
	Adj, Ctl bool

	Body *Block
}

// FunctionDecl declares a classical function.
type FunctionDecl struct {
	Name     string
	Params   []Param
	ReturnTy string
	Body     *Block
}

// Param is one declared parameter.
type Param struct {
	Name string
	Ty   string
}

func (*OperationDecl) item() {}
func (*FunctionDecl) item()  {}

// -----------------------------------------------------------------------------

// Block is a brace-delimited statement list.
type Block struct {
	Stmts []Stmt
}

// Stmt is the closed set of statement variants.
type Stmt interface {
	stmt()
}

// LocalStmt binds an immutable local: `let name = value;`.
type LocalStmt struct {
	Name  string
	Value Expr
}

// MutableStmt binds a mutable local: `mutable name = value;`.
type MutableStmt struct {
	Name  string
	Value Expr
}

// SetStmt updates a mutable local: `set name = value;`.
type SetStmt struct {
	Name  string
	Value Expr
}

// SetIndexStmt updates one element of a mutable array local:
// `set name w/= index <- value;`.
type SetIndexStmt struct {
	Name  string
	Index Expr
	Value Expr
}

// QubitUseStmt allocates qubits for the remainder of the enclosing scope:
// `use name = Qubit();` or `use name = Qubit[size];`.
type QubitUseStmt struct {
	Name string

	// The register size; zero allocates a single qubit.
	Size int
}

// ExprStmt evaluates an expression for its effects.
type ExprStmt struct {
	Expr Expr
}

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else *Block // may be nil
}

// ForStmt iterates a range or array.
type ForStmt struct {
	Var      string
	Iterable Expr
	Body     *Block
}

// WhileStmt loops on a classical condition.
type WhileStmt struct {
	Cond Expr
	Body *Block
}

// RepeatStmt is a repeat/until loop used where the source loop tests at the
// bottom.
type RepeatStmt struct {
	Body  *Block
	Until Expr
}

// ReturnStmt returns from the enclosing callable.
type ReturnStmt struct {
	Value Expr // nil renders as `return ();`
}

// FailStmt aborts the program with a message.
type FailStmt struct {
	Message string
}

func (*LocalStmt) stmt()    {}
func (*MutableStmt) stmt()  {}
func (*SetStmt) stmt()      {}
func (*SetIndexStmt) stmt() {}
func (*QubitUseStmt) stmt() {}
func (*ExprStmt) stmt()     {}
func (*IfStmt) stmt()       {}
func (*ForStmt) stmt()      {}
func (*WhileStmt) stmt()    {}
func (*RepeatStmt) stmt()   {}
func (*ReturnStmt) stmt()   {}
func (*FailStmt) stmt()     {}

// -----------------------------------------------------------------------------

// Expr is the closed set of expression variants.
type Expr interface {
	expr()
}

// Ident references a binding by name.
type Ident struct {
	Name string
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// DoubleLit is a floating-point literal.
type DoubleLit struct {
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// ResultLit is a Zero/One literal.
type ResultLit struct {
	One bool
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elems []Expr
}

// RangeLit is a `start..step..end` range expression.
type RangeLit struct {
	Start, Step, End Expr
}

// Call applies a callable to arguments.
type Call struct {
	Callee Expr
	Args   []Expr
}

// Adjoint applies the Adjoint functor to a callable.
type Adjoint struct {
	Callee Expr
}

// Controlled applies the Controlled functor to a callable.  The call built
// on top receives the control-qubit array as its first argument.
type Controlled struct {
	Callee Expr
}

// IndexExpr indexes an array expression.
type IndexExpr struct {
	Collection Expr
	Index      Expr
}

// BinExpr is an infix operation with a literal operator spelling.
type BinExpr struct {
	Op       string
	Lhs, Rhs Expr
}

// UnaryExpr is a prefix operation with a literal operator spelling.
type UnaryExpr struct {
	Op      string
	Operand Expr
}

// Tuple groups expressions into a tuple value.
type Tuple struct {
	Elems []Expr
}

func (*Ident) expr()      {}
func (*IntLit) expr()     {}
func (*DoubleLit) expr()  {}
func (*BoolLit) expr()    {}
func (*ResultLit) expr()  {}
func (*StringLit) expr()  {}
func (*ArrayLit) expr()   {}
func (*RangeLit) expr()   {}
func (*Call) expr()       {}
func (*Adjoint) expr()    {}
func (*Controlled) expr() {}
func (*IndexExpr) expr()  {}
func (*BinExpr) expr()    {}
func (*UnaryExpr) expr()  {}
func (*Tuple) expr()      {}

// -----------------------------------------------------------------------------

// NewCall builds a call to a named callable.
func NewCall(name string, args ...Expr) *Call {
	return &Call{Callee: &Ident{Name: name}, Args: args}
}

// AdjointOf wraps a callable expression in the Adjoint functor.
func AdjointOf(callee Expr) Expr {
	return &Adjoint{Callee: callee}
}

// ControlledOf wraps a callable expression in the Controlled functor.
func ControlledOf(callee Expr) Expr {
	return &Controlled{Callee: callee}
}

// Int builds an integer literal.
func Int(v int64) Expr { return &IntLit{Value: v} }

// Double builds a floating-point literal.
func Double(v float64) Expr { return &DoubleLit{Value: v} }

// Bool builds a boolean literal.
func Bool(v bool) Expr { return &BoolLit{Value: v} }

// Name builds an identifier reference.
func Name(name string) Expr { return &Ident{Name: name} }

// -----------------------------------------------------------------------------

// String renders the package as target-language source.
func (p *Package) String() string {
	var b strings.Builder
	w := &writer{b: &b}

	if p.Namespace != "" {
		fmt.Fprintf(&b, "namespace %s {\n", p.Namespace)
		w.depth++
	}

	for _, item := range p.Items {
		w.writeItem(item)
	}

	if p.Namespace != "" {
		b.WriteString("}\n")
	}

	return b.String()
}
