package semast

import (
	"qasmc/report"
	"qasmc/syntax"
)

// Program is the root of the semantic AST.
type Program struct {
	// The source version, normalized; empty if no version statement.
	Version string

	// The lowered statements.
	Stmts []*Stmt

	// The pragmas encountered, in source order.
	Pragmas []*PragmaStmt
}

// Stmt is a lowered statement: a span, the surviving annotations, and the
// statement kind.
type Stmt struct {
	Span        *report.TextSpan
	Annotations []*syntax.Annotation
	Kind        StmtKind
}

// StmtKind is the closed set of lowered statement variants.
type StmtKind interface {
	semStmtKind()
}

// AliasDeclStmt is a register alias declaration.
type AliasDeclStmt struct {
	Symbol SymbolID
	Exprs  []*Expr
}

// AssignStmt assigns to a plain identifier.
type AssignStmt struct {
	Symbol  SymbolID
	LhsSpan *report.TextSpan
	Rhs     *Expr
}

// IndexedAssignStmt assigns through an index operation.
type IndexedAssignStmt struct {
	Symbol  SymbolID
	LhsSpan *report.TextSpan
	Indices []Index
	Rhs     *Expr
}

// BarrierStmt is a barrier over the given operands.
type BarrierStmt struct {
	Operands []GateOperand
}

// BoxStmt is a box scope over quantum statements.
type BoxStmt struct {
	Duration *Expr
	Body     []*Stmt
}

// BlockStmt is a lowered statement block.
type BlockStmt struct {
	Span  *report.TextSpan
	Stmts []*Stmt
}

type BreakStmt struct{}
type ContinueStmt struct{}
type EndStmt struct{}

// ClassicalDeclStmt declares a classical variable; Init is never nil, a
// default value is synthesized when the source had no initializer.
type ClassicalDeclStmt struct {
	Symbol SymbolID
	TySpan *report.TextSpan
	Init   *Expr
}

// QubitDeclStmt declares a single qubit.
type QubitDeclStmt struct {
	Symbol SymbolID
}

// QubitArrayDeclStmt declares a qubit register.
type QubitArrayDeclStmt struct {
	Symbol SymbolID
	Size   int
}

// DefStmt is a lowered subroutine definition.
type DefStmt struct {
	Symbol SymbolID
	Params []SymbolID
	Body   *BlockStmt
}

// ExternStmt is a lowered extern declaration.
type ExternStmt struct {
	Symbol SymbolID
}

// ForStmt is a lowered for loop.
type ForStmt struct {
	LoopVar  SymbolID
	Iterable EnumerableSet
	Body     *Stmt
}

// GateCallStmt is one fully resolved, modifier-expanded gate application.
// Broadcasting has already been unrolled: the operands here are scalar.
type GateCallStmt struct {
	Symbol   SymbolID
	NameSpan *report.TextSpan

	// The modifiers in application order: the first entry is the outermost
	// wrapper.
	Modifiers []GateModifier

	Args     []*Expr
	Operands []GateOperand
	Duration *Expr

	// The declared arities after folding in implicit and explicit control
	// modifiers.
	ClassicalArity int
	QuantumArity   int
}

// GateDeclStmt is a lowered gate definition.
type GateDeclStmt struct {
	Symbol SymbolID
	Params []SymbolID
	Qubits []SymbolID
	Body   *BlockStmt
}

// IfStmt is a lowered if statement.
type IfStmt struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt // may be nil
}

// InputDeclStmt is an input parameter declaration.
type InputDeclStmt struct {
	Symbol SymbolID
}

// OutputDeclStmt is an output declaration with its synthesized default
// initializer.
type OutputDeclStmt struct {
	Symbol SymbolID
	Init   *Expr
}

// PragmaStmt is a preserved pragma line.
type PragmaStmt struct {
	Content string
	Span    *report.TextSpan
}

// ResetStmt resets a qubit or qubit register.
type ResetStmt struct {
	Operand GateOperand
}

// ReturnStmt returns from a subroutine.
type ReturnStmt struct {
	Value *Expr // nil for void returns
}

// SwitchStmt is a lowered switch statement.
type SwitchStmt struct {
	Target  *Expr
	Cases   []SwitchCase
	Default *BlockStmt // may be nil
}

// SwitchCase is one lowered switch arm.
type SwitchCase struct {
	Labels []*Expr
	Body   *BlockStmt
}

// WhileStmt is a lowered while loop.
type WhileStmt struct {
	Cond *Expr
	Body *Stmt
}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Expr *Expr
}

// ErrStmt marks a statement that failed to lower.
type ErrStmt struct{}

func (*AliasDeclStmt) semStmtKind()      {}
func (*AssignStmt) semStmtKind()         {}
func (*IndexedAssignStmt) semStmtKind()  {}
func (*BarrierStmt) semStmtKind()        {}
func (*BoxStmt) semStmtKind()            {}
func (*BlockStmt) semStmtKind()          {}
func (*BreakStmt) semStmtKind()          {}
func (*ContinueStmt) semStmtKind()       {}
func (*EndStmt) semStmtKind()            {}
func (*ClassicalDeclStmt) semStmtKind()  {}
func (*QubitDeclStmt) semStmtKind()      {}
func (*QubitArrayDeclStmt) semStmtKind() {}
func (*DefStmt) semStmtKind()            {}
func (*ExternStmt) semStmtKind()         {}
func (*ForStmt) semStmtKind()            {}
func (*GateCallStmt) semStmtKind()       {}
func (*GateDeclStmt) semStmtKind()       {}
func (*IfStmt) semStmtKind()             {}
func (*InputDeclStmt) semStmtKind()      {}
func (*OutputDeclStmt) semStmtKind()     {}
func (*PragmaStmt) semStmtKind()         {}
func (*ResetStmt) semStmtKind()          {}
func (*ReturnStmt) semStmtKind()         {}
func (*SwitchStmt) semStmtKind()         {}
func (*WhileStmt) semStmtKind()          {}
func (*ExprStmt) semStmtKind()           {}
func (*ErrStmt) semStmtKind()            {}
