package syntax

import "qasmc/report"

// AliasStmt is a `let name = target` register alias declaration.
type AliasStmt struct {
	Ident *Ident

	// The concatenated alias targets.
	Exprs []Expr
}

// AssignStmt is a simple assignment.  The right-hand side may be a measure
// expression.
type AssignStmt struct {
	Lhs *IdentOrIndexedIdent
	Rhs Expr
}

// AssignOpStmt is a compound assignment, eg. `x += 1`.
type AssignOpStmt struct {
	Lhs *IdentOrIndexedIdent
	Op  BinOp
	Rhs Expr
}

// BarrierStmt is a `barrier` statement.
type BarrierStmt struct {
	Qubits []*GateOperand
}

// BoxStmt is a `box { ... }` statement with an optional duration designator.
type BoxStmt struct {
	Duration Expr
	Body     []*Stmt
}

// BreakStmt is a `break` statement.
type BreakStmt struct{}

// CalStmt is a `cal { ... }` calibration block (unsupported downstream).
type CalStmt struct{}

// CalGrammarStmt is a `defcalgrammar "name"` statement.
type CalGrammarStmt struct {
	Name string
}

// ClassicalDeclStmt is a classical variable declaration with an optional
// initializer (which may be a measure expression).
type ClassicalDeclStmt struct {
	Ty    TypeDef
	Ident *Ident
	Init  Expr
}

// ConstDeclStmt is a `const` declaration.  The initializer is mandatory.
type ConstDeclStmt struct {
	Ty    TypeDef
	Ident *Ident
	Init  Expr
}

// ContinueStmt is a `continue` statement.
type ContinueStmt struct{}

// DefStmt is a `def` subroutine declaration.
type DefStmt struct {
	Ident    *Ident
	Params   []*TypedParameter
	ReturnTy TypeDef // nil for void
	Body     *BlockStmt
}

// DefCalStmt is a `defcal` declaration (unsupported downstream).
type DefCalStmt struct{}

// DelayStmt is a `delay[t] q...` statement.
type DelayStmt struct {
	Duration Expr
	Qubits   []*GateOperand
}

// EndStmt is an `end` statement.
type EndStmt struct{}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Expr Expr
}

// ExternStmt is an `extern` function declaration.
type ExternStmt struct {
	Ident    *Ident
	Params   []TypeDef
	ReturnTy TypeDef // nil for void
}

// ForStmt is a `for ty ident in iterable body` statement.
type ForStmt struct {
	Ty       TypeDef
	Ident    *Ident
	Iterable *EnumerableSet
	Body     *Stmt
}

// GateCallStmt is a gate application with optional modifiers, classical
// arguments, and duration.
type GateCallStmt struct {
	Modifiers []*GateModifier
	Name      *Ident
	Args      []Expr
	Duration  Expr
	Qubits    []*GateOperand
}

// GateModifier is one `inv @` / `pow(k) @` / `ctrl(n) @` / `negctrl(n) @`
// prefix on a gate call.
type GateModifier struct {
	Kind GateModifierKind

	// The pow exponent or control count expression; nil for inv and for
	// ctrl/negctrl without an explicit count.
	Arg Expr

	// The span of just the modifier keyword.
	KeywordSpan *report.TextSpan

	Span *report.TextSpan
}

// GPhaseStmt is a global-phase application, lowered as a zero-qubit gate
// call.
type GPhaseStmt struct {
	Modifiers []*GateModifier

	// The span of the `gphase` token itself.
	NameSpan *report.TextSpan

	Args     []Expr
	Duration Expr
	Qubits   []*GateOperand
}

// GateStmt is a `gate` definition.
type GateStmt struct {
	Ident  *Ident
	Params []*Ident
	Qubits []*Ident
	Body   *BlockStmt
}

// IfStmt is an `if` statement with an optional else branch.
type IfStmt struct {
	Cond Expr
	Then *Stmt
	Else *Stmt // may be nil
}

// IncludeStmt is an `include "path"` statement.
type IncludeStmt struct {
	Path     string
	PathSpan *report.TextSpan
}

// IODeclStmt is an `input`/`output` declaration.
type IODeclStmt struct {
	IsInput bool
	Ty      TypeDef
	Ident   *Ident
}

// MeasureArrowStmt is a `measure q -> c` statement; the target may be absent
// for a bare measurement.
type MeasureArrowStmt struct {
	Measure *MeasureExpr
	Target  *IdentOrIndexedIdent // may be nil
}

// PragmaStmt is a `pragma` line.
type PragmaStmt struct {
	Content string
}

// QuantumDeclStmt is a `qubit` or `qubit[n]` declaration.
type QuantumDeclStmt struct {
	Ident *Ident
	Size  Expr // nil for a single qubit
}

// ResetStmt is a `reset q` statement.
type ResetStmt struct {
	Operand *GateOperand
}

// ReturnStmt is a `return` statement; the value may be a measure expression
// or absent.
type ReturnStmt struct {
	Value Expr // may be nil
}

// SwitchStmt is a `switch (target) { case ...: ... }` statement.
type SwitchStmt struct {
	Target  Expr
	Cases   []*SwitchCase
	Default *BlockStmt // may be nil
}

// SwitchCase is one `case label, label: block` arm.
type SwitchCase struct {
	Labels []Expr
	Body   *BlockStmt
	Span   *report.TextSpan
}

// WhileStmt is a `while` loop.
type WhileStmt struct {
	Cond Expr
	Body *Stmt
}

// BlockStmt is a `{ ... }` statement block.
type BlockStmt struct {
	Stmts []*Stmt
	Span  *report.TextSpan
}

// ErrStmt is a statement the parser could not produce.
type ErrStmt struct{}

func (*AliasStmt) stmtKind()         {}
func (*AssignStmt) stmtKind()        {}
func (*AssignOpStmt) stmtKind()      {}
func (*BarrierStmt) stmtKind()       {}
func (*BoxStmt) stmtKind()           {}
func (*BreakStmt) stmtKind()         {}
func (*CalStmt) stmtKind()           {}
func (*CalGrammarStmt) stmtKind()    {}
func (*ClassicalDeclStmt) stmtKind() {}
func (*ConstDeclStmt) stmtKind()     {}
func (*ContinueStmt) stmtKind()      {}
func (*DefStmt) stmtKind()           {}
func (*DefCalStmt) stmtKind()        {}
func (*DelayStmt) stmtKind()         {}
func (*EndStmt) stmtKind()           {}
func (*ExprStmt) stmtKind()          {}
func (*ExternStmt) stmtKind()        {}
func (*ForStmt) stmtKind()           {}
func (*GateCallStmt) stmtKind()      {}
func (*GPhaseStmt) stmtKind()        {}
func (*GateStmt) stmtKind()          {}
func (*IfStmt) stmtKind()            {}
func (*IncludeStmt) stmtKind()       {}
func (*IODeclStmt) stmtKind()        {}
func (*MeasureArrowStmt) stmtKind()  {}
func (*PragmaStmt) stmtKind()        {}
func (*QuantumDeclStmt) stmtKind()   {}
func (*ResetStmt) stmtKind()         {}
func (*ReturnStmt) stmtKind()        {}
func (*SwitchStmt) stmtKind()        {}
func (*WhileStmt) stmtKind()         {}
func (*BlockStmt) stmtKind()         {}
func (*ErrStmt) stmtKind()           {}
