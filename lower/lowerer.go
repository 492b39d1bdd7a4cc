package lower

import (
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/syntax"
	"qasmc/types"
)

// Lowerer transforms one parsed program into the semantic AST, building the
// symbol table and accumulating diagnostics as it goes.  Lowering never stops
// at the first problem: failed constructs become error-typed placeholders and
// the walk continues.
type Lowerer struct {
	path    string
	bag     *report.Bag
	symbols *symbols.Table

	version *syntax.Version
	qasm2   bool

	// The names of library gates brought in by include statements.  Only
	// names in this set resolve through the implicit-modifier table.
	libGates map[string]bool

	// Whether an include of the standard library has been seen, which enables
	// on-demand declaration of the extended gate set.
	extraGatesAvailable bool

	pragmas []*semast.PragmaStmt
}

// New creates a lowerer for the program at the given path, reporting into the
// given bag.
func New(path string, bag *report.Bag) *Lowerer {
	return &Lowerer{path: path, bag: bag, libGates: make(map[string]bool)}
}

// Symbols returns the symbol table built during lowering.
func (l *Lowerer) Symbols() *symbols.Table {
	return l.symbols
}

// Lower lowers a parsed program into a semantic program.  The returned
// program is structurally complete even when diagnostics were reported; the
// caller decides whether errors abort compilation.
func (l *Lowerer) Lower(prog *syntax.Program) *semast.Program {
	l.version = prog.Version
	l.checkVersion()
	l.symbols = symbols.NewTable(l.qasm2)

	if l.qasm2 {
		// OpenQASM 2 programs implicitly include their standard library.
		l.defineLibGates(qelib1Gates)
		l.extraGatesAvailable = true
	}

	var stmts []*semast.Stmt
	for _, stmt := range prog.Stmts {
		stmts = append(stmts, l.lowerStmt(stmt)...)
	}

	if !l.symbols.IsCurrentScopeGlobal() {
		report.ICE("scope stack is not back at the global scope after lowering")
	}

	out := &semast.Program{Stmts: stmts, Pragmas: l.pragmas}
	if l.version != nil {
		out.Version = l.version.String()
	}

	return out
}

// checkVersion validates the version statement.  Any 2.x program lowers in
// OpenQASM 2 mode; 3, 3.0, and 3.1 lower in OpenQASM 3 mode; everything else
// is rejected.  A missing version statement defaults to OpenQASM 3.
func (l *Lowerer) checkVersion() {
	v := l.version
	if v == nil {
		return
	}

	switch {
	case v.Major == 2:
		l.qasm2 = true
	case v.Major == 3 && (!v.HasMinor || v.Minor == 0 || v.Minor == 1):
	default:
		l.errorf(ErrUnsupportedVersion, v.Span, "unsupported OPENQASM version: %s", v)
	}
}

// supportsV31 returns whether the program's version permits the constructs
// added in OpenQASM 3.1, eg. switch statements.  A missing version statement
// gets the newest language.
func (l *Lowerer) supportsV31() bool {
	v := l.version
	if v == nil {
		return true
	}

	return v.Major == 3 && (!v.HasMinor || v.Minor >= 1)
}

// -----------------------------------------------------------------------------

// lowerInclude handles an include statement at global scope.  The standard
// library includes define their gate sets directly; any other path is
// unresolvable since lowering works on a single compilation unit.
func (l *Lowerer) lowerInclude(stmt *syntax.Stmt, inc *syntax.IncludeStmt) {
	if !l.symbols.IsCurrentScopeGlobal() {
		l.errorf(ErrIncludeNotInGlobalScope, stmt.Span, "include statements must be in the global scope")
		return
	}

	switch inc.Path {
	case "stdgates.inc":
		l.defineLibGates(stdGates)
		l.extraGatesAvailable = true
	case "qelib1.inc":
		l.defineLibGates(qelib1Gates)
		l.extraGatesAvailable = true
	default:
		l.errorf(ErrIncludeNotFound, inc.PathSpan, "could not resolve include file: %s", inc.Path)
	}
}

// defineLibGates declares a library gate set in the global scope.  Names the
// program already declared are skipped rather than errored: including the
// standard library twice is harmless.
func (l *Lowerer) defineLibGates(gates map[string]gateSig) {
	for name, sig := range gates {
		l.symbols.TryInsertOrGetExisting(&symbols.Symbol{
			Name: name,
			Ty:   types.Gate(sig.cArity, sig.qArity),
		})
		l.libGates[name] = true
	}
}

// defineExtraGateOnDemand declares one of the extended library gates the
// first time it is referenced.  It returns false when the name is not an
// extended gate or no library include has been seen.
func (l *Lowerer) defineExtraGateOnDemand(name string) bool {
	if !l.extraGatesAvailable {
		return false
	}

	sig, ok := extraGates[name]
	if !ok {
		return false
	}

	l.symbols.TryInsertOrGetExisting(&symbols.Symbol{
		Name: name,
		Ty:   types.Gate(sig.cArity, sig.qArity),
	})
	l.libGates[name] = true
	return true
}
