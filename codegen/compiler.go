// Package codegen translates the lowered semantic program into a
// target-language package: an operation tree with explicit qubit management,
// expanded gate modifiers, and a callable entry-point signature.
package codegen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"qasmc/qsast"
	"qasmc/report"
	"qasmc/semast"
	"qasmc/symbols"
	"qasmc/types"
)

// The diagnostic codes the compiler can emit on top of those produced during
// lowering.
const (
	ErrNotSupported   = "NotSupported"
	ErrUnexpectedStmt = "UnexpectedStatement"
)

// Compiler translates one semantic program.  A Compiler is single-use:
// create one per Compile call.
type Compiler struct {
	cfg  Config
	path string
	bag  *report.Bag
	log  *zap.Logger

	table *symbols.Table

	// The runtime stubs referenced so far.
	stubs map[string]bool

	// Hoisted gate and subroutine declarations.
	items []qsast.Item

	// Counter for generated local names.
	tmp int
}

// New creates a compiler for one source file.
func New(cfg Config, path string, bag *report.Bag, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}

	return &Compiler{
		cfg:   cfg,
		path:  path,
		bag:   bag,
		log:   log,
		stubs: make(map[string]bool),
	}
}

// Compile translates the program into a target package and the signature of
// its entry operation.  The signature is nil when generating fragments.
func (c *Compiler) Compile(prog *semast.Program, table *symbols.Table) (*qsast.Package, *OperationSignature) {
	c.table = table

	c.log.Debug("compiling program",
		zap.String("path", c.path),
		zap.Int("statements", len(prog.Stmts)))

	body := c.compileStmts(prog.Stmts)

	if c.cfg.Program == ProgramFragments {
		pkg := &qsast.Package{}
		pkg.Items = append(pkg.Items, c.runtimeItems()...)
		pkg.Items = append(pkg.Items, c.items...)
		if len(body) > 0 {
			pkg.Items = append(pkg.Items, &qsast.OperationDecl{
				Name: c.cfg.operationName(),
				Body: &qsast.Block{Stmts: body},
			})
		}
		return pkg, nil
	}

	params := c.inputParams()
	returnTy, returnExpr := c.outputReturn()
	if returnExpr != nil {
		body = append(body, &qsast.ReturnStmt{Value: returnExpr})
	}

	entry := &qsast.OperationDecl{
		Name:     c.cfg.operationName(),
		Params:   params,
		ReturnTy: returnTy,
		Body:     &qsast.Block{Stmts: body},
	}

	pkg := &qsast.Package{}
	if c.cfg.Program == ProgramFile {
		pkg.Namespace = c.cfg.namespace()
	}
	pkg.Items = append(pkg.Items, c.runtimeItems()...)
	pkg.Items = append(pkg.Items, c.items...)
	pkg.Items = append(pkg.Items, entry)

	sig := &OperationSignature{
		Namespace: c.cfg.namespace(),
		Name:      entry.Name,
		Output:    returnTy,
	}
	for _, p := range params {
		sig.Input = append(sig.Input, SignatureParam{Name: p.Name, Ty: p.Ty})
	}

	c.log.Debug("compiled program",
		zap.String("signature", sig.String()),
		zap.Int("runtime stubs", len(c.stubs)))

	return pkg, sig
}

// -----------------------------------------------------------------------------

// inputParams builds the entry operation's parameter list from the declared
// input symbols.
func (c *Compiler) inputParams() []qsast.Param {
	var params []qsast.Param
	for _, id := range c.table.Inputs() {
		sym := c.table.Get(id)
		params = append(params, qsast.Param{Name: sym.Name, Ty: targetTypeName(sym.Ty)})
	}

	return params
}

// outputReturn derives the entry operation's return type and value under the
// configured output semantics.
func (c *Compiler) outputReturn() (string, qsast.Expr) {
	if c.cfg.Output == OutputResourceEstimation {
		return "Unit", nil
	}

	outputs := c.table.Outputs()
	if len(outputs) == 0 {
		outputs = c.table.InferredOutputs()
	}

	if c.cfg.Output == OutputQiskit {
		var regs []semast.SymbolID
		for _, id := range outputs {
			switch c.table.Get(id).Ty.Kind {
			case types.KBit, types.KBitArray:
				regs = append(regs, id)
			}
		}

		// Qiskit presents classical registers most recently declared first.
		for i, j := 0, len(regs)-1; i < j; i, j = i+1, j-1 {
			regs[i], regs[j] = regs[j], regs[i]
		}
		outputs = regs
	}

	if len(outputs) == 0 {
		return "Unit", nil
	}

	names := make([]qsast.Expr, len(outputs))
	tys := make([]string, len(outputs))
	for i, id := range outputs {
		sym := c.table.Get(id)
		names[i] = qsast.Name(sym.Name)
		tys[i] = targetTypeName(sym.Ty)
	}

	if len(outputs) == 1 {
		return tys[0], names[0]
	}

	return "(" + strings.Join(tys, ", ") + ")", &qsast.Tuple{Elems: names}
}

// -----------------------------------------------------------------------------

// freshName generates a name for a compiler-introduced local.
func (c *Compiler) freshName(prefix string) string {
	c.tmp++
	return fmt.Sprintf("__%s_%d__", prefix, c.tmp)
}

// symName returns the declared name of a symbol.
func (c *Compiler) symName(id semast.SymbolID) string {
	return c.table.Get(id).Name
}

// errorf records an error diagnostic against the compiled file.
func (c *Compiler) errorf(code string, span *report.TextSpan, msg string, args ...interface{}) {
	c.bag.Addf(code, c.path, span, msg, args...)
}
