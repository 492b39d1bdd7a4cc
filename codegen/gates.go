package codegen

import (
	"qasmc/qsast"
	"qasmc/semast"
	"qasmc/syntax"
)

// intrinsicGates maps the builtin gate names with direct target intrinsics.
// Gates without an entry, user-defined or from the standard library include,
// compile as calls under their declared name.
var intrinsicGates = map[string]string{
	"x":    "X",
	"y":    "Y",
	"z":    "Z",
	"h":    "H",
	"s":    "S",
	"t":    "T",
	"rx":   "Rx",
	"ry":   "Ry",
	"rz":   "Rz",
	"cx":   "CNOT",
	"CX":   "CNOT",
	"cz":   "CZ",
	"ccx":  "CCNOT",
	"swap": "SWAP",
	"id":   "I",
}

// targetGateName resolves the generated callee name for a gate, marking the
// runtime stubs for the builtin gates without intrinsics.
func (c *Compiler) targetGateName(name string) string {
	if target, ok := intrinsicGates[name]; ok {
		return target
	}

	switch name {
	case "U":
		return c.need(stubU)
	case "gphase":
		return c.need(stubGphase)
	}

	return name
}

// -----------------------------------------------------------------------------

// compileGateCall expands a modifier chain around a gate application.
//
// The modifier list is stored outermost first, and control qubits bind to
// modifiers in that same order from the end of the operand list: in
// `inv @ ctrl(2) @ pow(3) @ g(a) q0, q1, q2, q3` the ctrl modifier consumes
// q2 and q3, leaving q0 and q1 for g itself.  The wrappers are then built
// inside out, so the outermost modifier becomes the outermost expression.
func (c *Compiler) compileGateCall(g *semast.GateCallStmt) []qsast.Stmt {
	args := make([]qsast.Expr, 0, len(g.Args)+len(g.Operands))
	for _, arg := range g.Args {
		args = append(args, c.compileExpr(arg))
	}

	operands := make([]qsast.Expr, 0, len(g.Operands))
	for _, op := range g.Operands {
		if op.IsErr {
			return nil
		}
		operands = append(operands, c.compileExpr(op.Expr))
	}

	// First pass, outermost first: peel each modifier's control qubits off
	// the end of the operand list.
	controls := make([][]qsast.Expr, len(g.Modifiers))
	for i, m := range g.Modifiers {
		switch m.Kind {
		case syntax.ModCtrl, syntax.ModNegCtrl:
			split := len(operands) - m.Ctrls
			controls[i] = operands[split:]
			operands = operands[:split]
		}
	}

	// Second pass, innermost first: wrap the base application.
	call := &qsast.Call{
		Callee: qsast.Name(c.targetGateName(c.symName(g.Symbol))),
		Args:   append(args, operands...),
	}

	for i := len(g.Modifiers) - 1; i >= 0; i-- {
		m := g.Modifiers[i]
		switch m.Kind {
		case syntax.ModInv:
			call = &qsast.Call{
				Callee: qsast.AdjointOf(call.Callee),
				Args:   call.Args,
			}

		case syntax.ModPow:
			call = &qsast.Call{
				Callee: qsast.Name(c.need(stubPow)),
				Args: []qsast.Expr{
					c.compileExpr(m.Arg),
					call.Callee,
					&qsast.Tuple{Elems: call.Args},
				},
			}

		case syntax.ModCtrl:
			call = &qsast.Call{
				Callee: qsast.ControlledOf(call.Callee),
				Args: []qsast.Expr{
					&qsast.ArrayLit{Elems: controls[i]},
					&qsast.Tuple{Elems: call.Args},
				},
			}

		case syntax.ModNegCtrl:
			call = &qsast.Call{
				Callee: qsast.Name(c.need(stubNegCtrl)),
				Args: []qsast.Expr{
					&qsast.ArrayLit{Elems: controls[i]},
					call.Callee,
					&qsast.Tuple{Elems: call.Args},
				},
			}
		}
	}

	return []qsast.Stmt{&qsast.ExprStmt{Expr: call}}
}
