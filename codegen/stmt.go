package codegen

import (
	"qasmc/qsast"
	"qasmc/semast"
	"qasmc/types"
)

func (c *Compiler) compileStmts(stmts []*semast.Stmt) []qsast.Stmt {
	var out []qsast.Stmt
	for _, stmt := range stmts {
		out = append(out, c.compileStmt(stmt)...)
	}

	return out
}

// compileStmt translates one lowered statement.  Declarations of gates and
// subroutines are hoisted to top-level items and produce no inline
// statements.
func (c *Compiler) compileStmt(stmt *semast.Stmt) []qsast.Stmt {
	switch s := stmt.Kind.(type) {
	case *semast.AliasDeclStmt:
		return []qsast.Stmt{&qsast.LocalStmt{
			Name:  c.symName(s.Symbol),
			Value: c.compileAliasValue(s.Exprs),
		}}

	case *semast.AssignStmt:
		return []qsast.Stmt{&qsast.SetStmt{
			Name:  c.symName(s.Symbol),
			Value: c.compileExpr(s.Rhs),
		}}

	case *semast.IndexedAssignStmt:
		return c.compileIndexedAssign(s)

	case *semast.BarrierStmt:
		var qs []qsast.Expr
		for _, op := range s.Operands {
			if op.IsErr {
				continue
			}
			qs = append(qs, c.compileExpr(op.Expr))
		}
		return []qsast.Stmt{&qsast.ExprStmt{
			Expr: qsast.NewCall(c.need(stubBarrier), &qsast.ArrayLit{Elems: qs}),
		}}

	case *semast.BoxStmt:
		return c.compileStmts(s.Body)

	case *semast.BlockStmt:
		return c.compileStmts(s.Stmts)

	case *semast.BreakStmt:
		c.errorf(ErrNotSupported, stmt.Span, "break statements are not supported by the target language")
		return nil

	case *semast.ContinueStmt:
		c.errorf(ErrNotSupported, stmt.Span, "continue statements are not supported by the target language")
		return nil

	case *semast.EndStmt:
		return []qsast.Stmt{&qsast.FailStmt{Message: "program ended"}}

	case *semast.ClassicalDeclStmt:
		sym := c.table.Get(s.Symbol)
		init := c.compileExpr(s.Init)
		if sym.Ty.IsConst() {
			return []qsast.Stmt{&qsast.LocalStmt{Name: sym.Name, Value: init}}
		}
		return []qsast.Stmt{&qsast.MutableStmt{Name: sym.Name, Value: init}}

	case *semast.QubitDeclStmt:
		return []qsast.Stmt{c.allocQubit(c.symName(s.Symbol), 0)}

	case *semast.QubitArrayDeclStmt:
		return []qsast.Stmt{c.allocQubit(c.symName(s.Symbol), s.Size)}

	case *semast.DefStmt:
		c.hoistDef(s)
		return nil

	case *semast.ExternStmt:
		c.errorf(ErrNotSupported, stmt.Span, "extern declarations are not supported by the target language")
		return nil

	case *semast.ForStmt:
		return []qsast.Stmt{&qsast.ForStmt{
			Var:      c.symName(s.LoopVar),
			Iterable: c.compileIterable(s.Iterable),
			Body:     c.blockOf(s.Body),
		}}

	case *semast.GateCallStmt:
		return c.compileGateCall(s)

	case *semast.GateDeclStmt:
		c.hoistGate(s)
		return nil

	case *semast.IfStmt:
		out := &qsast.IfStmt{
			Cond: c.compileExpr(s.Cond),
			Then: c.blockOf(s.Then),
		}
		if s.Else != nil {
			out.Else = c.blockOf(s.Else)
		}
		return []qsast.Stmt{out}

	case *semast.InputDeclStmt:
		// Inputs surface as entry operation parameters.
		return nil

	case *semast.OutputDeclStmt:
		return []qsast.Stmt{&qsast.MutableStmt{
			Name:  c.symName(s.Symbol),
			Value: c.compileExpr(s.Init),
		}}

	case *semast.PragmaStmt:
		return nil

	case *semast.ResetStmt:
		if s.Operand.IsErr {
			return nil
		}
		name := "Reset"
		if s.Operand.Expr.Ty.Kind == types.KQubitArray {
			name = "ResetAll"
		}
		return []qsast.Stmt{&qsast.ExprStmt{
			Expr: qsast.NewCall(name, c.compileExpr(s.Operand.Expr)),
		}}

	case *semast.ReturnStmt:
		out := &qsast.ReturnStmt{}
		if s.Value != nil {
			out.Value = c.compileExpr(s.Value)
		}
		return []qsast.Stmt{out}

	case *semast.SwitchStmt:
		return c.compileSwitch(s)

	case *semast.WhileStmt:
		return []qsast.Stmt{&qsast.WhileStmt{
			Cond: c.compileExpr(s.Cond),
			Body: c.blockOf(s.Body),
		}}

	case *semast.ExprStmt:
		return []qsast.Stmt{&qsast.ExprStmt{Expr: c.compileExpr(s.Expr)}}

	case *semast.ErrStmt:
		return nil
	}

	c.errorf(ErrUnexpectedStmt, stmt.Span, "statement kind %T cannot be compiled", stmt.Kind)
	return nil
}

// blockOf compiles a statement into a block, flattening nested blocks.
func (c *Compiler) blockOf(stmt *semast.Stmt) *qsast.Block {
	if block, ok := stmt.Kind.(*semast.BlockStmt); ok {
		return &qsast.Block{Stmts: c.compileStmts(block.Stmts)}
	}

	return &qsast.Block{Stmts: c.compileStmt(stmt)}
}

// -----------------------------------------------------------------------------

// allocQubit emits a qubit allocation under the configured qubit semantics:
// a scope-managed binding, or an explicit runtime allocation that lives for
// the whole program.
func (c *Compiler) allocQubit(name string, size int) qsast.Stmt {
	if c.cfg.Qubits == QubitQSharp {
		return &qsast.QubitUseStmt{Name: name, Size: size}
	}

	var value qsast.Expr
	if size == 0 {
		value = qsast.NewCall("QIR.Runtime.__quantum__rt__qubit_allocate")
	} else {
		value = qsast.NewCall("QIR.Runtime.AllocateQubitArray", qsast.Int(int64(size)))
	}

	return &qsast.LocalStmt{Name: name, Value: value}
}

// -----------------------------------------------------------------------------

func (c *Compiler) compileIndexedAssign(s *semast.IndexedAssignStmt) []qsast.Stmt {
	if len(s.Indices) != 1 || s.Indices[0].Expr == nil {
		c.errorf(ErrNotSupported, s.LhsSpan, "assignment through ranged or multi-dimensional indices is not supported")
		return nil
	}

	return []qsast.Stmt{&qsast.SetIndexStmt{
		Name:  c.symName(s.Symbol),
		Index: c.compileExpr(s.Indices[0].Expr),
		Value: c.compileExpr(s.Rhs),
	}}
}

// compileAliasValue concatenates the alias targets into a single array
// expression.
func (c *Compiler) compileAliasValue(exprs []*semast.Expr) qsast.Expr {
	value := c.compileExpr(exprs[0])
	for _, e := range exprs[1:] {
		value = &qsast.BinExpr{Op: "+", Lhs: value, Rhs: c.compileExpr(e)}
	}

	return value
}

func (c *Compiler) compileIterable(set semast.EnumerableSet) qsast.Expr {
	switch {
	case set.Range != nil:
		out := &qsast.RangeLit{
			Start: c.compileExpr(set.Range.Start),
			End:   c.compileExpr(set.Range.End),
		}
		if set.Range.Step != nil {
			out.Step = c.compileExpr(set.Range.Step)
		}
		return out

	case set.Set != nil:
		elems := make([]qsast.Expr, len(set.Set.Values))
		for i, v := range set.Set.Values {
			elems[i] = c.compileExpr(v)
		}
		return &qsast.ArrayLit{Elems: elems}
	}

	return c.compileExpr(set.Expr)
}

// -----------------------------------------------------------------------------

// compileSwitch desugars a switch into a chain of if/else-if statements.  The
// target is bound once to a generated local so its side effects run exactly
// once, and each case's labels become an or-chain of equality tests against
// that local.
func (c *Compiler) compileSwitch(s *semast.SwitchStmt) []qsast.Stmt {
	target := c.freshName("switch")
	out := []qsast.Stmt{&qsast.LocalStmt{Name: target, Value: c.compileExpr(s.Target)}}

	var root, tail *qsast.IfStmt
	for _, arm := range s.Cases {
		var cond qsast.Expr
		for _, label := range arm.Labels {
			test := &qsast.BinExpr{Op: "==", Lhs: qsast.Name(target), Rhs: c.compileExpr(label)}
			if cond == nil {
				cond = test
			} else {
				cond = &qsast.BinExpr{Op: "or", Lhs: cond, Rhs: test}
			}
		}

		next := &qsast.IfStmt{
			Cond: cond,
			Then: &qsast.Block{Stmts: c.compileStmts(arm.Body.Stmts)},
		}

		if root == nil {
			root = next
		} else {
			tail.Else = &qsast.Block{Stmts: []qsast.Stmt{next}}
		}
		tail = next
	}

	if s.Default != nil {
		body := &qsast.Block{Stmts: c.compileStmts(s.Default.Stmts)}
		if tail == nil {
			return append(out, body.Stmts...)
		}
		tail.Else = body
	}

	if root != nil {
		out = append(out, root)
	}

	return out
}

// -----------------------------------------------------------------------------

// hoistDef lifts a subroutine to a top-level operation declaration.
func (c *Compiler) hoistDef(s *semast.DefStmt) {
	sym := c.table.Get(s.Symbol)

	params := make([]qsast.Param, len(s.Params))
	for i, id := range s.Params {
		p := c.table.Get(id)
		params[i] = qsast.Param{Name: p.Name, Ty: targetTypeName(p.Ty)}
	}

	c.items = append(c.items, &qsast.OperationDecl{
		Name:     sym.Name,
		Params:   params,
		ReturnTy: targetTypeName(sym.Ty.Return),
		Body:     &qsast.Block{Stmts: c.compileStmts(s.Body.Stmts)},
	})
}

// hoistGate lifts a gate declaration to a top-level operation with adjoint
// and controlled specializations, so modifier expansion can wrap calls to it.
func (c *Compiler) hoistGate(s *semast.GateDeclStmt) {
	sym := c.table.Get(s.Symbol)

	params := make([]qsast.Param, 0, len(s.Params)+len(s.Qubits))
	for _, id := range s.Params {
		params = append(params, qsast.Param{Name: c.symName(id), Ty: "Double"})
	}
	for _, id := range s.Qubits {
		params = append(params, qsast.Param{Name: c.symName(id), Ty: "Qubit"})
	}

	c.items = append(c.items, &qsast.OperationDecl{
		Name:   sym.Name,
		Params: params,
		Adj:    true,
		Ctl:    true,
		Body:   &qsast.Block{Stmts: c.compileStmts(s.Body.Stmts)},
	})
}
