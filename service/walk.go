package service

import (
	"qasmc/semast"
	"qasmc/symbols"
)

// collect walks the whole program, invoking fn for every symbol occurrence.
func collect(prog *semast.Program, table *symbols.Table, fn func(occurrence)) {
	w := &walker{table: table, fn: fn}
	for _, stmt := range prog.Stmts {
		w.stmt(stmt)
	}
}

type walker struct {
	table *symbols.Table
	fn    func(occurrence)
}

// decl emits a symbol's declaration at its declaring identifier span.
func (w *walker) decl(id semast.SymbolID) {
	w.fn(occurrence{id: id, span: w.table.Get(id).Span, decl: true})
}

func (w *walker) stmt(stmt *semast.Stmt) {
	switch s := stmt.Kind.(type) {
	case *semast.AliasDeclStmt:
		w.decl(s.Symbol)
		for _, e := range s.Exprs {
			w.expr(e)
		}

	case *semast.AssignStmt:
		w.fn(occurrence{id: s.Symbol, span: s.LhsSpan})
		w.expr(s.Rhs)

	case *semast.IndexedAssignStmt:
		w.fn(occurrence{id: s.Symbol, span: s.LhsSpan})
		for _, idx := range s.Indices {
			w.index(idx)
		}
		w.expr(s.Rhs)

	case *semast.BarrierStmt:
		for _, op := range s.Operands {
			w.operand(op)
		}

	case *semast.BoxStmt:
		w.expr(s.Duration)
		for _, inner := range s.Body {
			w.stmt(inner)
		}

	case *semast.BlockStmt:
		for _, inner := range s.Stmts {
			w.stmt(inner)
		}

	case *semast.ClassicalDeclStmt:
		w.decl(s.Symbol)
		w.expr(s.Init)

	case *semast.QubitDeclStmt:
		w.decl(s.Symbol)

	case *semast.QubitArrayDeclStmt:
		w.decl(s.Symbol)

	case *semast.DefStmt:
		w.decl(s.Symbol)
		for _, param := range s.Params {
			w.decl(param)
		}
		w.block(s.Body)

	case *semast.ExternStmt:
		w.decl(s.Symbol)

	case *semast.ForStmt:
		w.decl(s.LoopVar)
		w.iterable(s.Iterable)
		w.stmt(s.Body)

	case *semast.GateCallStmt:
		w.fn(occurrence{id: s.Symbol, span: s.NameSpan})
		for _, m := range s.Modifiers {
			w.expr(m.Arg)
		}
		for _, arg := range s.Args {
			w.expr(arg)
		}
		for _, op := range s.Operands {
			w.operand(op)
		}
		w.expr(s.Duration)

	case *semast.GateDeclStmt:
		w.decl(s.Symbol)
		for _, param := range s.Params {
			w.decl(param)
		}
		for _, qubit := range s.Qubits {
			w.decl(qubit)
		}
		w.block(s.Body)

	case *semast.IfStmt:
		w.expr(s.Cond)
		w.stmt(s.Then)
		if s.Else != nil {
			w.stmt(s.Else)
		}

	case *semast.InputDeclStmt:
		w.decl(s.Symbol)

	case *semast.OutputDeclStmt:
		w.decl(s.Symbol)
		w.expr(s.Init)

	case *semast.ResetStmt:
		w.operand(s.Operand)

	case *semast.ReturnStmt:
		w.expr(s.Value)

	case *semast.SwitchStmt:
		w.expr(s.Target)
		for _, arm := range s.Cases {
			for _, label := range arm.Labels {
				w.expr(label)
			}
			w.block(arm.Body)
		}
		if s.Default != nil {
			w.block(s.Default)
		}

	case *semast.WhileStmt:
		w.expr(s.Cond)
		w.stmt(s.Body)

	case *semast.ExprStmt:
		w.expr(s.Expr)
	}
}

func (w *walker) block(block *semast.BlockStmt) {
	for _, stmt := range block.Stmts {
		w.stmt(stmt)
	}
}

func (w *walker) expr(e *semast.Expr) {
	if e == nil {
		return
	}

	switch k := e.Kind.(type) {
	case *semast.IdentExpr:
		w.fn(occurrence{id: k.Symbol, span: e.Span})

	case *semast.CapturedIdentExpr:
		w.fn(occurrence{id: k.Symbol, span: e.Span})

	case *semast.IndexedIdentExpr:
		w.fn(occurrence{id: k.Symbol, span: k.NameSpan})
		for _, idx := range k.Indices {
			w.index(idx)
		}

	case *semast.IndexExpr:
		w.expr(k.Collection)
		for _, idx := range k.Indices {
			w.index(idx)
		}

	case *semast.BinaryOpExpr:
		w.expr(k.Lhs)
		w.expr(k.Rhs)

	case *semast.UnaryOpExpr:
		w.expr(k.Operand)

	case *semast.CastExpr:
		w.expr(k.Arg)

	case *semast.CallExpr:
		w.fn(occurrence{id: k.Symbol, span: e.Span})
		for _, arg := range k.Args {
			w.expr(arg)
		}

	case *semast.BuiltinCallExpr:
		for _, arg := range k.Args {
			w.expr(arg)
		}

	case *semast.MeasureExpr:
		w.operand(k.Operand)

	case *semast.SetExpr:
		for _, v := range k.Values {
			w.expr(v)
		}
	}
}

func (w *walker) operand(op semast.GateOperand) {
	if op.Expr != nil {
		w.expr(op.Expr)
	}
}

func (w *walker) index(idx semast.Index) {
	if idx.Expr != nil {
		w.expr(idx.Expr)
		return
	}

	if idx.Range != nil {
		w.expr(idx.Range.Start)
		w.expr(idx.Range.Step)
		w.expr(idx.Range.End)
	}
}

func (w *walker) iterable(set semast.EnumerableSet) {
	switch {
	case set.Range != nil:
		w.expr(set.Range.Start)
		w.expr(set.Range.Step)
		w.expr(set.Range.End)
	case set.Set != nil:
		for _, v := range set.Set.Values {
			w.expr(v)
		}
	case set.Expr != nil:
		w.expr(set.Expr)
	}
}
