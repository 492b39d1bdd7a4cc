package codegen

import (
	"sort"

	"qasmc/qsast"
)

// The runtime helpers the generated code can call.  Each is materialized as a
// declaration only when some compiled statement actually referenced it.
const (
	stubPow               = "__Pow__"
	stubNegCtrl           = "__ControlledOnZero__"
	stubBarrier           = "__Barrier__"
	stubResultAsBool      = "__ResultAsBool__"
	stubBoolAsResult      = "__BoolAsResult__"
	stubResultAsBoolAsInt = "__ResultAsInt__"
	stubResultArrayAsInt  = "__ResultArrayAsIntBE__"
	stubIntAsResultArray  = "__IntAsResultArrayBE__"
	stubU                 = "__U__"
	stubGphase            = "__Gphase__"
)

// need marks a runtime stub as used, along with the stubs its body calls.
func (c *Compiler) need(stub string) string {
	c.stubs[stub] = true

	switch stub {
	case stubResultArrayAsInt:
		c.stubs[stubResultAsBoolAsInt] = true
	case stubIntAsResultArray:
		c.stubs[stubBoolAsResult] = true
	}

	return stub
}

// runtimeItems returns the declarations for every stub marked as used, in a
// stable order.
func (c *Compiler) runtimeItems() []qsast.Item {
	names := make([]string, 0, len(c.stubs))
	for name := range c.stubs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]qsast.Item, 0, len(names))
	for _, name := range names {
		items = append(items, runtimeDecl(name))
	}

	return items
}

func runtimeDecl(name string) qsast.Item {
	switch name {
	case stubPow:
		// Applies op to its argument tuple n times; adjoint and controlled
		// specializations distribute over the repetition.
		return &qsast.OperationDecl{
			Name: stubPow,
			Params: []qsast.Param{
				{Name: "n", Ty: "Int"},
				{Name: "op", Ty: "Qubit[] => Unit is Adj + Ctl"},
				{Name: "qs", Ty: "Qubit[]"},
			},
			Adj: true, Ctl: true,
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.ForStmt{
					Var:      "_",
					Iterable: &qsast.RangeLit{Start: qsast.Int(1), End: qsast.Name("n")},
					Body: &qsast.Block{Stmts: []qsast.Stmt{
						&qsast.ExprStmt{Expr: qsast.NewCall("op", qsast.Name("qs"))},
					}},
				},
			}},
		}

	case stubNegCtrl:
		// Control on the all-zeros state: conjugate the controls with X.
		return &qsast.OperationDecl{
			Name: stubNegCtrl,
			Params: []qsast.Param{
				{Name: "ctls", Ty: "Qubit[]"},
				{Name: "op", Ty: "Qubit[] => Unit is Adj + Ctl"},
				{Name: "qs", Ty: "Qubit[]"},
			},
			Adj: true, Ctl: true,
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.ExprStmt{Expr: qsast.NewCall("ApplyToEachA", qsast.Name("X"), qsast.Name("ctls"))},
				&qsast.ExprStmt{Expr: &qsast.Call{
					Callee: qsast.ControlledOf(qsast.Name("op")),
					Args:   []qsast.Expr{qsast.Name("ctls"), qsast.Name("qs")},
				}},
				&qsast.ExprStmt{Expr: qsast.NewCall("ApplyToEachA", qsast.Name("X"), qsast.Name("ctls"))},
			}},
		}

	case stubBarrier:
		// A scheduling fence with no gate-level meaning.
		return &qsast.OperationDecl{
			Name:   stubBarrier,
			Params: []qsast.Param{{Name: "qs", Ty: "Qubit[]"}},
			Body:   &qsast.Block{Stmts: nil},
		}

	case stubResultAsBool:
		return &qsast.FunctionDecl{
			Name:     stubResultAsBool,
			Params:   []qsast.Param{{Name: "r", Ty: "Result"}},
			ReturnTy: "Bool",
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.ReturnStmt{Value: &qsast.BinExpr{
					Op:  "==",
					Lhs: qsast.Name("r"),
					Rhs: &qsast.ResultLit{One: true},
				}},
			}},
		}

	case stubBoolAsResult:
		return &qsast.FunctionDecl{
			Name:     stubBoolAsResult,
			Params:   []qsast.Param{{Name: "b", Ty: "Bool"}},
			ReturnTy: "Result",
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.IfStmt{
					Cond: qsast.Name("b"),
					Then: &qsast.Block{Stmts: []qsast.Stmt{
						&qsast.ReturnStmt{Value: &qsast.ResultLit{One: true}},
					}},
				},
				&qsast.ReturnStmt{Value: &qsast.ResultLit{One: false}},
			}},
		}

	case stubResultArrayAsInt:
		// Big-endian: the leading element is the most significant bit.
		return &qsast.FunctionDecl{
			Name:     stubResultArrayAsInt,
			Params:   []qsast.Param{{Name: "rs", Ty: "Result[]"}},
			ReturnTy: "Int",
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.MutableStmt{Name: "acc", Value: qsast.Int(0)},
				&qsast.ForStmt{
					Var:      "r",
					Iterable: qsast.Name("rs"),
					Body: &qsast.Block{Stmts: []qsast.Stmt{
						&qsast.SetStmt{Name: "acc", Value: &qsast.BinExpr{
							Op:  "+",
							Lhs: &qsast.BinExpr{Op: "*", Lhs: qsast.Name("acc"), Rhs: qsast.Int(2)},
							Rhs: qsast.NewCall(stubResultAsBoolAsInt, qsast.Name("r")),
						}},
					}},
				},
				&qsast.ReturnStmt{Value: qsast.Name("acc")},
			}},
		}

	case stubResultAsBoolAsInt:
		return &qsast.FunctionDecl{
			Name:     stubResultAsBoolAsInt,
			Params:   []qsast.Param{{Name: "r", Ty: "Result"}},
			ReturnTy: "Int",
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.IfStmt{
					Cond: &qsast.BinExpr{Op: "==", Lhs: qsast.Name("r"), Rhs: &qsast.ResultLit{One: true}},
					Then: &qsast.Block{Stmts: []qsast.Stmt{&qsast.ReturnStmt{Value: qsast.Int(1)}}},
				},
				&qsast.ReturnStmt{Value: qsast.Int(0)},
			}},
		}

	case stubIntAsResultArray:
		return &qsast.FunctionDecl{
			Name: stubIntAsResultArray,
			Params: []qsast.Param{
				{Name: "v", Ty: "Int"},
				{Name: "width", Ty: "Int"},
			},
			ReturnTy: "Result[]",
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.MutableStmt{Name: "rs", Value: &qsast.ArrayLit{}},
				&qsast.ForStmt{
					Var: "i",
					Iterable: &qsast.RangeLit{
						Start: qsast.Int(0),
						End:   &qsast.BinExpr{Op: "-", Lhs: qsast.Name("width"), Rhs: qsast.Int(1)},
					},
					Body: &qsast.Block{Stmts: []qsast.Stmt{
						&qsast.SetStmt{Name: "rs", Value: &qsast.BinExpr{
							Op: "+",
							Lhs: &qsast.ArrayLit{Elems: []qsast.Expr{
								qsast.NewCall(stubBoolAsResult, &qsast.BinExpr{
									Op: "!=",
									Lhs: &qsast.BinExpr{
										Op:  "&&&",
										Lhs: &qsast.BinExpr{Op: ">>>", Lhs: qsast.Name("v"), Rhs: qsast.Name("i")},
										Rhs: qsast.Int(1),
									},
									Rhs: qsast.Int(0),
								}),
							}},
							Rhs: qsast.Name("rs"),
						}},
					}},
				},
				&qsast.ReturnStmt{Value: qsast.Name("rs")},
			}},
		}

	case stubU:
		// The builtin single-qubit unitary, decomposed into rotations.
		return &qsast.OperationDecl{
			Name: stubU,
			Params: []qsast.Param{
				{Name: "theta", Ty: "Double"},
				{Name: "phi", Ty: "Double"},
				{Name: "lambda", Ty: "Double"},
				{Name: "q", Ty: "Qubit"},
			},
			Adj: true, Ctl: true,
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.ExprStmt{Expr: qsast.NewCall("Rz", qsast.Name("lambda"), qsast.Name("q"))},
				&qsast.ExprStmt{Expr: qsast.NewCall("Ry", qsast.Name("theta"), qsast.Name("q"))},
				&qsast.ExprStmt{Expr: qsast.NewCall("Rz", qsast.Name("phi"), qsast.Name("q"))},
			}},
		}

	case stubGphase:
		// A global phase is unobservable until controlled; the controlled
		// specialization synthesized from this body applies the phase to the
		// control qubits.
		return &qsast.OperationDecl{
			Name:   stubGphase,
			Params: []qsast.Param{{Name: "theta", Ty: "Double"}},
			Adj:    true, Ctl: true,
			Body: &qsast.Block{Stmts: []qsast.Stmt{
				&qsast.ExprStmt{Expr: qsast.NewCall("Exp",
					&qsast.ArrayLit{},
					qsast.Name("theta"),
					&qsast.ArrayLit{})},
			}},
		}

	}

	return &qsast.FunctionDecl{Name: name, Body: &qsast.Block{}}
}
