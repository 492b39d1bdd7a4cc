package qsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageString(t *testing.T) {
	pkg := &Package{
		Namespace: "qasm_import",
		Items: []Item{
			&OperationDecl{
				Name:     "program",
				ReturnTy: "Result",
				Body: &Block{Stmts: []Stmt{
					&QubitUseStmt{Name: "q"},
					&MutableStmt{Name: "b", Value: &ResultLit{}},
					&ExprStmt{Expr: NewCall("H", Name("q"))},
					&SetStmt{Name: "b", Value: NewCall("M", Name("q"))},
					&ReturnStmt{Value: Name("b")},
				}},
			},
		},
	}

	want := `namespace qasm_import {
    operation program() : Result {
        use q = Qubit();
        mutable b = Zero;
        H(q);
        set b = M(q);
        return b;
    }
}
`
	assert.Equal(t, want, pkg.String())
}

func TestIfChainRendersElif(t *testing.T) {
	inner := &IfStmt{
		Cond: Name("b"),
		Then: &Block{Stmts: []Stmt{&ExprStmt{Expr: NewCall("Y", Name("q"))}}},
		Else: &Block{Stmts: []Stmt{&ExprStmt{Expr: NewCall("Z", Name("q"))}}},
	}
	root := &IfStmt{
		Cond: Name("a"),
		Then: &Block{Stmts: []Stmt{&ExprStmt{Expr: NewCall("X", Name("q"))}}},
		Else: &Block{Stmts: []Stmt{inner}},
	}

	pkg := &Package{Items: []Item{
		&OperationDecl{Name: "f", Body: &Block{Stmts: []Stmt{root}}},
	}}

	want := `operation f() : Unit {
    if a {
        X(q);
    } elif b {
        Y(q);
    } else {
        Z(q);
    }
}
`
	assert.Equal(t, want, pkg.String())
}

func TestExprStringSpellings(t *testing.T) {
	assert.Equal(t, "3.", ExprString(Double(3)))
	assert.Equal(t, "0.25", ExprString(Double(0.25)))
	assert.Equal(t, "(a &&& 3)", ExprString(&BinExpr{Op: "&&&", Lhs: Name("a"), Rhs: Int(3)}))
	assert.Equal(t, "not b", ExprString(&UnaryExpr{Op: "not ", Operand: Name("b")}))
	assert.Equal(t, "qs[0..2]", ExprString(&IndexExpr{
		Collection: Name("qs"),
		Index:      &RangeLit{Start: Int(0), End: Int(2)},
	}))
	assert.Equal(t, "7..-1..4", ExprString(&RangeLit{Start: Int(7), Step: Int(-1), End: Int(4)}))
	assert.Equal(t, "Adjoint Controlled op([c], (q))", ExprString(&Call{
		Callee: AdjointOf(ControlledOf(Name("op"))),
		Args: []Expr{
			&ArrayLit{Elems: []Expr{Name("c")}},
			&Tuple{Elems: []Expr{Name("q")}},
		},
	}))
}
