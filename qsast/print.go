package qsast

import (
	"fmt"
	"strconv"
	"strings"
)

// writer renders the tree with four-space indentation.
type writer struct {
	b     *strings.Builder
	depth int
}

func (w *writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString("    ")
	}
}

func (w *writer) line(format string, args ...interface{}) {
	w.indent()
	fmt.Fprintf(w.b, format, args...)
	w.b.WriteByte('\n')
}

// -----------------------------------------------------------------------------

func (w *writer) writeItem(item Item) {
	switch it := item.(type) {
	case *OperationDecl:
		chars := functorChars(it.Adj, it.Ctl)
		w.line("operation %s(%s) : %s%s {", it.Name, paramList(it.Params), orUnit(it.ReturnTy), chars)
		w.writeBlockBody(it.Body)
		w.line("}")

	case *FunctionDecl:
		w.line("function %s(%s) : %s {", it.Name, paramList(it.Params), orUnit(it.ReturnTy))
		w.writeBlockBody(it.Body)
		w.line("}")
	}
}

func functorChars(adj, ctl bool) string {
	switch {
	case adj && ctl:
		return " is Adj + Ctl"
	case adj:
		return " is Adj"
	case ctl:
		return " is Ctl"
	}
	return ""
}

func orUnit(ty string) string {
	if ty == "" {
		return "Unit"
	}
	return ty
}

func paramList(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + " : " + p.Ty
	}
	return strings.Join(parts, ", ")
}

// -----------------------------------------------------------------------------

func (w *writer) writeBlockBody(block *Block) {
	w.depth++
	for _, stmt := range block.Stmts {
		w.writeStmt(stmt)
	}
	w.depth--
}

func (w *writer) writeStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *LocalStmt:
		w.line("let %s = %s;", s.Name, ExprString(s.Value))

	case *MutableStmt:
		w.line("mutable %s = %s;", s.Name, ExprString(s.Value))

	case *SetStmt:
		w.line("set %s = %s;", s.Name, ExprString(s.Value))

	case *SetIndexStmt:
		w.line("set %s w/= %s <- %s;", s.Name, ExprString(s.Index), ExprString(s.Value))

	case *QubitUseStmt:
		if s.Size == 0 {
			w.line("use %s = Qubit();", s.Name)
		} else {
			w.line("use %s = Qubit[%d];", s.Name, s.Size)
		}

	case *ExprStmt:
		w.line("%s;", ExprString(s.Expr))

	case *IfStmt:
		w.writeIf(s, false)

	case *ForStmt:
		w.line("for %s in %s {", s.Var, ExprString(s.Iterable))
		w.writeBlockBody(s.Body)
		w.line("}")

	case *WhileStmt:
		w.line("while %s {", ExprString(s.Cond))
		w.writeBlockBody(s.Body)
		w.line("}")

	case *RepeatStmt:
		w.line("repeat {")
		w.writeBlockBody(s.Body)
		w.line("} until %s;", ExprString(s.Until))

	case *ReturnStmt:
		if s.Value == nil {
			w.line("return ();")
		} else {
			w.line("return %s;", ExprString(s.Value))
		}

	case *FailStmt:
		w.line("fail %s;", strconv.Quote(s.Message))
	}
}

func (w *writer) writeIf(s *IfStmt, chained bool) {
	if chained {
		w.line("} elif %s {", ExprString(s.Cond))
	} else {
		w.line("if %s {", ExprString(s.Cond))
	}
	w.writeBlockBody(s.Then)

	if s.Else == nil {
		if !chained {
			w.line("}")
		}
		return
	}

	// A lone if in the else branch chains as elif.
	if len(s.Else.Stmts) == 1 {
		if inner, ok := s.Else.Stmts[0].(*IfStmt); ok {
			w.writeIf(inner, true)
			if !chained {
				w.line("}")
			}
			return
		}
	}

	w.line("} else {")
	w.writeBlockBody(s.Else)
	if !chained {
		w.line("}")
	}
}

// -----------------------------------------------------------------------------

// ExprString renders one expression as target-language source.
func ExprString(expr Expr) string {
	switch e := expr.(type) {
	case *Ident:
		return e.Name

	case *IntLit:
		return strconv.FormatInt(e.Value, 10)

	case *DoubleLit:
		s := strconv.FormatFloat(e.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += "."
		}
		return s

	case *BoolLit:
		if e.Value {
			return "true"
		}
		return "false"

	case *ResultLit:
		if e.One {
			return "One"
		}
		return "Zero"

	case *StringLit:
		return strconv.Quote(e.Value)

	case *ArrayLit:
		return "[" + exprList(e.Elems) + "]"

	case *RangeLit:
		if e.Step != nil {
			return fmt.Sprintf("%s..%s..%s", ExprString(e.Start), ExprString(e.Step), ExprString(e.End))
		}
		return fmt.Sprintf("%s..%s", ExprString(e.Start), ExprString(e.End))

	case *Call:
		return fmt.Sprintf("%s(%s)", ExprString(e.Callee), exprList(e.Args))

	case *Adjoint:
		return "Adjoint " + ExprString(e.Callee)

	case *Controlled:
		return "Controlled " + ExprString(e.Callee)

	case *IndexExpr:
		return fmt.Sprintf("%s[%s]", ExprString(e.Collection), ExprString(e.Index))

	case *BinExpr:
		return fmt.Sprintf("(%s %s %s)", ExprString(e.Lhs), e.Op, ExprString(e.Rhs))

	case *UnaryExpr:
		return fmt.Sprintf("%s%s", e.Op, ExprString(e.Operand))

	case *Tuple:
		return "(" + exprList(e.Elems) + ")"
	}

	return "<?>"
}

func exprList(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, ", ")
}
