package lower

import "qasmc/semast"

// blockAlwaysReturns reports whether every path through the statement list
// reaches a return or end statement.  The check is structural: loop bodies
// and single-branch ifs do not count since they may not execute.
func blockAlwaysReturns(stmts []*semast.Stmt) bool {
	for _, stmt := range stmts {
		if stmtAlwaysReturns(stmt) {
			return true
		}
	}

	return false
}

func stmtAlwaysReturns(stmt *semast.Stmt) bool {
	switch kind := stmt.Kind.(type) {
	case *semast.ReturnStmt, *semast.EndStmt:
		return true

	case *semast.BlockStmt:
		return blockAlwaysReturns(kind.Stmts)

	case *semast.IfStmt:
		return kind.Else != nil && stmtAlwaysReturns(kind.Then) && stmtAlwaysReturns(kind.Else)

	case *semast.SwitchStmt:
		if kind.Default == nil {
			return false
		}
		for _, c := range kind.Cases {
			if !blockAlwaysReturns(c.Body.Stmts) {
				return false
			}
		}
		return blockAlwaysReturns(kind.Default.Stmts)
	}

	return false
}
