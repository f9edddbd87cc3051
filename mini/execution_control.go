package mini

func (exec *Execution) evalCondition(span Span) (bool, error) {
	return exec.evalBoolean(exec.cursor(span))
}

func (exec *Execution) evalIfStatement(stmt *IfStmt) error {
	condition, err := exec.evalCondition(stmt.Condition)
	if err != nil {
		return err
	}
	if condition {
		return exec.evalStatements(stmt.Consequent)
	}
	return exec.evalStatements(stmt.Alternate)
}

// evalWhileStatement re-evaluates the condition span from its start on every
// iteration; spans are immutable, so no iteration sees state left behind by
// the previous one.
func (exec *Execution) evalWhileStatement(stmt *WhileStmt) error {
	for {
		if err := exec.step(); err != nil {
			return err
		}
		condition, err := exec.evalCondition(stmt.Condition)
		if err != nil {
			return err
		}
		if !condition {
			return nil
		}
		if err := exec.evalStatements(stmt.Body); err != nil {
			return err
		}
	}
}
