package mini

func (exec *Execution) evalBoolean(c *cursor) (bool, error) {
	return exec.evalOr(c)
}

// evalOr always consumes both operands of `||`, even when the left one
// already decides the result.
func (exec *Execution) evalOr(c *cursor) (bool, error) {
	result, err := exec.evalAnd(c)
	if err != nil {
		return false, err
	}
	for c.peekType() == TokenOr {
		c.next()
		right, err := exec.evalAnd(c)
		if err != nil {
			return false, err
		}
		result = result || right
	}
	return result, nil
}

func (exec *Execution) evalAnd(c *cursor) (bool, error) {
	result, err := exec.evalComparison(c)
	if err != nil {
		return false, err
	}
	for c.peekType() == TokenAnd {
		c.next()
		right, err := exec.evalComparison(c)
		if err != nil {
			return false, err
		}
		result = result && right
	}
	return result, nil
}

// evalComparison takes the arithmetic path when the next token is an integer
// literal or a name currently bound as an integer; otherwise it reads a
// boolean atom.
func (exec *Execution) evalComparison(c *cursor) (bool, error) {
	tok, ok := c.peek()
	if ok && (tok.Type == TokenInt || (tok.Type == TokenIdent && exec.env.Has(NamespaceInt, tok.Literal))) {
		return exec.evalIntComparison(c)
	}
	return exec.evalBoolAtom(c)
}

func (exec *Execution) evalIntComparison(c *cursor) (bool, error) {
	left, err := exec.evalExpression(c)
	if err != nil {
		return false, err
	}
	op, ok := c.next()
	if !ok {
		return false, unexpectedEnd("comparison operator")
	}
	if !isComparison(op.Type) {
		return false, unexpectedToken(op, "comparison operator")
	}
	right, err := exec.evalExpression(c)
	if err != nil {
		return false, err
	}
	switch op.Type {
	case TokenLT:
		return left < right, nil
	case TokenLTE:
		return left <= right, nil
	case TokenGT:
		return left > right, nil
	case TokenGTE:
		return left >= right, nil
	default:
		return left == right, nil
	}
}

func (exec *Execution) evalBoolAtom(c *cursor) (bool, error) {
	tok, ok := c.next()
	if !ok {
		return false, unexpectedEnd("boolean")
	}
	switch tok.Type {
	case TokenTrue:
		return true, nil
	case TokenFalse:
		return false, nil
	case TokenLParen:
		result, err := exec.evalBoolean(c)
		if err != nil {
			return false, err
		}
		if c.peekType() != TokenRParen {
			return false, newError(KindExpectedToken, "expected closing parenthesis")
		}
		c.next()
		return result, nil
	case TokenIdent:
		b, found := exec.env.LookupBool(tok.Literal)
		if !found {
			return false, newError(KindUnknownIdentifier, "%s is not a bool variable", tok.Literal)
		}
		return b, nil
	default:
		return false, unexpectedToken(tok, "boolean")
	}
}
