package mini

// evalExpression parses and evaluates `term (('+'|'-') term)*` from c,
// leaving c after the last consumed token. Arithmetic is 32-bit and wraps on
// overflow.
func (exec *Execution) evalExpression(c *cursor) (int32, error) {
	result, err := exec.evalTerm(c)
	if err != nil {
		return 0, err
	}
	for {
		op := c.peekType()
		if op != TokenPlus && op != TokenMinus {
			return result, nil
		}
		c.next()
		right, err := exec.evalTerm(c)
		if err != nil {
			return 0, err
		}
		if op == TokenPlus {
			result += right
		} else {
			result -= right
		}
	}
}

func (exec *Execution) evalTerm(c *cursor) (int32, error) {
	result, err := exec.evalFactor(c)
	if err != nil {
		return 0, err
	}
	for {
		op := c.peekType()
		if op != TokenAsterisk && op != TokenSlash {
			return result, nil
		}
		c.next()
		right, err := exec.evalFactor(c)
		if err != nil {
			return 0, err
		}
		if op == TokenAsterisk {
			result *= right
			continue
		}
		if right == 0 {
			return 0, newError(KindDivisionByZero, "division by zero")
		}
		result /= right
	}
}

// evalFactor reads one literal, variable, `input_` or parenthesized
// expression. A variable whose first binding in resolution order is not an
// integer counts as zero.
func (exec *Execution) evalFactor(c *cursor) (int32, error) {
	tok, ok := c.next()
	if !ok {
		return 0, unexpectedEnd("number or parenthesized expression")
	}
	switch tok.Type {
	case TokenInt:
		return tok.Int, nil
	case TokenIdent:
		val, err := exec.env.Resolve(tok.Literal)
		if err != nil {
			return 0, err
		}
		if val.Kind() != KindInt {
			return 0, nil
		}
		return val.Int(), nil
	case TokenKeyword:
		if tok.Literal == KeywordInput {
			return exec.readInt()
		}
	case TokenLParen:
		result, err := exec.evalExpression(c)
		if err != nil {
			return 0, err
		}
		if c.peekType() != TokenRParen {
			return 0, newError(KindExpectedToken, "expected closing parenthesis")
		}
		c.next()
		return result, nil
	}
	return 0, unexpectedToken(tok, "number or parenthesized expression")
}
