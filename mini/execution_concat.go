package mini

import "strings"

// evalConcat joins string literals, string variables and `input_` lines
// separated by `+`. It stops at the first token of any other kind.
func (exec *Execution) evalConcat(c *cursor) (string, error) {
	var b strings.Builder
	for {
		tok, ok := c.peek()
		if !ok {
			return b.String(), nil
		}
		switch {
		case tok.Type == TokenString:
			b.WriteString(tok.Literal)
		case tok.Type == TokenPlus:
		case tok.Is(KeywordInput):
			line, err := exec.readLine()
			if err != nil {
				return "", err
			}
			b.WriteString(line)
		case tok.Type == TokenIdent:
			val, err := exec.env.Resolve(tok.Literal)
			if err != nil {
				return "", err
			}
			if val.Kind() != KindString {
				return "", newError(KindTypeMismatch, "%s is %s, not string", tok.Literal, val.Kind())
			}
			b.WriteString(val.String())
		default:
			return b.String(), nil
		}
		c.next()
	}
}
