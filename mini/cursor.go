package mini

// Span is a half-open range [Start, End) of indices into a token arena.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// cursor reads a span of an immutable token arena. Saving and restoring the
// position is plain index arithmetic; the arena is never copied.
type cursor struct {
	tokens []Token
	pos    int
	end    int
}

func newCursor(tokens []Token, span Span) *cursor {
	return &cursor{tokens: tokens, pos: span.Start, end: span.End}
}

func (c *cursor) done() bool {
	return c.pos >= c.end
}

func (c *cursor) peek() (Token, bool) {
	if c.done() {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *cursor) peekType() TokenType {
	tok, ok := c.peek()
	if !ok {
		return ""
	}
	return tok.Type
}

func (c *cursor) next() (Token, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
	}
	return tok, ok
}
