package mini

type parser struct {
	tokens []Token
	pos    int
	end    int

	problems []error
}

// Parse builds the statement tree for a token sequence. Block boundaries are
// resolved once here; problems that the language only reports when the
// offending statement runs are recorded as FailStmt nodes and in the
// returned slice.
func Parse(tokens []Token) (*Program, []error) {
	p := &parser{tokens: tokens, end: len(tokens)}
	stmts := p.parseStatements()
	return &Program{Tokens: tokens, Statements: stmts}, p.problems
}

func (p *parser) done() bool {
	return p.pos >= p.end
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *parser) curIs(tt TokenType) bool {
	return !p.done() && p.cur().Type == tt
}

func (p *parser) curKeyword(word string) bool {
	return !p.done() && p.cur().Is(word)
}

func (p *parser) parseStatements() []Statement {
	stmts := []Statement{}
	for !p.done() {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// parseStatement always consumes at least one token.
func (p *parser) parseStatement() Statement {
	tok := p.cur()
	switch tok.Type {
	case TokenKeyword:
		switch tok.Literal {
		case KeywordInt:
			return p.parseDeclaration(NamespaceInt)
		case KeywordString:
			return p.parseDeclaration(NamespaceString)
		case KeywordBool:
			return p.parseDeclaration(NamespaceBool)
		case KeywordPrint, KeywordPrintln:
			return p.parsePrint(tok.Literal == KeywordPrintln)
		case KeywordIf:
			return p.parseIf()
		case KeywordWhile:
			return p.parseWhile()
		case KeywordElse:
			// An else with no preceding if: its block is skipped.
			p.pos++
			if p.curIs(TokenLBrace) {
				p.pos++
				p.parseBlock()
			}
			return nil
		}
	case TokenIdent:
		return p.parseAssignment()
	}
	p.pos++
	return nil
}

func (p *parser) parseDeclaration(ns Namespace) Statement {
	p.pos++
	if !p.curIs(TokenIdent) {
		got := "end of input"
		if !p.done() {
			got = tokenLabel(p.cur())
		}
		return p.fail(newError(KindExpectedIdentifier, "expected identifier after '%s', got %s", ns, got))
	}
	name := p.cur().Literal
	p.pos++
	if !p.curIs(TokenAssign) {
		return p.fail(newError(KindExpectedToken, "expected '=' after %s %s", ns, name))
	}
	p.pos++
	value := p.valueSpan()
	return &DeclStmt{Namespace: ns, Name: name, Value: value}
}

func (p *parser) parseAssignment() Statement {
	name := p.cur().Literal
	p.pos++
	if !p.curIs(TokenAssign) {
		return p.fail(newError(KindExpectedToken, "expected '=' after %s", name))
	}
	p.pos++
	value := p.valueSpan()
	return &AssignStmt{Name: name, Value: value}
}

// valueSpan covers the right-hand side of a declaration or assignment and
// consumes the terminating semicolon when present.
func (p *parser) valueSpan() Span {
	start := p.pos
	for !p.done() {
		switch p.cur().Type {
		case TokenSemi:
			span := Span{Start: start, End: p.pos}
			p.pos++
			return span
		case TokenLBrace, TokenRBrace:
			return Span{Start: start, End: p.pos}
		}
		p.pos++
	}
	return Span{Start: start, End: p.pos}
}

func (p *parser) parsePrint(newline bool) Statement {
	p.pos++
	if p.curIs(TokenLParen) {
		p.pos++
	}
	start := p.pos
	for !p.done() && !p.curIs(TokenRParen) {
		p.pos++
	}
	args := Span{Start: start, End: p.pos}
	if p.curIs(TokenRParen) {
		p.pos++
	}
	if p.curIs(TokenSemi) {
		p.pos++
	}
	return &PrintStmt{Args: args, Newline: newline}
}

func (p *parser) parseIf() Statement {
	p.pos++
	stmt := &IfStmt{Condition: p.conditionSpan()}
	if !p.curIs(TokenLBrace) {
		return stmt
	}
	p.pos++
	stmt.Consequent = p.parseBlock()

	if !p.curKeyword(KeywordElse) {
		return stmt
	}
	p.pos++
	switch {
	case p.curKeyword(KeywordIf):
		stmt.Alternate = []Statement{p.parseIf()}
	case p.curIs(TokenLBrace):
		p.pos++
		stmt.Alternate = p.parseBlock()
	}
	return stmt
}

func (p *parser) parseWhile() Statement {
	p.pos++
	stmt := &WhileStmt{Condition: p.conditionSpan()}
	if p.curIs(TokenLBrace) {
		p.pos++
		stmt.Body = p.parseBlock()
	}
	return stmt
}

// conditionSpan runs up to, but not including, the opening brace of the
// block that follows a condition.
func (p *parser) conditionSpan() Span {
	start := p.pos
	for !p.done() && !p.curIs(TokenLBrace) {
		p.pos++
	}
	return Span{Start: start, End: p.pos}
}

// parseBlock is entered just after an opening brace. It parses the block's
// statements and leaves the parser after the matching closing brace.
func (p *parser) parseBlock() []Statement {
	length, closed := scanBlock(p.tokens, p.pos, p.end)
	bodyEnd := p.pos + length
	if closed {
		bodyEnd--
	}

	outer := p.end
	p.end = bodyEnd
	stmts := p.parseStatements()
	p.end = outer
	p.pos = bodyEnd
	if closed {
		p.pos++
	}
	return stmts
}

func (p *parser) fail(err *RuntimeError) Statement {
	p.problems = append(p.problems, err)
	return &FailStmt{Err: err}
}

// scanBlock counts the tokens from start through the brace that closes a
// block whose opening brace has already been consumed. closed is false when
// the input ends first, in which case every remaining token is counted.
func scanBlock(tokens []Token, start, end int) (length int, closed bool) {
	depth := 0
	for i := start; i < end; i++ {
		switch tokens[i].Type {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			if depth == 0 {
				return i - start + 1, true
			}
			depth--
		}
	}
	return end - start, false
}
