package mini

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readRune()
	return l
}

// Tokenize converts source text into its token sequence. It never fails:
// characters that start no token are skipped and an unterminated string
// literal runs to the end of the input.
func Tokenize(source string) []Token {
	l := newLexer(source)
	var tokens []Token
	for {
		tok, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.ch = r
}

func (l *lexer) atEOF() bool {
	return l.width == 0
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) next() (Token, bool) {
	for !l.atEOF() {
		if tok, ok := l.scan(); ok {
			return tok, true
		}
	}
	return Token{}, false
}

// scan consumes at least one rune and reports whether it produced a token.
func (l *lexer) scan() (Token, bool) {
	switch l.ch {
	case '+':
		return l.single(TokenPlus), true
	case '-':
		return l.single(TokenMinus), true
	case '*':
		return l.single(TokenAsterisk), true
	case '/':
		return l.single(TokenSlash), true
	case ';':
		return l.single(TokenSemi), true
	case '(':
		return l.single(TokenLParen), true
	case ')':
		return l.single(TokenRParen), true
	case '{':
		return l.single(TokenLBrace), true
	case '}':
		return l.single(TokenRBrace), true
	case '[':
		return l.single(TokenLBracket), true
	case ']':
		return l.single(TokenRBracket), true
	case '=':
		return l.withEquals(TokenAssign, TokenEQ), true
	case '<':
		return l.withEquals(TokenLT, TokenLTE), true
	case '>':
		return l.withEquals(TokenGT, TokenGTE), true
	case '&':
		return l.doubled('&', TokenAnd)
	case '|':
		return l.doubled('|', TokenOr)
	case '"':
		return Token{Type: TokenString, Literal: l.readString()}, true
	}

	switch {
	case isIdentifierStart(l.ch):
		return wordToken(l.readIdentifier()), true
	case isDigit(l.ch):
		return Token{Type: TokenInt, Int: l.readNumber()}, true
	default:
		l.readRune()
		return Token{}, false
	}
}

func (l *lexer) single(tt TokenType) Token {
	l.readRune()
	return Token{Type: tt}
}

func (l *lexer) withEquals(plain, compound TokenType) Token {
	l.readRune()
	if l.ch == '=' {
		l.readRune()
		return Token{Type: compound}
	}
	return Token{Type: plain}
}

// doubled handles && and ||; a lone & or | is dropped.
func (l *lexer) doubled(r rune, tt TokenType) (Token, bool) {
	if l.peekRune() != r {
		l.readRune()
		return Token{}, false
	}
	l.readRune()
	l.readRune()
	return Token{Type: tt}, true
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for !l.atEOF() && isIdentifierRune(l.ch) {
		l.readRune()
	}
	return l.input[start:l.currentOffset()]
}

// readNumber accumulates decimal digits into a 32-bit value. Overflow wraps.
func (l *lexer) readNumber() int32 {
	var value int32
	for !l.atEOF() && isDigit(l.ch) {
		value = value*10 + int32(l.ch-'0')
		l.readRune()
	}
	return value
}

func (l *lexer) readString() string {
	var sb strings.Builder
	l.readRune()
	for !l.atEOF() {
		if l.ch == '"' {
			l.readRune()
			return sb.String()
		}
		sb.WriteRune(l.ch)
		l.readRune()
	}
	return sb.String()
}

func wordToken(word string) Token {
	switch word {
	case "true":
		return Token{Type: TokenTrue}
	case "false":
		return Token{Type: TokenFalse}
	}
	if _, ok := keywords[word]; ok {
		return Token{Type: TokenKeyword, Literal: word}
	}
	return Token{Type: TokenIdent, Literal: word}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
