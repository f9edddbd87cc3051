package mini

import (
	"fmt"
	"strconv"
)

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	TokenIdent   TokenType = "IDENT"
	TokenKeyword TokenType = "KEYWORD"
	TokenString  TokenType = "STRING"
	TokenInt     TokenType = "INT"
	TokenTrue    TokenType = "TRUE"
	TokenFalse   TokenType = "FALSE"
	TokenOr      TokenType = "||"
	TokenAnd     TokenType = "&&"

	TokenPlus     TokenType = "+"
	TokenMinus    TokenType = "-"
	TokenAsterisk TokenType = "*"
	TokenSlash    TokenType = "/"
	TokenAssign   TokenType = "="
	TokenSemi     TokenType = ";"
	TokenLParen   TokenType = "("
	TokenRParen   TokenType = ")"
	TokenLBrace   TokenType = "{"
	TokenRBrace   TokenType = "}"
	TokenLBracket TokenType = "["
	TokenRBracket TokenType = "]"
	TokenLT       TokenType = "<"
	TokenLTE      TokenType = "<="
	TokenGT       TokenType = ">"
	TokenGTE      TokenType = ">="
	TokenEQ       TokenType = "=="
)

const (
	KeywordIf      = "if"
	KeywordElse    = "else"
	KeywordWhile   = "while"
	KeywordPrint   = "print"
	KeywordPrintln = "println"
	KeywordInt     = "int"
	KeywordString  = "string"
	KeywordBool    = "bool"
	KeywordInput   = "input_"
)

var keywords = map[string]struct{}{
	KeywordIf:      {},
	KeywordElse:    {},
	KeywordWhile:   {},
	KeywordPrint:   {},
	KeywordPrintln: {},
	KeywordInt:     {},
	KeywordString:  {},
	KeywordBool:    {},
	KeywordInput:   {},
}

// Keywords lists the reserved words in declaration order.
func Keywords() []string {
	return []string{
		KeywordIf, KeywordElse, KeywordWhile, KeywordPrint, KeywordPrintln,
		KeywordInt, KeywordString, KeywordBool, KeywordInput,
	}
}

// Token is an immutable lexical unit. Literal holds the identifier name,
// keyword word or string text; Int holds the value of an integer literal.
type Token struct {
	Type    TokenType
	Literal string
	Int     int32
}

// Is reports whether the token is the given keyword.
func (t Token) Is(keyword string) bool {
	return t.Type == TokenKeyword && t.Literal == keyword
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent, TokenKeyword:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	case TokenString:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	case TokenInt:
		return string(t.Type) + "(" + strconv.FormatInt(int64(t.Int), 10) + ")"
	default:
		return string(t.Type)
	}
}

// Source renders the token the way it would be written in a program.
func (t Token) Source() string {
	switch t.Type {
	case TokenIdent, TokenKeyword:
		return t.Literal
	case TokenString:
		return `"` + t.Literal + `"`
	case TokenInt:
		return strconv.FormatInt(int64(t.Int), 10)
	case TokenTrue:
		return "true"
	case TokenFalse:
		return "false"
	default:
		return string(t.Type)
	}
}

func isComparison(tt TokenType) bool {
	switch tt {
	case TokenLT, TokenLTE, TokenGT, TokenGTE, TokenEQ:
		return true
	default:
		return false
	}
}
