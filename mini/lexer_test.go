package mini

import (
	"slices"
	"testing"
)

func ident(name string) Token  { return Token{Type: TokenIdent, Literal: name} }
func keyword(word string) Token { return Token{Type: TokenKeyword, Literal: word} }
func str(text string) Token     { return Token{Type: TokenString, Literal: text} }
func num(v int32) Token         { return Token{Type: TokenInt, Int: v} }
func sym(tt TokenType) Token    { return Token{Type: tt} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []Token
	}{
		{
			name:   "declaration",
			source: "int x = 5 + 2;",
			want:   []Token{keyword("int"), ident("x"), sym(TokenAssign), num(5), sym(TokenPlus), num(2), sym(TokenSemi)},
		},
		{
			name:   "comparison operators",
			source: "a == b <= c >= d < e > f = g",
			want: []Token{
				ident("a"), sym(TokenEQ), ident("b"), sym(TokenLTE), ident("c"), sym(TokenGTE),
				ident("d"), sym(TokenLT), ident("e"), sym(TokenGT), ident("f"), sym(TokenAssign), ident("g"),
			},
		},
		{
			name:   "logical operators drop lone ampersand and pipe",
			source: "&& || & | x",
			want:   []Token{sym(TokenAnd), sym(TokenOr), ident("x")},
		},
		{
			name:   "booleans and keywords",
			source: "true false truex if else while print println string bool input_",
			want: []Token{
				sym(TokenTrue), sym(TokenFalse), ident("truex"), keyword("if"), keyword("else"),
				keyword("while"), keyword("print"), keyword("println"), keyword("string"),
				keyword("bool"), keyword("input_"),
			},
		},
		{
			name:   "identifiers with underscores and digits",
			source: "_x1 x_2 Ünïcode",
			want:   []Token{ident("_x1"), ident("x_2"), ident("Ünïcode")},
		},
		{
			name:   "unknown characters are skipped",
			source: "@#$ 12ab % ~",
			want:   []Token{num(12), ident("ab")},
		},
		{
			name:   "punctuation",
			source: "(){}[]-*/",
			want: []Token{
				sym(TokenLParen), sym(TokenRParen), sym(TokenLBrace), sym(TokenRBrace),
				sym(TokenLBracket), sym(TokenRBracket), sym(TokenMinus), sym(TokenAsterisk), sym(TokenSlash),
			},
		},
		{
			name:   "string without escapes",
			source: `"a \n b" "x"`,
			want:   []Token{str(`a \n b`), str("x")},
		},
		{
			name:   "unterminated string runs to end",
			source: `println("abc`,
			want:   []Token{keyword("println"), sym(TokenLParen), str("abc")},
		},
		{
			name:   "integer literal wraps at 32 bits",
			source: "2147483648 4294967296",
			want:   []Token{num(-2147483648), num(0)},
		},
		{
			name:   "trailing equals",
			source: "x =",
			want:   []Token{ident("x"), sym(TokenAssign)},
		},
		{
			name:   "empty",
			source: " \n\t ",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.source)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Tokenize(%q)\n got %v\nwant %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestTokenizeIsDeterministic(t *testing.T) {
	source := `int i = 0; while (i < 3) { println("n=" + i); i = i + 1; }`
	first := Tokenize(source)
	second := Tokenize(source)
	if !slices.Equal(first, second) {
		t.Fatalf("tokenizing twice differs:\n%v\n%v", first, second)
	}
}

func TestTokenStringAndSource(t *testing.T) {
	cases := []struct {
		tok    Token
		str    string
		source string
	}{
		{ident("x"), "IDENT(x)", "x"},
		{keyword("while"), "KEYWORD(while)", "while"},
		{str("hi"), `STRING("hi")`, `"hi"`},
		{num(-3), "INT(-3)", "-3"},
		{sym(TokenTrue), "TRUE", "true"},
		{sym(TokenLTE), "<=", "<="},
	}
	for _, c := range cases {
		if got := c.tok.String(); got != c.str {
			t.Fatalf("String() = %q, want %q", got, c.str)
		}
		if got := c.tok.Source(); got != c.source {
			t.Fatalf("Source() = %q, want %q", got, c.source)
		}
	}
}
