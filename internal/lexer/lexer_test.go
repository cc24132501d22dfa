package lexer

import (
	"testing"

	"github.com/cwbudde/golox/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
x += 10;
fun add(a, b) { return a + b; }
`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.Var, "var"},
		{token.Identifier, "x"},
		{token.Equal, "="},
		{token.Number, "5"},
		{token.Semicolon, ";"},
		{token.Identifier, "x"},
		{token.PlusEqual, "+="},
		{token.Number, "10"},
		{token.Semicolon, ";"},
		{token.Fun, "fun"},
		{token.Identifier, "add"},
		{token.LeftParen, "("},
		{token.Identifier, "a"},
		{token.Comma, ","},
		{token.Identifier, "b"},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.Return, "return"},
		{token.Identifier, "a"},
		{token.Plus, "+"},
		{token.Identifier, "b"},
		{token.Semicolon, ";"},
		{token.RightBrace, "}"},
		{token.Eof, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "and class else false fun for if nil or print return super this true var while"
	tests := []token.Type{
		token.And, token.Class, token.Else, token.False, token.Fun, token.For,
		token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
		token.This, token.True, token.Var, token.While,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"123", 123},
		{"3.14", 3.14},
		{"0", 0},
		{"42.", 42},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.Number {
			t.Fatalf("input %q: expected Number, got %s", tt.input, tok.Type)
		}
		lit, ok := tok.Literal.(float64)
		if !ok {
			t.Fatalf("input %q: literal is not float64: %v", tt.input, tok.Literal)
		}
		if tt.input != "42." && lit != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, lit)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	input := `"hello" "multi
line" "`
	l := New(input)

	tok := l.NextToken()
	if tok.Type != token.String || tok.Literal != "hello" {
		t.Fatalf("unexpected token: %+v", tok)
	}

	tok = l.NextToken()
	if tok.Type != token.String || tok.Literal != "multi\nline" {
		t.Fatalf("unexpected multi-line string token: %+v", tok)
	}

	tok = l.NextToken()
	if tok.Type != token.String {
		t.Fatalf("expected unterminated string to still produce a String token, got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatalf("expected an unterminated string error")
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one scan error, got %d", len(l.Errors()))
	}
}

func TestScanAll(t *testing.T) {
	tokens, errs := ScanAll("1 + 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if len(tokens) != 4 { // 1, +, 2, EOF
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}
	if tokens[len(tokens)-1].Type != token.Eof {
		t.Fatalf("expected last token to be EOF, got %s", tokens[len(tokens)-1].Type)
	}
}
