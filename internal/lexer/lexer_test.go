package lexer

import (
	"testing"

	"github.com/loxscript/golox/internal/loxerrors"
	"github.com/loxscript/golox/pkg/token"
)

func TestScanTokens(t *testing.T) {
	input := `var x = 5;
	print x + 10;
	`

	tests := []struct {
		expectedLiteral string
		expectedType    token.Type
	}{
		{"var", token.VAR},
		{"x", token.IDENTIFIER},
		{"=", token.EQUAL},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"print", token.PRINT},
		{"x", token.IDENTIFIER},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	reporter := loxerrors.NewConsoleReporter(false)
	tokens := New(input, reporter).ScanTokens()

	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLiteral {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `and class else false for fun if nil or print return super this true var while`

	expected := []token.Type{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}

	reporter := loxerrors.NewConsoleReporter(false)
	tokens := New(input, reporter).ScanTokens()

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, typ, tokens[i].Type)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	reporter := loxerrors.NewConsoleReporter(false)
	tokens := New("123 45.67 89.", reporter).ScanTokens()

	// "89." stops at the dot: a trailing dot with no fractional digit is
	// not consumed as part of the number (spec.md §4.1).
	wantTypes := []token.Type{token.NUMBER, token.NUMBER, token.NUMBER, token.DOT, token.EOF}
	if len(tokens) != len(wantTypes) {
		t.Fatalf("expected %d tokens, got %d: %v", len(wantTypes), len(tokens), tokens)
	}
	for i, typ := range wantTypes {
		if tokens[i].Type != typ {
			t.Fatalf("tests[%d]: expected=%s got=%s", i, typ, tokens[i].Type)
		}
	}

	if tokens[0].Literal.(float64) != 123 {
		t.Errorf("expected 123, got %v", tokens[0].Literal)
	}
	if tokens[1].Literal.(float64) != 45.67 {
		t.Errorf("expected 45.67, got %v", tokens[1].Literal)
	}
}

func TestStringLiteral(t *testing.T) {
	reporter := loxerrors.NewConsoleReporter(false)
	tokens := New(`"hello world"`, reporter).ScanTokens()

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Type != token.STRING || tokens[0].Literal != "hello world" {
		t.Fatalf("expected STRING hello world, got %v", tokens[0])
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	reporter := loxerrors.NewConsoleReporter(false)
	New(`"unterminated`, reporter).ScanTokens()

	if !reporter.HadError {
		t.Fatal("expected unterminated string to set HadError")
	}
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	reporter := loxerrors.NewConsoleReporter(false)
	tokens := New("1 @ 2", reporter).ScanTokens()

	if !reporter.HadError {
		t.Fatal("expected '@' to set HadError")
	}
	// Scanning continues past the bad character and still finds both
	// numbers and the EOF sentinel.
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens (2 numbers + EOF), got %d: %v", len(tokens), tokens)
	}
}

func TestScanningIsIdempotent(t *testing.T) {
	src := `fun add(a, b) { return a + b; } print add(1, 2);`

	r1 := loxerrors.NewConsoleReporter(false)
	t1 := New(src, r1).ScanTokens()

	r2 := loxerrors.NewConsoleReporter(false)
	t2 := New(src, r2).ScanTokens()

	if len(t1) != len(t2) {
		t.Fatalf("re-scanning produced a different token count: %d vs %d", len(t1), len(t2))
	}
	for i := range t1 {
		if t1[i].Type != t2[i].Type || t1[i].Lexeme != t2[i].Lexeme {
			t.Fatalf("token %d differs: %v vs %v", i, t1[i], t2[i])
		}
	}
}
