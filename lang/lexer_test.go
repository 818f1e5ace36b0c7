package lang

import (
	"errors"
	"testing"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

func TestTokenize_Arithmetic(t *testing.T) {
	tokens, err := Tokenize("1 + 2 * 3")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	want := []TokenKind{
		TokenNumber, TokenOperator, TokenNumber, TokenOperator, TokenNumber, TokenEnd,
	}

	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTokenize_Variable(t *testing.T) {
	tokens, err := Tokenize("{{ user.name }}")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[0].Kind != TokenVariable {
		t.Fatalf("expected variable token, got %s", tokens[0].Kind)
	}

	if tokens[0].Text != "user.name" {
		t.Errorf("expected trimmed name 'user.name', got %q", tokens[0].Text)
	}
}

func TestTokenize_VariableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "unterminated", input: "{{name", want: ErrUnterminatedVariable},
		{name: "empty", input: "{{  }}", want: ErrEmptyVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTokenize_StringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "doubled quote", input: `"say ""hi"""`, want: `say "hi"`},
		{name: "backslash quote", input: `"say \"hi\""`, want: `say "hi"`},
		{name: "newline", input: `"a\nb"`, want: "a\nb"},
		{name: "tab", input: `"a\tb"`, want: "a\tb"},
		{name: "unknown escape keeps the character", input: `"a\qb"`, want: "aqb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			if tokens[0].Kind != TokenString {
				t.Fatalf("expected string token, got %s", tokens[0].Kind)
			}

			if got := tokens[0].Val.Str(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`"no closing quote`)
	if !errors.Is(err, ErrUnterminatedString) {
		t.Errorf("expected unterminated string error, got %v", err)
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{input: "42", want: 42},
		{input: "3.14", want: 3.14},
		{input: "-7", want: -7},
		{input: "+2.5", want: 2.5},
		{input: "1e3", want: 1000},
		{input: "2.5e-2", want: 0.025},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			if tokens[0].Kind != TokenNumber {
				t.Fatalf("expected number token, got %s", tokens[0].Kind)
			}

			if got := tokens[0].Val.Float(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTokenize_SignVersusOperator(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
	}{
		// After a value or ")" the sign is a binary operator.
		{input: "1+2", kinds: []TokenKind{
			TokenNumber, TokenOperator, TokenNumber, TokenEnd,
		}},
		{input: "10-4", kinds: []TokenKind{
			TokenNumber, TokenOperator, TokenNumber, TokenEnd,
		}},
		{input: "1 -2", kinds: []TokenKind{
			TokenNumber, TokenOperator, TokenNumber, TokenEnd,
		}},
		{input: "{{x}}-2", kinds: []TokenKind{
			TokenVariable, TokenOperator, TokenNumber, TokenEnd,
		}},
		{input: "(1)-2", kinds: []TokenKind{
			TokenLParen, TokenNumber, TokenRParen,
			TokenOperator, TokenNumber, TokenEnd,
		}},
		// Where no expression can end, the sign starts a literal.
		{input: "-2", kinds: []TokenKind{TokenNumber, TokenEnd}},
		{input: "(-3)", kinds: []TokenKind{
			TokenLParen, TokenNumber, TokenRParen, TokenEnd,
		}},
		{input: "1;-2", kinds: []TokenKind{
			TokenNumber, TokenSeparator, TokenNumber, TokenEnd,
		}},
		{input: "2--3", kinds: []TokenKind{
			TokenNumber, TokenOperator, TokenNumber, TokenEnd,
		}},
		{input: "1<-2", kinds: []TokenKind{
			TokenNumber, TokenCompare, TokenNumber, TokenEnd,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			if len(tokens) != len(tt.kinds) {
				t.Fatalf("expected %d tokens, got %d: %v",
					len(tt.kinds), len(tokens), tokens)
			}

			for i, kind := range tt.kinds {
				if tokens[i].Kind != kind {
					t.Errorf("token %d: expected %s, got %s",
						i, kind, tokens[i].Kind)
				}
			}
		})
	}
}

func TestTokenize_SignBeforeNonDigitIsOperator(t *testing.T) {
	tokens, err := Tokenize("-{{x}}")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[0].Kind != TokenOperator || tokens[0].Text != "-" {
		t.Errorf("expected '-' operator, got %s %q", tokens[0].Kind, tokens[0].Text)
	}
}

func TestTokenize_Keywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{input: "TRUE", kind: TokenBool},
		{input: "false", kind: TokenBool},
		{input: "NULL", kind: TokenNull},
		{input: "none", kind: TokenNull},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			if tokens[0].Kind != tt.kind {
				t.Errorf("expected %s, got %s", tt.kind, tokens[0].Kind)
			}
		})
	}
}

func TestTokenize_Comparators(t *testing.T) {
	tokens, err := Tokenize("1 >= 2 <> 3")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[1].Text != ">=" || tokens[1].Kind != TokenCompare {
		t.Errorf("expected '>=' comparator, got %s %q", tokens[1].Kind, tokens[1].Text)
	}

	if tokens[3].Text != "<>" || tokens[3].Kind != TokenCompare {
		t.Errorf("expected '<>' comparator, got %s %q", tokens[3].Kind, tokens[3].Text)
	}
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("1 @ 2")
	if !errors.Is(err, ErrUnexpectedChar) {
		t.Errorf("expected unexpected character error, got %v", err)
	}
}
