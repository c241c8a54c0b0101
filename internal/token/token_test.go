package token_test

import (
	"testing"

	"lunar/internal/source"
	"lunar/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"local":    token.KwLocal,
		"function": token.KwFunction,
		"elseif":   token.KwElseif,
		"goto":     token.KwGoto,
		"nil":      token.KwNil,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"Local", "self", "_ENV", "continue", ""} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must not be a keyword", s)
		}
	}
}

func TestClassification(t *testing.T) {
	for _, k := range []token.Kind{token.Number, token.String, token.KwNil, token.DotDotDot} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.KwAnd, token.KwWhile, token.KwGoto} {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Plus, token.DotDotDot, token.ColonColon} {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punctuation", k)
		}
	}
	if tok(token.Ident).IsKeyword() || tok(token.KwEnd).IsPunctOrOp() {
		t.Fatalf("identifier/keyword classification leaked")
	}
}

func TestBlockFollow(t *testing.T) {
	if !tok(token.KwUntil).BlockFollow(true) || tok(token.KwUntil).BlockFollow(false) {
		t.Fatalf("until follows a block only inside repeat")
	}
	if !tok(token.EOF).BlockFollow(false) || tok(token.KwDo).BlockFollow(true) {
		t.Fatalf("unexpected block follow set")
	}
}

func TestKindString(t *testing.T) {
	if token.TildeEq.String() != "~=" || token.EOF.String() != "<eof>" || token.KwFunction.String() != "function" {
		t.Fatalf("unexpected kind names: %s %s %s", token.TildeEq, token.EOF, token.KwFunction)
	}
}
