package token

import (
	"lunar/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token starts a literal expression.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, KwNil, KwTrue, KwFalse, DotDotDot:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind < kindCount
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// BlockFollow reports whether the token closes a block.
// With withUntil the `until` of a repeat loop counts too.
func (t Token) BlockFollow(withUntil bool) bool {
	switch t.Kind {
	case KwElse, KwElseif, KwEnd, EOF:
		return true
	case KwUntil:
		return withUntil
	default:
		return false
	}
}
