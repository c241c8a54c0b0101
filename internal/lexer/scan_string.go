package lexer

import (
	"fmt"

	"lunar/internal/diag"
	"lunar/internal/token"
)

// scanString читает строку в кавычках '...' или "...".
// Экранирование проверяется, но Token.Text остаётся исходным срезом (с кавычками).
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
		case '\n':
			return lx.invalid(start, diag.LexUnterminatedString, "unfinished string near '%s'", lx.text(lx.cursor.SpanFrom(start)))
		case '\\':
			if tok, ok := lx.scanEscape(start); !ok {
				return tok
			}
		default:
			lx.cursor.Bump()
		}
	}
	return lx.invalid(start, diag.LexUnterminatedString, "unfinished string near '%s'", lx.text(lx.cursor.SpanFrom(start)))
}

// scanEscape съедает одну escape-последовательность после '\'.
func (lx *Lexer) scanEscape(start Mark) (token.Token, bool) {
	lx.cursor.Bump() // '\'
	b := lx.cursor.Peek()
	switch {
	case b == 'a' || b == 'b' || b == 'f' || b == 'n' || b == 'r' || b == 't' || b == 'v',
		b == '\\' || b == '"' || b == '\'' || b == '\n':
		lx.cursor.Bump()
		return token.Token{}, true

	case isDec(b):
		value := 0
		for n := 0; n < 3 && isDec(lx.cursor.Peek()); n++ {
			value = value*10 + int(lx.cursor.Bump()-'0')
		}
		if value > 255 {
			return lx.invalid(start, diag.LexBadEscape, "decimal escape too large near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
		}
		return token.Token{}, true

	case b == 'z' && lx.opts.Version.HasExtendedEscapes():
		lx.cursor.Bump()
		for isSpace(lx.cursor.Peek()) || lx.cursor.Peek() == '\n' {
			lx.cursor.Bump()
		}
		return token.Token{}, true

	case b == 'x' && lx.opts.Version.HasExtendedEscapes():
		lx.cursor.Bump()
		for range 2 {
			if !isHex(lx.cursor.Peek()) {
				return lx.invalid(start, diag.LexBadEscape, "hexadecimal digit expected near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
			}
			lx.cursor.Bump()
		}
		return token.Token{}, true

	case b == 'u' && lx.opts.Version.HasBitwise():
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			return lx.invalid(start, diag.LexBadEscape, "missing '{' near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
		}
		value, digits := 0, 0
		for isHex(lx.cursor.Peek()) {
			value = value*16 + hexVal(lx.cursor.Bump())
			digits++
			if value > 0x7FFFFFFF {
				return lx.invalid(start, diag.LexBadEscape, "UTF-8 value too large near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
			}
		}
		if digits == 0 {
			return lx.invalid(start, diag.LexBadEscape, "hexadecimal digit expected near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
		}
		if !lx.cursor.Eat('}') {
			return lx.invalid(start, diag.LexBadEscape, "missing '}' near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
		}
		return token.Token{}, true

	case lx.cursor.EOF():
		return lx.invalid(start, diag.LexUnterminatedString, "unfinished string near '%s'", lx.text(lx.cursor.SpanFrom(start))), false

	default:
		lx.cursor.Bump()
		return lx.invalid(start, diag.LexBadEscape, "invalid escape sequence near '%s'", lx.text(lx.cursor.SpanFrom(start))), false
	}
}

// scanLongString читает [[...]] / [==[...]==].
func (lx *Lexer) scanLongString() token.Token {
	start := lx.cursor.Mark()
	level := lx.longBracketLevel()
	line := lx.file.LineCol(uint32(start)).Line
	lx.cursor.Off += uint32(level) + 2 // #nosec G115 -- level is bounded by the content length
	if !lx.skipLongBody(level) {
		return lx.invalid(start, diag.LexUnterminatedLongString, "%s",
			fmt.Sprintf("unfinished long string (starting at line %d) near '<eof>'", line))
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
