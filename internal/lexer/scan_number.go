package lexer

import (
	"lunar/internal/diag"
	"lunar/internal/token"
)

// scanNumber читает числовой литерал так же жадно, как это делает Lua:
// цифры, точки, экспонента со знаком и любые буквы подряд, а потом проверяет форму.
// Поддержка: 3, 3.0, 3.1416, 314.16e-2, 0.31416E1, .5, 0xff, 0x0.1E, 0xA23p-4 (5.2+).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		hex = true
		lx.cursor.Off += 2
	}
	expo1, expo2 := byte('e'), byte('E')
	if hex {
		expo1, expo2 = 'p', 'P'
	}

	for {
		b := lx.cursor.Peek()
		switch {
		case b == expo1 || b == expo2:
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
		case isHex(b) || b == '.':
			lx.cursor.Bump()
		case isIdentContinueByte(b):
			// буквы сразу после числа делают его некорректным (3x, 0xg)
			lx.cursor.Bump()
		default:
			sp := lx.cursor.SpanFrom(start)
			text := lx.text(sp)
			if !lx.validNumber(text, hex) {
				return lx.invalid(start, diag.LexBadNumber, "malformed number near '%s'", text)
			}
			return token.Token{Kind: token.Number, Span: sp, Text: text}
		}
	}
}

func (lx *Lexer) validNumber(text string, hex bool) bool {
	i := 0
	digit := isDec
	if hex {
		i = 2
		digit = isHex
	}

	intDigits := 0
	for i < len(text) && digit(text[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(text) && text[i] == '.' {
		if hex && !lx.opts.Version.HasExtendedEscapes() {
			return false
		}
		i++
		for i < len(text) && digit(text[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits+fracDigits == 0 {
		return false
	}
	if i == len(text) {
		return true
	}

	switch text[i] {
	case 'e', 'E':
		if hex {
			return false
		}
	case 'p', 'P':
		if !hex || !lx.opts.Version.HasExtendedEscapes() {
			return false
		}
	default:
		return false
	}
	i++
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	expDigits := 0
	for i < len(text) && isDec(text[i]) {
		i++
		expDigits++
	}
	return expDigits > 0 && i == len(text)
}
