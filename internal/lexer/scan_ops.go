package lexer

import (
	"lunar/internal/diag"
	"lunar/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Токены 5.2/5.3 (::, //, <<, >>, &, |, ~) распознаются только в своих версиях.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}
	v := lx.opts.Version

	switch {
	case lx.try3('.', '.', '.'):
		return emit(token.DotDotDot)
	case lx.try2('.', '.'):
		return emit(token.DotDot)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('~', '='):
		return emit(token.TildeEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case v.HasGoto() && lx.try2(':', ':'):
		return emit(token.ColonColon)
	case v.HasBitwise() && lx.try2('/', '/'):
		return emit(token.SlashSlash)
	case v.HasBitwise() && lx.try2('<', '<'):
		return emit(token.Shl)
	case v.HasBitwise() && lx.try2('>', '>'):
		return emit(token.Shr)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '^':
		return emit(token.Caret)
	case '#':
		return emit(token.Hash)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '=':
		return emit(token.Assign)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ';':
		return emit(token.Semicolon)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '&':
		if v.HasBitwise() {
			return emit(token.Amp)
		}
	case '|':
		if v.HasBitwise() {
			return emit(token.Pipe)
		}
	case '~':
		if v.HasBitwise() {
			return emit(token.Tilde)
		}
	}

	// неизвестный символ: съедаем всю руну, чтобы сообщение было читаемым
	for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
		lx.cursor.Bump()
	}
	return lx.invalid(start, diag.LexUnknownChar, "unexpected symbol near '%s'", lx.text(lx.cursor.SpanFrom(start)))
}
