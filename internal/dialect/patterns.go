package dialect

import (
	"lunar/internal/token"
)

// ObserveTokenPair records version evidence using a sliding 2-token window.
// Tokens must come from a lexer running with the newest version so that every
// construct is tokenized; the caller feeds them in source order.
func ObserveTokenPair(e *Evidence, prev, tok token.Token) {
	if e == nil {
		return
	}

	switch tok.Kind {
	case token.KwGoto:
		// `t.goto` and `t:goto` read the field in 5.1.
		if prev.Kind != token.Dot && prev.Kind != token.Colon {
			e.Add(Hint{Needs: Lua52, Reason: "goto statement", Span: tok.Span})
		}
	case token.ColonColon:
		// закрывающее `::` метки идёт сразу после имени
		if prev.Kind != token.Ident {
			e.Add(Hint{Needs: Lua52, Reason: "label `::name::`", Span: tok.Span})
		}
	case token.SlashSlash:
		e.Add(Hint{Needs: Lua53, Reason: "integer division `//`", Span: tok.Span})
	case token.Amp, token.Pipe, token.Shl, token.Shr:
		e.Add(Hint{Needs: Lua53, Reason: "bitwise operator `" + tok.Text + "`", Span: tok.Span})
	case token.Tilde:
		e.Add(Hint{Needs: Lua53, Reason: "bitwise operator `~`", Span: tok.Span})
	case token.Ident:
		if tok.Text == "_ENV" {
			e.Add(Hint{Needs: Lua52, Reason: "`_ENV` upvalue", Span: tok.Span})
		}
	case token.String:
		switch extendedEscape(tok.Text) {
		case Lua53:
			e.Add(Hint{Needs: Lua53, Reason: "string escape `\\u{}`", Span: tok.Span})
		case Lua52:
			e.Add(Hint{Needs: Lua52, Reason: "string escape `\\z` or `\\x`", Span: tok.Span})
		}
	}
}

// extendedEscape returns the newest version whose escapes the short string
// literal uses: \u{} came with 5.3, \z and \x with 5.2. Lua51 means none.
func extendedEscape(lit string) Version {
	found := Lua51
	if len(lit) == 0 || (lit[0] != '"' && lit[0] != '\'') {
		return found
	}
	for i := 0; i+1 < len(lit); i++ {
		if lit[i] != '\\' {
			continue
		}
		switch lit[i+1] {
		case 'u':
			return Lua53
		case 'z', 'x':
			found = Lua52
		}
		i++
	}
	return found
}
