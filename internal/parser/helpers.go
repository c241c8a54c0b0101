package parser

import (
	"fmt"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
)

// fill дочитывает буфер до n+1 токенов. Лексическая ошибка сразу становится синтаксической.
func (p *Parser) fill(n int) {
	for len(p.buf) <= n {
		tok := p.lx.Next()
		if lexErr := p.lx.Err(); lexErr != nil {
			p.raise(lexErr.Code, lexErr.Span, "%s", lexErr.Msg)
		}
		p.buf = append(p.buf, tok)
		if tok.Kind == token.EOF {
			for len(p.buf) <= n {
				p.buf = append(p.buf, tok)
			}
		}
	}
}

func (p *Parser) peek() token.Token {
	p.fill(0)
	return p.buf[0]
}

func (p *Parser) peekN(n int) token.Token {
	p.fill(n)
	return p.buf[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance: съедает следующий токен и запоминает его
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.buf = p.buf[1:]
		p.last = tok
	}
	return tok
}

// consume съедает токен, если он того вида.
func (p *Parser) consume(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен, иначе синтаксическая ошибка.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	tok := p.peek()
	p.raise(diag.SynExpectToken, tok.Span, "'%s' expected near '%s'", k, tokenValue(tok))
	return tok
}

// expectMatch закрывает конструкцию, открытую токеном open.
// Если открытие было на другой строке, сообщение это упоминает.
func (p *Parser) expectMatch(k token.Kind, open token.Token) token.Token {
	if p.at(k) {
		return p.advance()
	}
	tok := p.peek()
	openLine := p.file.LineCol(open.Span.Start).Line
	if openLine == p.file.LineCol(tok.Span.Start).Line {
		p.raise(diag.SynExpectToken, tok.Span, "'%s' expected near '%s'", k, tokenValue(tok))
	}
	p.raise(diag.SynUnclosedBlock, tok.Span, "%s",
		fmt.Sprintf("'%s' expected (to close '%s' at line %d) near '%s'", k, open.Text, openLine, tokenValue(tok)))
	return tok
}

// parseIdentifier съедает идентификатор и создаёт узел Identifier.
func (p *Parser) parseIdentifier() ast.NodeID {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.expectedToken("<name>")
	}
	p.advance()
	return p.finish(p.tree.NewIdentifier(tok.Span, tok.Text))
}

// spanFrom строит span от start до конца последнего съеденного токена.
func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.last.Span.End
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// sameLine reports whether tok starts on the line where the previous token ended.
func (p *Parser) sameLine(tok token.Token) bool {
	return p.file.LineCol(p.last.Span.End).Line == p.file.LineCol(tok.Span.Start).Line
}
