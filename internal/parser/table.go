package parser

import (
	"lunar/internal/ast"
	"lunar/internal/token"
)

// parseTableConstructor: `{ [k] = v, name = v, v; ... }`.
func (p *Parser) parseTableConstructor() ast.NodeID {
	open := p.expect(token.LBrace)
	var fields []ast.NodeID
	for !p.at(token.RBrace) {
		fields = append(fields, p.parseTableField())
		if !p.consume(token.Comma) && !p.consume(token.Semicolon) {
			break
		}
	}
	p.expectMatch(token.RBrace, open)
	return p.finish(p.tree.NewList(ast.TableConstructorExpression, p.spanFrom(open.Span.Start), fields))
}

func (p *Parser) parseTableField() ast.NodeID {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBracket:
		p.advance()
		key := p.parseExpectedExpression()
		p.expectMatch(token.RBracket, tok)
		p.expect(token.Assign)
		value := p.parseExpectedExpression()
		return p.finish(p.tree.NewField(ast.TableKey, p.spanFrom(tok.Span.Start), key, value))
	case tok.Kind == token.Ident && p.peekN(1).Kind == token.Assign:
		key := p.parseIdentifier()
		p.advance()
		value := p.parseExpectedExpression()
		return p.finish(p.tree.NewField(ast.TableKeyString, p.spanFrom(tok.Span.Start), key, value))
	default:
		value := p.parseExpectedExpression()
		return p.finish(p.tree.NewField(ast.TableValue, p.spanFrom(tok.Span.Start), ast.NoNodeID, value))
	}
}
