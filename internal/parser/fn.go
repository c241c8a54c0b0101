package parser

import (
	"lunar/internal/ast"
	"lunar/internal/token"
)

// parseFunctionStatement: `function a.b:c(...) ... end`.
// Область функции открывается после имени, до параметров.
func (p *Parser) parseFunctionStatement() ast.NodeID {
	open := p.advance()
	name := p.parseFunctionName()
	p.enterScope()
	return p.parseFunctionBody(open.Span.Start, open, name, false)
}

func (p *Parser) parseFunctionName() ast.NodeID {
	startTok := p.peek()
	base := p.parseIdentifier()
	for p.consume(token.Dot) {
		name := p.parseIdentifier()
		base = p.finish(p.tree.NewMember(p.spanFrom(startTok.Span.Start), base, '.', name))
	}
	if p.consume(token.Colon) {
		name := p.parseIdentifier()
		base = p.finish(p.tree.NewMember(p.spanFrom(startTok.Span.Start), base, ':', name))
	}
	return base
}

// parseFunctionExpression: анонимная функция в позиции выражения.
func (p *Parser) parseFunctionExpression() ast.NodeID {
	open := p.advance()
	p.enterScope()
	return p.parseFunctionBody(open.Span.Start, open, ast.NoNodeID, false)
}

// parseFunctionBody parses `(params) block end`. The caller has already
// entered the function scope; it is left before the declaration node is
// created, so the declaration itself belongs to the enclosing scope.
func (p *Parser) parseFunctionBody(start uint32, open token.Token, name ast.NodeID, isLocal bool) ast.NodeID {
	fn := &fnState{outer: p.fn}
	p.fn = fn

	var params []ast.NodeID
	p.expect(token.LParen)
	if !p.consume(token.RParen) {
		for {
			tok := p.peek()
			if tok.Kind == token.Ident {
				params = append(params, p.parseIdentifier())
				if p.consume(token.Comma) {
					continue
				}
				p.expect(token.RParen)
				break
			}
			if tok.Kind == token.DotDotDot {
				p.advance()
				fn.vararg = true
				params = append(params, p.finish(p.tree.NewLiteral(ast.VarargLiteral, tok.Span, tok.Text, "")))
				p.expect(token.RParen)
				break
			}
			p.raiseExpected(tok, "<name>")
		}
	}

	body := p.parseBlock()
	p.expectMatch(token.KwEnd, open)
	p.exitScope()
	p.fn = fn.outer

	data := ast.FunctionData{
		Identifier: name,
		IsLocal:    isLocal,
		Params:     params,
		Body:       body,
	}
	return p.finish(p.tree.NewFunction(p.spanFrom(start), data))
}
