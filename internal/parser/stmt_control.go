package parser

import (
	"lunar/internal/ast"
	"lunar/internal/token"
)

// loopBody парсит тело цикла внутри уже открытой области.
func (p *Parser) loopBody() []ast.NodeID {
	p.fn.loops++
	body := p.parseBlock()
	p.fn.loops--
	return body
}

func (p *Parser) parseDo() ast.NodeID {
	open := p.advance()
	p.enterScope()
	body := p.parseBlock()
	p.exitScope()
	p.expectMatch(token.KwEnd, open)
	return p.finish(p.tree.NewList(ast.DoStatement, p.spanFrom(open.Span.Start), body))
}

// parseWhile: условие вычисляется во внешней области.
func (p *Parser) parseWhile() ast.NodeID {
	open := p.advance()
	cond := p.parseExpectedExpression()
	p.expect(token.KwDo)
	p.enterScope()
	body := p.loopBody()
	p.exitScope()
	p.expectMatch(token.KwEnd, open)
	return p.finish(p.tree.NewBlock(ast.WhileStatement, p.spanFrom(open.Span.Start), cond, body))
}

// parseRepeat: условие `until` видит локальные переменные тела.
func (p *Parser) parseRepeat() ast.NodeID {
	open := p.advance()
	p.enterScope()
	body := p.loopBody()
	p.expectMatch(token.KwUntil, open)
	cond := p.parseExpectedExpression()
	p.exitScope()
	return p.finish(p.tree.NewBlock(ast.RepeatStatement, p.spanFrom(open.Span.Start), cond, body))
}

// parseIf: each clause body gets its own scope; clause nodes belong to the outer one.
func (p *Parser) parseIf() ast.NodeID {
	open := p.advance()
	var clauses []ast.NodeID

	clauseStart := open.Span.Start
	cond := p.parseExpectedExpression()
	p.expect(token.KwThen)
	p.enterScope()
	body := p.parseBlock()
	p.exitScope()
	clauses = append(clauses, p.finish(p.tree.NewBlock(ast.IfClause, p.spanFrom(clauseStart), cond, body)))

	for p.at(token.KwElseif) {
		clauseStart = p.advance().Span.Start
		cond = p.parseExpectedExpression()
		p.expect(token.KwThen)
		p.enterScope()
		body = p.parseBlock()
		p.exitScope()
		clauses = append(clauses, p.finish(p.tree.NewBlock(ast.ElseifClause, p.spanFrom(clauseStart), cond, body)))
	}

	if p.at(token.KwElse) {
		clauseStart = p.advance().Span.Start
		p.enterScope()
		body = p.parseBlock()
		p.exitScope()
		clauses = append(clauses, p.finish(p.tree.NewList(ast.ElseClause, p.spanFrom(clauseStart), body)))
	}

	p.expectMatch(token.KwEnd, open)
	return p.finish(p.tree.NewList(ast.IfStatement, p.spanFrom(open.Span.Start), clauses))
}

// parseFor handles both loop forms. Loop variables and control
// expressions live in the loop scope.
func (p *Parser) parseFor() ast.NodeID {
	open := p.advance()
	p.enterScope()
	first := p.parseIdentifier()

	if p.consume(token.Assign) {
		data := ast.ForNumericData{Variable: first}
		data.Start = p.parseExpectedExpression()
		p.expect(token.Comma)
		data.End = p.parseExpectedExpression()
		if p.consume(token.Comma) {
			data.Step = p.parseExpectedExpression()
		}
		p.expect(token.KwDo)
		data.Body = p.loopBody()
		p.exitScope()
		p.expectMatch(token.KwEnd, open)
		return p.finish(p.tree.NewForNumeric(p.spanFrom(open.Span.Start), data))
	}

	if !p.at(token.Comma) && !p.at(token.KwIn) {
		tok := p.peek()
		p.raiseExpected(tok, "'=' or 'in'")
	}
	data := ast.ForGenericData{Variables: []ast.NodeID{first}}
	for p.consume(token.Comma) {
		data.Variables = append(data.Variables, p.parseIdentifier())
	}
	p.expect(token.KwIn)
	data.Iterators = p.parseExpressionList()
	p.expect(token.KwDo)
	data.Body = p.loopBody()
	p.exitScope()
	p.expectMatch(token.KwEnd, open)
	return p.finish(p.tree.NewForGeneric(p.spanFrom(open.Span.Start), data))
}
