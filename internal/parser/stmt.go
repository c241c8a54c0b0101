package parser

import (
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/token"
)

// blockFollow reports whether the current token ends a block.
func (p *Parser) blockFollow() bool {
	return p.peek().BlockFollow(true)
}

// parseBlock parses statements until a block terminator. `return` must be last.
// Scopes are opened by callers; a block never opens one itself.
func (p *Parser) parseBlock() []ast.NodeID {
	var body []ast.NodeID
	for !p.blockFollow() {
		if p.at(token.KwReturn) {
			body = append(body, p.parseReturn())
			break
		}
		if p.consume(token.Semicolon) {
			continue
		}
		body = append(body, p.parseStatement())
	}
	return body
}

func (p *Parser) parseStatement() ast.NodeID {
	switch p.peek().Kind {
	case token.KwLocal:
		return p.parseLocal()
	case token.KwFunction:
		return p.parseFunctionStatement()
	case token.KwDo:
		return p.parseDo()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwGoto:
		return p.parseGoto()
	case token.ColonColon:
		return p.parseLabel()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseReturn() ast.NodeID {
	start := p.advance().Span.Start
	var args []ast.NodeID
	if !p.blockFollow() && !p.at(token.Semicolon) {
		args = p.parseExpressionList()
	}
	p.consume(token.Semicolon)
	return p.finish(p.tree.NewList(ast.ReturnStatement, p.spanFrom(start), args))
}

func (p *Parser) parseBreak() ast.NodeID {
	tok := p.advance()
	if p.fn.loops == 0 {
		p.raise(diag.SynUnexpectedToken, tok.Span, "no loop to break near '%s'", tokenValue(p.peek()))
	}
	return p.finish(p.tree.NewBreak(tok.Span))
}

func (p *Parser) parseGoto() ast.NodeID {
	start := p.advance().Span.Start
	label := p.parseIdentifier()
	return p.finish(p.tree.NewRef(ast.GotoStatement, p.spanFrom(start), label))
}

func (p *Parser) parseLabel() ast.NodeID {
	start := p.advance().Span.Start
	label := p.parseIdentifier()
	p.expect(token.ColonColon)
	return p.finish(p.tree.NewRef(ast.LabelStatement, p.spanFrom(start), label))
}

// parseLocal: `local function name body` или `local a, b = ...`.
func (p *Parser) parseLocal() ast.NodeID {
	start := p.advance().Span.Start
	if p.at(token.KwFunction) {
		open := p.advance()
		name := p.parseIdentifier()
		p.enterScope()
		return p.parseFunctionBody(start, open, name, true)
	}

	var vars []ast.NodeID
	for {
		vars = append(vars, p.parseIdentifier())
		if !p.consume(token.Comma) {
			break
		}
	}
	var init []ast.NodeID
	if p.consume(token.Assign) {
		init = p.parseExpressionList()
	}
	return p.finish(p.tree.NewAssign(ast.LocalStatement, p.spanFrom(start), vars, init))
}

// parseExpressionStatement handles assignments and call statements.
// Anything else that parses as an expression is an error on its last token.
func (p *Parser) parseExpressionStatement() ast.NodeID {
	startTok := p.peek()
	first := p.parseSuffixedExpression()

	if p.at(token.Assign) || p.at(token.Comma) {
		vars := []ast.NodeID{first}
		p.checkAssignable(first)
		for p.consume(token.Comma) {
			v := p.parseSuffixedExpression()
			p.checkAssignable(v)
			vars = append(vars, v)
		}
		p.expect(token.Assign)
		init := p.parseExpressionList()
		return p.finish(p.tree.NewAssign(ast.AssignmentStatement, p.spanFrom(startTok.Span.Start), vars, init))
	}

	if p.tree.Kind(first).IsCall() {
		return p.finish(p.tree.NewRef(ast.CallStatement, p.spanFrom(startTok.Span.Start), first))
	}
	p.unexpected(p.last)
	return ast.NoNodeID
}

func (p *Parser) checkAssignable(id ast.NodeID) {
	switch p.tree.Kind(id) {
	case ast.Identifier, ast.MemberExpression, ast.IndexExpression:
		return
	}
	p.raise(diag.SynBadAssignment, p.peek().Span, "syntax error near '%s'", tokenValue(p.peek()))
}
