package parser

import (
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/token"
)

func (p *Parser) parseExpressionList() []ast.NodeID {
	list := []ast.NodeID{p.parseExpectedExpression()}
	for p.consume(token.Comma) {
		list = append(list, p.parseExpectedExpression())
	}
	return list
}

// parseExpectedExpression parses an expression or fails with "<expression> expected".
func (p *Parser) parseExpectedExpression() ast.NodeID {
	if !p.startsExpression(p.peek()) {
		p.raiseExpected(p.peek(), "<expression>")
	}
	return p.parseSubExpression(precNone)
}

func (p *Parser) startsExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.KwNil, token.KwTrue, token.KwFalse, token.Number, token.String,
		token.DotDotDot, token.KwFunction, token.LBrace, token.Ident, token.LParen:
		return true
	}
	return isUnaryOperator(tok.Kind)
}

// parseSubExpression: precedence climbing: сворачиваем операторы с left > limit.
func (p *Parser) parseSubExpression(limit int) ast.NodeID {
	start := p.peek().Span.Start
	var left ast.NodeID
	if isUnaryOperator(p.peek().Kind) {
		op := p.advance()
		if !p.startsExpression(p.peek()) {
			p.raiseExpected(p.peek(), "<expression>")
		}
		arg := p.parseSubExpression(precUnary)
		left = p.finish(p.tree.NewOp(ast.UnaryExpression, p.spanFrom(start), op.Text, arg, ast.NoNodeID))
	} else {
		left = p.parseSimpleExpression()
	}

	for {
		op := p.peek()
		prec, ok := getBinaryOperatorPrec(op.Kind)
		if !ok || prec.left <= limit {
			break
		}
		p.advance()
		if !p.startsExpression(p.peek()) {
			p.raiseExpected(p.peek(), "<expression>")
		}
		right := p.parseSubExpression(prec.right)
		kind := ast.BinaryExpression
		if isLogicalOperator(op.Kind) {
			kind = ast.LogicalExpression
		}
		left = p.finish(p.tree.NewOp(kind, p.spanFrom(start), op.Text, left, right))
	}
	return left
}

func (p *Parser) parseSimpleExpression() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.KwNil:
		p.advance()
		return p.finish(p.tree.NewLiteral(ast.NilLiteral, tok.Span, tok.Text, ""))
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.finish(p.tree.NewLiteral(ast.BooleanLiteral, tok.Span, tok.Text, tok.Text))
	case token.Number:
		p.advance()
		return p.finish(p.tree.NewLiteral(ast.NumericLiteral, tok.Span, tok.Text, tok.Text))
	case token.String:
		return p.parseStringLiteral()
	case token.DotDotDot:
		p.advance()
		if !p.fn.vararg {
			p.raise(diag.SynUnexpectedToken, tok.Span, "cannot use '...' outside a vararg function near '...'")
		}
		return p.finish(p.tree.NewLiteral(ast.VarargLiteral, tok.Span, tok.Text, ""))
	case token.KwFunction:
		return p.parseFunctionExpression()
	case token.LBrace:
		return p.parseTableConstructor()
	default:
		return p.parseSuffixedExpression()
	}
}

func (p *Parser) parseStringLiteral() ast.NodeID {
	tok := p.advance()
	return p.finish(p.tree.NewLiteral(ast.StringLiteral, tok.Span, tok.Text, decodeString(tok.Text)))
}

// parsePrimaryExpression: Name | '(' expr ')'.
func (p *Parser) parsePrimaryExpression() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseIdentifier()
	case token.LParen:
		p.advance()
		inner := p.parseExpectedExpression()
		p.expectMatch(token.RParen, tok)
		return inner
	}
	p.unexpected(tok)
	return ast.NoNodeID
}

// parseSuffixedExpression parses a primary expression followed by any number
// of field accesses, indexes and calls.
func (p *Parser) parseSuffixedExpression() ast.NodeID {
	start := p.peek().Span.Start
	base := p.parsePrimaryExpression()
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			name := p.parseIdentifier()
			base = p.finish(p.tree.NewMember(p.spanFrom(start), base, '.', name))
		case token.Colon:
			p.advance()
			name := p.parseIdentifier()
			base = p.finish(p.tree.NewMember(p.spanFrom(start), base, ':', name))
			base = p.parseCallArguments(start, base, true)
		case token.LBracket:
			p.advance()
			index := p.parseExpectedExpression()
			p.expectMatch(token.RBracket, tok)
			base = p.finish(p.tree.NewIndex(p.spanFrom(start), base, index))
		case token.LParen, token.String, token.LBrace:
			if tok.Kind == token.LParen && p.opts.Version == dialect.Lua51 && !p.sameLine(tok) {
				p.raise(diag.SynUnexpectedToken, tok.Span, "ambiguous syntax (function call x new statement) near '('")
			}
			base = p.parseCallArguments(start, base, false)
		default:
			return base
		}
	}
}

// parseCallArguments parses `(args)`, a string or a table constructor as call arguments.
func (p *Parser) parseCallArguments(start uint32, base ast.NodeID, required bool) ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		var args []ast.NodeID
		if !p.at(token.RParen) {
			args = p.parseExpressionList()
		}
		p.expectMatch(token.RParen, tok)
		return p.finish(p.tree.NewCall(ast.CallExpression, p.spanFrom(start), base, args))
	case token.String:
		arg := p.parseStringLiteral()
		return p.finish(p.tree.NewCall(ast.StringCallExpression, p.spanFrom(start), base, []ast.NodeID{arg}))
	case token.LBrace:
		arg := p.parseTableConstructor()
		return p.finish(p.tree.NewCall(ast.TableCallExpression, p.spanFrom(start), base, []ast.NodeID{arg}))
	}
	if required {
		p.raiseExpected(tok, "function arguments")
	}
	return base
}
