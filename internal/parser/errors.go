package parser

import (
	"fmt"

	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
)

// SyntaxError is the first error of a parse. Line and Column are 1-based.
// Error() renders the classic "[line:col] message" form.
type SyntaxError struct {
	Code    diag.Code
	Span    source.Span
	Line    uint32
	Column  uint32
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[%d:%d] %s", e.Line, e.Column, e.Message)
}

// bailout переносит фатальную ошибку через panic до Parse.
type bailout struct{ err error }

func (p *Parser) fail(err error) {
	panic(bailout{err: err})
}

func (p *Parser) raise(code diag.Code, sp source.Span, format string, args ...any) {
	lc := p.file.LineCol(sp.Start)
	err := &SyntaxError{
		Code:    code,
		Span:    sp,
		Line:    lc.Line,
		Column:  lc.Col,
		Message: fmt.Sprintf(format, args...),
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, err.Message, nil)
	}
	p.fail(err)
}

// tokenValue is how a token is quoted in messages ("near 'x'").
func tokenValue(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "<eof>"
	}
	return tok.Text
}

func tokenTypeName(tok token.Token) string {
	switch {
	case tok.Kind == token.String:
		return "string"
	case tok.Kind == token.Number:
		return "number"
	case tok.Kind == token.Ident:
		return "identifier"
	case tok.Kind == token.KwTrue || tok.Kind == token.KwFalse:
		return "boolean"
	case tok.Kind == token.KwNil:
		return "symbol"
	case tok.IsKeyword():
		return "keyword"
	default:
		return "symbol"
	}
}

// unexpected reports tok as out of place, quoting the token after it.
func (p *Parser) unexpected(tok token.Token) {
	if tok.Kind == token.EOF {
		p.raise(diag.SynUnexpectedToken, tok.Span, "unexpected symbol near '<eof>'")
	}
	near := p.peek()
	if near.Span == tok.Span {
		near = p.peekN(1)
	}
	p.raise(diag.SynUnexpectedToken, tok.Span, "unexpected %s '%s' near '%s'",
		tokenTypeName(tok), tok.Text, tokenValue(near))
}

// expectedToken reports that a grammar category (<name>, <expression>) is missing.
func (p *Parser) expectedToken(what string) {
	p.raiseExpected(p.peek(), what)
}

func (p *Parser) raiseExpected(tok token.Token, what string) {
	p.raise(diag.SynExpectToken, tok.Span, "%s expected near '%s'", what, tokenValue(tok))
}
