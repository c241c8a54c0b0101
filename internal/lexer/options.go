package lexer

import (
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/source"
)

type Options struct {
	// Version selects version-specific tokens (goto, ::, //, bitwise operators).
	Version  dialect.Version
	Reporter diag.Reporter // может быть nil, тогда ошибки только запоминаем
	// Evidence, when set, receives version hints for every token.
	Evidence *dialect.Evidence
}

// Error is the first lexical error seen; the parser turns it into a syntax error.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.err == nil {
		lx.err = &Error{Code: code, Span: sp, Msg: msg}
	}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// Err returns the first lexical error, or nil.
func (lx *Lexer) Err() *Error {
	return lx.err
}
