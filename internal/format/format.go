package format

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lunar/internal/ast"
	"lunar/internal/lexer"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/token"
)

// ErrRoundTrip means the formatted text no longer parses to the same tree shape.
var ErrRoundTrip = errors.New("format: round trip changed the syntax tree")

// Source reformats text. A buffer that does not parse is refused with the
// parser's *SyntaxError.
func Source(path, text string, opt Options) (string, error) {
	opt = opt.withDefaults()

	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	popt := parser.Options{Version: opt.Version}
	before, err := parser.ParseString(path, text, popt)
	if err != nil {
		return "", err
	}

	out := reindent(path, text, opt)

	after, err := parser.ParseString(path, out, popt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if !slices.Equal(shape(before), shape(after)) {
		return "", ErrRoundTrip
	}

	if crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out, nil
}

// shape lists node kinds in walk order.
func shape(tree *ast.Tree) []ast.Kind {
	var kinds []ast.Kind
	tree.Walk(tree.Root, func(id ast.NodeID) bool {
		kinds = append(kinds, tree.Kind(id))
		return true
	})
	return kinds
}

type formatter struct {
	w      *writer
	opt    Options
	file   *source.File
	tokens []token.Token
}

func reindent(path, text string, opt Options) string {
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	lx := lexer.New(file, lexer.Options{Version: opt.Version})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	f := &formatter{
		w:      newWriter(opt, len(text)),
		opt:    opt,
		file:   file,
		tokens: toks,
	}
	for i := range toks {
		f.token(i)
	}
	return f.w.finish()
}

func (f *formatter) text(sp source.Span) string {
	return string(f.file.Content[sp.Start:sp.End])
}

func (f *formatter) token(i int) {
	tok := f.tokens[i]
	for _, tr := range tok.Leading {
		f.trivia(tr)
	}
	if tok.Kind == token.EOF || tok.Kind == token.Invalid {
		return
	}

	level := f.w.level(len(f.w.opens))
	if f.w.atLineStart && closes(tok.Kind) {
		level = f.w.level(max(0, len(f.w.opens)-f.leadingClosers(i)))
	}

	switch {
	case tok.Kind == token.KwElse:
		f.w.pop()
		f.w.write(f.text(tok.Span), level)
		f.w.push()
		return
	case closes(tok.Kind):
		f.w.pop()
	case tok.Kind == token.Comma:
		if !f.w.atLineStart {
			f.w.pending = ""
		}
	}

	f.w.write(f.tokenText(tok), level)

	if opens(tok.Kind) {
		f.w.push()
	}
	if tok.Kind == token.Comma {
		f.afterComma(i)
	}
}

// afterComma puts exactly one space between a comma and what follows on
// the same line.
func (f *formatter) afterComma(i int) {
	if i+1 >= len(f.tokens) {
		return
	}
	next := f.tokens[i+1]
	for _, tr := range next.Leading {
		if tr.Kind == token.TriviaNewline {
			return
		}
	}
	switch next.Kind {
	case token.RBrace, token.RParen, token.RBracket, token.EOF:
		return
	}
	f.w.pending = " "
	f.w.forced = true
}

// leadingClosers counts the closers starting at token i that share its line.
// `else` and `elseif` end the run.
func (f *formatter) leadingClosers(i int) int {
	n := 0
	for j := i; j < len(f.tokens); j++ {
		tok := f.tokens[j]
		if j > i && hasNewline(tok.Leading) {
			break
		}
		if !closes(tok.Kind) {
			break
		}
		n++
		if tok.Kind == token.KwElse || tok.Kind == token.KwElseif {
			break
		}
	}
	return n
}

func hasNewline(trivia []token.Trivia) bool {
	for _, tr := range trivia {
		if tr.Kind == token.TriviaNewline || strings.Contains(tr.Text, "\n") {
			return true
		}
	}
	return false
}

func (f *formatter) trivia(tr token.Trivia) {
	level := f.w.level(len(f.w.opens))
	switch tr.Kind {
	case token.TriviaNewline:
		f.w.newlines(strings.Count(tr.Text, "\n"))
	case token.TriviaSpace:
		f.w.space(tr.Text)
	case token.TriviaLineComment:
		f.w.write(strings.TrimRight(tr.Text, " \t\r"), level)
	case token.TriviaBlockComment, token.TriviaShebang:
		f.w.write(tr.Text, level)
	}
}

func (f *formatter) tokenText(tok token.Token) string {
	text := f.text(tok.Span)
	if tok.Kind == token.String {
		return requote(text, f.opt.QuoteStyle)
	}
	return text
}

func opens(k token.Kind) bool {
	switch k {
	case token.KwFunction, token.KwDo, token.KwThen, token.KwRepeat,
		token.LBrace, token.LParen, token.LBracket:
		return true
	}
	return false
}

func closes(k token.Kind) bool {
	switch k {
	case token.KwEnd, token.KwUntil, token.KwElse, token.KwElseif,
		token.RBrace, token.RParen, token.RBracket:
		return true
	}
	return false
}
