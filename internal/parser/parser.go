package parser

import (
	"errors"
	"strings"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/lexer"
	"lunar/internal/source"
	"lunar/internal/token"
)

type Options struct {
	// Version selects the grammar; there is no process-wide default.
	Version  dialect.Version
	Hooks    Hooks         // может быть nil
	Reporter diag.Reporter // получает синтаксическую ошибку, если она есть
	Evidence *dialect.Evidence
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer
	file *source.File
	tree *ast.Tree
	opts Options
	buf  []token.Token // lookahead-буфер
	last token.Token   // последний съеденный токен

	fn *fnState
}

// fnState tracks per-function facts needed for `break` and `...` checks.
type fnState struct {
	vararg bool
	loops  int
	outer  *fnState
}

// Parse разбирает файл целиком. Ошибка: *SyntaxError либо ошибка из Hooks.
// The tree is returned even on error; it holds every node created before the failure.
func Parse(file *source.File, opts Options) (tree *ast.Tree, err error) {
	if opts.Hooks == nil {
		opts.Hooks = NopHooks{}
	}
	p := &Parser{
		lx:   lexer.New(file, lexer.Options{Version: opts.Version, Evidence: opts.Evidence}),
		file: file,
		tree: ast.NewTree(file, uint(len(file.Content)/4)),
		opts: opts,
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			tree, err = p.tree, b.err
		}
	}()

	p.tree.Root = p.parseChunk()
	return p.tree, nil
}

// ParseString is a convenience wrapper for in-memory text.
func ParseString(path, text string, opts Options) (*ast.Tree, error) {
	return Parse(source.NewFile(path, []byte(text), source.FileVirtual), opts)
}

// AsSyntaxError unwraps err into a *SyntaxError.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Stream accepts text in pieces and parses once on End.
// The grammar never needs partial-parse state, so buffering is equivalent to
// suspending and resuming a parser between chunks.
type Stream struct {
	path  string
	opts  Options
	sb    strings.Builder
	ended bool
}

// NewStream prepares a stream that will parse as path.
func NewStream(path string, opts Options) *Stream {
	return &Stream{path: path, opts: opts}
}

// Write appends a chunk of source text.
func (s *Stream) Write(text string) {
	s.sb.WriteString(text)
}

// Len returns the number of bytes written so far.
func (s *Stream) Len() int {
	return s.sb.Len()
}

// End appends the final chunk and parses everything written.
func (s *Stream) End(text string) (*ast.Tree, error) {
	if s.ended {
		return nil, errors.New("parser: stream already ended")
	}
	s.ended = true
	s.sb.WriteString(text)
	file := source.NewFile(s.path, []byte(s.sb.String()), source.FileVirtual|source.FileSynthetic)
	return Parse(file, s.opts)
}

// parseChunk: глобальная область открывается до первого оператора
// и закрывается до создания узла Chunk.
func (p *Parser) parseChunk() ast.NodeID {
	p.fn = &fnState{vararg: true}
	p.enterScope()
	body := p.parseBlock()
	p.exitScope()
	if !p.at(token.EOF) {
		p.unexpected(p.peek())
	}
	sp := source.Span{File: p.file.ID, Start: 0, End: p.file.Len()}
	return p.finish(p.tree.NewList(ast.Chunk, sp, body))
}

func (p *Parser) enterScope() {
	if err := p.opts.Hooks.EnterScope(); err != nil {
		p.fail(err)
	}
}

func (p *Parser) exitScope() {
	if err := p.opts.Hooks.ExitScope(); err != nil {
		p.fail(err)
	}
}

// finish сообщает хукам о готовом узле.
func (p *Parser) finish(id ast.NodeID) ast.NodeID {
	if err := p.opts.Hooks.NodeCreated(p.tree, id); err != nil {
		p.fail(err)
	}
	return id
}
