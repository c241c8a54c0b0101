package analysis

import (
	"context"
	"errors"
	"strconv"

	"lunar/internal/ast"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/trace"
)

// Options configure one analysis pass.
type Options struct {
	Version  dialect.Version
	Evidence *dialect.Evidence
}

// Session is the result of one completed pass. It is read-only after construction.
type Session struct {
	Tree    *ast.Tree
	Version dialect.Version
	// Word is the word under the cursor for completion passes.
	Word Word

	scopes      *Scopes
	nodeScope   []ScopeID
	entered     int
	cursor      ScopeID
	tableScoped bool
	tableName   string
	symbols     []Symbol
}

// Analyze parses text without a cursor. A syntax error is returned as
// *parser.SyntaxError and no session is produced.
func Analyze(ctx context.Context, path, text string, opts Options) (*Session, error) {
	return run(ctx, "analyze", path, opts, Word{}, func(popts parser.Options) (*ast.Tree, error) {
		return parser.ParseString(path, text, popts)
	})
}

// AnalyzeAt parses text with the cursor marker injected at pos.
// The word under the cursor is replaced, so it does not leak into the results.
func AnalyzeAt(ctx context.Context, path, text string, pos source.Position, opts Options) (*Session, error) {
	w := WordAt(text, pos)
	return run(ctx, "analyze_at", path, opts, w, func(popts parser.Options) (*ast.Tree, error) {
		s := parser.NewStream(path, popts)
		s.Write(text[:w.Start])
		s.Write(w.markerText())
		return s.End(text[w.End:])
	})
}

func run(ctx context.Context, name, path string, opts Options, w Word, feed func(parser.Options) (*ast.Tree, error)) (*Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, name)
	span.WithExtra("path", path)

	tracker := NewTracker()
	tree, err := feed(parser.Options{
		Version:  opts.Version,
		Hooks:    tracker,
		Evidence: opts.Evidence,
	})
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	if tracker.Current().IsValid() {
		err = errors.New("analysis: scope stack not empty after parse")
		span.End(err.Error())
		return nil, err
	}

	s := &Session{
		Tree:        tree,
		Version:     opts.Version,
		Word:        w,
		scopes:      tracker.scopes,
		nodeScope:   tracker.nodeScope,
		entered:     tracker.entered,
		cursor:      tracker.cursor,
		tableScoped: tracker.tableScoped,
		tableName:   tracker.tableName,
	}
	s.symbols = s.extractAll()
	span.WithExtra("scopes", strconv.Itoa(s.scopes.Len())).
		WithExtra("symbols", strconv.Itoa(len(s.symbols))).
		End("")
	return s, nil
}

// extractAll reads every declaration in creation order, without a cursor.
func (s *Session) extractAll() []Symbol {
	e := s.newExtractor(NoScopeID)
	for i := 1; i <= s.Tree.Len(); i++ {
		id := ast.NodeID(i) // #nosec G115 -- bounded by tree length
		if sc := s.ScopeOf(id); sc.IsValid() {
			e.node(id, sc)
		}
	}
	return e.out
}

func (s *Session) newExtractor(cursor ScopeID) *extractor {
	return &extractor{
		tree:      s.Tree,
		scopes:    s.scopes,
		nodeScope: s.nodeScope,
		global:    s.scopes.Global(),
		cursor:    cursor,
	}
}

// Scopes exposes the scope tree of the pass.
func (s *Session) Scopes() *Scopes { return s.scopes }

// EnteredScopes returns the number of scope-entry events of the pass.
func (s *Session) EnteredScopes() int { return s.entered }

// ScopeOf returns the scope a node was created in; Chunk has none.
func (s *Session) ScopeOf(id ast.NodeID) ScopeID {
	if int(id) >= len(s.nodeScope) {
		return NoScopeID
	}
	return s.nodeScope[id]
}

// Cursor returns the scope containing the marker, or NoScopeID.
func (s *Session) Cursor() ScopeID { return s.cursor }

// TableScoped reports whether the pass completes members of a table.
func (s *Session) TableScoped() bool { return s.tableScoped }

// TableName is the table whose fields are being completed; empty when the
// base of the member access is not a plain name.
func (s *Session) TableName() string { return s.tableName }

// File returns the parsed buffer (with markers for completion passes).
func (s *Session) File() *source.File { return s.Tree.File }
