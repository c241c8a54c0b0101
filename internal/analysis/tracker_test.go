package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/analysis"
	"lunar/internal/ast"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/source"
)

// checkingHooks wraps a Tracker and verifies parent links at creation time.
type checkingHooks struct {
	*analysis.Tracker
	t       *testing.T
	entries int
}

func (h *checkingHooks) EnterScope() error {
	parent := h.Current()
	h.entries++
	if err := h.Tracker.EnterScope(); err != nil {
		return err
	}
	assert.Equal(h.t, parent, h.Scopes().Parent(h.Current()), "parent must be the previous top of stack")
	return nil
}

func TestScopeCountMatchesEntryEvents(t *testing.T) {
	inputs := []string{
		"local x = 1",
		"function f(a) if a then return 1 elseif b then return 2 else return 3 end end",
		"for i = 1, 10 do while i do repeat local z = i until z end end",
		"local t = { f = function() do end end }",
		"for k, v in pairs(t) do print(k, v) end",
	}
	for _, input := range inputs {
		h := &checkingHooks{Tracker: analysis.NewTracker(), t: t}
		_, err := parser.ParseString("t.lua", input, parser.Options{Version: dialect.Lua51, Hooks: h})
		require.NoError(t, err, input)
		assert.Equal(t, h.entries, h.Scopes().Len(), input)
		assert.Equal(t, h.entries, h.Entered(), input)
		assert.False(t, h.Current().IsValid(), "stack must be empty after parse: %s", input)
	}
}

func TestGlobalScopeIsTheRoot(t *testing.T) {
	s := analyze(t, "local a = 1\ndo local b = 2 end")
	scopes := s.Scopes()
	global := scopes.Global()
	require.True(t, global.IsValid())
	assert.False(t, scopes.Parent(global).IsValid())
	assert.Equal(t, 2, scopes.Len())
	assert.Equal(t, 1, scopes.Get(scopes.Get(global).Children[0]).Depth)
}

func TestNestedLoopScopesChain(t *testing.T) {
	s := analyze(t, "for i = 1, 10 do while i do repeat local z = i until z end end")
	scopes := s.Scopes()
	// chunk, for, while, repeat
	require.Equal(t, 4, scopes.Len())
	id := scopes.Global()
	for depth := 1; depth < 4; depth++ {
		children := scopes.Get(id).Children
		require.Len(t, children, 1)
		id = children[0]
		assert.Equal(t, depth, scopes.Get(id).Depth)
	}
}

func TestChunkHasNoScope(t *testing.T) {
	s := analyze(t, "local a = 1")
	assert.False(t, s.ScopeOf(s.Tree.Root).IsValid())
}

func TestExitWithoutEnterIsUnderflow(t *testing.T) {
	tr := analysis.NewTracker()
	err := tr.ExitScope()
	require.ErrorIs(t, err, analysis.ErrScopeUnderflow)
}

func TestNodeOutsideScopeIsUnderflow(t *testing.T) {
	file := source.NewFile("t.lua", []byte("x"), source.FileVirtual)
	tree := ast.NewTree(file, 0)
	id := tree.NewIdentifier(source.Span{Start: 0, End: 1}, "x")

	tr := analysis.NewTracker()
	err := tr.NodeCreated(tree, id)
	require.ErrorIs(t, err, analysis.ErrScopeUnderflow)
	assert.Contains(t, err.Error(), "Identifier")
}

func TestUnderflowAbortsParse(t *testing.T) {
	h := &exitTwice{Tracker: analysis.NewTracker()}
	_, err := parser.ParseString("t.lua", "do end", parser.Options{Version: dialect.Lua51, Hooks: h})
	require.ErrorIs(t, err, analysis.ErrScopeUnderflow)
	_, isSyntax := parser.AsSyntaxError(err)
	assert.False(t, isSyntax)
}

// exitTwice desynchronizes the stack on purpose.
type exitTwice struct{ *analysis.Tracker }

func (h *exitTwice) ExitScope() error {
	if err := h.Tracker.ExitScope(); err != nil {
		return err
	}
	return h.Tracker.ExitScope()
}

func TestNoMarkerMeansNoCursor(t *testing.T) {
	s := analyze(t, "local __scope = 1\nfunction f(a) return a end")
	assert.False(t, s.Cursor().IsValid())
	assert.Empty(t, s.ScopeChain(""))
	assert.Empty(t, s.TableScope(""))
	assert.Empty(t, s.Complete(""))
}
