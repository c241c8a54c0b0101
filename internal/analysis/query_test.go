package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/analysis"
	"lunar/internal/source"
)

func TestLocalRoundTrip(t *testing.T) {
	s := analyze(t, "local x = 1")
	syms := s.Global("")
	require.Len(t, syms, 1)
	sym := syms[0]
	assert.Equal(t, analysis.SymbolVariable, sym.Kind)
	assert.Equal(t, "x", sym.Name)
	assert.True(t, sym.Global)
	assert.Equal(t, source.Range{
		Start: source.Position{Line: 0, Column: 6},
		End:   source.Position{Line: 0, Column: 7},
	}, sym.Range)
}

func TestGlobalQueryIsIdempotent(t *testing.T) {
	s := analyze(t, "a = 1\nlocal function b() end\nc, d = 2, 3\nfunction M.e() end")
	first := s.Global("")
	second := s.Global("")
	assert.Equal(t, first, second)
	names := make([]string, len(first))
	for i, sym := range first {
		names[i] = sym.Name
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
}

func TestGlobalIgnoresNestedDeclarations(t *testing.T) {
	s := analyze(t, "function f(p) local inner = p end\nlocal top = 1")
	var names []string
	for _, sym := range s.Global("") {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{"f", "top"}, names)
}

func TestMethodDeclarationDisplay(t *testing.T) {
	s := analyze(t, "function Foo:bar(a, b) local c = a + b end")
	docs := s.DocumentSymbols()
	require.Len(t, docs, 1)
	assert.Equal(t, "bar", docs[0].Name)
	assert.Equal(t, "Foo", docs[0].Container)
	assert.Equal(t, analysis.SymbolFunction, docs[0].Kind)

	syms := s.Global("bar")
	require.Len(t, syms, 1)
	assert.Equal(t, "function Foo:bar(a, b)", syms[0].Display)
}

func TestFunctionDisplayShapes(t *testing.T) {
	s := analyze(t, "function plain(...) end\nfunction a.b.c(x) end\nlocal f = function(y) end")
	syms := s.Symbols()
	displays := map[string]string{}
	for _, sym := range syms {
		if sym.Kind == analysis.SymbolFunction {
			displays[sym.Name] = sym.Display
		}
	}
	assert.Equal(t, "function plain()", displays["plain"])
	// основание a.b не простое имя, контейнера нет
	assert.Equal(t, "function c(x)", displays["c"])
	assert.Equal(t, "function(y)", displays[""])
}

func TestDocumentSymbolsSkipAnonymous(t *testing.T) {
	s := analyze(t, "local handler = function() end\nregister(function() end)")
	docs := s.DocumentSymbols()
	require.Len(t, docs, 1)
	assert.Equal(t, "handler", docs[0].Name)
	assert.Equal(t, analysis.SymbolVariable, docs[0].Kind)
}

func TestWorkspaceSymbolsFilter(t *testing.T) {
	s := analyze(t, "function LoadConfig() end\nfunction saveConfig() end\nlocal other = 1")
	docs := s.WorkspaceSymbols("CONFIG")
	require.Len(t, docs, 2)
	assert.Equal(t, "LoadConfig", docs[0].Name)
	assert.Equal(t, "saveConfig", docs[1].Name)
}

func TestScopeChainParameterAndGlobal(t *testing.T) {
	src := `foobar = function() end
function f(foo)
  local bar = 1
  fo|
end`
	s := analyzeAtBar(t, src)
	require.True(t, s.Cursor().IsValid())
	assert.Equal(t, "fo", s.Word.Text())

	for _, q := range []string{"fo", "FO"} {
		items := byLabel(s.Complete(q))
		require.Len(t, items, 2, q)
		assert.Equal(t, "(parameter)", items["foo"].Detail)
		assert.Equal(t, analysis.CompletionProperty, items["foo"].Kind)
		assert.Equal(t, "(global)", items["foobar"].Detail)
		assert.Equal(t, analysis.CompletionFunction, items["foobar"].Kind)
	}
}

func TestScopeChainDetails(t *testing.T) {
	src := `local function outer(arg)
  local up = 1
  do
    local here = 2
    |
  end
end
function global_fn(x) end`
	s := analyzeAtBar(t, src)
	items := byLabel(s.Complete(""))

	assert.Equal(t, "(local)", items["here"].Detail)
	assert.Equal(t, "(outer)", items["up"].Detail)
	assert.Equal(t, "(parameter)", items["arg"].Detail)
	assert.Equal(t, "function outer(arg)", items["outer"].Detail)
	assert.Equal(t, "function global_fn(x)", items["global_fn"].Detail)
	assert.NotContains(t, items, "x", "parameters of functions not enclosing the cursor are hidden")
}

func TestScopeChainSkipsSiblingScopes(t *testing.T) {
	src := `do local hidden = 1 end
do
  local visible = 2
  |
end`
	s := analyzeAtBar(t, src)
	got := labels(s.Complete(""))
	assert.Contains(t, got, "visible")
	assert.NotContains(t, got, "hidden")
}

func TestCompletionWordIsReplaced(t *testing.T) {
	s := analyzeAtBar(t, "local alpha = 1\nlocal x = alp|ha")
	assert.Equal(t, "alpha", s.Word.Text())
	got := labels(s.Complete(s.Word.Text()))
	assert.Equal(t, []string{"alpha"}, got)
}

func TestTableFieldsFromConstructorAndAssignments(t *testing.T) {
	src := `local t = { a = 1, ["b"] = 2, [3] = 4, 5 }
t.c = function() end
function t.m(self) end
function f()
  t.|
end`
	s := analyzeAtBar(t, src)
	require.True(t, s.TableScoped())
	assert.Equal(t, "t", s.TableName())

	items := s.Complete("")
	assert.Equal(t, []string{"a", "b", "c", "m"}, labels(items))
	byName := byLabel(items)
	assert.Equal(t, analysis.CompletionFunction, byName["c"].Kind)
	assert.Equal(t, "function t:m(self)", byName["m"].Detail)
	assert.Equal(t, "(global)", byName["a"].Detail)
}

func TestTableScopeSameScopeShadowStops(t *testing.T) {
	src := `local t = { a = 1 }
function f()
  local t = {}
  local t = { x = 1 }
  t.|
end`
	s := analyzeAtBar(t, src)
	assert.Equal(t, []string{"x"}, labels(s.Complete("")))
}

func TestTableScopeOuterShadowDoesNotStop(t *testing.T) {
	src := `local t = { a = 1 }
do
  local t = { y = 2 }
  if true then
    t.|
  end
end`
	s := analyzeAtBar(t, src)
	assert.Equal(t, []string{"y", "a"}, labels(s.Complete("")))
}

func TestTableScopeMethodTrigger(t *testing.T) {
	src := `local obj = { meth = function() end, other = 1 }
obj:me|`
	s := analyzeAtBar(t, src)
	require.True(t, s.TableScoped())
	assert.Equal(t, "obj", s.TableName())
	assert.Equal(t, "me", s.Word.Text())
	assert.Equal(t, []string{"meth"}, labels(s.Complete(s.Word.Text())))
}

func TestTableScopeInsideExpression(t *testing.T) {
	src := `local cfg = { port = 1 }
print(cfg.|)`
	s := analyzeAtBar(t, src)
	assert.Equal(t, []string{"port"}, labels(s.Complete("")))
}

func TestTableScopeNestedBaseHasNoName(t *testing.T) {
	s := analyzeAtBar(t, "local a = { b = { c = 1 } }\nx = a.b.|")
	assert.True(t, s.TableScoped())
	assert.Empty(t, s.TableName())
	assert.Empty(t, s.Complete(""))
}
