package analysis_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
	"lunar/internal/source"
)

var opts51 = analysis.Options{Version: dialect.Lua51}

func analyze(t *testing.T, text string) *analysis.Session {
	t.Helper()
	s, err := analysis.Analyze(context.Background(), "test.lua", text, opts51)
	require.NoError(t, err)
	return s
}

// analyzeAtBar parses text with the cursor at the single '|' in it.
func analyzeAtBar(t *testing.T, text string) *analysis.Session {
	t.Helper()
	pos, clean := cursorPosition(t, text)
	s, err := analysis.AnalyzeAt(context.Background(), "test.lua", clean, pos, opts51)
	require.NoError(t, err)
	return s
}

func cursorPosition(t *testing.T, text string) (source.Position, string) {
	t.Helper()
	off := strings.IndexByte(text, '|')
	require.GreaterOrEqual(t, off, 0, "no cursor in %q", text)
	before := text[:off]
	line := strings.Count(before, "\n")
	col := off - (strings.LastIndexByte(before, '\n') + 1)
	return source.Position{Line: uint32(line), Column: uint32(col)}, before + text[off+1:]
}

func labels(items []analysis.CompletionItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func byLabel(items []analysis.CompletionItem) map[string]analysis.CompletionItem {
	out := make(map[string]analysis.CompletionItem, len(items))
	for _, it := range items {
		out[it.Label] = it
	}
	return out
}
