package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/analysis"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/source"
)

func TestStripPosition(t *testing.T) {
	assert.Equal(t, "'end' expected near '<eof>'", analysis.StripPosition("[3:1] 'end' expected near '<eof>'"))
	assert.Equal(t, "no prefix", analysis.StripPosition("no prefix"))
}

func TestIncompleteLocalDiagnostic(t *testing.T) {
	text := "local x = "
	s, diags, err := analysis.Check(context.Background(), "t.lua", text, opts51)
	require.NoError(t, err)
	assert.Nil(t, s)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, "<expression> expected near '<eof>'", d.Message)
	assert.NotContains(t, d.Message, "[")

	file := source.NewFile("t.lua", []byte(text), source.FileVirtual)
	rng := file.Range(d.Primary)
	assert.Equal(t, source.Position{Line: 0, Column: 10}, rng.Start)
	assert.Equal(t, source.Position{Line: 0, Column: 10}, rng.End)
}

func TestDiagnosticRunsToEndOfLine(t *testing.T) {
	text := "local a = 1\nlocal = 2 -- trailing\nx = 3"
	_, diags, err := analysis.Check(context.Background(), "t.lua", text, opts51)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	file := source.NewFile("t.lua", []byte(text), source.FileVirtual)
	rng := file.Range(diags[0].Primary)
	assert.Equal(t, source.Position{Line: 1, Column: 6}, rng.Start)
	assert.Equal(t, source.Position{Line: 1, Column: 21}, rng.End)
	assert.Equal(t, "<name> expected near '='", diags[0].Message)
}

func TestCheckCleanSource(t *testing.T) {
	s, diags, err := analysis.Check(context.Background(), "t.lua", "return 1", opts51)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.NotNil(t, s)
}

func TestVersionNoteOnNewerSyntax(t *testing.T) {
	_, diags, err := analysis.Check(context.Background(), "t.lua", "x = 7 // 2", analysis.Options{Version: dialect.Lua51})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Notes, 1)
	assert.Contains(t, diags[0].Notes[0].Msg, "requires Lua 5.3")
	assert.Contains(t, diags[0].Notes[0].Msg, "targets Lua 5.1")

	_, diags, err = analysis.Check(context.Background(), "t.lua", "x = 7 // 2", analysis.Options{Version: dialect.Lua53})
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestDetectVersion(t *testing.T) {
	c := analysis.DetectVersion("t.lua", "goto skip\n::skip::")
	assert.Equal(t, dialect.Lua52, c.Minimum)
}
