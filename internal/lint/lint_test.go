package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/diag"
	"lunar/internal/lint"
	"lunar/internal/source"
)

func TestParseLine(t *testing.T) {
	issue, ok := lint.ParseLine("stdin:3:7-9: (W211) unused variable 'x'")
	require.True(t, ok)
	assert.Equal(t, uint32(3), issue.Line)
	assert.Equal(t, "W211", issue.Tag())
	assert.Equal(t, "unused variable 'x'", issue.Message)
	assert.Equal(t, source.Range{
		Start: source.Position{Line: 2, Column: 6},
		End:   source.Position{Line: 2, Column: 9},
	}, issue.Range())

	_, ok = lint.ParseLine("Checking stdin                                    1 warning")
	assert.False(t, ok)
	_, ok = lint.ParseLine("")
	assert.False(t, ok)
}

func TestParseLineWithoutPrefix(t *testing.T) {
	issue, ok := lint.ParseLine(`C:\work\a.lua:1:1-3: (011) expected expression near 'end'`)
	require.True(t, ok)
	assert.Equal(t, "011", issue.Tag())
	assert.Equal(t, "", issue.Prefix)
}

func TestParseOutputSeverities(t *testing.T) {
	text := "local x = 1\nprint(y)\n"
	output := "stdin:1:7-7: (W211) unused variable 'x'\r\n" +
		"stdin:2:7-7: (E113) accessing undefined variable 'y'\n" +
		"stdin:2:1-5: (5) note\n" +
		"\n" +
		"Total: 1 warning / 1 error in 1 file\n"

	diags := lint.ParseOutput("a.lua", text, output)
	require.Len(t, diags, 3)

	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	assert.Equal(t, diag.LintWarning, diags[0].Code)
	assert.Equal(t, "W211", diags[0].DisplayCode())
	assert.Equal(t, lint.Source, diags[0].Producer())
	assert.Equal(t, uint32(6), diags[0].Primary.Start)
	assert.Equal(t, uint32(7), diags[0].Primary.End)

	assert.Equal(t, diag.SevError, diags[1].Severity)
	assert.Equal(t, uint32(12+6), diags[1].Primary.Start)

	assert.Equal(t, diag.SevInfo, diags[2].Severity)
	assert.Equal(t, "5", diags[2].Tag)
}

func TestCombine(t *testing.T) {
	parse := []diag.Diagnostic{{Message: "parse"}}
	lints := []diag.Diagnostic{{Message: "lint"}}

	assert.Equal(t, lints, lint.Combine(true, parse, lints))
	assert.Equal(t, parse, lint.Combine(true, parse, nil))
	got := lint.Combine(false, parse, lints)
	require.Len(t, got, 2)
	assert.Equal(t, "parse", got[0].Message)
	assert.Equal(t, "lint", got[1].Message)
}

func TestLuacheckMissingIsDisabled(t *testing.T) {
	l := lint.NewLuacheck(lint.WithPath(filepath.Join(t.TempDir(), "no-such-luacheck")))
	assert.False(t, l.Available())
	_, err := l.Lint(context.Background(), "a.lua", "x = 1")
	assert.ErrorIs(t, err, lint.ErrDisabled)
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-", "--no-color", "--ranges", "--codes", "--filename=/w/a.lua"},
		lint.Args("/w/a.lua"))
}

// fakeLuacheck writes a shell script standing in for luacheck.
func fakeLuacheck(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "luacheck")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestLuacheckRunsOnStdin(t *testing.T) {
	bin := fakeLuacheck(t, `input=$(cat)
if [ "$input" != "local x = 1" ]; then exit 3; fi
echo "stdin:1:7-7: (W211) unused variable 'x' ($5)"
exit 1
`)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.lua")

	diags, err := lint.NewLuacheck(lint.WithPath(bin)).Lint(context.Background(), file, "local x = 1")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "unused variable 'x' (--filename="+file+")", diags[0].Message)
}

func TestLuacheckUnexpectedExit(t *testing.T) {
	bin := fakeLuacheck(t, "cat >/dev/null\necho boom >&2\nexit 4\n")

	_, err := lint.NewLuacheck(lint.WithPath(bin)).Lint(context.Background(), "a.lua", "x = 1")
	var exitErr *lint.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 4, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "boom")
}

func TestLuacheckCleanExit(t *testing.T) {
	bin := fakeLuacheck(t, "cat >/dev/null\nexit 0\n")

	diags, err := lint.NewLuacheck(lint.WithPath(bin)).Lint(context.Background(), "a.lua", "x = 1")
	require.NoError(t, err)
	assert.Empty(t, diags)
}
