package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/dialect"
	"lunar/internal/lexer"
	"lunar/internal/source"
	"lunar/internal/token"
)

func classify(t *testing.T, src string) dialect.Classification {
	t.Helper()
	ev := dialect.NewEvidence()
	file := source.NewFile("detect.lua", []byte(src), source.FileVirtual)
	lx := lexer.New(file, lexer.Options{Version: dialect.Lua53, Evidence: ev})
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		require.NotEqual(t, token.Invalid, tok.Kind, "lex error in %q", src)
	}
	return dialect.Classifier{}.Classify(ev)
}

func TestClassifyPlain51(t *testing.T) {
	c := classify(t, "local t = {} for i = 1, #t do print(t[i] .. 'x') end")
	assert.Equal(t, dialect.Lua51, c.Minimum)
	assert.True(t, c.Satisfies(dialect.Lua51))
}

func TestClassifyGotoAndLabels(t *testing.T) {
	c := classify(t, "goto done\n::done::")
	assert.Equal(t, dialect.Lua52, c.Minimum)
	assert.Equal(t, 2, c.Counts[dialect.Lua52])
	assert.False(t, c.Satisfies(dialect.Lua51))
}

func TestClassifyFieldNamedGotoIsNotEvidence(t *testing.T) {
	c := classify(t, "x = t.goto")
	assert.Equal(t, dialect.Lua51, c.Minimum)
}

func TestClassifyBitwise(t *testing.T) {
	c := classify(t, "x = a // 2\ny = a & b")
	assert.Equal(t, dialect.Lua53, c.Minimum)
	assert.Equal(t, dialect.Lua53, c.Strongest.Needs)
	assert.Contains(t, c.Strongest.Reason, "//")
}

func TestClassifyEscapes(t *testing.T) {
	c := classify(t, `s = "\x41"`)
	assert.Equal(t, dialect.Lua52, c.Minimum)
}

func TestClassifyLabelCountsOnce(t *testing.T) {
	c := classify(t, "::top:: ::again::")
	assert.Equal(t, 2, c.Counts[dialect.Lua52])
}

func TestClassifyUnicodeEscapeNeeds53(t *testing.T) {
	c := classify(t, `s = "\u{48}\x41"`)
	assert.Equal(t, dialect.Lua53, c.Minimum)
	assert.Equal(t, 1, c.Counts[dialect.Lua53])
	assert.Zero(t, c.Counts[dialect.Lua52])
	assert.Contains(t, c.Strongest.Reason, `\u{}`)
}

func TestNilEvidenceIsSafe(t *testing.T) {
	var ev *dialect.Evidence
	ev.Add(dialect.Hint{Needs: dialect.Lua53})
	assert.Nil(t, ev.Hints())
	assert.Equal(t, dialect.Lua51, dialect.Classifier{}.Classify(nil).Minimum)
}
