package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunar/internal/dialect"
	"lunar/internal/format"
	"lunar/internal/parser"
)

func formatString(t *testing.T, src string, opt format.Options) string {
	t.Helper()
	out, err := format.Source("fmt.lua", src, opt)
	require.NoError(t, err)
	return out
}

func TestReindentBlocks(t *testing.T) {
	src := "local function f(a)\n" +
		"if a then\n" +
		"return 1\n" +
		"  elseif a == 2 then\n" +
		"        return 2\n" +
		"else\n" +
		"return 3\n" +
		"end\n" +
		"end\n"
	want := "local function f(a)\n" +
		"  if a then\n" +
		"    return 1\n" +
		"  elseif a == 2 then\n" +
		"    return 2\n" +
		"  else\n" +
		"    return 3\n" +
		"  end\n" +
		"end\n"
	assert.Equal(t, want, formatString(t, src, format.Options{IndentSize: 2}))
}

func TestLoopsAndTables(t *testing.T) {
	src := "for i = 1, 3 do\nwhile x do\nrepeat\ny()\nuntil z\nend\nend\n" +
		"local t = {\na = 1,\nb = {\nc = 2,\n},\n}\n"
	want := "for i = 1, 3 do\n" +
		"\twhile x do\n" +
		"\t\trepeat\n" +
		"\t\t\ty()\n" +
		"\t\tuntil z\n" +
		"\tend\n" +
		"end\n" +
		"local t = {\n" +
		"\ta = 1,\n" +
		"\tb = {\n" +
		"\t\tc = 2,\n" +
		"\t},\n" +
		"}\n"
	assert.Equal(t, want, formatString(t, src, format.Options{UseTabs: true}))
}

func TestOpenersOnOneLineIndentOnce(t *testing.T) {
	src := "foo(function()\nbar()\nend)\ncall({\nx = 1,\n})\n"
	want := "foo(function()\n    bar()\nend)\ncall({\n    x = 1,\n})\n"
	assert.Equal(t, want, formatString(t, src, format.Options{}))
}

func TestWhitespaceCleanup(t *testing.T) {
	src := "\n\nlocal a = 1   \n\n\n\nlocal b = 2\t\n\n\n"
	want := "local a = 1\n\nlocal b = 2\n"
	assert.Equal(t, want, formatString(t, src, format.Options{}))
}

func TestCommaSpacing(t *testing.T) {
	assert.Equal(t, "local a, b = f(x, y, z)\n", formatString(t, "local a ,b = f(x,y ,  z)\n", format.Options{}))
	assert.Equal(t, "local t = {1, 2,}\n", formatString(t, "local t = {1,2,}\n", format.Options{}))
}

func TestCommentsKept(t *testing.T) {
	src := "-- header   \nif x then\n-- inside\n--[[ block\n   keeps   \n]] y()\nend -- tail\n"
	want := "-- header\nif x then\n    -- inside\n    --[[ block\n   keeps   \n]] y()\nend -- tail\n"
	assert.Equal(t, want, formatString(t, src, format.Options{}))
}

func TestLongStringUntouched(t *testing.T) {
	src := "local s = [[\n  line one   \n\n\n  line two\n]]\nif x then\ny = [==[\nz]==]\nend\n"
	want := "local s = [[\n  line one   \n\n\n  line two\n]]\nif x then\n    y = [==[\nz]==]\nend\n"
	assert.Equal(t, want, formatString(t, src, format.Options{}))
}

func TestQuoteStyle(t *testing.T) {
	src := `local a, b, c = 'x', "y", 'it"s'` + "\n"
	assert.Equal(t, `local a, b, c = "x", "y", 'it"s'`+"\n", formatString(t, src, format.Options{QuoteStyle: format.QuoteDouble}))
	assert.Equal(t, `local a, b, c = 'x', 'y', 'it"s'`+"\n", formatString(t, src, format.Options{QuoteStyle: format.QuoteSingle}))
	assert.Equal(t, src, formatString(t, src, format.Options{}))
}

func TestCRLFPreserved(t *testing.T) {
	src := "if x then\r\ny()\r\nend\r\n"
	assert.Equal(t, "if x then\r\n    y()\r\nend\r\n", formatString(t, src, format.Options{}))
}

func TestShebangKept(t *testing.T) {
	src := "#!/usr/bin/env lua\nprint(1)\n"
	assert.Equal(t, src, formatString(t, src, format.Options{}))
}

func TestIdempotent(t *testing.T) {
	src := "local t={a=1,\nb=function(x,y)\nreturn x..y end}\n\n\n-- c\nreturn t"
	once := formatString(t, src, format.Options{})
	assert.Equal(t, once, formatString(t, once, format.Options{}))
}

func TestRefusesSyntaxError(t *testing.T) {
	_, err := format.Source("bad.lua", "local x = \n", format.Options{})
	se, ok := parser.AsSyntaxError(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, uint32(2), se.Line)
}

func TestVersionSpecificSyntax(t *testing.T) {
	src := "local x = a // b\n"
	_, err := format.Source("v.lua", src, format.Options{})
	require.Error(t, err)
	assert.Equal(t, src, formatString(t, src, format.Options{Version: dialect.Lua53}))
}

func TestParseQuoteStyle(t *testing.T) {
	q, ok := format.ParseQuoteStyle("Double")
	assert.True(t, ok)
	assert.Equal(t, format.QuoteDouble, q)
	_, ok = format.ParseQuoteStyle("backtick")
	assert.False(t, ok)
}

func TestLongLines(t *testing.T) {
	text := "short\n" + "x = '" + "привет мир" + "'\n\tlonger line\n"
	got := format.LongLines(text, format.Options{LineWidth: 12, IndentSize: 4})
	assert.Equal(t, []format.LongLine{{Line: 1, Width: 16}, {Line: 2, Width: 15}}, got)
}
