package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lunar/internal/dialect"
	"lunar/internal/lexer"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/token"
)

func TestFormatASTPretty(t *testing.T) {
	tree, err := parser.ParseString("t.lua", "local x = 1\nprint(x)\n", parser.Options{Version: dialect.Lua51})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, tree); err != nil {
		t.Fatalf("format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Chunk ",
		"├─ LocalStatement 1:1-1:12",
		"│  ├─ Identifier x 1:7-1:8",
		"│  └─ NumericLiteral 1 1:11-1:12",
		"└─ CallStatement",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	tree, err := parser.ParseString("t.lua", "return a.b", parser.Options{Version: dialect.Lua51})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, tree); err != nil {
		t.Fatalf("format: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if root.Kind != "Chunk" || len(root.Children) != 1 {
		t.Fatalf("unexpected root %+v", root)
	}
	ret := root.Children[0]
	if ret.Kind != "ReturnStatement" || len(ret.Children) != 1 || ret.Children[0].Kind != "MemberExpression" {
		t.Fatalf("unexpected return %+v", ret)
	}
	if ret.Children[0].Text != "." {
		t.Fatalf("member indexer missing: %+v", ret.Children[0])
	}
}

func lexAll(file *source.File) []token.Token {
	lx := lexer.New(file, lexer.Options{Version: dialect.Lua53})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return toks
		}
	}
}

func TestFormatTokens(t *testing.T) {
	file := source.NewFile("t.lua", []byte("-- c\nx = 1"), source.FileVirtual)
	toks := lexAll(file)

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, file); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.Contains(first, `"x" at 2:1-2:2 (leading: line-comment, newline)`) {
		t.Fatalf("unexpected first token line %q", first)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, file); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(toks) || out[0].Range.Start.Line != 1 {
		t.Fatalf("unexpected tokens %+v", out)
	}
}
