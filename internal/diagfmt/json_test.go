package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lunar/internal/analysis"
	"lunar/internal/diag"
	"lunar/internal/source"
)

func sampleReports() []Report {
	text := "local a = 1\nlocal = 2\n"
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectToken,
		Message:  "<name> expected near '='",
		Primary:  source.Span{Start: 18, End: 19},
		Notes:    []diag.Note{{Span: source.Span{Start: 0, End: 5}, Msg: "n"}},
	})
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintWarning,
		Tag:      "W111",
		Source:   "luacheck",
		Message:  "setting non-standard global",
		Primary:  source.Span{Start: 6, End: 7},
	})
	return []Report{{File: source.NewFile("t.lua", []byte(text), 0), Bag: bag}}
}

func TestJSONPositionsAndNotes(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReports(), JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("unexpected count %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "SYN2002" || first.Source != "lunar" {
		t.Fatalf("unexpected diagnostic %+v", first)
	}
	loc := first.Location
	if loc.File != "t.lua" || loc.StartLine != 2 || loc.StartCol != 7 || loc.EndCol != 8 {
		t.Fatalf("unexpected location %+v", loc)
	}
	if len(first.Notes) != 1 || first.Notes[0].Location.StartLine != 1 {
		t.Fatalf("unexpected notes %+v", first.Notes)
	}
	if second := out.Diagnostics[1]; second.Code != "W111" || second.Source != "luacheck" {
		t.Fatalf("unexpected linter diagnostic %+v", second)
	}
}

func TestJSONWithoutPositionsAndMax(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReports(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("json: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "start_line") || strings.Contains(out, "notes") {
		t.Fatalf("positions and notes must be omitted:\n%s", out)
	}
	if !strings.Contains(out, `"count": 1`) {
		t.Fatalf("expected a truncated list:\n%s", out)
	}
}

func TestYAMLDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	if err := YAML(&buf, sampleReports(), JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"diagnostics:", "severity: ERROR", "code: SYN2002", "start_line: 2", "count: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestSymbolsRenderers(t *testing.T) {
	reports := []SymbolReport{{
		Path: "main.lua",
		Symbols: []analysis.DocumentSymbol{
			{Name: "run", Kind: analysis.SymbolFunction, Range: source.Range{Start: source.Position{Line: 1, Column: 9}}},
			{Name: "after", Kind: analysis.SymbolVariable, Container: "run", Range: source.Range{Start: source.Position{Line: 0, Column: 20}}},
		},
	}}

	var buf bytes.Buffer
	if err := SymbolsPretty(&buf, reports, PrettyOpts{}); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := "main.lua\n" +
		"  Function  run    2:10\n" +
		"  Variable  after  1:21  (in run)\n"
	if buf.String() != want {
		t.Fatalf("unexpected symbols:\n%q\nwant:\n%q", buf.String(), want)
	}

	buf.Reset()
	if err := SymbolsJSON(&buf, reports, PathModeAuto, ""); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out SymbolsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || out.Symbols[0].Kind != "Function" || out.Symbols[1].Container != "run" {
		t.Fatalf("unexpected output %+v", out)
	}

	buf.Reset()
	if err := SymbolsYAML(&buf, reports, PathModeAuto, ""); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "kind: Variable") || !strings.Contains(buf.String(), "container: run") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}

func TestCompletionsRenderers(t *testing.T) {
	items := []analysis.CompletionItem{
		{Label: "alpha", Kind: analysis.CompletionVariable, Detail: "(local)"},
		{Label: "f", Kind: analysis.CompletionFunction, Detail: "function f()"},
	}
	var buf bytes.Buffer
	if err := CompletionsPretty(&buf, items); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := "alpha  variable  (local)\nf      function  function f()\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if err := CompletionsJSON(&buf, nil); err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected an empty array, got %q", buf.String())
	}
}
