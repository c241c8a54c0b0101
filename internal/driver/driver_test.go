package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/driver"
	"lunar/internal/format"
	"lunar/internal/lint"
	"lunar/internal/observ"
	"lunar/internal/project"
	"lunar/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.lua", "")
	b := writeFile(t, dir, "sub/b.lua", "")
	writeFile(t, dir, ".git/c.lua", "")
	writeFile(t, dir, "readme.txt", "")
	script := writeFile(t, dir, "script", "")

	files, err := driver.CollectFiles(context.Background(), []string{dir, a, script}, project.DefaultExcludes)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	want := []string{a, script, b}
	slices.Sort(want)
	if !slices.Equal(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCollectFilesEmpty(t *testing.T) {
	_, err := driver.CollectFiles(context.Background(), []string{t.TempDir()}, nil)
	if !errors.Is(err, driver.ErrNoSourceFiles) {
		t.Fatalf("err = %v, want ErrNoSourceFiles", err)
	}
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := driver.CollectFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.lua")}, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.lua", "local x = 1 -- c\n")
	res, err := driver.Tokenize(path, dialect.Lua51, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != 5 {
		t.Fatalf("got %d tokens, want 5", len(res.Tokens))
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("last token = %v, want EOF", last.Kind)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeReportsLexError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.lua", "local s = \"open\n")
	res, err := driver.Tokenize(path, dialect.Lua51, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a lexical error")
	}
	if got := res.Bag.Items()[0].Code; got != diag.LexUnterminatedString {
		t.Fatalf("code = %v, want LexUnterminatedString", got)
	}
}

func TestParseKeepsPartialTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.lua", "local a = 1\nlocal x = ")
	res, err := driver.Parse(path, dialect.Lua51, 10)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Tree == nil {
		t.Fatalf("expected a partial tree")
	}
	if !res.Bag.HasErrors() || res.Bag.Len() != 1 {
		t.Fatalf("diagnostics = %v, want one error", res.Bag.Items())
	}
	d := res.Bag.Items()[0]
	if d.Message != "<expression> expected near '<eof>'" {
		t.Fatalf("message = %q", d.Message)
	}
	if lc := res.File.LineCol(d.Primary.Start); lc.Line != 2 || lc.Col != 11 {
		t.Fatalf("position = %d:%d, want 2:11", lc.Line, lc.Col)
	}
}

type stubLinter struct {
	diags []diag.Diagnostic
	err   error
}

func (l stubLinter) Lint(context.Context, string, string) ([]diag.Diagnostic, error) {
	return l.diags, l.err
}

func warning(msg string) diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LintWarning, Message: msg, Source: "luacheck", Tag: "W211"}
}

func TestDiagnose(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lua", "local x = 1\nreturn x\n")
	bad := writeFile(t, dir, "bad.lua", "local x = ")

	timer := observ.NewTimer()
	results, err := driver.Diagnose(context.Background(), []string{good, bad}, driver.DiagnoseOptions{
		Version: dialect.Lua51,
		Jobs:    2,
		Timer:   timer,
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(results) != 2 || results[0].Path != good || results[1].Path != bad {
		t.Fatalf("results out of order: %+v", results)
	}
	if results[0].Bag.Len() != 0 {
		t.Fatalf("good.lua: unexpected diagnostics %v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Fatalf("bad.lua: expected an error")
	}
	if !driver.HasErrors(results) {
		t.Fatalf("HasErrors = false")
	}
	if n := len(timer.Report().Phases); n != 4 {
		t.Fatalf("timer phases = %d, want 4", n)
	}
}

func TestDiagnoseLinterOptions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "w.lua", "local unused = 1\n")
	linter := stubLinter{diags: []diag.Diagnostic{warning("unused variable 'unused'")}}

	tests := []struct {
		name     string
		opts     driver.DiagnoseOptions
		wantLen  int
		wantSev  diag.Severity
		hasError bool
	}{
		{"plain", driver.DiagnoseOptions{Linter: linter}, 1, diag.SevWarning, false},
		{"ignore warnings", driver.DiagnoseOptions{Linter: linter, IgnoreWarnings: true}, 0, 0, false},
		{"warnings as errors", driver.DiagnoseOptions{Linter: linter, WarningsAsErrors: true}, 1, diag.SevError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := driver.Diagnose(context.Background(), []string{path}, tt.opts)
			if err != nil {
				t.Fatalf("Diagnose: %v", err)
			}
			bag := results[0].Bag
			if bag.Len() != tt.wantLen {
				t.Fatalf("len = %d, want %d", bag.Len(), tt.wantLen)
			}
			if tt.wantLen > 0 && bag.Items()[0].Severity != tt.wantSev {
				t.Fatalf("severity = %v, want %v", bag.Items()[0].Severity, tt.wantSev)
			}
			if bag.HasErrors() != tt.hasError {
				t.Fatalf("HasErrors = %v", bag.HasErrors())
			}
		})
	}
}

func TestDiagnoseDropsRepeatedFindings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "d.lua", "local unused = 1\n")
	w := warning("unused variable 'unused'")
	results, err := driver.Diagnose(context.Background(), []string{path}, driver.DiagnoseOptions{
		Linter: stubLinter{diags: []diag.Diagnostic{w, w}},
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if n := results[0].Bag.Len(); n != 1 {
		t.Fatalf("len = %d, want 1: %v", n, results[0].Bag.Items())
	}
}

func TestDiagnoseDisabledLinter(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x.lua", "return 1\n")
	results, err := driver.Diagnose(context.Background(), []string{path}, driver.DiagnoseOptions{
		Linter: stubLinter{err: lint.ErrDisabled},
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !results[0].LinterDisabled {
		t.Fatalf("LinterDisabled = false")
	}
}

func TestDiagnoseLinterFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x.lua", "return 1\n")
	boom := errors.New("boom")
	_, err := driver.Diagnose(context.Background(), []string{path}, driver.DiagnoseOptions{
		Linter: stubLinter{err: boom},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !strings.Contains(err.Error(), "x.lua") {
		t.Fatalf("error %q does not name the file", err)
	}
}

func TestDiagnoseDetect(t *testing.T) {
	path := writeFile(t, t.TempDir(), "v.lua", "local x = 7 // 2\n")
	results, err := driver.Diagnose(context.Background(), []string{path}, driver.DiagnoseOptions{
		Version: dialect.Lua53,
		Detect:  true,
	})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	got := results[0].Detected
	if got == nil || got.Minimum != dialect.Lua53 {
		t.Fatalf("Detected = %+v, want minimum 5.3", got)
	}
	items := results[0].Bag.Items()
	if len(items) != 1 || items[0].Severity != diag.SevInfo || items[0].Code != diag.SynVersionFeature {
		t.Fatalf("diagnostics = %+v, want one version info", items)
	}
	if !strings.HasPrefix(items[0].Message, "requires Lua 5.3: ") {
		t.Fatalf("message = %q", items[0].Message)
	}
}

func TestFormatPaths(t *testing.T) {
	dir := t.TempDir()
	src := "if x then\ny()\nend\n"
	want := "if x then\n    y()\nend\n"
	path := writeFile(t, dir, "f.lua", src)
	clean := writeFile(t, dir, "clean.lua", want)

	results, err := driver.FormatPaths(context.Background(), []string{path, clean}, driver.FormatOptions{Check: true, Diff: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("changed = %v/%v, want true/false", results[0].Changed, results[1].Changed)
	}
	if !strings.Contains(results[0].Diff, "+    y()") {
		t.Fatalf("diff missing added line:\n%s", results[0].Diff)
	}
	if data, _ := os.ReadFile(path); string(data) != src {
		t.Fatalf("check mode modified the file")
	}

	results, err = driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{Options: format.Options{}})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Err != nil || !results[0].Changed {
		t.Fatalf("result = %+v", results[0])
	}
	if data, _ := os.ReadFile(path); string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
}

func TestFormatPathsStdoutAndErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f.lua", "do\nx()\nend\n")
	broken := writeFile(t, dir, "broken.lua", "local = ")

	results, err := driver.FormatPaths(context.Background(), []string{broken, path}, driver.FormatOptions{
		Stdout:  true,
		Options: format.Options{IndentSize: 2},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Err == nil {
		t.Fatalf("broken.lua: expected an error")
	}
	if got := string(results[1].Formatted); got != "do\n  x()\nend\n" {
		t.Fatalf("formatted = %q", got)
	}
	if data, _ := os.ReadFile(path); string(data) != "do\nx()\nend\n" {
		t.Fatalf("stdout mode modified the file")
	}
}

func TestFormatPathsLongLines(t *testing.T) {
	path := writeFile(t, t.TempDir(), "l.lua", "local s = \""+strings.Repeat("x", 30)+"\"\n")
	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{
		Check:   true,
		Options: format.Options{LineWidth: 20},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results[0].LongLines) != 1 || results[0].LongLines[0].Line != 0 {
		t.Fatalf("long lines = %+v", results[0].LongLines)
	}
}

func TestSymbols(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.lua", "function f(p) local inner = p end\nlocal top = 1\n")
	broken := writeFile(t, dir, "broken.lua", "local = ")

	names := func(res driver.SymbolsResult) []string {
		out := make([]string, len(res.Symbols))
		for i, s := range res.Symbols {
			out[i] = s.Name
		}
		slices.Sort(out)
		return out
	}

	results, err := driver.Symbols(context.Background(), []string{path, broken}, dialect.Lua51, false)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	if got := names(results[0]); !slices.Equal(got, []string{"f", "top"}) {
		t.Fatalf("symbols = %v", got)
	}
	if results[1].Err == nil || len(results[1].Symbols) != 0 {
		t.Fatalf("broken.lua: %+v", results[1])
	}

	results, err = driver.Symbols(context.Background(), []string{path}, dialect.Lua51, true)
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	if got := names(results[0]); !slices.Equal(got, []string{"f", "inner", "top"}) {
		t.Fatalf("all symbols = %v", got)
	}
}

func TestComplete(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.lua", "local alpha = 1\nlocal function alpine() end\nlocal x = al")

	items, err := driver.Complete(context.Background(), path, 3, 13, dialect.Lua51)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	slices.Sort(labels)
	if !slices.Equal(labels, []string{"alpha", "alpine"}) {
		t.Fatalf("labels = %v", labels)
	}

	if _, err := driver.Complete(context.Background(), path, 0, 1, dialect.Lua51); err == nil {
		t.Fatalf("expected an error for line 0")
	}
}

func TestCompleteOnSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.lua", "local = 1\nal")
	items, err := driver.Complete(context.Background(), path, 2, 3, dialect.Lua51)
	if err != nil || len(items) != 0 {
		t.Fatalf("items = %v, err = %v; want none", items, err)
	}
}
