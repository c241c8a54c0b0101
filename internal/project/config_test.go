package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lunar/internal/dialect"
	"lunar/internal/format"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[lua]
version = "5.3"

[lint]
luacheck = "/opt/luacheck"
prefer = true

[format]
indent_size = 2
quote_style = "single"

[workspace]
exclude = ["vendor", ".git"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LuaVersion() != dialect.Lua53 {
		t.Fatalf("version = %v", cfg.LuaVersion())
	}
	if !cfg.Lint.Prefer || cfg.Lint.Luacheck != "/opt/luacheck" {
		t.Fatalf("lint = %+v", cfg.Lint)
	}
	opts := cfg.FormatOptions()
	if opts.IndentSize != 2 || opts.QuoteStyle != format.QuoteSingle || opts.Version != dialect.Lua53 {
		t.Fatalf("format options = %+v", opts)
	}
	excl := cfg.Excludes()
	if got := strings.Join(excl, ","); got != ".git,node_modules,.luarocks,lua_modules,vendor" {
		t.Fatalf("excludes = %s", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lua]\nversoin = \"5.2\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "lua.versoin") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsQuoteStyle(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[format]\nquote_style = \"smart\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestInvalidVersionFallsBack(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lua]\nversion = \"5.4\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LuaVersion() != dialect.Lua51 {
		t.Fatalf("version = %v, want 5.1", cfg.LuaVersion())
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[lua]\nversion = \"5.2\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.LuaVersion() != dialect.Lua52 {
		t.Fatalf("version = %v", cfg.LuaVersion())
	}
	if gotRoot, ok, _ := FindProjectRoot(nested); !ok || gotRoot != root {
		t.Fatalf("root = %q, %v", gotRoot, ok)
	}
}

func TestPathWithin(t *testing.T) {
	root := filepath.FromSlash("/w/proj")
	cases := map[string]bool{
		"/w/proj":          true,
		"/w/proj/a/b.lua":  true,
		"/w/projector":     false,
		"/w/other/x.lua":   false,
		"/w/proj/../x.lua": false,
	}
	for p, want := range cases {
		if got := PathWithin(root, filepath.FromSlash(p)); got != want {
			t.Errorf("PathWithin(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestCombineDependsOnParts(t *testing.T) {
	h := HashText("x = 1")
	if Combine(h, "5.1") == Combine(h, "5.3") {
		t.Fatalf("version must change the key")
	}
	if Combine(h, "ab", "c") == Combine(h, "a", "bc") {
		t.Fatalf("parts must be delimited")
	}
}
