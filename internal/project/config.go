package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"lunar/internal/dialect"
	"lunar/internal/format"
)

// Config is the decoded lunar.toml.
//
//	[lua]
//	version = "5.3"
//
//	[lint]
//	luacheck = "/usr/local/bin/luacheck"
//	prefer = true
//
//	[format]
//	indent_size = 2
//	use_tabs = false
//	line_width = 100
//	quote_style = "double"
//
//	[workspace]
//	exclude = ["vendor", "build"]
type Config struct {
	Lua       LuaConfig       `toml:"lua"`
	Lint      LintConfig      `toml:"lint"`
	Format    FormatConfig    `toml:"format"`
	Workspace WorkspaceConfig `toml:"workspace"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type LuaConfig struct {
	Version string `toml:"version"`
}

type LintConfig struct {
	Luacheck string `toml:"luacheck"`
	// Prefer publishes only luacheck's diagnostics when it reports any.
	Prefer bool `toml:"prefer"`
}

type FormatConfig struct {
	IndentSize int    `toml:"indent_size"`
	UseTabs    bool   `toml:"use_tabs"`
	LineWidth  int    `toml:"line_width"`
	QuoteStyle string `toml:"quote_style"`
}

type WorkspaceConfig struct {
	Exclude []string `toml:"exclude"`
}

// DefaultExcludes are never indexed.
var DefaultExcludes = []string{".git", "node_modules", ".luarocks", "lua_modules"}

// Default returns the configuration used when no lunar.toml exists.
func Default() Config {
	return Config{Lua: LuaConfig{Version: dialect.Default.String()}}
}

// Load decodes a lunar.toml. Unknown keys are an error so that typos do not
// go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if _, ok := format.ParseQuoteStyle(cfg.Format.QuoteStyle); !ok {
		return Config{}, fmt.Errorf("%s: invalid [format].quote_style %q (expected: auto|single|double)", path, cfg.Format.QuoteStyle)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest lunar.toml above startDir, or defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// LuaVersion falls back to 5.1 on a missing or invalid value.
func (c Config) LuaVersion() dialect.Version {
	return dialect.VersionOrDefault(c.Lua.Version)
}

func (c Config) FormatOptions() format.Options {
	quote, _ := format.ParseQuoteStyle(c.Format.QuoteStyle)
	return format.Options{
		IndentSize: c.Format.IndentSize,
		UseTabs:    c.Format.UseTabs,
		LineWidth:  c.Format.LineWidth,
		QuoteStyle: quote,
		Version:    c.LuaVersion(),
	}
}

// Excludes merges DefaultExcludes with [workspace].exclude.
func (c Config) Excludes() []string {
	out := slices.Clone(DefaultExcludes)
	for _, e := range c.Workspace.Exclude {
		if e = strings.TrimSpace(e); e != "" && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}
