package lsp

import (
	"encoding/json"

	"lunar/internal/dialect"
	"lunar/internal/format"
	"lunar/internal/project"
)

// settings are the effective lua.* options. Client values override
// lunar.toml, which overrides the defaults.
type settings struct {
	version    dialect.Version
	luacheck   string
	preferLint bool
	format     format.Options
	excludes   []string
}

func settingsFromConfig(cfg project.Config) settings {
	return settings{
		version:    cfg.LuaVersion(),
		luacheck:   cfg.Lint.Luacheck,
		preferLint: cfg.Lint.Prefer,
		format:     cfg.FormatOptions(),
		excludes:   cfg.Excludes(),
	}
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("invalid configuration: %v", err)
		return nil
	}
	if s.applySettings(params.Settings) {
		s.rescheduleAll()
	}
	return nil
}

// applySettings merges client settings and reports whether anything
// affecting diagnostics changed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var incoming lspSettings
	if err := json.Unmarshal(raw, &incoming); err != nil {
		s.logf("invalid lua settings: %v", err)
		return false
	}
	lua := incoming.Lua

	s.mu.Lock()
	s.clientSettings = append(s.clientSettings, lua)
	prev := s.settings
	next := s.mergeSettings(prev, lua)
	if lua.Trace != nil {
		s.traceLSP = *lua.Trace
	}
	s.settings = next
	index := s.index
	s.mu.Unlock()

	versionChanged := next.version != prev.version
	if versionChanged && index != nil {
		index.SetVersion(next.version)
		s.rebuildIndex()
	}
	return versionChanged || next.luacheck != prev.luacheck || next.preferLint != prev.preferLint
}

// mergeSettings overlays the values the client sent on base.
func (s *Server) mergeSettings(base settings, lua luaSettings) settings {
	next := base
	if lua.TargetVersion != nil {
		// неизвестная версия откатывается к 5.1
		next.version = dialect.VersionOrDefault(*lua.TargetVersion)
		next.format.Version = next.version
	}
	if lua.LuacheckPath != nil {
		next.luacheck = *lua.LuacheckPath
	}
	if lua.PreferLuaCheckErrors != nil {
		next.preferLint = *lua.PreferLuaCheckErrors
	}
	if v := lua.Format.IndentSize; v != nil && *v > 0 {
		next.format.IndentSize = *v
	}
	if v := lua.Format.UseTabs; v != nil {
		next.format.UseTabs = *v
	}
	if v := lua.Format.LineWidth; v != nil && *v > 0 {
		next.format.LineWidth = *v
	}
	if v := lua.Format.QuoteStyle; v != nil {
		if q, ok := format.ParseQuoteStyle(*v); ok {
			next.format.QuoteStyle = q
		} else {
			s.logf("unknown lua.format.quoteStyle %q, keeping %s", *v, base.format.QuoteStyle)
		}
	}
	return next
}

func (s *Server) currentSettings() settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}
