package lsp

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"lunar/internal/analysis"
	"lunar/internal/diag"
	"lunar/internal/lint"
	"lunar/internal/source"
	"lunar/internal/trace"
)

const (
	severityError       = 1
	severityWarning     = 2
	severityInformation = 3
)

// scheduleDiagnostics restarts the debounce timer of one document. Only the
// pass started by the last change may publish.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	doc.seq++
	seq := doc.seq
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, seq)
	})
}

// rescheduleAll reruns diagnostics of every open document, e.g. after the
// Lua version changed.
func (s *Server) rescheduleAll() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	sort.Strings(uris)
	for _, uri := range uris {
		s.scheduleDiagnostics(uri)
	}
}

func (s *Server) isLatest(uri string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return ok && doc.seq == seq
}

func (s *Server) runDiagnostics(uri string, seq uint64) {
	snap, ok := s.snapshotFor(uri)
	if !ok || snap.seq != seq {
		return
	}
	cfg := s.currentSettings()

	span := trace.Begin(s.tracer, trace.ScopeRequest, "diagnostics", 0)
	span.WithExtra("uri", uri).WithExtra("seq", strconv.FormatUint(seq, 10))
	defer span.End("")
	ctx := trace.WithTracer(span.Context(s.baseCtx), s.tracer)

	session, parseDiags, err := analysis.Check(ctx, snap.path, snap.text, analysis.Options{Version: cfg.version})
	if err != nil {
		// не синтаксическая ошибка: рассинхронизация парсера и трекера
		s.logf("analysis of %s failed: %v", uri, err)
		return
	}

	var lintDiags []diag.Diagnostic
	if linter := s.linterFor(cfg); linter != nil && snap.path != "" {
		lintDiags, err = linter.Lint(ctx, snap.path, snap.text)
		if err != nil && !errors.Is(err, lint.ErrDisabled) && ctx.Err() == nil {
			s.logf("luacheck: %v", err)
		}
	}
	all := lint.Combine(cfg.preferLint, parseDiags, lintDiags)

	if !s.isLatest(uri, seq) {
		if s.currentTrace() {
			s.logf("discard diagnostics: uri=%s seq=%d", uri, seq)
		}
		return
	}
	s.keepSession(uri, seq, session)

	s.mu.Lock()
	index := s.index
	s.mu.Unlock()
	if index != nil && snap.path != "" {
		index.SetOverlay(ctx, snap.path, snap.text)
	}

	file := source.NewFile(snap.path, []byte(snap.text), source.FileVirtual)
	list := s.lspDiagnostics(uri, file, all)
	s.publishDiagnostics(uri, seq, snap.version, list)
}

func (s *Server) linterFor(cfg settings) lint.Linter {
	if s.linter != nil {
		return s.linter
	}
	if cfg.luacheck == "" {
		return nil
	}
	return lint.NewLuacheck(lint.WithPath(cfg.luacheck))
}

func (s *Server) lspDiagnostics(uri string, file *source.File, diags []diag.Diagnostic) []lspDiagnostic {
	if len(diags) > s.maxDiagnostics {
		diags = diags[:s.maxDiagnostics]
	}
	out := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		item := lspDiagnostic{
			Range:    rangeForSpan(file, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.DisplayCode(),
			Source:   d.Producer(),
			Message:  d.Message,
		}
		for _, note := range d.Notes {
			item.RelatedInformation = append(item.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: rangeForSpan(file, note.Span)},
				Message:  note.Msg,
			})
		}
		out = append(out, item)
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return severityError
	case diag.SevWarning:
		return severityWarning
	default:
		return severityInformation
	}
}

func (s *Server) publishDiagnostics(uri string, seq uint64, version int, list []lspDiagnostic) {
	s.mu.Lock()
	if doc, ok := s.docs[uri]; !ok || doc.seq != seq {
		s.mu.Unlock()
		return
	}
	if len(list) > 0 {
		s.published[uri] = struct{}{}
	} else {
		delete(s.published, uri)
	}
	s.mu.Unlock()

	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
	if s.currentTrace() {
		s.logf("publishDiagnostics: uri=%s version=%d seq=%d diags=%d", uri, version, seq, len(list))
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	if len(s.published) == 0 {
		s.mu.Unlock()
		return
	}
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	uris := make([]string, 0, len(prev))
	for uri := range prev {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
