package lsp

import (
	"encoding/json"
	"os"
	"sort"

	"lunar/internal/analysis"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/trace"
)

const (
	symbolKindFunction = 12
	symbolKindVariable = 13
)

func symbolKind(kind analysis.SymbolKind) int {
	if kind == analysis.SymbolFunction {
		return symbolKindFunction
	}
	return symbolKindVariable
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	session, err := s.sessionFor(uri)
	if err != nil {
		s.logf("documentSymbol failed: %v", err)
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	if session == nil {
		return s.sendResponse(msg.ID, []symbolInformation{})
	}
	return s.sendResponse(msg.ID, documentSymbols(uri, session, session.DocumentSymbols()))
}

// sessionFor returns the last good session of a document. A document whose
// diagnostics have not run yet is analyzed now; a syntax error then means
// there is nothing to list.
func (s *Server) sessionFor(uri string) (*analysis.Session, error) {
	snap, ok := s.snapshotFor(uri)
	if !ok {
		return nil, nil
	}
	if snap.session != nil {
		return snap.session, nil
	}
	ctx := trace.WithTracer(s.baseCtx, s.tracer)
	session, err := analysis.Analyze(ctx, snap.path, snap.text, analysis.Options{Version: s.currentSettings().version})
	if err != nil {
		if _, ok := parser.AsSyntaxError(err); ok {
			return nil, nil
		}
		return nil, err
	}
	s.keepSession(uri, snap.seq, session)
	return session, nil
}

func documentSymbols(uri string, session *analysis.Session, syms []analysis.DocumentSymbol) []symbolInformation {
	file := session.File()
	out := make([]symbolInformation, 0, len(syms))
	for _, sym := range syms {
		out = append(out, symbolInformation{
			Name:          sym.Name,
			Kind:          symbolKind(sym.Kind),
			Location:      location{URI: uri, Range: rangeForSpan(file, sym.Span)},
			ContainerName: sym.Container,
		})
	}
	return out
}

func (s *Server) handleWorkspaceSymbol(msg *rpcMessage) error {
	var params workspaceSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	return s.sendResponse(msg.ID, s.workspaceSymbols(params.Query))
}

// workspaceSymbols searches the index and every open document the index
// does not cover.
func (s *Server) workspaceSymbols(query string) []symbolInformation {
	s.mu.Lock()
	index := s.index
	open := make(map[string]snapshot, len(s.docs))
	for uri, doc := range s.docs {
		open[doc.path] = snapshot{uri: uri, path: doc.path, text: doc.text, session: doc.session}
	}
	s.mu.Unlock()

	out := []symbolInformation{}
	covered := make(map[string]bool)
	if index != nil {
		files := make(map[string]*source.File)
		for _, sym := range index.Search(query) {
			covered[sym.Path] = true
			file, ok := files[sym.Path]
			if !ok {
				file = s.fileFor(sym.Path, open)
				files[sym.Path] = file
			}
			rng := lspRange{
				Start: position{Line: safeInt(sym.Range.Start.Line), Character: safeInt(sym.Range.Start.Column)},
				End:   position{Line: safeInt(sym.Range.End.Line), Character: safeInt(sym.Range.End.Column)},
			}
			if file != nil {
				rng = rangeForByteRange(file, sym.Range)
			}
			out = append(out, symbolInformation{
				Name:          sym.Name,
				Kind:          symbolKind(sym.Kind),
				Location:      location{URI: pathToURI(sym.Path), Range: rng},
				ContainerName: sym.Container,
			})
		}
	}

	paths := make([]string, 0, len(open))
	for path := range open {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		doc := open[path]
		if covered[path] || doc.session == nil {
			continue
		}
		if index != nil && index.Contains(path) {
			continue
		}
		out = append(out, documentSymbols(doc.uri, doc.session, doc.session.WorkspaceSymbols(query))...)
	}
	return out
}

// fileFor loads the text a workspace symbol was indexed from: the editor
// buffer when open, the disk copy otherwise.
func (s *Server) fileFor(path string, open map[string]snapshot) *source.File {
	if doc, ok := open[path]; ok {
		return source.NewFile(path, []byte(doc.text), source.FileVirtual)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return source.NewFile(path, data, 0)
}
