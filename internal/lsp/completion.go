package lsp

import (
	"context"
	"encoding/json"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/trace"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	snap, ok := s.snapshotFor(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	ctx := trace.WithTracer(s.baseCtx, s.tracer)
	items, err := buildCompletion(ctx, snap.path, snap.text, params.Position, s.currentSettings().version)
	if err != nil {
		s.logf("completion failed: %v", err)
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.sendResponse(msg.ID, items)
}

// buildCompletion runs a completion pass at pos. Text that does not parse
// with the marker in place yields no items.
func buildCompletion(ctx context.Context, path, text string, pos position, version dialect.Version) ([]completionItem, error) {
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	at := file.Position(offsetForPositionInFile(file, pos))
	session, err := analysis.AnalyzeAt(ctx, path, text, at, analysis.Options{Version: version})
	if err != nil {
		if _, ok := parser.AsSyntaxError(err); ok {
			return []completionItem{}, nil
		}
		return nil, err
	}
	found := session.Complete(session.Word.Text())
	items := make([]completionItem, 0, len(found))
	for _, it := range found {
		items = append(items, completionItem{
			Label:  it.Label,
			Kind:   int(it.Kind),
			Detail: it.Detail,
		})
	}
	return items, nil
}
