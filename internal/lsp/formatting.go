package lsp

import (
	"encoding/json"

	"lunar/internal/format"
	"lunar/internal/parser"
	"lunar/internal/source"
)

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	snap, ok := s.snapshotFor(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	edits, err := formatEdits(snap.path, snap.text, s.currentSettings().format)
	if err != nil {
		if _, ok := parser.AsSyntaxError(err); ok {
			// документ с ошибкой не форматируем, диагностика уже опубликована
			return s.sendResponse(msg.ID, []textEdit{})
		}
		s.logf("formatting failed: %v", err)
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.sendResponse(msg.ID, edits)
}

// formatEdits formats text and converts the difference into editor edits.
func formatEdits(path, text string, opt format.Options) ([]textEdit, error) {
	formatted, err := format.Source(path, text, opt)
	if err != nil {
		return nil, err
	}
	edits, err := format.Edits(text, formatted)
	if err != nil {
		return nil, err
	}
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	out := make([]textEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, textEdit{
			Range:   rangeForByteRange(file, e.Range),
			NewText: e.NewText,
		})
	}
	return out, nil
}

func (s *Server) handleRangeFormatting(msg *rpcMessage) error {
	var params documentRangeFormattingParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	snap, ok := s.snapshotFor(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	file := source.NewFile(snap.path, []byte(snap.text), source.FileVirtual)
	rng := source.Range{
		Start: file.Position(offsetForPositionInFile(file, params.Range.Start)),
		End:   file.Position(offsetForPositionInFile(file, params.Range.End)),
	}
	out := []textEdit{}
	for _, e := range format.RangeEdits(snap.text, rng, s.currentSettings().format) {
		out = append(out, textEdit{Range: rangeForByteRange(file, e.Range), NewText: e.NewText})
	}
	return s.sendResponse(msg.ID, out)
}
