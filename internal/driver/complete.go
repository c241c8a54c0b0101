package driver

import (
	"context"
	"fmt"
	"os"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/source"
)

// Complete returns completion items at a 1-based line and column. A buffer
// with a syntax error yields no items and no error.
func Complete(ctx context.Context, path string, line, col int, version dialect.Version) ([]analysis.CompletionItem, error) {
	if line < 1 || col < 1 {
		return nil, fmt.Errorf("invalid position %d:%d (line and column are 1-based)", line, col)
	}
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pos := source.Position{
		Line:   uint32(line - 1), // #nosec G115 -- checked above
		Column: uint32(col - 1),  // #nosec G115 -- checked above
	}
	s, err := analysis.AnalyzeAt(ctx, path, string(data), pos, analysis.Options{Version: version})
	if err != nil {
		if _, ok := parser.AsSyntaxError(err); ok {
			return nil, nil
		}
		return nil, err
	}
	return s.Complete(s.Word.Text()), nil
}
