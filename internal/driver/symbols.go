package driver

import (
	"context"
	"os"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
)

type SymbolsResult struct {
	Path    string
	Symbols []analysis.DocumentSymbol
	// Err holds a read or syntax error; Symbols is then empty.
	Err error
}

// Symbols lists the symbols of each file. With all set, declarations of
// nested scopes are included as well as globals.
func Symbols(ctx context.Context, files []string, version dialect.Version, all bool) ([]SymbolsResult, error) {
	results := make([]SymbolsResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := SymbolsResult{Path: path}
		// #nosec G304 -- path is provided by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		s, err := analysis.Analyze(ctx, path, string(data), analysis.Options{Version: version})
		switch {
		case err != nil:
			res.Err = err
		case all:
			res.Symbols = allSymbols(s)
		default:
			res.Symbols = s.DocumentSymbols()
		}
		results = append(results, res)
	}
	return results, nil
}

func allSymbols(s *analysis.Session) []analysis.DocumentSymbol {
	syms := s.Symbols()
	out := make([]analysis.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		if sym.Name == "" {
			continue
		}
		out = append(out, analysis.DocumentSymbol{
			Name:      sym.Name,
			Kind:      sym.Kind,
			Container: sym.Container,
			Span:      sym.Span,
			Range:     sym.Range,
		})
	}
	return out
}
