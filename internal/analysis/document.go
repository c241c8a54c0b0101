package analysis

import "lunar/internal/source"

// DocumentSymbol is a global declaration listed in outlines and workspace search.
type DocumentSymbol struct {
	Name      string       `json:"name" yaml:"name"`
	Kind      SymbolKind   `json:"kind" yaml:"kind"`
	Container string       `json:"container,omitempty" yaml:"container,omitempty"`
	Span      source.Span  `json:"-" yaml:"-"`
	Range     source.Range `json:"range" yaml:"range"`
}

// DocumentSymbols lists named functions and variables of the global scope.
func (s *Session) DocumentSymbols() []DocumentSymbol {
	return documentSymbols(s.Global(""))
}

// WorkspaceSymbols is DocumentSymbols filtered by query.
func (s *Session) WorkspaceSymbols(query string) []DocumentSymbol {
	return documentSymbols(s.Global(query))
}

func documentSymbols(symbols []Symbol) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		if sym.Name == "" || sym.Kind == SymbolParameter {
			continue
		}
		out = append(out, DocumentSymbol{
			Name:      sym.Name,
			Kind:      sym.Kind,
			Container: sym.Container,
			Span:      sym.Span,
			Range:     sym.Range,
		})
	}
	return out
}

// FilterDocumentSymbols keeps the symbols whose name contains query,
// ignoring case.
func FilterDocumentSymbols(symbols []DocumentSymbol, query string) []DocumentSymbol {
	m := newMatcher(query)
	out := make([]DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		if m.match(sym.Name) {
			out = append(out, sym)
		}
	}
	return out
}
