package analysis

// CompletionKind mirrors the protocol's CompletionItemKind numbers.
type CompletionKind int

const (
	CompletionFunction CompletionKind = 3
	CompletionVariable CompletionKind = 6
	CompletionProperty CompletionKind = 10
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionFunction:
		return "function"
	case CompletionVariable:
		return "variable"
	case CompletionProperty:
		return "property"
	default:
		return "unknown"
	}
}

// CompletionItem is one rendered suggestion.
type CompletionItem struct {
	Label  string         `json:"label"`
	Kind   CompletionKind `json:"kind"`
	Detail string         `json:"detail"`
}

// CompletionKindOf classifies a symbol. Variables holding a function literal
// complete as functions.
func CompletionKindOf(sym *Symbol) CompletionKind {
	switch sym.Kind {
	case SymbolFunction:
		return CompletionFunction
	case SymbolParameter:
		return CompletionProperty
	default:
		if sym.FunctionValue {
			return CompletionFunction
		}
		return CompletionVariable
	}
}

// Render turns symbols into completion items, dropping nameless ones.
func Render(symbols []Symbol) []CompletionItem {
	items := make([]CompletionItem, 0, len(symbols))
	for i := range symbols {
		sym := &symbols[i]
		if sym.Name == "" {
			continue
		}
		items = append(items, CompletionItem{
			Label:  sym.Name,
			Kind:   CompletionKindOf(sym),
			Detail: sym.Detail(),
		})
	}
	return items
}

// Complete answers a completion pass: table fields after `.`/`:`, otherwise
// everything visible from the cursor.
func (s *Session) Complete(query string) []CompletionItem {
	if s.tableScoped {
		return Render(s.TableScope(query))
	}
	return Render(s.ScopeChain(query))
}
