package analysis

import (
	"lunar/internal/ast"
	"lunar/internal/source"
)

// SymbolKind classifies a declaration.
type SymbolKind uint8

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "Variable"
	case SymbolFunction:
		return "Function"
	case SymbolParameter:
		return "FunctionParameter"
	default:
		return "invalid"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k SymbolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Symbol is a declaration read back from the tree. Name is empty for
// anonymous functions. Display is set for functions only.
type Symbol struct {
	Kind      SymbolKind
	Name      string
	Display   string
	Container string
	Span      source.Span
	Range     source.Range

	Global bool // declared in the global scope
	Outer  bool // declared in an ancestor of the cursor scope
	// FunctionValue marks a variable initialized with a single function expression.
	FunctionValue bool

	Node  ast.NodeID
	Scope ScopeID
}

// Detail is the short hint shown next to a completion item.
func (s *Symbol) Detail() string {
	switch {
	case s.Display != "":
		return s.Display
	case s.Global:
		return "(global)"
	case s.Kind == SymbolParameter:
		return "(parameter)"
	case s.Outer:
		return "(outer)"
	default:
		return "(local)"
	}
}
