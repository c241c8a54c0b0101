package analysis

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"lunar/internal/ast"
)

// matcher is a case-insensitive substring filter. An empty query matches
// everything, a nameless symbol matches only the empty query.
type matcher struct {
	query string
	fold  cases.Caser
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.query = m.fold.String(query)
	return m
}

func (m *matcher) match(name string) bool {
	if m.query == "" {
		return true
	}
	if name == "" {
		return false
	}
	return strings.Contains(m.fold.String(name), m.query)
}

func filterSymbols(symbols []Symbol, query string, keep func(*Symbol) bool) []Symbol {
	m := newMatcher(query)
	out := make([]Symbol, 0, len(symbols))
	for i := range symbols {
		sym := &symbols[i]
		if keep != nil && !keep(sym) {
			continue
		}
		if m.match(sym.Name) {
			out = append(out, *sym)
		}
	}
	return out
}

// Symbols returns every declaration of the pass in creation order.
func (s *Session) Symbols() []Symbol {
	return slices.Clone(s.symbols)
}

// Global returns the symbols declared in the global scope. It does not
// depend on the cursor.
func (s *Session) Global(query string) []Symbol {
	return filterSymbols(s.symbols, query, func(sym *Symbol) bool { return sym.Global })
}

// ScopeChain returns the symbols visible from the cursor: the cursor scope
// first, then each ancestor up to the global scope. Parameters are included
// when their function encloses the cursor. Without a cursor it returns nil.
func (s *Session) ScopeChain(query string) []Symbol {
	if !s.cursor.IsValid() {
		return nil
	}
	e := s.newExtractor(s.cursor)
	for _, sc := range s.scopes.Chain(s.cursor) {
		for _, id := range s.scopes.Get(sc).Nodes {
			e.node(id, sc)
		}
	}
	return filterSymbols(e.out, query, nil)
}

// TableScope returns the known fields of the table being completed.
//
// The walk starts at the cursor scope and moves outwards. A scope yields
// `tbl.x = ...` targets, `function tbl.x()` declarations and the keys of
// `tbl = { ... }` constructors. When the cursor scope itself declares
// `local tbl`, that scope is finished and the walk stops there.
func (s *Session) TableScope(query string) []Symbol {
	if !s.cursor.IsValid() || s.tableName == "" {
		return nil
	}
	e := s.newExtractor(s.cursor)
	for _, sc := range s.scopes.Chain(s.cursor) {
		shadowed := false
		for _, id := range s.scopes.Get(sc).Nodes {
			switch s.Tree.Kind(id) {
			case ast.LocalStatement, ast.AssignmentStatement:
				if s.tableFields(e, id, sc) && sc == s.cursor {
					shadowed = true
				}
			case ast.FunctionDeclaration:
				s.tableMethod(e, id, sc)
			}
		}
		if shadowed {
			break
		}
	}
	return filterSymbols(e.out, query, nil)
}

// tableFields collects fields from one statement and reports whether it is a
// `local` declaration of the table itself.
func (s *Session) tableFields(e *extractor, id ast.NodeID, sc ScopeID) (declaresLocal bool) {
	tree := s.Tree
	data, _ := tree.Assign(id)
	for i, v := range data.Variables {
		name, container := resolveName(tree, v)
		switch tree.Kind(v) {
		case ast.MemberExpression:
			if container != s.tableName {
				continue
			}
			sym := e.symbol(SymbolVariable, v, sc)
			sym.Name = name
			sym.Container = container
			sym.FunctionValue = i < len(data.Init) && tree.Kind(data.Init[i]) == ast.FunctionDeclaration
			e.out = append(e.out, sym)
		case ast.Identifier:
			if name != s.tableName {
				continue
			}
			if tree.Kind(id) == ast.LocalStatement {
				declaresLocal = true
			}
			if i < len(data.Init) && tree.Kind(data.Init[i]) == ast.TableConstructorExpression {
				s.constructorKeys(e, data.Init[i], sc)
			}
		}
	}
	return declaresLocal
}

// constructorKeys emits `name = v` and `["name"] = v` fields; other shapes are skipped.
func (s *Session) constructorKeys(e *extractor, ctor ast.NodeID, sc ScopeID) {
	tree := s.Tree
	fields, _ := tree.List(ctor)
	for _, f := range fields {
		field, ok := tree.Field(f)
		if !ok {
			continue
		}
		var key string
		switch tree.Kind(f) {
		case ast.TableKeyString:
			key, _ = tree.Name(field.Key)
		case ast.TableKey:
			if lit, ok := tree.Literal(field.Key); ok && tree.Kind(field.Key) == ast.StringLiteral {
				key = lit.Value
			}
		}
		if key == "" {
			continue
		}
		sym := e.symbol(SymbolVariable, field.Key, sc)
		sym.Name = key
		sym.Container = s.tableName
		sym.FunctionValue = tree.Kind(field.Value) == ast.FunctionDeclaration
		e.out = append(e.out, sym)
	}
}

func (s *Session) tableMethod(e *extractor, id ast.NodeID, sc ScopeID) {
	fn, _ := s.Tree.Function(id)
	name, container := resolveName(s.Tree, fn.Identifier)
	if name == "" || container != s.tableName {
		return
	}
	sym := e.symbol(SymbolFunction, id, sc)
	sym.Name = name
	sym.Container = container
	sym.Display = functionDisplay(name, container, e.paramNames(fn))
	e.out = append(e.out, sym)
}
