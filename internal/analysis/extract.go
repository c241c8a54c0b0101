package analysis

import (
	"strings"

	"lunar/internal/ast"
)

// resolveName maps a declaration target to (name, container):
//
//	x        -> ("x", "")
//	a.x, a:x -> ("x", "a")
//	a.b.x    -> ("x", "")
//
// Anything else (index expressions, calls) has no name.
func resolveName(tree *ast.Tree, id ast.NodeID) (name, container string) {
	switch tree.Kind(id) {
	case ast.Identifier:
		name, _ = tree.Name(id)
		return name, ""
	case ast.MemberExpression:
		m, _ := tree.Member(id)
		name, _ = tree.Name(m.Identifier)
		if tree.Kind(m.Base) == ast.Identifier {
			container, _ = tree.Name(m.Base)
		}
		return name, container
	}
	return "", ""
}

// extractor turns declaration nodes into symbols relative to a cursor scope.
type extractor struct {
	tree      *ast.Tree
	scopes    *Scopes
	nodeScope []ScopeID
	global    ScopeID
	cursor    ScopeID // NoScopeID: запрос без курсора, параметры не собираем
	out       []Symbol
}

func (e *extractor) symbol(kind SymbolKind, id ast.NodeID, scope ScopeID) Symbol {
	node := e.tree.Get(id)
	return Symbol{
		Kind:   kind,
		Span:   node.Span,
		Range:  e.tree.Range(id),
		Node:   id,
		Scope:  scope,
		Global: scope == e.global,
		Outer:  e.cursor.IsValid() && scope != e.cursor,
	}
}

// node extracts every symbol declared by one node; unknown shapes yield nothing.
func (e *extractor) node(id ast.NodeID, scope ScopeID) {
	switch e.tree.Kind(id) {
	case ast.LocalStatement, ast.AssignmentStatement:
		e.assignment(id, scope)
	case ast.FunctionDeclaration:
		e.function(id, scope)
	}
}

func (e *extractor) assignment(id ast.NodeID, scope ScopeID) {
	data, _ := e.tree.Assign(id)
	fnValue := len(data.Init) == 1 && e.tree.Kind(data.Init[0]) == ast.FunctionDeclaration
	for _, v := range data.Variables {
		name, container := resolveName(e.tree, v)
		if name == "" {
			continue
		}
		sym := e.symbol(SymbolVariable, v, scope)
		sym.Name = name
		sym.Container = container
		sym.FunctionValue = fnValue
		e.out = append(e.out, sym)
	}
}

func (e *extractor) function(id ast.NodeID, scope ScopeID) {
	fn, _ := e.tree.Function(id)
	name, container := resolveName(e.tree, fn.Identifier)

	sym := e.symbol(SymbolFunction, id, scope)
	sym.Name = name
	sym.Container = container
	sym.Display = functionDisplay(name, container, e.paramNames(fn))
	e.out = append(e.out, sym)

	if !e.cursor.IsValid() {
		return
	}
	for _, p := range fn.Params {
		if e.tree.Kind(p) != ast.Identifier {
			continue
		}
		pscope := e.scopeOf(p)
		if !e.scopes.IsAncestorOrSelf(pscope, e.cursor) {
			continue
		}
		param := e.symbol(SymbolParameter, p, pscope)
		param.Name, _ = e.tree.Name(p)
		e.out = append(e.out, param)
	}
}

func (e *extractor) paramNames(fn *ast.FunctionData) []string {
	names := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		if name, ok := e.tree.Name(p); ok {
			names = append(names, name)
		}
	}
	return names
}

func (e *extractor) scopeOf(id ast.NodeID) ScopeID {
	if int(id) >= len(e.nodeScope) {
		return NoScopeID
	}
	return e.nodeScope[id]
}

// functionDisplay renders `function [container:]name(p1, p2)`.
func functionDisplay(name, container string, params []string) string {
	var sb strings.Builder
	sb.WriteString("function")
	if name != "" {
		sb.WriteByte(' ')
		if container != "" {
			sb.WriteString(container)
			sb.WriteByte(':')
		}
		sb.WriteString(name)
	}
	sb.WriteByte('(')
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')
	return sb.String()
}
