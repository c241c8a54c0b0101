package parser

import "lunar/internal/ast"

// Hooks observes the parse as it happens. Scope events nest exactly like Lua
// blocks; NodeCreated fires once per node, children before parents.
// Any returned error aborts the parse and is returned from Parse unchanged.
type Hooks interface {
	EnterScope() error
	ExitScope() error
	NodeCreated(tree *ast.Tree, id ast.NodeID) error
}

// NopHooks ignores every event.
type NopHooks struct{}

func (NopHooks) EnterScope() error { return nil }
func (NopHooks) ExitScope() error { return nil }
func (NopHooks) NodeCreated(tree *ast.Tree, id ast.NodeID) error { return nil }
