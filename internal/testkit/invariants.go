// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"fmt"

	"lunar/internal/ast"
)

// CheckSpanInvariants walks a parsed tree and verifies:
// 1) the root exists and its span lies within the file content
// 2) every span is well-formed (start <= end)
// 3) every child span is contained in its parent's span
func CheckSpanInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Get(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Span.End > tree.File.Len() {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, tree.File.Len())
	}

	var err error
	var check func(id ast.NodeID)
	check = func(id ast.NodeID) {
		n := tree.Get(id)
		if n.Span.End < n.Span.Start {
			err = fmt.Errorf("%s node %d has inverted span %v", n.Kind, id, n.Span)
			return
		}
		for _, c := range tree.Children(id) {
			if err != nil {
				return
			}
			cn := tree.Get(c)
			if cn == nil {
				err = fmt.Errorf("%s node %d has a dangling child %d", n.Kind, id, c)
				return
			}
			if cn.Span.Start < n.Span.Start || cn.Span.End > n.Span.End {
				err = fmt.Errorf("%s node %d span %v is outside parent %s span %v", cn.Kind, c, cn.Span, n.Kind, n.Span)
				return
			}
			check(c)
		}
	}
	check(tree.Root)
	return err
}
