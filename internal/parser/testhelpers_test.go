package parser

import (
	"fmt"
	"strings"
	"testing"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Tree, error) {
	t.Helper()
	return parseSourceWithOptions(t, input, Options{Version: dialect.Lua53})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Tree, error) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lua", []byte(input))
	return Parse(fs.Get(fileID), opts)
}

func mustParse(t *testing.T, input string) *ast.Tree {
	t.Helper()
	tree, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tree
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// recorder пишет события хуков в плоский список.
type recorder struct {
	events []string
	depth  int
	maxDep int
	failOn ast.Kind
}

func (r *recorder) EnterScope() error {
	r.depth++
	if r.depth > r.maxDep {
		r.maxDep = r.depth
	}
	r.events = append(r.events, "enter")
	return nil
}

func (r *recorder) ExitScope() error {
	r.depth--
	r.events = append(r.events, "exit")
	return nil
}

func (r *recorder) NodeCreated(tree *ast.Tree, id ast.NodeID) error {
	kind := tree.Kind(id)
	r.events = append(r.events, kind.String())
	if r.failOn != ast.KindInvalid && kind == r.failOn {
		return fmt.Errorf("stop at %s", kind)
	}
	return nil
}

func statementKinds(tree *ast.Tree) []ast.Kind {
	items, _ := tree.List(tree.Root)
	out := make([]ast.Kind, len(items))
	for i, id := range items {
		out[i] = tree.Kind(id)
	}
	return out
}
