package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"lunar/internal/ast"
	"lunar/internal/source"
)

// ASTNodeOutput is one node in JSON output.
type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Range    source.Range    `json:"range"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// nodeLabel returns the detail printed next to a node kind: a name, a
// literal, an operator or the member indexer.
func nodeLabel(tree *ast.Tree, id ast.NodeID) string {
	if name, ok := tree.Name(id); ok {
		return name
	}
	if lit, ok := tree.Literal(id); ok {
		return lit.Raw
	}
	if op, ok := tree.Op(id); ok {
		return op.Operator
	}
	if m, ok := tree.Member(id); ok {
		return string(m.Indexer)
	}
	if fn, ok := tree.Function(id); ok && fn.IsLocal {
		return "local"
	}
	return ""
}

// FormatASTPretty prints the tree with box-drawing guides:
//
//	Chunk 1:1-2:1
//	└─ LocalStatement 1:1-1:12
//	   ├─ Identifier x 1:7-1:8
//	   └─ NumericLiteral 1 1:11-1:12
func FormatASTPretty(w io.Writer, tree *ast.Tree) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	var b strings.Builder
	writeNode(&b, tree, tree.Root, "", "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNode(b *strings.Builder, tree *ast.Tree, id ast.NodeID, lead, childPrefix string) {
	n := tree.Get(id)
	start, end := tree.File.LineCol(n.Span.Start), tree.File.LineCol(n.Span.End)
	b.WriteString(lead)
	b.WriteString(n.Kind.String())
	if label := nodeLabel(tree, id); label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	fmt.Fprintf(b, " %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)

	children := tree.Children(id)
	for i, c := range children {
		if i == len(children)-1 {
			writeNode(b, tree, c, childPrefix+"└─ ", childPrefix+"   ")
		} else {
			writeNode(b, tree, c, childPrefix+"├─ ", childPrefix+"│  ")
		}
	}
}

// FormatASTJSON writes the tree as nested JSON objects.
func FormatASTJSON(w io.Writer, tree *ast.Tree) error {
	if tree == nil || !tree.Root.IsValid() {
		return fmt.Errorf("empty tree")
	}
	return encodeJSON(w, buildNodeOutput(tree, tree.Root))
}

func buildNodeOutput(tree *ast.Tree, id ast.NodeID) ASTNodeOutput {
	out := ASTNodeOutput{
		Kind:  tree.Kind(id).String(),
		Range: tree.Range(id),
		Text:  nodeLabel(tree, id),
	}
	for _, c := range tree.Children(id) {
		out.Children = append(out.Children, buildNodeOutput(tree, c))
	}
	return out
}
