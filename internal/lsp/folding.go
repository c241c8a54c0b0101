package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/lua"
)

const (
	foldingKindComment = "comment"
	foldingKindRegion  = "region"
)

// foldable lists the node types of the tree-sitter Lua grammar that open a
// fold. Both "function f" and "local function f" are function_statement;
// anonymous functions are function.
var foldable = map[string]string{
	"function_statement": foldingKindRegion,
	"function":           foldingKindRegion,
	"do_statement":       foldingKindRegion,
	"while_statement":    foldingKindRegion,
	"repeat_statement":   foldingKindRegion,
	"if_statement":       foldingKindRegion,
	"for_statement":      foldingKindRegion,
	"tableconstructor":   foldingKindRegion,
	"table_argument":     foldingKindRegion,
	"comment":            foldingKindComment,
}

// closers are the tokens that end a region; the fold stops on the row above.
var closers = map[string]bool{
	"end":          true,
	"function_end": true,
	"do_end":       true,
	"for_end":      true,
	"while_end":    true,
	"until":        true,
	"}":            true,
}

// foldEnd returns the last folded row of a region node.
func foldEnd(n *sitter.Node) int {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		if c := n.Child(i); c != nil && closers[c.Type()] {
			return int(c.StartPoint().Row) - 1
		}
	}
	return int(n.EndPoint().Row) - 1
}

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	snap, ok := s.snapshotFor(canonicalURI(params.TextDocument.URI))
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	ranges, err := buildFoldingRanges(s.baseCtx, []byte(snap.text))
	if err != nil {
		s.logf("folding failed: %v", err)
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, ranges)
}

// buildFoldingRanges parses with tree-sitter, which recovers from syntax
// errors, so folds stay available while the buffer does not parse.
func buildFoldingRanges(ctx context.Context, content []byte) ([]foldingRange, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lua.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	ranges := []foldingRange{}
	seen := make(map[[2]int]bool)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if kind, ok := foldable[n.Type()]; ok {
			start := int(n.StartPoint().Row)
			end := int(n.EndPoint().Row)
			// закрывающая строка (end, }, until) остаётся видимой
			if kind == foldingKindRegion {
				end = foldEnd(n)
			}
			key := [2]int{start, end}
			if end > start && !seen[key] {
				seen[key] = true
				ranges = append(ranges, foldingRange{StartLine: start, EndLine: end, Kind: kind})
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].StartLine == ranges[j].StartLine {
			return ranges[i].EndLine < ranges[j].EndLine
		}
		return ranges[i].StartLine < ranges[j].StartLine
	})
	return ranges, nil
}
