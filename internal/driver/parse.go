package driver

import (
	"os"

	"lunar/internal/analysis"
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/source"
)

type ParseResult struct {
	File *source.File
	// Tree is partial when Bag holds a syntax error.
	Tree *ast.Tree
	Bag  *diag.Bag
}

// Parse reads and parses one file. A syntax error ends up in Bag, not in the
// returned error.
func Parse(path string, version dialect.Version, maxDiagnostics int) (*ParseResult, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)
	file := source.NewFile(path, data, 0)

	bag := diag.NewBag(maxDiagnostics)
	tree, err := parser.Parse(file, parser.Options{Version: version})
	if err != nil {
		se, ok := parser.AsSyntaxError(err)
		if !ok {
			return nil, err
		}
		d := analysis.SyntaxDiagnostic(text, se)
		if note, ok := analysis.VersionNote(path, text, version); ok {
			d.Notes = append(d.Notes, note)
		}
		bag.Add(d)
	}

	return &ParseResult{
		File: file,
		Tree: tree,
		Bag:  bag,
	}, nil
}
