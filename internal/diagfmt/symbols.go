package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"lunar/internal/analysis"
	"lunar/internal/source"
)

// SymbolReport groups the document symbols of one file.
type SymbolReport struct {
	Path    string
	Symbols []analysis.DocumentSymbol
}

// SymbolJSON is one symbol in JSON/YAML output. Range is zero-based with
// byte columns.
type SymbolJSON struct {
	Name      string       `json:"name" yaml:"name"`
	Kind      string       `json:"kind" yaml:"kind"`
	Container string       `json:"container,omitempty" yaml:"container,omitempty"`
	File      string       `json:"file" yaml:"file"`
	Range     source.Range `json:"range" yaml:"range"`
}

// SymbolsOutput is the root of JSON/YAML symbol output.
type SymbolsOutput struct {
	Symbols []SymbolJSON `json:"symbols" yaml:"symbols"`
	Count   int          `json:"count" yaml:"count"`
}

// BuildSymbolsOutput flattens reports in order.
func BuildSymbolsOutput(reports []SymbolReport, mode PathMode, base string) SymbolsOutput {
	out := SymbolsOutput{Symbols: make([]SymbolJSON, 0)}
	for _, r := range reports {
		path := displayPath(r.Path, mode, base)
		for _, sym := range r.Symbols {
			out.Symbols = append(out.Symbols, SymbolJSON{
				Name:      sym.Name,
				Kind:      sym.Kind.String(),
				Container: sym.Container,
				File:      path,
				Range:     sym.Range,
			})
		}
	}
	out.Count = len(out.Symbols)
	return out
}

// SymbolsJSON writes symbols as JSON.
func SymbolsJSON(w io.Writer, reports []SymbolReport, mode PathMode, base string) error {
	return encodeJSON(w, BuildSymbolsOutput(reports, mode, base))
}

// SymbolsYAML writes symbols as YAML.
func SymbolsYAML(w io.Writer, reports []SymbolReport, mode PathMode, base string) error {
	return encodeYAML(w, BuildSymbolsOutput(reports, mode, base))
}

// SymbolsPretty prints one block per file:
//
//	main.lua
//	  Function  run     2:10
//	  Variable  after   1:21  (in run)
//
// Positions are 1-based.
func SymbolsPretty(w io.Writer, reports []SymbolReport, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pal.path.Sprint(displayPath(r.Path, opts.PathMode, opts.BaseDir)))
		b.WriteByte('\n')
		if len(r.Symbols) == 0 {
			b.WriteString("  (no symbols)\n")
			continue
		}
		nameWidth := 0
		for _, sym := range r.Symbols {
			nameWidth = max(nameWidth, runewidth.StringWidth(sym.Name))
		}
		for _, sym := range r.Symbols {
			kind := runewidth.FillRight(sym.Kind.String(), len("Function"))
			fmt.Fprintf(&b, "  %s  %s  %d:%d",
				pal.note.Sprint(kind),
				runewidth.FillRight(sym.Name, nameWidth),
				sym.Range.Start.Line+1, sym.Range.Start.Column+1)
			if sym.Container != "" {
				fmt.Fprintf(&b, "  %s", pal.code.Sprintf("(in %s)", sym.Container))
			}
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CompletionsPretty prints completion items as "label  kind  detail".
func CompletionsPretty(w io.Writer, items []analysis.CompletionItem) error {
	labelWidth := 0
	for _, it := range items {
		labelWidth = max(labelWidth, runewidth.StringWidth(it.Label))
	}
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "%s  %-8s  %s\n", runewidth.FillRight(it.Label, labelWidth), it.Kind, it.Detail)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CompletionsJSON writes completion items as a JSON array.
func CompletionsJSON(w io.Writer, items []analysis.CompletionItem) error {
	if items == nil {
		items = []analysis.CompletionItem{}
	}
	return encodeJSON(w, items)
}
