package diagfmt

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"lunar/internal/source"
)

// LocationJSON представляет местоположение в файле
type LocationJSON struct {
	File      string `json:"file" yaml:"file"`
	StartByte uint32 `json:"start_byte" yaml:"start_byte"`
	EndByte   uint32 `json:"end_byte" yaml:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" yaml:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" yaml:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку
type NoteJSON struct {
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// DiagnosticJSON представляет диагностику в JSON/YAML формате
type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Source   string       `json:"source" yaml:"source"`
	Message  string       `json:"message" yaml:"message"`
	Location LocationJSON `json:"location" yaml:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
}

func makeLocation(file *source.File, span source.Span, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:      displayPath(file.Path, opts.PathMode, opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		start, end := file.LineCol(span.Start), file.LineCol(span.End)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(reports []Report, opts JSONOpts) DiagnosticsOutput {
	diagnostics := make([]DiagnosticJSON, 0)
	for _, r := range reports {
		if r.File == nil || r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			if opts.Max > 0 && len(diagnostics) >= opts.Max {
				break
			}
			out := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.DisplayCode(),
				Source:   d.Producer(),
				Message:  d.Message,
				Location: makeLocation(r.File, d.Primary, opts),
			}
			if opts.IncludeNotes && len(d.Notes) > 0 {
				out.Notes = make([]NoteJSON, len(d.Notes))
				for j, note := range d.Notes {
					out.Notes[j] = NoteJSON{
						Message:  note.Msg,
						Location: makeLocation(r.File, note.Span, opts),
					}
				}
			}
			diagnostics = append(diagnostics, out)
		}
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
	}
}

// JSON форматирует диагностики в JSON.
func JSON(w io.Writer, reports []Report, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(reports, opts))
}

// YAML форматирует диагностики в YAML с теми же полями, что и JSON.
func YAML(w io.Writer, reports []Report, opts JSONOpts) error {
	return encodeYAML(w, BuildDiagnosticsOutput(reports, opts))
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
