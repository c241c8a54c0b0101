package format

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"

	"lunar/internal/source"
)

type EditKind uint8

const (
	EditInsert EditKind = iota + 1
	EditDelete
	EditReplace
)

func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "insert"
	case EditDelete:
		return "delete"
	case EditReplace:
		return "replace"
	}
	return "unknown"
}

// TextEdit replaces Range of the original buffer with NewText.
type TextEdit struct {
	Kind    EditKind     `json:"kind"`
	Range   source.Range `json:"range"`
	NewText string       `json:"newText"`
}

// noEOL marks a last line without a trailing newline, so that it differs
// from the same line with one.
const noEOL = "\x00"

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + noEOL + "\n"
	}
	return lines
}

// Diff renders a unified diff between two buffers, empty when equal.
func Diff(path, original, formatted string, context int) (string, error) {
	if original == formatted {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(formatted),
		FromFile: path,
		ToFile:   path,
		Context:  context,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("format: diff %s: %w", path, err)
	}
	return strings.ReplaceAll(out, noEOL, ""), nil
}

// Edits computes the line edits turning original into formatted: runs of
// removed lines become deletions, runs of added lines insertions, and a
// deletion directly followed by an insertion a replacement.
func Edits(original, formatted string) ([]TextEdit, error) {
	if original == formatted {
		return nil, nil
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(formatted),
		FromFile: "a",
		ToFile:   "b",
		Context:  0,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("format: diff: %w", err)
	}
	if text == "" {
		return nil, nil
	}
	fd, err := diff.ParseFileDiff([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("format: parse diff: %w", err)
	}

	// go-diff drops the '\r' of CRLF lines
	eol := "\n"
	if strings.Contains(formatted, "\r\n") {
		eol = "\r\n"
	}
	file := source.NewFile("", []byte(original), source.FileVirtual)
	var edits []TextEdit
	for _, h := range fd.Hunks {
		edits = append(edits, hunkEdits(file, h, eol)...)
	}
	return edits, nil
}

func hunkEdits(file *source.File, h *diff.Hunk, eol string) []TextEdit {
	// нулевая длина: вставка после строки OrigStartLine
	line := int(h.OrigStartLine)
	if h.OrigLines > 0 {
		line--
	}

	var (
		out      []TextEdit
		delStart = -1
		delCount int
		ins      strings.Builder
		insAt    = -1
	)
	flush := func() {
		switch {
		case delStart >= 0 && insAt >= 0:
			out = append(out, TextEdit{Kind: EditReplace, Range: lineRange(file, delStart, delCount), NewText: ins.String()})
		case delStart >= 0:
			out = append(out, TextEdit{Kind: EditDelete, Range: lineRange(file, delStart, delCount)})
		case insAt >= 0:
			out = append(out, TextEdit{Kind: EditInsert, Range: lineRange(file, insAt, 0), NewText: ins.String()})
		}
		delStart, delCount, insAt = -1, 0, -1
		ins.Reset()
	}

	for _, raw := range strings.SplitAfter(string(h.Body), "\n") {
		if raw == "" {
			continue
		}
		body := strings.TrimSuffix(raw[1:], "\n")
		switch raw[0] {
		case '-':
			if insAt >= 0 {
				flush()
			}
			if delStart < 0 {
				delStart = line
			}
			delCount++
			line++
		case '+':
			if insAt < 0 {
				insAt = line
			}
			if strings.HasSuffix(body, noEOL) {
				ins.WriteString(strings.TrimSuffix(body, noEOL))
			} else {
				ins.WriteString(body)
				ins.WriteString(eol)
			}
		default:
			flush()
			line++
		}
	}
	flush()
	return out
}

// lineRange covers count whole lines from a zero-based line; ranges past
// the end are clamped to the end of the buffer.
func lineRange(file *source.File, line, count int) source.Range {
	start := file.LineStart(uint32(line))       // #nosec G115 -- line count fits uint32
	end := file.LineStart(uint32(line + count)) // #nosec G115 -- line count fits uint32
	return source.Range{Start: file.Position(start), End: file.Position(end)}
}

// Apply applies non-overlapping edits to text.
func Apply(text string, edits []TextEdit) string {
	file := source.NewFile("", []byte(text), source.FileVirtual)
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		return int(file.Offset(b.Range.Start)) - int(file.Offset(a.Range.Start))
	})
	out := text
	for _, e := range sorted {
		start := file.Offset(e.Range.Start)
		end := file.Offset(e.Range.End)
		out = out[:start] + e.NewText + out[end:]
	}
	return out
}

// RangeEdits answers range formatting requests. Formatting a fragment out
// of context would change its indentation, so no edits are produced.
func RangeEdits(text string, rng source.Range, opt Options) []TextEdit {
	return []TextEdit{}
}
