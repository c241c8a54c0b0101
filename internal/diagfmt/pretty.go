package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lunar/internal/diag"
	"lunar/internal/source"
)

// Report groups the diagnostics of one file.
type Report struct {
	File *source.File
	Bag  *diag.Bag
}

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	code   *color.Color
	path   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, reports []Report, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	var b strings.Builder
	for _, r := range reports {
		if r.File == nil || r.Bag == nil {
			continue
		}
		path := displayPath(r.File.Path, opts.PathMode, opts.BaseDir)
		for _, d := range r.Bag.Items() {
			writeDiagnostic(&b, r.File, path, d, pal, opts)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDiagnostic(b *strings.Builder, file *source.File, path string, d diag.Diagnostic, pal palette, opts PrettyOpts) {
	lc := file.LineCol(d.Primary.Start)
	fmt.Fprintf(b, "%s:%d:%d: %s %s: %s",
		pal.path.Sprint(path), lc.Line, lc.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.DisplayCode()),
		d.Message)
	if producer := d.Producer(); producer != diag.SourceLunar {
		fmt.Fprintf(b, " [%s]", producer)
	}
	b.WriteByte('\n')
	writeSnippet(b, file, d.Primary, pal, opts)
	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nlc := file.LineCol(note.Span.Start)
		fmt.Fprintf(b, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), path, nlc.Line, nlc.Col, note.Msg)
	}
}

func writeSnippet(b *strings.Builder, file *source.File, span source.Span, pal palette, opts PrettyOpts) {
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	start := file.LineCol(span.Start)
	end := file.LineCol(span.End)
	ctx := uint32(max(opts.Context, 0)) // #nosec G115 -- non-negative
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := min(start.Line+ctx, file.LineCount())
	gutter := len(strconv.FormatUint(uint64(last), 10))

	for line := first; line <= last; line++ {
		raw := strings.TrimRight(file.GetLine(line), "\r")
		fmt.Fprintf(b, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, line), expandTabs(raw, tab))
		if line != start.Line {
			continue
		}
		col := min(int(start.Col-1), len(raw))
		endCol := len(raw)
		if end.Line == start.Line {
			endCol = min(int(end.Col-1), len(raw))
		}
		endCol = max(endCol, col)
		pad := runewidth.StringWidth(expandTabs(raw[:col], tab))
		width := max(runewidth.StringWidth(expandTabs(raw[:endCol], tab))-pad, 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(b, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}
}

// expandTabs replaces tabs with spaces up to the next tab stop, measuring
// wide characters the way a terminal draws them.
func expandTabs(s string, tab int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	width := 0
	for _, r := range s {
		if r == '\t' {
			n := tab - width%tab
			b.WriteString(strings.Repeat(" ", n))
			width += n
			continue
		}
		b.WriteRune(r)
		width += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Counts returns the number of errors and warnings across reports.
func Counts(reports []Report) (errors, warnings int) {
	for _, r := range reports {
		if r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}

// Summary prints "N errors, M warnings" when there is anything to report.
func Summary(w io.Writer, reports []Report, colored bool) error {
	errs, warns := Counts(reports)
	if errs == 0 && warns == 0 {
		return nil
	}
	pal := newPalette(colored)
	_, err := fmt.Fprintf(w, "%s, %s\n",
		pal.err.Sprint(plural(errs, "error")),
		pal.warn.Sprint(plural(warns, "warning")))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
