package lint

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"lunar/internal/diag"
	"lunar/internal/source"
)

// Source is the Source of luacheck diagnostics.
const Source = "luacheck"

// stdin:3:7-9: (W211) unused variable 'x'
var reportLine = regexp.MustCompile(`^.*:(\d+):(\d+)-(\d+): \(([EW]?)(\d+)\) (.*)$`)

// Issue is one parsed luacheck report line. Line, Column and EndColumn are
// luacheck's 1-based values; EndColumn is inclusive.
type Issue struct {
	Line      uint32
	Column    uint32
	EndColumn uint32
	Prefix    string
	Number    string
	Message   string
}

// Tag returns the luacheck code, e.g. "W211".
func (i Issue) Tag() string {
	return i.Prefix + i.Number
}

// Range returns the zero-based range (line-1, col-1)-(line-1, endcol).
func (i Issue) Range() source.Range {
	line := sub1(i.Line)
	return source.Range{
		Start: source.Position{Line: line, Column: sub1(i.Column)},
		End:   source.Position{Line: line, Column: i.EndColumn},
	}
}

func sub1(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}

// ParseLine parses one report line; lines that do not match are skipped.
func ParseLine(line string) (Issue, bool) {
	m := reportLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return Issue{}, false
	}
	ln, err1 := parseUint32(m[1])
	col, err2 := parseUint32(m[2])
	end, err3 := parseUint32(m[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return Issue{}, false
	}
	return Issue{
		Line:      ln,
		Column:    col,
		EndColumn: end,
		Prefix:    m[4],
		Number:    m[5],
		Message:   m[6],
	}, true
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[uint32](v)
}

// ParseOutput converts luacheck's report into diagnostics over text.
func ParseOutput(path, text, output string) []diag.Diagnostic {
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	var out []diag.Diagnostic
	sc := bufio.NewScanner(strings.NewReader(output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		issue, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		out = append(out, issue.Diagnostic(file))
	}
	return out
}

// Diagnostic maps the issue onto file. Columns past the end of the line are
// clamped to it.
func (i Issue) Diagnostic(file *source.File) diag.Diagnostic {
	r := i.Range()
	sev := diag.ParseSeverity(i.Prefix)
	return diag.Diagnostic{
		Severity: sev,
		Code:     diag.LintCode(sev),
		Message:  i.Message,
		Primary: source.Span{
			File:  file.ID,
			Start: file.Offset(r.Start),
			End:   file.Offset(r.End),
		},
		Source: Source,
		Tag:    i.Tag(),
	}
}
