package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/lexer"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/token"
)

var positionPrefix = regexp.MustCompile(`^\[\d+:\d+\] (.*)$`)

// StripPosition removes a leading "[line:col] " from a parser message.
func StripPosition(msg string) string {
	if m := positionPrefix.FindStringSubmatch(msg); m != nil {
		return m[1]
	}
	return msg
}

// SyntaxDiagnostic converts a syntax error into a diagnostic that spans from
// the error position to the end of its line.
func SyntaxDiagnostic(text string, se *parser.SyntaxError) diag.Diagnostic {
	start := min(int(se.Span.Start), len(text))
	end := len(text)
	if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 {
		end = start + nl
	}
	if end > start && text[end-1] == '\r' {
		end--
	}
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     se.Code,
		Message:  StripPosition(se.Error()),
		Primary: source.Span{
			File:  se.Span.File,
			Start: uint32(start), // #nosec G115 -- bounded by text length
			End:   uint32(end),   // #nosec G115 -- bounded by text length
		},
		Source: diag.SourceLunar,
	}
}

// Check runs a plain pass and converts a syntax error into a diagnostic.
// The returned error is reserved for failures that are not about the text.
func Check(ctx context.Context, path, text string, opts Options) (*Session, []diag.Diagnostic, error) {
	s, err := Analyze(ctx, path, text, opts)
	if err == nil {
		return s, nil, nil
	}
	se, ok := parser.AsSyntaxError(err)
	if !ok {
		return nil, nil, err
	}
	d := SyntaxDiagnostic(text, se)
	if note, ok := VersionNote(path, text, opts.Version); ok {
		d.Notes = append(d.Notes, note)
	}
	return nil, []diag.Diagnostic{d}, nil
}

// DetectVersion tokenizes text with the newest grammar and classifies the
// version features it uses.
func DetectVersion(path, text string) dialect.Classification {
	ev := dialect.NewEvidence()
	file := source.NewFile(path, []byte(text), source.FileVirtual)
	lx := lexer.New(file, lexer.Options{Version: dialect.Lua53, Evidence: ev})
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	return dialect.Classifier{}.Classify(ev)
}

// VersionNote explains a syntax error caused by a too-old target version.
func VersionNote(path, text string, target dialect.Version) (diag.Note, bool) {
	c := DetectVersion(path, text)
	if c.Satisfies(target) {
		return diag.Note{}, false
	}
	return diag.Note{
		Span: c.Strongest.Span,
		Msg:  fmt.Sprintf("%s requires Lua %s; workspace targets Lua %s", c.Strongest.Reason, c.Minimum, target),
	}, true
}
