package diag

import (
	"lunar/internal/source"
)

// SourceLunar is the Source of diagnostics produced by this module.
const SourceLunar = "lunar"

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	// Source names the producer; empty means SourceLunar.
	Source string
	// Tag carries an external tool's own code, e.g. "W211".
	Tag string
}

// Producer returns Source with the default applied.
func (d Diagnostic) Producer() string {
	if d.Source == "" {
		return SourceLunar
	}
	return d.Source
}

// DisplayCode returns Tag when present, otherwise the Code ID.
func (d Diagnostic) DisplayCode() string {
	if d.Tag != "" {
		return d.Tag
	}
	return d.Code.ID()
}
