package lint

import "lunar/internal/diag"

// Combine merges parse and lint diagnostics. With preferLinter set and a
// non-empty lint result only the linter's diagnostics are kept.
func Combine(preferLinter bool, parse, lint []diag.Diagnostic) []diag.Diagnostic {
	if preferLinter && len(lint) > 0 {
		return append([]diag.Diagnostic(nil), lint...)
	}
	out := make([]diag.Diagnostic, 0, len(parse)+len(lint))
	out = append(out, parse...)
	return append(out, lint...)
}
