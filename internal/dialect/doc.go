// Package dialect models the Lua language versions the engine understands
// (5.1, 5.2, 5.3) and detects which version a buffer seems to be written for.
//
// The target version is always an explicit value passed into lexing and
// parsing. Evidence collection is read-only: it never changes how a buffer is
// parsed, it only explains failures ("this needs 5.3") after the fact.
package dialect
