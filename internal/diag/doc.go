// Package diag defines the diagnostic model shared by the lexer, parser,
// linter bridge and language server.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced while
//     tokenizing, parsing or linting a Lua buffer.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not format anything and performs no IO. Rendering lives in
// internal/diagfmt; the language server converts diagnostics into protocol
// shapes in internal/lsp.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Linter findings keep the tool's own code in Tag (for example "W211").
//   - Message – human oriented text without any position prefix.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans/messages for additional context.
//   - Source – the producer ("lunar", "luacheck").
//
// A syntax error stops the parser, so a parse contributes at most one error.
// The linter contributes any number of findings; both end up in one Bag.
//
// # Emitting diagnostics
//
// The lexer and the parser call Reporter.Report. BagReporter aggregates
// diagnostics into a Bag, which supports sorting, deduplication and a hard
// cap on the number of items.
package diag
