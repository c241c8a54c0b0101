// Package token defines lexical token kinds and trivia for Lua sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Comments are leading Trivia and never appear in the main token stream.
//   - Version-specific keywords (goto) are always in the table; the lexer
//     demotes them to identifiers when the selected Lua version lacks them.
package token
