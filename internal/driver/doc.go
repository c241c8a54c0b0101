// Package driver runs the command-line pipelines over files on disk:
// tokenizing, parsing, diagnostics with the optional linter, formatting,
// symbol listing and completion. Multi-file diagnostics run in parallel.
package driver
