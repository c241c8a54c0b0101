// Package trace records what the language server and the CLI are doing.
//
// Tracing is off unless --trace or --trace-level enables it. Events go to a
// stream (stderr or a file), to an in-memory ring that is written out when
// the run ends, or to both, in which case a failed command also dumps the
// ring to stderr.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only heartbeats and failure dumps
//   - LevelPhase: commands, requests and analysis passes
//   - LevelDetail: adds per-file work (workspace indexing, linting)
//   - LevelDebug: everything
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "analyze")
//	defer span.End("")
package trace
