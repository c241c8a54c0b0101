// Package analysis turns one parse of a Lua buffer into a queryable session.
//
// A pass drives the parser with a Tracker that records nested scopes and the
// scope of every node. Declaration-shaped nodes are then read back as Symbols.
// Completion passes inject a `__scope_marker__()` call at the cursor so that
// the ordinary grammar reveals which scope the cursor is in; member completion
// additionally wraps the marker in `__completion_helper__` to capture the table
// being completed on.
//
// Sessions are immutable once built and never shared between passes.
package analysis
