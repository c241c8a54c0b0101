// Package lint runs an external Lua linter over a buffer and turns its report
// into diagnostics.
//
// Only luacheck is supported. Its binary is optional: when it cannot be found
// the runner reports ErrDisabled and callers publish parse diagnostics only.
package lint
