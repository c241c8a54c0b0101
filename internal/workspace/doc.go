// Package workspace indexes the global symbols of every Lua file under a
// root directory and answers workspace symbol searches.
//
// Files are analyzed in parallel. Text from open editor buffers overrides the
// disk copy. Results can be cached on disk and kept fresh by a file watcher.
package workspace
