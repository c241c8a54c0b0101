package driver

import (
	"context"
	"errors"
	"os"
	"slices"

	"lunar/internal/workspace"
)

// ErrNoSourceFiles is returned when the given paths hold no *.lua files.
var ErrNoSourceFiles = errors.New("no Lua source files found")

// CollectFiles expands paths into a sorted, deduplicated list of Lua files.
// Directories are walked recursively with excludes applied; files named
// explicitly are taken as is, whatever their extension.
func CollectFiles(ctx context.Context, paths []string, excludes []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		found, err := workspace.Discover(p, excludes)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	slices.Sort(files)
	return files, nil
}
