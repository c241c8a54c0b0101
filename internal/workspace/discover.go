package workspace

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// IsLuaFile reports whether path names a Lua source file.
func IsLuaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lua")
}

// excluded matches the base name against every pattern, literally or as a
// filepath.Match glob.
func excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, p := range patterns {
		if base == p {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// Discover lists the *.lua files below root, sorted, skipping excluded
// directories and files.
func Discover(root string, excludes []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// нечитаемые каталоги пропускаем, корень - нет
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && excluded(path, excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsLuaFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
