package diagfmt

import (
	"path/filepath"
	"strings"
)

// displayPath formats path according to mode. Relative modes fall back to
// the original path when it cannot be expressed relative to base.
func displayPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<stdin>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeRelative, PathModeAuto:
		if base == "" {
			return filepath.ToSlash(path)
		}
		rel, err := relativeTo(path, base)
		if err == nil && (mode == PathModeRelative || !strings.HasPrefix(rel, "..")) {
			return rel
		}
	}
	return filepath.ToSlash(path)
}

func relativeTo(path, base string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
