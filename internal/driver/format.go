package driver

import (
	"context"
	"os"

	"lunar/internal/format"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check   bool
	Stdout  bool
	Diff    bool
	Options format.Options
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	// Diff is the unified diff when FormatOptions.Diff is set.
	Diff string
	// LongLines are lines of the formatted text past Options.LineWidth.
	LongLines []format.LongLine
}

// FormatPaths formats the given files. When opts.Check, opts.Stdout or
// opts.Diff is set, files on disk are left untouched; Changed tells whether
// formatting would update the file. A file that fails to parse gets Err and
// does not stop the others.
func FormatPaths(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, formatFile(path, opts))
	}
	return results, nil
}

func formatFile(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}

	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	original := string(data)
	formatted, err := format.Source(path, original, opts.Options)
	if err != nil {
		result.Err = err
		return result
	}
	result.Changed = formatted != original
	result.LongLines = format.LongLines(formatted, opts.Options)

	if opts.Diff {
		result.Diff, result.Err = format.Diff(path, original, formatted, 3)
	}
	if opts.Stdout {
		result.Formatted = []byte(formatted)
	}
	if opts.Check || opts.Stdout || opts.Diff || !result.Changed {
		return result
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, []byte(formatted), mode.Perm()); err != nil {
		result.Err = err
		result.Changed = false
	}
	return result
}
