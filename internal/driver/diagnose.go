package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lunar/internal/analysis"
	"lunar/internal/diag"
	"lunar/internal/dialect"
	"lunar/internal/lint"
	"lunar/internal/observ"
	"lunar/internal/source"
	"lunar/internal/trace"
)

// DiagnoseOptions содержит опции для диагностики
type DiagnoseOptions struct {
	Version        dialect.Version
	MaxDiagnostics int
	// Linter is optional; lint.ErrDisabled from it is not an error.
	Linter lint.Linter
	// PreferLinter drops parse diagnostics when the linter reported any.
	PreferLinter     bool
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// Detect classifies the minimum Lua version each file needs and reports
	// anything above 5.1 as an info diagnostic.
	Detect bool
	Jobs   int
	Timer  *observ.Timer
}

type DiagnoseResult struct {
	Path string
	File *source.File
	Bag  *diag.Bag
	// Detected is set when DiagnoseOptions.Detect is.
	Detected *dialect.Classification
	// LinterDisabled reports that the linter could not run for this file.
	LinterDisabled bool
}

// Diagnose checks files in parallel. Results keep the order of paths.
func Diagnose(ctx context.Context, paths []string, opts DiagnoseOptions) ([]DiagnoseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "diagnose")
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]DiagnoseResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := diagnoseFile(gctx, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func diagnoseFile(ctx context.Context, path string, opts DiagnoseOptions) (DiagnoseResult, error) {
	res := DiagnoseResult{Path: path}

	idx := opts.Timer.Begin("read " + path)
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	opts.Timer.End(idx, "")
	if err != nil {
		return res, err
	}
	text := string(data)
	res.File = source.NewFile(path, data, 0)

	idx = opts.Timer.Begin("analyze " + path)
	_, parseDiags, err := analysis.Check(ctx, path, text, analysis.Options{Version: opts.Version})
	opts.Timer.End(idx, fmt.Sprintf("diagnostics=%d", len(parseDiags)))
	if err != nil {
		return res, err
	}

	var lintDiags []diag.Diagnostic
	if opts.Linter != nil {
		idx = opts.Timer.Begin("lint " + path)
		lintDiags, err = opts.Linter.Lint(ctx, path, text)
		opts.Timer.End(idx, fmt.Sprintf("diagnostics=%d", len(lintDiags)))
		switch {
		case errors.Is(err, lint.ErrDisabled):
			res.LinterDisabled = true
		case err != nil:
			return res, err
		}
	}

	if opts.Detect {
		c := analysis.DetectVersion(path, text)
		res.Detected = &c
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, d := range lint.Combine(opts.PreferLinter, parseDiags, lintDiags) {
		// Применяем фильтрацию и трансформацию диагностик
		if opts.IgnoreWarnings && d.Severity < diag.SevError {
			continue
		}
		if opts.WarningsAsErrors && d.Severity == diag.SevWarning {
			d.Severity = diag.SevError
		}
		bag.Add(d)
	}
	if res.Detected != nil && res.Detected.Minimum > dialect.Lua51 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevInfo,
			Code:     diag.SynVersionFeature,
			Message:  fmt.Sprintf("requires Lua %s: %s", res.Detected.Minimum, res.Detected.Strongest.Reason),
			Primary:  res.Detected.Strongest.Span,
			Source:   diag.SourceLunar,
		})
	}
	bag.Sort()
	// повторы одной и той же находки выводим один раз
	bag.Dedup()
	res.Bag = bag
	return res, nil
}

// HasErrors reports whether any result holds an error diagnostic.
func HasErrors(results []DiagnoseResult) bool {
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			return true
		}
	}
	return false
}
