package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
	"lunar/internal/parser"
	"lunar/internal/project"
	"lunar/internal/trace"
)

// Options configure an Index.
type Options struct {
	Version  dialect.Version
	Excludes []string
	// Jobs bounds parallel analysis; zero means GOMAXPROCS.
	Jobs  int
	Cache *Cache
}

// Symbol is a global declaration found somewhere in the workspace.
type Symbol struct {
	Path                    string `json:"path" yaml:"path"`
	analysis.DocumentSymbol `yaml:",inline"`
}

// File is the indexed state of one path.
type File struct {
	Path    string
	Symbols []analysis.DocumentSymbol
	// Err is the last analysis failure. Symbols then still hold the last
	// good result, if there was one.
	Err error
}

// Index maps workspace files to their global symbols.
type Index struct {
	root string
	opts Options

	mu      sync.RWMutex
	files   map[string]*File
	overlay map[string]string
}

func NewIndex(root string, opts Options) *Index {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Index{
		root:    root,
		opts:    opts,
		files:   make(map[string]*File),
		overlay: make(map[string]string),
	}
}

func (ix *Index) Root() string {
	return ix.root
}

// SetVersion changes the Lua version; callers rebuild afterwards.
func (ix *Index) SetVersion(v dialect.Version) {
	ix.mu.Lock()
	ix.opts.Version = v
	ix.mu.Unlock()
}

func (ix *Index) version() dialect.Version {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.opts.Version
}

// Build discovers and analyzes every file below the root, replacing the
// previous contents of the index.
func (ix *Index) Build(ctx context.Context, progress Progress) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, "workspace_index")
	defer span.End("")

	paths, err := Discover(ix.root, ix.opts.Excludes)
	if err != nil {
		return fmt.Errorf("workspace: scan %s: %w", ix.root, err)
	}
	span.WithExtra("files", fmt.Sprint(len(paths)))
	emit(progress, Event{Kind: EventScan, Total: len(paths)})

	jobs := ix.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*File, len(paths))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, kind := ix.load(gctx, path)
			results[i] = f
			n := int(done.Add(1))
			emit(progress, Event{Kind: kind, Path: path, Done: n, Total: len(paths), Err: f.Err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	files := make(map[string]*File, len(results))
	for _, f := range results {
		files[f.Path] = f
	}
	ix.mu.Lock()
	for path := range ix.overlay {
		if _, ok := files[path]; !ok {
			files[path] = ix.files[path]
		}
	}
	ix.files = files
	ix.mu.Unlock()

	emit(progress, Event{Kind: EventDone, Done: len(paths), Total: len(paths)})
	return nil
}

func emit(progress Progress, ev Event) {
	if progress != nil {
		progress(ev)
	}
}

// text returns the overlay text for path or reads it from disk.
func (ix *Index) text(path string) (string, error) {
	ix.mu.RLock()
	text, ok := ix.overlay[path]
	ix.mu.RUnlock()
	if ok {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (ix *Index) load(ctx context.Context, path string) (*File, EventKind) {
	text, err := ix.text(path)
	if err != nil {
		return &File{Path: path, Err: err}, EventFailed
	}
	return ix.analyze(ctx, path, text)
}

func (ix *Index) analyze(ctx context.Context, path, text string) (*File, EventKind) {
	version := ix.version()
	key := Key(path, text, version)
	if syms, ok, err := ix.opts.Cache.Get(key, path); err == nil && ok {
		return &File{Path: path, Symbols: syms}, EventCached
	} else if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_read", err.Error())
	}

	ctx, span := trace.Start(ctx, trace.ScopeFile, "index_file")
	span.WithExtra("file", path)
	defer span.End("")

	s, err := analysis.Analyze(ctx, path, text, analysis.Options{Version: version})
	if err != nil {
		f := &File{Path: path, Err: err}
		ix.mu.RLock()
		if prev, ok := ix.files[path]; ok {
			f.Symbols = prev.Symbols
		}
		ix.mu.RUnlock()
		return f, EventFailed
	}
	syms := s.DocumentSymbols()
	if err := ix.opts.Cache.Put(key, path, syms); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_write", err.Error())
	}
	return &File{Path: path, Symbols: syms}, EventFile
}

// Update reanalyzes one file. A file that no longer exists and has no
// overlay is removed.
func (ix *Index) Update(ctx context.Context, path string) (EventKind, error) {
	path = ix.abs(path)
	text, err := ix.text(path)
	if errors.Is(err, os.ErrNotExist) {
		ix.Remove(path)
		return EventRemoved, nil
	}
	if err != nil {
		return EventFailed, err
	}
	f, kind := ix.analyze(ctx, path, text)
	ix.mu.Lock()
	ix.files[path] = f
	ix.mu.Unlock()
	return kind, nil
}

func (ix *Index) Remove(path string) {
	path = ix.abs(path)
	ix.mu.Lock()
	delete(ix.files, path)
	ix.mu.Unlock()
}

// SetOverlay makes text the content of path until ClearOverlay. Paths
// inside the workspace are reindexed.
func (ix *Index) SetOverlay(ctx context.Context, path, text string) {
	path = ix.abs(path)
	ix.mu.Lock()
	ix.overlay[path] = text
	ix.mu.Unlock()
	if !ix.Contains(path) {
		return
	}
	f, _ := ix.analyze(ctx, path, text)
	ix.mu.Lock()
	ix.files[path] = f
	ix.mu.Unlock()
}

// ClearOverlay drops the editor text and falls back to the disk copy.
func (ix *Index) ClearOverlay(ctx context.Context, path string) error {
	path = ix.abs(path)
	ix.mu.Lock()
	delete(ix.overlay, path)
	ix.mu.Unlock()
	if !ix.Contains(path) {
		ix.Remove(path)
		return nil
	}
	_, err := ix.Update(ctx, path)
	return err
}

// Contains reports whether path is a Lua file under the root and outside
// every excluded directory.
func (ix *Index) Contains(path string) bool {
	path = ix.abs(path)
	if !IsLuaFile(path) || !project.PathWithin(ix.root, path) {
		return false
	}
	for dir := path; dir != ix.root && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if excluded(dir, ix.opts.Excludes) {
			return false
		}
	}
	return true
}

func (ix *Index) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(ix.root, path)
}

// File returns the indexed state of path.
func (ix *Index) File(path string) (File, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	f, ok := ix.files[ix.abs(path)]
	if !ok || f == nil {
		return File{}, false
	}
	return *f, true
}

// Files lists indexed paths, sorted.
func (ix *Index) Files() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]string, 0, len(ix.files))
	for p, f := range ix.files {
		if f != nil {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}

// Len returns the number of indexed files.
func (ix *Index) Len() int {
	return len(ix.Files())
}

// Failed lists files whose last analysis failed.
func (ix *Index) Failed() []File {
	var out []File
	for _, p := range ix.Files() {
		f, _ := ix.File(p)
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Search returns the global symbols of every indexed file whose name
// contains query, ignoring case. Files are visited in path order.
func (ix *Index) Search(query string) []Symbol {
	var out []Symbol
	for _, p := range ix.Files() {
		f, _ := ix.File(p)
		for _, sym := range analysis.FilterDocumentSymbols(f.Symbols, query) {
			out = append(out, Symbol{Path: p, DocumentSymbol: sym})
		}
	}
	return out
}

// IsSyntaxError reports whether a file failed on its text rather than on I/O.
func IsSyntaxError(err error) bool {
	_, ok := parser.AsSyntaxError(err)
	return ok
}
