package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"lunar/internal/analysis"
	"lunar/internal/dialect"
	"lunar/internal/project"
	"lunar/internal/source"
)

// bump when cachedFile changes shape
const cacheSchemaVersion uint16 = 1

// Cache stores per-file symbol lists on disk, keyed by path, content hash and
// Lua version. Safe for concurrent use; a nil *Cache is a no-op.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachedSymbol struct {
	Name      string
	Kind      uint8
	Container string
	Start     uint32
	End       uint32
	Range     [4]uint32 // start line, start column, end line, end column
}

type cachedFile struct {
	Schema  uint16
	Path    string
	Symbols []cachedSymbol
}

// OpenCache opens $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Key identifies one analysis result.
func Key(path, text string, version dialect.Version) project.Digest {
	return project.Combine(project.HashText(text), path, version.String())
}

func (c *Cache) pathFor(key project.Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "symbols", hexKey[:2], hexKey+".mp")
}

// Put writes the symbols of one file atomically.
func (c *Cache) Put(key project.Digest, path string, symbols []analysis.DocumentSymbol) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // already renamed on success

	payload := cachedFile{Schema: cacheSchemaVersion, Path: path, Symbols: make([]cachedSymbol, len(symbols))}
	for i, sym := range symbols {
		payload.Symbols[i] = cachedSymbol{
			Name:      sym.Name,
			Kind:      uint8(sym.Kind),
			Container: sym.Container,
			Start:     sym.Span.Start,
			End:       sym.Span.End,
			Range:     [4]uint32{sym.Range.Start.Line, sym.Range.Start.Column, sym.Range.End.Line, sym.Range.End.Column},
		}
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// Get reads the symbols stored under key. A payload from another schema or
// path counts as a miss.
func (c *Cache) Get(key project.Digest, path string) ([]analysis.DocumentSymbol, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedFile
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion || payload.Path != path {
		return nil, false, nil
	}
	out := make([]analysis.DocumentSymbol, len(payload.Symbols))
	for i, s := range payload.Symbols {
		out[i] = analysis.DocumentSymbol{
			Name:      s.Name,
			Kind:      analysis.SymbolKind(s.Kind),
			Container: s.Container,
			Span:      source.Span{Start: s.Start, End: s.End},
			Range: source.Range{
				Start: source.Position{Line: s.Range[0], Column: s.Range[1]},
				End:   source.Position{Line: s.Range[2], Column: s.Range[3]},
			},
		}
	}
	return out, true, nil
}

// DropAll removes every cached entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "symbols"))
}
