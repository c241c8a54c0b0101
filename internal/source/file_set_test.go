package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("init.lua", []byte("local a = 1"), 0)
	id2 := fs.Add("init.lua", []byte("local b = 2"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("init.lua")
	if !ok || latest != id2 {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "local a = 1" {
		t.Fatalf("old snapshot changed: %q", got)
	}
}

func TestFileSetSyntheticDoesNotReplaceLatest(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.lua", []byte("x = 1"), 0)
	fs.Add("a.lua", []byte("__scope_marker__()"), FileSynthetic)

	latest, _ := fs.GetLatest("a.lua")
	if latest != id {
		t.Fatalf("synthetic snapshot must not become latest, got %d want %d", latest, id)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.lua")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("local a\r\nlocal b\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "local a\nlocal b\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
}

func TestPositionAndOffset(t *testing.T) {
	f := NewFile("pos.lua", []byte("ab\n\ncdef\n"), FileVirtual)

	tests := []struct {
		off  uint32
		want Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{4, Position{2, 0}},
		{7, Position{2, 3}},
		{9, Position{3, 0}},
	}
	for _, tt := range tests {
		got := f.Position(tt.off)
		if got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
		if back := f.Offset(got); back != tt.off {
			t.Errorf("Offset(%+v) = %d, want %d", got, back, tt.off)
		}
	}

	if off := f.Offset(Position{Line: 0, Column: 40}); off != 2 {
		t.Fatalf("column past end must clamp to line end, got %d", off)
	}
	if off := f.Offset(Position{Line: 10}); off != f.Len() {
		t.Fatalf("line past end must clamp to content length, got %d", off)
	}
}

func TestGetLine(t *testing.T) {
	f := NewFile("lines.lua", []byte("first\nsecond\nthird"), 0)
	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.lua", []byte("local x\nreturn x"))
	start, end := fs.Resolve(Span{File: id, Start: 15, End: 16})
	if start != (LineCol{Line: 2, Col: 8}) || end != (LineCol{Line: 2, Col: 9}) {
		t.Fatalf("unexpected resolve result %+v %+v", start, end)
	}
}
