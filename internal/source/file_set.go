package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet keeps every buffer snapshot seen during a run.
// A path may have several snapshots; the index always points at the latest one.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a snapshot, computes LineIdx and Hash, and returns a new FileID.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	normalizedPath := normalizePath(path)
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	if flags&FileSynthetic == 0 {
		fileSet.index[normalizedPath] = id
	}
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer (editor overlay, stdin, test).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fileSet.Add(name, content, flags|FileVirtual)
}

// Normalize strips a UTF-8 BOM and folds CRLF line endings.
func Normalize(content []byte) ([]byte, FileFlags) {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// Get returns the snapshot for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len returns the number of snapshots.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// GetLatest returns the latest snapshot ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// NewFile builds a standalone snapshot that does not belong to any FileSet.
// Analysis passes use it for throwaway buffers.
func NewFile(path string, content []byte, flags FileFlags) *File {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Len returns the content length in bytes.
func (f *File) Len() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- checked in Add/NewFile
}

// LineCount returns the number of lines; an empty buffer has one.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by content length
}

// LineCol converts a byte offset into a 1-based position.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, min(off, f.Len()))
}

// Position converts a byte offset into a zero-based position.
func (f *File) Position(off uint32) Position {
	lc := f.LineCol(off)
	return Position{Line: lc.Line - 1, Column: lc.Col - 1}
}

// Range converts a span into a zero-based range.
func (f *File) Range(span Span) Range {
	return Range{Start: f.Position(span.Start), End: f.Position(span.End)}
}

// LineStart returns the byte offset of a zero-based line, clamped to the content.
func (f *File) LineStart(line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if int(line) > len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[line-1] + 1
}

// LineEnd returns the offset of the newline ending a zero-based line, or the content length.
func (f *File) LineEnd(line uint32) uint32 {
	if int(line) >= len(f.LineIdx) {
		return f.Len()
	}
	return f.LineIdx[line]
}

// Offset converts a zero-based position into a byte offset, clamping the column to the line.
func (f *File) Offset(pos Position) uint32 {
	start := f.LineStart(pos.Line)
	end := f.LineEnd(pos.Line)
	if int(pos.Line) > len(f.LineIdx) {
		return f.Len()
	}
	off := start + pos.Column
	if off > end || off < start {
		return end
	}
	return off
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || lineNum > f.LineCount() {
		return ""
	}
	return string(f.Content[f.LineStart(lineNum-1):f.LineEnd(lineNum-1)])
}
