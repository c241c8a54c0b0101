package source

type (
	// FileID uniquely identifies a buffer within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a buffer.
	FileFlags uint8
)

const (
	// FileVirtual marks buffers that did not come from disk (editor overlay, stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileSynthetic marks buffers rewritten for a completion pass (they contain markers).
	FileSynthetic
)

// File is one immutable snapshot of a Lua buffer.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position. Both fields are 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Position is a zero-based line and byte column, the shape editors exchange.
type Position struct {
	Line   uint32 `json:"line" yaml:"line"`
	Column uint32 `json:"column" yaml:"column"`
}

// Range is a half-open pair of positions.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}
