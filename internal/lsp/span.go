package lsp

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"lunar/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

func safeInt(n uint32) int {
	v, err := safecast.Conv[int](n)
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return v
}

// utf16Len is the number of UTF-16 units of r; invalid bytes count as one.
func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// offsetForPositionInFile converts an editor position into a byte offset.
// Lines past the end clamp to the content length, characters past the end
// of a line clamp to the line end.
func offsetForPositionInFile(file *source.File, pos position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	line := safeUint32(pos.Line)
	if line >= file.LineCount() {
		return file.Len()
	}
	off := file.LineStart(line)
	lineEnd := file.LineEnd(line)
	units := 0
	for off < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(file.Content[off:lineEnd])
		need := utf16Len(r)
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
	}
	return off
}

func positionForOffsetInFile(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	offset = min(offset, file.Len())
	p := file.Position(offset)
	units := 0
	for off := file.LineStart(p.Line); off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return position{Line: safeInt(p.Line), Character: units}
}

func rangeForSpan(file *source.File, span source.Span) lspRange {
	if file == nil {
		return lspRange{}
	}
	return lspRange{
		Start: positionForOffsetInFile(file, span.Start),
		End:   positionForOffsetInFile(file, span.End),
	}
}

// rangeForByteRange converts a range with byte columns, as stored by the
// workspace index, into UTF-16 columns.
func rangeForByteRange(file *source.File, r source.Range) lspRange {
	return rangeForSpan(file, source.Span{Start: file.Offset(r.Start), End: file.Offset(r.End)})
}

func lineForOffset(file *source.File, offset uint32) int {
	return positionForOffsetInFile(file, offset).Line
}
