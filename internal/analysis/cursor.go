package analysis

import (
	"regexp"
	"strings"

	"lunar/internal/source"
)

var (
	wordBeforeCursor = regexp.MustCompile(`\b\w*[a-zA-Z_]+\w*$`)
	wordAfterCursor  = regexp.MustCompile(`^\w*[a-zA-Z_]+\w*\b`)
)

// Word is the identifier under the cursor, split at the cursor.
// Start and End are byte offsets into the whole text.
type Word struct {
	Prefix  string
	Suffix  string
	Start   int
	End     int
	Trigger byte // '.' или ':' прямо перед словом, иначе 0
}

// Text is the full word, used as the completion query.
func (w Word) Text() string { return w.Prefix + w.Suffix }

// Member reports whether the word follows a member-access trigger.
func (w Word) Member() bool { return w.Trigger != 0 }

// WordAt finds the word around pos. pos.Column counts bytes; out-of-range
// positions are clamped to the text.
func WordAt(text string, pos source.Position) Word {
	lineStart := 0
	for line := uint32(0); line < pos.Line; line++ {
		nl := strings.IndexByte(text[lineStart:], '\n')
		if nl < 0 {
			lineStart = len(text)
			break
		}
		lineStart += nl + 1
	}
	lineEnd := len(text)
	if nl := strings.IndexByte(text[lineStart:], '\n'); nl >= 0 {
		lineEnd = lineStart + nl
	}
	line := strings.TrimSuffix(text[lineStart:lineEnd], "\r")

	col := min(int(pos.Column), len(line))
	w := Word{
		Prefix: wordBeforeCursor.FindString(line[:col]),
		Suffix: wordAfterCursor.FindString(line[col:]),
	}
	w.Start = lineStart + col - len(w.Prefix)
	w.End = lineStart + col + len(w.Suffix)
	w.Trigger = memberTrigger(text, w.Start)
	return w
}

// memberTrigger returns '.' or ':' when it directly precedes off and is not
// half of `..` or `::`.
func memberTrigger(text string, off int) byte {
	if off == 0 {
		return 0
	}
	c := text[off-1]
	if c != '.' && c != ':' {
		return 0
	}
	if off >= 2 && text[off-2] == c {
		return 0
	}
	return c
}

// markerText is what replaces the word in a completion pass.
func (w Word) markerText() string {
	if w.Member() {
		return TableHelper + "(" + ScopeMarker + "())"
	}
	return ScopeMarker + "()"
}
