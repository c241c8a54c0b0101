package lexer

import (
	"testing"

	"lunar/internal/source"
)

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(source.NewFile("c.lua", []byte("a\nb"), source.FileVirtual))

	if c.Peek() != 'a' || c.PeekAt(1) != '\n' || c.PeekAt(5) != 0 {
		t.Fatalf("unexpected lookahead")
	}
	m := c.Mark()
	c.Bump()
	c.Bump()
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("unexpected span %v", sp)
	}
	if !c.Eat('b') || !c.EOF() || c.Bump() != 0 {
		t.Fatalf("expected to reach EOF")
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("reset did not rewind")
	}
}
