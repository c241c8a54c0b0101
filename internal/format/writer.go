package format

import (
	"strings"
)

// writer accumulates formatted output line by line.
type writer struct {
	opt         Options
	buf         []byte
	line        int // number of '\n' written so far
	atLineStart bool
	pending     string // inter-token whitespace, dropped at line end
	forced      bool   // pending was set by a rule, keep it over source spacing
	opens       []int  // output line of every unclosed opener
}

func newWriter(opt Options, sizeHint int) *writer {
	return &writer{
		opt:         opt,
		buf:         make([]byte, 0, sizeHint),
		atLineStart: true,
	}
}

func (w *writer) String() string {
	return string(w.buf)
}

// level counts the distinct lines among the first n open entries, so
// `f({` opens one level, not two.
func (w *writer) level(n int) int {
	lvl := 0
	last := -1
	for _, ln := range w.opens[:n] {
		if ln != last {
			lvl++
			last = ln
		}
	}
	return lvl
}

func (w *writer) push() {
	w.opens = append(w.opens, w.line)
}

func (w *writer) pop() {
	if len(w.opens) > 0 {
		w.opens = w.opens[:len(w.opens)-1]
	}
}

func (w *writer) writeIndent(level int) {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range level {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range level * w.opt.IndentSize {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// write emits s, indenting by level when it starts a line.
func (w *writer) write(s string, level int) {
	if s == "" {
		return
	}
	if w.atLineStart {
		w.writeIndent(level)
	} else if w.pending != "" {
		w.buf = append(w.buf, w.pending...)
	}
	w.pending = ""
	w.forced = false
	w.buf = append(w.buf, s...)
	w.line += strings.Count(s, "\n")
}

func (w *writer) space(s string) {
	if w.atLineStart || len(w.buf) == 0 || w.forced {
		return
	}
	w.pending = s
}

// newlines ends the current line and emits at most one blank line.
func (w *writer) newlines(n int) {
	w.pending = ""
	w.forced = false
	w.trimTrailing()
	if len(w.buf) == 0 {
		return
	}
	for range n {
		if w.trailingNewlines() >= 2 {
			break
		}
		w.buf = append(w.buf, '\n')
		w.line++
	}
	w.atLineStart = true
}

func (w *writer) trimTrailing() {
	end := len(w.buf)
	for end > 0 && (w.buf[end-1] == ' ' || w.buf[end-1] == '\t') {
		end--
	}
	w.buf = w.buf[:end]
}

func (w *writer) trailingNewlines() int {
	n := 0
	for i := len(w.buf) - 1; i >= 0 && w.buf[i] == '\n'; i-- {
		n++
	}
	return n
}

// finish leaves exactly one trailing newline on non-empty output.
func (w *writer) finish() string {
	w.pending = ""
	w.trimTrailing()
	end := len(w.buf)
	for end > 0 && w.buf[end-1] == '\n' {
		end--
	}
	w.buf = w.buf[:end]
	if len(w.buf) > 0 {
		w.buf = append(w.buf, '\n')
	}
	return w.String()
}
