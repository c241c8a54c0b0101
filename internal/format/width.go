package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// LongLine is a line whose display width exceeds the configured limit.
type LongLine struct {
	Line  int // zero-based
	Width int
}

// LongLines reports lines wider than opt.LineWidth, measured in terminal
// cells with tabs counted as IndentSize.
func LongLines(text string, opt Options) []LongLine {
	opt = opt.withDefaults()
	tab := strings.Repeat(" ", opt.IndentSize)
	var out []LongLine
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		w := runewidth.StringWidth(strings.ReplaceAll(line, "\t", tab))
		if w > opt.LineWidth {
			out = append(out, LongLine{Line: i, Width: w})
		}
	}
	return out
}
