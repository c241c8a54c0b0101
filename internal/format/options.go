package format

import (
	"strings"

	"lunar/internal/dialect"
)

// QuoteStyle selects the delimiter of short string literals.
type QuoteStyle uint8

const (
	// QuoteAuto keeps every literal as written.
	QuoteAuto QuoteStyle = iota
	QuoteSingle
	QuoteDouble
)

func (q QuoteStyle) String() string {
	switch q {
	case QuoteSingle:
		return "single"
	case QuoteDouble:
		return "double"
	default:
		return "auto"
	}
}

// ParseQuoteStyle accepts "auto", "single" and "double".
func ParseQuoteStyle(s string) (QuoteStyle, bool) {
	switch strings.ToLower(s) {
	case "auto", "":
		return QuoteAuto, true
	case "single":
		return QuoteSingle, true
	case "double":
		return QuoteDouble, true
	}
	return QuoteAuto, false
}

type Options struct {
	IndentSize int
	UseTabs    bool
	// LineWidth only feeds LongLines; lines are never wrapped.
	LineWidth  int
	QuoteStyle QuoteStyle
	Version    dialect.Version
}

const (
	DefaultIndentSize = 4
	DefaultLineWidth  = 120
)

func (o Options) withDefaults() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = DefaultIndentSize
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}
