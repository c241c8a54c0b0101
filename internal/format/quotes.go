package format

import "strings"

// requote swaps the delimiters of a short string literal when the body
// contains neither quote character. Long strings are left alone.
func requote(lit string, style QuoteStyle) string {
	if style == QuoteAuto || len(lit) < 2 {
		return lit
	}
	q := lit[0]
	if q != '\'' && q != '"' {
		return lit
	}
	want := byte('"')
	if style == QuoteSingle {
		want = '\''
	}
	if q == want {
		return lit
	}
	body := lit[1 : len(lit)-1]
	if strings.IndexByte(body, '\'') >= 0 || strings.IndexByte(body, '"') >= 0 {
		return lit
	}
	return string(want) + body + string(want)
}
