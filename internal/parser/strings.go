package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeString returns the value of a string literal token. The lexer has
// already validated escapes, so malformed input is decoded best-effort.
func decodeString(raw string) string {
	if raw == "" {
		return ""
	}
	if raw[0] == '[' {
		return decodeLongString(raw)
	}
	if len(raw) < 2 {
		return ""
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '\n':
			sb.WriteByte('\n')
		case 'z':
			for i+1 < len(body) && isSpaceByte(body[i+1]) {
				i++
			}
		case 'x':
			if i+2 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
				}
			}
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 < len(body) && body[i+1] == '{' && end > 0 {
				if v, err := strconv.ParseUint(body[i+2:i+end], 16, 32); err == nil {
					sb.WriteRune(rune(v))
				} else {
					sb.WriteRune(utf8.RuneError)
				}
				i += end
			}
		default:
			if e >= '0' && e <= '9' {
				j := i
				for j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '9' {
					j++
				}
				v, _ := strconv.Atoi(body[i:j])
				sb.WriteByte(byte(v))
				i = j - 1
				continue
			}
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

// decodeLongString strips `[==[` / `]==]` and the newline right after the opener.
func decodeLongString(raw string) string {
	level := 0
	for 1+level < len(raw) && raw[1+level] == '=' {
		level++
	}
	open, closeLen := level+2, level+2
	if len(raw) < open+closeLen {
		return ""
	}
	body := raw[open : len(raw)-closeLen]
	switch {
	case strings.HasPrefix(body, "\r\n"):
		body = body[2:]
	case strings.HasPrefix(body, "\n"):
		body = body[1:]
	}
	return body
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
