package parser

import "testing"

func TestDecodeString(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{`"plain"`, "plain"},
		{`'it\'s'`, "it's"},
		{`"a\nb"`, "a\nb"},
		{`"\x41\u{42}"`, "AB"},
		{`"\z   x"`, "x"},
		{`"\0659"`, "A9"},
		{"[==[\nlong]]text]==]", "long]]text"},
		{"[[]]", ""},
	}
	for _, tt := range tests {
		if got := decodeString(tt.raw); got != tt.want {
			t.Errorf("decodeString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
