package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var luaSeeds = []string{
	"",
	"local x = 1\n",
	"local function f(a, b, ...) return a + b end\n",
	"function M.sub:method(x) self.x = x end\n",
	"local t = { 1, 2, key = 'v', ['k'] = \"w\"; nested = { a = {} } }\n",
	"for i = 1, 10, 2 do print(i) end\nfor k, v in pairs(t) do end\n",
	"while true do break end\nrepeat local y = 1 until y\n",
	"if a then elseif b then else end\n",
	"::top:: goto top\n",
	"local n = 7 // 2 | 1 ~ 3 << 2\n",
	"local s = [==[\nlong ]] string\n]==] --[[ block\ncomment ]]\n",
	"local s = \"\\x41\\u{48}\\z\n   \\65\"\n",
	"#!/usr/bin/env lua\nprint 'hi'\n",
	"local x = ",
	"local = 1",
	"f{...}:g\"s\"(1)[2].h = nil\n",
	"return function() return end, -x ^ 2, not #t == 0\n",
	"local a <const> = 5\n",
	"x = 0x1p4 + 1e-3 + .5 + 3.\n",
	"do do do end end end\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range luaSeeds {
		f.Add([]byte(s))
	}
}

// clampInput copies input and cuts it to maxFuzzInput.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
