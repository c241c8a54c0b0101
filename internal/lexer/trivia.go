package lexer

import (
	"fmt"

	"lunar/internal/diag"
	"lunar/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r', '\v', '\f' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - --... до \n -> TriviaLineComment
// - --[[ ... ]] / --[==[ ... ]==] -> TriviaBlockComment (незакрытый комментарий даёт ошибку)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '-' && lx.cursor.PeekAt(1) == '-' {
			lx.scanComment()
			continue
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	lx.cursor.Off += 2

	if level := lx.longBracketLevel(); level >= 0 {
		line := lx.file.LineCol(uint32(start)).Line
		lx.cursor.Off += uint32(level) + 2 // #nosec G115 -- level is bounded by the content length
		if !lx.skipLongBody(level) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedBlockComment, sp,
				fmt.Sprintf("unfinished long comment (starting at line %d) near '<eof>'", line))
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return
	}

	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaLineComment, start)
}
