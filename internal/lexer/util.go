package lexer

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}

// ===== Матчеры последовательностей операторов (жадность) =====

// try2/try3 пробуют "съесть" 2/3 байта, если совпадает.
func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekAt(1) != b || lx.cursor.PeekAt(2) != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}

// longBracketLevel смотрит на `[`, `[=`, `[==` ... и возвращает число '='
// открывающей длинной скобки, либо -1 если это не длинная скобка.
func (lx *Lexer) longBracketLevel() int {
	if lx.cursor.Peek() != '[' {
		return -1
	}
	n := uint32(1)
	for lx.cursor.PeekAt(n) == '=' {
		n++
	}
	if lx.cursor.PeekAt(n) != '[' {
		return -1
	}
	return int(n - 1)
}

// skipLongBody съедает содержимое длинной скобки уровня level после открывающей
// скобки. Возвращает false, если закрывающая скобка не найдена до EOF.
func (lx *Lexer) skipLongBody(level int) bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != ']' {
			lx.cursor.Bump()
			continue
		}
		n := uint32(1)
		for lx.cursor.PeekAt(n) == '=' {
			n++
		}
		if int(n-1) == level && lx.cursor.PeekAt(n) == ']' {
			lx.cursor.Off += n + 1
			return true
		}
		lx.cursor.Bump()
	}
	return false
}
