package parser

import "lunar/internal/token"

// Приоритеты операторов (как в lparser.c). left > limit: продолжаем свёртку.
const (
	precNone   = 0
	precOr     = 1
	precAnd    = 2
	precCmp    = 3
	precBOr    = 4
	precBXor   = 5
	precBAnd   = 6
	precShift  = 7
	precConcat = 9
	precAdd    = 10
	precMul    = 11
	precUnary  = 12
	precPow    = 14
)

type binaryPrec struct {
	left, right int
}

// getBinaryOperatorPrec returns the left/right binding power, or ok=false
// when k is not a binary operator. Right-associative operators bind weaker on the right.
func getBinaryOperatorPrec(k token.Kind) (binaryPrec, bool) {
	switch k {
	case token.KwOr:
		return binaryPrec{precOr, precOr}, true
	case token.KwAnd:
		return binaryPrec{precAnd, precAnd}, true
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.TildeEq, token.EqEq:
		return binaryPrec{precCmp, precCmp}, true
	case token.Pipe:
		return binaryPrec{precBOr, precBOr}, true
	case token.Tilde:
		return binaryPrec{precBXor, precBXor}, true
	case token.Amp:
		return binaryPrec{precBAnd, precBAnd}, true
	case token.Shl, token.Shr:
		return binaryPrec{precShift, precShift}, true
	case token.DotDot:
		return binaryPrec{precConcat, precConcat - 1}, true
	case token.Plus, token.Minus:
		return binaryPrec{precAdd, precAdd}, true
	case token.Star, token.Slash, token.SlashSlash, token.Percent:
		return binaryPrec{precMul, precMul}, true
	case token.Caret:
		return binaryPrec{precPow, precPow - 1}, true
	}
	return binaryPrec{}, false
}

func isUnaryOperator(k token.Kind) bool {
	switch k {
	case token.KwNot, token.Minus, token.Hash, token.Tilde:
		return true
	}
	return false
}

func isLogicalOperator(k token.Kind) bool {
	return k == token.KwAnd || k == token.KwOr
}
