package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedLongString   Code = 1003
	LexUnterminatedBlockComment Code = 1004
	LexBadNumber                Code = 1005
	LexBadEscape                Code = 1006
	LexBadLongBracket           Code = 1007

	// Синтаксические
	SynUnexpectedToken Code = 2001
	SynExpectToken     Code = 2002
	SynUnclosedBlock   Code = 2003
	SynBadAssignment   Code = 2004
	SynVersionFeature  Code = 2005

	// Внешний линтер
	LintError   Code = 3001
	LintWarning Code = 3002
	LintInfo    Code = 3003

	// Форматирование
	FmtWouldChange Code = 4001

	// Внутренние ошибки анализа
	InternalScope Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unexpected character",
	LexUnterminatedString:       "Unfinished string",
	LexUnterminatedLongString:   "Unfinished long string",
	LexUnterminatedBlockComment: "Unfinished long comment",
	LexBadNumber:                "Malformed number",
	LexBadEscape:                "Invalid escape sequence",
	LexBadLongBracket:           "Invalid long string delimiter",
	SynUnexpectedToken:          "Unexpected symbol",
	SynExpectToken:              "Missing token",
	SynUnclosedBlock:            "Unclosed block",
	SynBadAssignment:            "Invalid assignment target",
	SynVersionFeature:           "Construct not available in target Lua version",
	LintError:                   "Linter error",
	LintWarning:                 "Linter warning",
	LintInfo:                    "Linter note",
	FmtWouldChange:              "File is not formatted",
	InternalScope:               "Scope tracking desynchronized",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 9000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// LintCode picks the lint code matching a severity.
func LintCode(sev Severity) Code {
	switch sev {
	case SevError:
		return LintError
	case SevWarning:
		return LintWarning
	default:
		return LintInfo
	}
}
