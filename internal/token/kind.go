package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number is a numeric literal (decimal, hex, float, hex float).
	Number
	// String is a quoted or long-bracket string literal.
	String

	KwAnd      // and
	KwBreak    // break
	KwDo       // do
	KwElse     // else
	KwElseif   // elseif
	KwEnd      // end
	KwFalse    // false
	KwFor      // for
	KwFunction // function
	KwGoto     // goto (5.2+)
	KwIf       // if
	KwIn       // in
	KwLocal    // local
	KwNil      // nil
	KwNot      // not
	KwOr       // or
	KwRepeat   // repeat
	KwReturn   // return
	KwThen     // then
	KwTrue     // true
	KwUntil    // until
	KwWhile    // while

	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	SlashSlash  // // (5.3)
	Percent     // %
	Caret       // ^
	Hash        // #
	Amp         // & (5.3)
	Tilde       // ~ (5.3)
	Pipe        // | (5.3)
	Shl         // << (5.3)
	Shr         // >> (5.3)
	EqEq        // ==
	TildeEq     // ~=
	LtEq        // <=
	GtEq        // >=
	Lt          // <
	Gt          // >
	Assign      // =
	LParen      // (
	RParen      // )
	LBrace      // {
	RBrace      // }
	LBracket    // [
	RBracket    // ]
	ColonColon  // :: (5.2)
	Semicolon   // ;
	Colon       // :
	Comma       // ,
	Dot         // .
	DotDot      // ..
	DotDotDot   // ...

	kindCount
)

var kindNames = [kindCount]string{
	Invalid: "invalid", EOF: "<eof>", Ident: "<name>", Number: "<number>", String: "<string>",
	KwAnd: "and", KwBreak: "break", KwDo: "do", KwElse: "else", KwElseif: "elseif", KwEnd: "end",
	KwFalse: "false", KwFor: "for", KwFunction: "function", KwGoto: "goto", KwIf: "if", KwIn: "in",
	KwLocal: "local", KwNil: "nil", KwNot: "not", KwOr: "or", KwRepeat: "repeat", KwReturn: "return",
	KwThen: "then", KwTrue: "true", KwUntil: "until", KwWhile: "while",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", SlashSlash: "//", Percent: "%", Caret: "^",
	Hash: "#", Amp: "&", Tilde: "~", Pipe: "|", Shl: "<<", Shr: ">>", EqEq: "==", TildeEq: "~=",
	LtEq: "<=", GtEq: ">=", Lt: "<", Gt: ">", Assign: "=", LParen: "(", RParen: ")", LBrace: "{",
	RBrace: "}", LBracket: "[", RBracket: "]", ColonColon: "::", Semicolon: ";", Colon: ":",
	Comma: ",", Dot: ".", DotDot: "..", DotDotDot: "...",
}

// String returns the lexeme for fixed tokens and a placeholder for the rest.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "invalid"
}
