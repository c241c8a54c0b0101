package ast

// Kind tags a node. String names match the classic Lua AST vocabulary
// (LocalStatement, MemberExpression, ...) so traces and dumps read naturally.
type Kind uint8

const (
	KindInvalid Kind = iota

	Chunk

	// statements
	LocalStatement
	AssignmentStatement
	CallStatement
	FunctionDeclaration // also the anonymous `function (...) end` expression
	ReturnStatement
	BreakStatement
	GotoStatement
	LabelStatement
	DoStatement
	WhileStatement
	RepeatStatement
	IfStatement
	IfClause
	ElseifClause
	ElseClause
	ForNumericStatement
	ForGenericStatement

	// expressions
	Identifier
	MemberExpression
	IndexExpression
	CallExpression
	StringCallExpression
	TableCallExpression
	TableConstructorExpression
	TableKey
	TableKeyString
	TableValue
	StringLiteral
	NumericLiteral
	BooleanLiteral
	NilLiteral
	VarargLiteral
	BinaryExpression
	LogicalExpression
	UnaryExpression

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:                "Invalid",
	Chunk:                      "Chunk",
	LocalStatement:             "LocalStatement",
	AssignmentStatement:        "AssignmentStatement",
	CallStatement:              "CallStatement",
	FunctionDeclaration:        "FunctionDeclaration",
	ReturnStatement:            "ReturnStatement",
	BreakStatement:             "BreakStatement",
	GotoStatement:              "GotoStatement",
	LabelStatement:             "LabelStatement",
	DoStatement:                "DoStatement",
	WhileStatement:             "WhileStatement",
	RepeatStatement:            "RepeatStatement",
	IfStatement:                "IfStatement",
	IfClause:                   "IfClause",
	ElseifClause:               "ElseifClause",
	ElseClause:                 "ElseClause",
	ForNumericStatement:        "ForNumericStatement",
	ForGenericStatement:        "ForGenericStatement",
	Identifier:                 "Identifier",
	MemberExpression:           "MemberExpression",
	IndexExpression:            "IndexExpression",
	CallExpression:             "CallExpression",
	StringCallExpression:       "StringCallExpression",
	TableCallExpression:        "TableCallExpression",
	TableConstructorExpression: "TableConstructorExpression",
	TableKey:                   "TableKey",
	TableKeyString:             "TableKeyString",
	TableValue:                 "TableValue",
	StringLiteral:              "StringLiteral",
	NumericLiteral:             "NumericLiteral",
	BooleanLiteral:             "BooleanLiteral",
	NilLiteral:                 "NilLiteral",
	VarargLiteral:              "VarargLiteral",
	BinaryExpression:           "BinaryExpression",
	LogicalExpression:          "LogicalExpression",
	UnaryExpression:            "UnaryExpression",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Invalid"
}

// IsCall reports whether the kind is one of the three call shapes.
func (k Kind) IsCall() bool {
	return k == CallExpression || k == StringCallExpression || k == TableCallExpression
}

// IsStatement reports whether the kind can appear in a block body.
func (k Kind) IsStatement() bool {
	return k >= LocalStatement && k <= ForGenericStatement && k != IfClause && k != ElseifClause && k != ElseClause
}
