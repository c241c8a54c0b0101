package ast

import (
	"lunar/internal/source"
)

// Node is the tagged-union header; kind-specific data lives in a payload arena.
type Node struct {
	Kind    Kind
	Span    source.Span
	Payload PayloadID
}

// NameData is the payload of Identifier.
type NameData struct {
	Name string
}

// LiteralData is the payload of every literal kind.
// Raw is the source text; Value is the decoded string for StringLiteral.
type LiteralData struct {
	Raw   string
	Value string
}

// MemberData is the payload of MemberExpression (`base.name` or `base:name`).
type MemberData struct {
	Base       NodeID
	Indexer    byte // '.' или ':'
	Identifier NodeID
}

// IndexData is the payload of IndexExpression (`base[index]`).
type IndexData struct {
	Base  NodeID
	Index NodeID
}

// CallData is the payload of the call kinds. StringCall and TableCall carry one argument.
type CallData struct {
	Base NodeID
	Args []NodeID
}

// FunctionData is the payload of FunctionDeclaration.
type FunctionData struct {
	Identifier NodeID // NoNodeID for anonymous functions
	IsLocal    bool
	Params     []NodeID // Identifier or VarargLiteral
	Body       []NodeID
}

// AssignData is the payload of LocalStatement and AssignmentStatement.
type AssignData struct {
	Variables []NodeID
	Init      []NodeID
}

// ListData is the payload of kinds that only hold a list:
// Chunk, DoStatement, ElseClause (body), ReturnStatement (arguments),
// IfStatement (clauses), TableConstructorExpression (fields).
type ListData struct {
	Items []NodeID
}

// BlockData is the payload of WhileStatement, RepeatStatement, IfClause and ElseifClause.
type BlockData struct {
	Condition NodeID
	Body      []NodeID
}

// ForNumericData is the payload of ForNumericStatement.
type ForNumericData struct {
	Variable NodeID
	Start    NodeID
	End      NodeID
	Step     NodeID // optional
	Body     []NodeID
}

// ForGenericData is the payload of ForGenericStatement.
type ForGenericData struct {
	Variables []NodeID
	Iterators []NodeID
	Body      []NodeID
}

// FieldData is the payload of TableKey, TableKeyString and TableValue (Key is empty there).
type FieldData struct {
	Key   NodeID
	Value NodeID
}

// OpData is the payload of BinaryExpression, LogicalExpression and UnaryExpression.
// Right is empty for unary operators.
type OpData struct {
	Operator string
	Left     NodeID
	Right    NodeID
}

// RefData is the payload of CallStatement (expression), GotoStatement and
// LabelStatement (label identifier).
type RefData struct {
	Target NodeID
}
