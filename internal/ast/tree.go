package ast

import (
	"lunar/internal/source"
)

// Tree owns every node of one parse. Nodes are immutable once allocated.
type Tree struct {
	File      *source.File
	Root      NodeID
	Nodes     *Arena[Node]
	Names     *Arena[NameData]
	Literals  *Arena[LiteralData]
	Members   *Arena[MemberData]
	Indexes   *Arena[IndexData]
	Calls     *Arena[CallData]
	Functions *Arena[FunctionData]
	Assigns   *Arena[AssignData]
	Lists     *Arena[ListData]
	Blocks    *Arena[BlockData]
	ForNums   *Arena[ForNumericData]
	ForGens   *Arena[ForGenericData]
	Fields    *Arena[FieldData]
	Ops       *Arena[OpData]
	Refs      *Arena[RefData]
}

// NewTree creates a tree for file; capHint sizes the node arena (0 picks a default).
func NewTree(file *source.File, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Tree{
		File:      file,
		Nodes:     NewArena[Node](capHint),
		Names:     NewArena[NameData](capHint / 2),
		Literals:  NewArena[LiteralData](small),
		Members:   NewArena[MemberData](small),
		Indexes:   NewArena[IndexData](small),
		Calls:     NewArena[CallData](small),
		Functions: NewArena[FunctionData](small),
		Assigns:   NewArena[AssignData](small),
		Lists:     NewArena[ListData](small),
		Blocks:    NewArena[BlockData](small),
		ForNums:   NewArena[ForNumericData](small),
		ForGens:   NewArena[ForGenericData](small),
		Fields:    NewArena[FieldData](small),
		Ops:       NewArena[OpData](small),
		Refs:      NewArena[RefData](small),
	}
}

func (t *Tree) new(kind Kind, span source.Span, payload uint32) NodeID {
	return NodeID(t.Nodes.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the node with the given ID, or nil.
func (t *Tree) Get(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, or KindInvalid.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Get(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return int(t.Nodes.Len())
}

// Range returns the zero-based range of a node.
func (t *Tree) Range(id NodeID) source.Range {
	n := t.Get(id)
	if n == nil {
		return source.Range{}
	}
	return t.File.Range(n.Span)
}

// Text returns the source text covered by a node.
func (t *Tree) Text(id NodeID) string {
	n := t.Get(id)
	if n == nil {
		return ""
	}
	return string(t.File.Content[n.Span.Start:n.Span.End])
}

func (t *Tree) payload(id NodeID, kinds ...Kind) (uint32, bool) {
	n := t.Get(id)
	if n == nil {
		return 0, false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return uint32(n.Payload), true
		}
	}
	return 0, false
}

// NewIdentifier creates an Identifier node.
func (t *Tree) NewIdentifier(span source.Span, name string) NodeID {
	return t.new(Identifier, span, t.Names.Allocate(NameData{Name: name}))
}

// Name returns the name of an Identifier node.
func (t *Tree) Name(id NodeID) (string, bool) {
	p, ok := t.payload(id, Identifier)
	if !ok {
		return "", false
	}
	return t.Names.Get(p).Name, true
}

// NewLiteral creates a literal node of the given kind.
func (t *Tree) NewLiteral(kind Kind, span source.Span, raw, value string) NodeID {
	return t.new(kind, span, t.Literals.Allocate(LiteralData{Raw: raw, Value: value}))
}

// Literal returns literal data for any literal kind.
func (t *Tree) Literal(id NodeID) (*LiteralData, bool) {
	p, ok := t.payload(id, StringLiteral, NumericLiteral, BooleanLiteral, NilLiteral, VarargLiteral)
	if !ok {
		return nil, false
	}
	return t.Literals.Get(p), true
}

// NewMember creates a MemberExpression.
func (t *Tree) NewMember(span source.Span, base NodeID, indexer byte, ident NodeID) NodeID {
	return t.new(MemberExpression, span, t.Members.Allocate(MemberData{Base: base, Indexer: indexer, Identifier: ident}))
}

// Member returns member data.
func (t *Tree) Member(id NodeID) (*MemberData, bool) {
	p, ok := t.payload(id, MemberExpression)
	if !ok {
		return nil, false
	}
	return t.Members.Get(p), true
}

// NewIndex creates an IndexExpression.
func (t *Tree) NewIndex(span source.Span, base, index NodeID) NodeID {
	return t.new(IndexExpression, span, t.Indexes.Allocate(IndexData{Base: base, Index: index}))
}

// Index returns index data.
func (t *Tree) Index(id NodeID) (*IndexData, bool) {
	p, ok := t.payload(id, IndexExpression)
	if !ok {
		return nil, false
	}
	return t.Indexes.Get(p), true
}

// NewCall creates one of the call kinds.
func (t *Tree) NewCall(kind Kind, span source.Span, base NodeID, args []NodeID) NodeID {
	return t.new(kind, span, t.Calls.Allocate(CallData{Base: base, Args: args}))
}

// Call returns call data for any call kind.
func (t *Tree) Call(id NodeID) (*CallData, bool) {
	p, ok := t.payload(id, CallExpression, StringCallExpression, TableCallExpression)
	if !ok {
		return nil, false
	}
	return t.Calls.Get(p), true
}

// NewFunction creates a FunctionDeclaration.
func (t *Tree) NewFunction(span source.Span, data FunctionData) NodeID {
	return t.new(FunctionDeclaration, span, t.Functions.Allocate(data))
}

// Function returns function data.
func (t *Tree) Function(id NodeID) (*FunctionData, bool) {
	p, ok := t.payload(id, FunctionDeclaration)
	if !ok {
		return nil, false
	}
	return t.Functions.Get(p), true
}

// NewAssign creates a LocalStatement or AssignmentStatement.
func (t *Tree) NewAssign(kind Kind, span source.Span, vars, init []NodeID) NodeID {
	return t.new(kind, span, t.Assigns.Allocate(AssignData{Variables: vars, Init: init}))
}

// Assign returns assignment data.
func (t *Tree) Assign(id NodeID) (*AssignData, bool) {
	p, ok := t.payload(id, LocalStatement, AssignmentStatement)
	if !ok {
		return nil, false
	}
	return t.Assigns.Get(p), true
}

// NewList creates a list-shaped node (see ListData).
func (t *Tree) NewList(kind Kind, span source.Span, items []NodeID) NodeID {
	return t.new(kind, span, t.Lists.Allocate(ListData{Items: items}))
}

// List returns the items of a list-shaped node.
func (t *Tree) List(id NodeID) ([]NodeID, bool) {
	p, ok := t.payload(id, Chunk, DoStatement, ElseClause, ReturnStatement, IfStatement, TableConstructorExpression)
	if !ok {
		return nil, false
	}
	return t.Lists.Get(p).Items, true
}

// NewBlock creates a condition+body node.
func (t *Tree) NewBlock(kind Kind, span source.Span, cond NodeID, body []NodeID) NodeID {
	return t.new(kind, span, t.Blocks.Allocate(BlockData{Condition: cond, Body: body}))
}

// Block returns condition+body data.
func (t *Tree) Block(id NodeID) (*BlockData, bool) {
	p, ok := t.payload(id, WhileStatement, RepeatStatement, IfClause, ElseifClause)
	if !ok {
		return nil, false
	}
	return t.Blocks.Get(p), true
}

// NewForNumeric creates a ForNumericStatement.
func (t *Tree) NewForNumeric(span source.Span, data ForNumericData) NodeID {
	return t.new(ForNumericStatement, span, t.ForNums.Allocate(data))
}

// ForNumeric returns numeric-for data.
func (t *Tree) ForNumeric(id NodeID) (*ForNumericData, bool) {
	p, ok := t.payload(id, ForNumericStatement)
	if !ok {
		return nil, false
	}
	return t.ForNums.Get(p), true
}

// NewForGeneric creates a ForGenericStatement.
func (t *Tree) NewForGeneric(span source.Span, data ForGenericData) NodeID {
	return t.new(ForGenericStatement, span, t.ForGens.Allocate(data))
}

// ForGeneric returns generic-for data.
func (t *Tree) ForGeneric(id NodeID) (*ForGenericData, bool) {
	p, ok := t.payload(id, ForGenericStatement)
	if !ok {
		return nil, false
	}
	return t.ForGens.Get(p), true
}

// NewField creates a table constructor field.
func (t *Tree) NewField(kind Kind, span source.Span, key, value NodeID) NodeID {
	return t.new(kind, span, t.Fields.Allocate(FieldData{Key: key, Value: value}))
}

// Field returns table field data.
func (t *Tree) Field(id NodeID) (*FieldData, bool) {
	p, ok := t.payload(id, TableKey, TableKeyString, TableValue)
	if !ok {
		return nil, false
	}
	return t.Fields.Get(p), true
}

// NewOp creates a binary, logical or unary expression.
func (t *Tree) NewOp(kind Kind, span source.Span, op string, left, right NodeID) NodeID {
	return t.new(kind, span, t.Ops.Allocate(OpData{Operator: op, Left: left, Right: right}))
}

// Op returns operator data.
func (t *Tree) Op(id NodeID) (*OpData, bool) {
	p, ok := t.payload(id, BinaryExpression, LogicalExpression, UnaryExpression)
	if !ok {
		return nil, false
	}
	return t.Ops.Get(p), true
}

// NewRef creates a single-reference node (CallStatement, GotoStatement, LabelStatement).
func (t *Tree) NewRef(kind Kind, span source.Span, target NodeID) NodeID {
	return t.new(kind, span, t.Refs.Allocate(RefData{Target: target}))
}

// Ref returns the referenced node.
func (t *Tree) Ref(id NodeID) (NodeID, bool) {
	p, ok := t.payload(id, CallStatement, GotoStatement, LabelStatement)
	if !ok {
		return NoNodeID, false
	}
	return t.Refs.Get(p).Target, true
}

// NewBreak creates a BreakStatement.
func (t *Tree) NewBreak(span source.Span) NodeID {
	return t.new(BreakStatement, span, 0)
}
