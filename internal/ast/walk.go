package ast

// Children returns the direct children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Get(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	add := func(ids ...NodeID) {
		for _, c := range ids {
			if c.IsValid() {
				out = append(out, c)
			}
		}
	}

	switch n.Kind {
	case MemberExpression:
		m, _ := t.Member(id)
		add(m.Base, m.Identifier)
	case IndexExpression:
		ix, _ := t.Index(id)
		add(ix.Base, ix.Index)
	case CallExpression, StringCallExpression, TableCallExpression:
		c, _ := t.Call(id)
		add(c.Base)
		add(c.Args...)
	case FunctionDeclaration:
		f, _ := t.Function(id)
		add(f.Identifier)
		add(f.Params...)
		add(f.Body...)
	case LocalStatement, AssignmentStatement:
		a, _ := t.Assign(id)
		add(a.Variables...)
		add(a.Init...)
	case Chunk, DoStatement, ElseClause, ReturnStatement, IfStatement, TableConstructorExpression:
		items, _ := t.List(id)
		add(items...)
	case WhileStatement, IfClause, ElseifClause:
		b, _ := t.Block(id)
		add(b.Condition)
		add(b.Body...)
	case RepeatStatement:
		b, _ := t.Block(id)
		add(b.Body...)
		add(b.Condition)
	case ForNumericStatement:
		f, _ := t.ForNumeric(id)
		add(f.Variable, f.Start, f.End, f.Step)
		add(f.Body...)
	case ForGenericStatement:
		f, _ := t.ForGeneric(id)
		add(f.Variables...)
		add(f.Iterators...)
		add(f.Body...)
	case TableKey, TableKeyString, TableValue:
		f, _ := t.Field(id)
		add(f.Key, f.Value)
	case BinaryExpression, LogicalExpression, UnaryExpression:
		o, _ := t.Op(id)
		add(o.Left, o.Right)
	case CallStatement, GotoStatement, LabelStatement:
		r, _ := t.Ref(id)
		add(r)
	}
	return out
}

// Walk visits id and its descendants depth-first in source order.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !id.IsValid() || !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}
