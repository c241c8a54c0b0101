package analysis

import (
	"errors"
	"fmt"

	"lunar/internal/ast"
)

const (
	// ScopeMarker is the call injected at the cursor for completion passes.
	ScopeMarker = "__scope_marker__"
	// TableHelper wraps the marker after `.` or `:` to capture the completed table.
	TableHelper = "__completion_helper__"
)

// ErrScopeUnderflow reports a desynchronized scope stack. It is a bug in the
// parser or tracker, never a property of user input.
var ErrScopeUnderflow = errors.New("analysis: scope stack underflow")

// Tracker implements parser.Hooks. It builds the scope tree, records the
// scope of every node and notices completion markers.
type Tracker struct {
	scopes    *Scopes
	stack     []ScopeID
	nodeScope []ScopeID // индекс: NodeID

	entered     int
	cursor      ScopeID
	tableScoped bool
	tableName   string
}

// NewTracker returns a tracker with an empty scope stack.
func NewTracker() *Tracker {
	return &Tracker{scopes: NewScopes(0)}
}

// Current returns the scope on top of the stack.
func (t *Tracker) Current() ScopeID {
	if len(t.stack) == 0 {
		return NoScopeID
	}
	return t.stack[len(t.stack)-1]
}

// Scopes exposes the arena built so far.
func (t *Tracker) Scopes() *Scopes { return t.scopes }

// Entered returns the number of scope-entry events seen.
func (t *Tracker) Entered() int { return t.entered }

func (t *Tracker) EnterScope() error {
	t.entered++
	id := t.scopes.New(t.Current())
	t.stack = append(t.stack, id)
	return nil
}

func (t *Tracker) ExitScope() error {
	if len(t.stack) == 0 {
		return fmt.Errorf("%w: scope exit without a matching entry", ErrScopeUnderflow)
	}
	t.stack = t.stack[:len(t.stack)-1]
	return nil
}

func (t *Tracker) NodeCreated(tree *ast.Tree, id ast.NodeID) error {
	node := tree.Get(id)
	if node == nil || node.Kind == ast.Chunk {
		return nil
	}
	cur := t.Current()
	if !cur.IsValid() {
		return fmt.Errorf("%w: %s at offset %d created outside any scope", ErrScopeUnderflow, node.Kind, node.Span.Start)
	}

	for int(id) >= len(t.nodeScope) {
		t.nodeScope = append(t.nodeScope, NoScopeID)
	}
	t.nodeScope[id] = cur
	sc := t.scopes.Get(cur)
	sc.Nodes = append(sc.Nodes, id)

	if node.Kind == ast.CallExpression {
		t.observeCall(tree, id, cur)
	}
	return nil
}

// observeCall записывает область курсора и имя таблицы для маркеров.
func (t *Tracker) observeCall(tree *ast.Tree, id ast.NodeID, cur ScopeID) {
	call, ok := tree.Call(id)
	if !ok {
		return
	}
	switch tree.Kind(call.Base) {
	case ast.Identifier:
		if name, _ := tree.Name(call.Base); name == ScopeMarker {
			t.cursor = cur
		}
	case ast.MemberExpression:
		name, container := resolveName(tree, call.Base)
		if name == TableHelper {
			t.tableScoped = true
			t.tableName = container
		}
	}
}

// ScopeOf returns the scope a node was attached to.
func (t *Tracker) ScopeOf(id ast.NodeID) ScopeID {
	if int(id) >= len(t.nodeScope) {
		return NoScopeID
	}
	return t.nodeScope[id]
}
