package analysis

import (
	"fmt"

	"fortio.org/safecast"

	"lunar/internal/ast"
)

// Scope is one lexical block. Nodes are kept in creation order.
type Scope struct {
	Parent   ScopeID
	Depth    int
	Nodes    []ast.NodeID
	Children []ScopeID
}

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a scope under parent; an invalid parent makes a root.
func (s *Scopes) New(parent ScopeID) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	depth := 0
	if p := s.Get(parent); p != nil {
		depth = p.Depth + 1
	}
	s.data = append(s.data, Scope{Parent: parent, Depth: depth})
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Parent returns the parent of id, or NoScopeID for roots and invalid IDs.
func (s *Scopes) Parent(id ScopeID) ScopeID {
	if sc := s.Get(id); sc != nil {
		return sc.Parent
	}
	return NoScopeID
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Global returns the first root scope.
func (s *Scopes) Global() ScopeID {
	if s.Len() == 0 {
		return NoScopeID
	}
	return 1
}

// IsAncestorOrSelf reports whether anc is id or one of its ancestors.
func (s *Scopes) IsAncestorOrSelf(anc, id ScopeID) bool {
	if !anc.IsValid() {
		return false
	}
	for cur := id; cur.IsValid(); cur = s.Parent(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}

// Chain returns id followed by its ancestors up to the root.
func (s *Scopes) Chain(id ScopeID) []ScopeID {
	var out []ScopeID
	for cur := id; cur.IsValid(); cur = s.Parent(cur) {
		out = append(out, cur)
	}
	return out
}
