package dialect

import "lunar/internal/source"

// Hint is a single observation that a buffer uses a feature introduced in Needs.
type Hint struct {
	Needs  Version
	Reason string
	Span   source.Span
}

// Evidence aggregates per-file hints collected during tokenization.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates a new Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 8),
	}
}

// Add appends a hint to the evidence collection.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}
