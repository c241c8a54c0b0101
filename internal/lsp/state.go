package lsp

import (
	"time"

	"lunar/internal/analysis"
)

// document is the server-side state of one open buffer.
type document struct {
	uri     string
	path    string
	text    string
	version int
	// seq grows with every content change; a diagnostics pass only applies
	// its result when seq is unchanged.
	seq   uint64
	timer *time.Timer
	// session is the last pass without a syntax error.
	session *analysis.Session
}

// snapshot is a copy of a document taken under s.mu.
type snapshot struct {
	uri     string
	path    string
	text    string
	version int
	seq     uint64
	session *analysis.Session
}

func (s *Server) snapshotFor(uri string) (snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return snapshot{}, false
	}
	return snapshot{
		uri:     doc.uri,
		path:    doc.path,
		text:    doc.text,
		version: doc.version,
		seq:     doc.seq,
		session: doc.session,
	}, true
}

// keepSession stores a good session unless the document changed meanwhile.
func (s *Server) keepSession(uri string, seq uint64, session *analysis.Session) bool {
	if session == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || doc.seq != seq {
		return false
	}
	doc.session = session
	return true
}

func (s *Server) currentTrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceLSP
}
