package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	// KindPoint is an instant event, e.g. a log line.
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a CLI command or the server's lifetime.
	ScopeDriver Scope = iota + 1
	// ScopeRequest covers one language server request or notification.
	ScopeRequest
	// ScopePass covers one analysis, lint or format pass.
	ScopePass
	// ScopeFile covers per-file work inside a workspace operation.
	ScopeFile
	ScopeNode
)

var scopeNames = [...]string{
	ScopeDriver:  "driver",
	ScopeRequest: "request",
	ScopePass:    "pass",
	ScopeFile:    "file",
	ScopeNode:    "node",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event is one record written by a Tracer.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "analyze", "textDocument/completion", ...
	Detail   string
	Extra    map[string]string
}
