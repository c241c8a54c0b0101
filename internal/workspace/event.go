package workspace

// EventKind tells progress consumers what happened.
type EventKind uint8

const (
	// EventScan fires once the file list is known; Total is set.
	EventScan EventKind = iota + 1
	// EventFile fires after each file; Done counts finished files.
	EventFile
	// EventCached is EventFile for a cache hit.
	EventCached
	// EventFailed is EventFile for a file that could not be read or parsed.
	EventFailed
	EventDone
	// EventRemoved fires when the watcher drops a deleted file.
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventScan:
		return "scan"
	case EventFile:
		return "file"
	case EventCached:
		return "cached"
	case EventFailed:
		return "failed"
	case EventDone:
		return "done"
	case EventRemoved:
		return "removed"
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Path  string
	Done  int
	Total int
	Err   error
}

// Progress receives events. It may be called from several goroutines.
type Progress func(Event)
