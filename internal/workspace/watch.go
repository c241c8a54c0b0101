package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"lunar/internal/trace"
)

// DefaultDebounce batches bursts of writes (editors often write twice).
const DefaultDebounce = 100 * time.Millisecond

// Watcher keeps an Index in sync with the file system.
type Watcher struct {
	ix       *Index
	fsw      *fsnotify.Watcher
	debounce time.Duration
	progress Progress

	changes  chan string
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher for ix. progress receives one event per
// reindexed or removed file and may be nil.
func NewWatcher(ix *Index, debounce time.Duration, progress Progress) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		ix:       ix,
		fsw:      fsw,
		debounce: debounce,
		progress: progress,
		changes:  make(chan string, 1024),
		done:     make(chan struct{}),
	}, nil
}

// Start registers every directory under the root and begins processing
// events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.ix.Root()); err != nil {
		return err
	}
	w.wg.Add(2)
	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop closes the watcher and waits for pending work.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsw.Close() //nolint:errcheck
		w.wg.Wait()
	})
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // пропускаем нечитаемое
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.ix.Root() && excluded(path, w.ix.opts.Excludes) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()
	tracer := trace.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if !excluded(ev.Name, w.ix.opts.Excludes) {
						_ = w.addRecursive(ev.Name) //nolint:errcheck
						w.queueDir(ev.Name)
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.ix.Contains(ev.Name) {
				continue
			}
			select {
			case w.changes <- ev.Name:
			default:
				trace.Point(tracer, trace.ScopeFile, "watch_overflow", ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			trace.Point(tracer, trace.ScopeFile, "watch_error", err.Error())
		}
	}
}

// queueDir enqueues the Lua files of a directory that appeared after Start.
func (w *Watcher) queueDir(dir string) {
	files, err := Discover(dir, w.ix.opts.Excludes)
	if err != nil {
		return
	}
	for _, f := range files {
		select {
		case w.changes <- f:
		default:
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer w.wg.Done()
	var (
		batch  []string
		timer  *time.Timer
		timerC <-chan time.Time
	)
	flush := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
		if len(batch) == 0 {
			return
		}
		slices.Sort(batch)
		for _, path := range slices.Compact(batch) {
			kind, err := w.ix.Update(ctx, path)
			emit(w.progress, Event{Kind: kind, Path: path, Err: err})
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			flush()
			return
		case path := <-w.changes:
			batch = append(batch, path)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}
		case <-timerC:
			flush()
		}
	}
}
