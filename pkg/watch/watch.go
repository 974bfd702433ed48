// Package watch re-runs a function whenever a file changes.
//
// The parent directory is watched instead of the file itself so that editors
// which save by writing a temporary file and renaming it over the original
// are still noticed. Bursts of events are collapsed by a debounce window and
// the callback runs once per burst, always from the goroutine calling
// [Watcher.Run].
package watch

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// DefaultDebounce is how long the file must be quiet before the callback runs.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for watch errors and callback failures.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// Watcher watches a single file.
type Watcher struct {
	path     string
	name     string
	debounce time.Duration
	logger   *log.Logger

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
}

// New starts watching path. The file's directory must exist; the file itself
// may appear later.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, dterrors.Wrap(dterrors.ErrCodeInvalidInput, err, "resolve %s", path)
	}

	w := &Watcher{
		path:     abs,
		name:     filepath.Base(abs),
		debounce: DefaultDebounce,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, dterrors.Wrap(dterrors.ErrCodeInternal, err, "create watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, dterrors.Wrap(dterrors.ErrCodeFileNotFound, err, "watch %s", filepath.Dir(abs))
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls fn after every debounced change to the file until ctx is
// canceled or the watcher is closed. Errors from fn are logged and do not
// stop the loop. Run returns ctx.Err() on cancellation and nil after Close.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-timerC:
			timerC = nil
			if err := fn(ctx); err != nil {
				w.logger.Error("update failed", "path", w.path, "err", err)
			}
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
