package session

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies what happened to the canary.
type EventKind int

const (
	// EventChange: the canary was written. Payload holds its contents, or
	// Err a *CanaryReadError.
	EventChange EventKind = iota + 1
	// EventRename: the canary was renamed or removed. Err holds a
	// *SessionIntegrityError.
	EventRename
	// EventWatchError: the watch itself reported an error.
	EventWatchError
)

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventRename:
		return "rename"
	case EventWatchError:
		return "watch_error"
	}
	return "unknown"
}

// SessionEvent is delivered to the control loop.
type SessionEvent struct {
	Kind      EventKind
	SessionID string
	Payload   []byte
	Err       error
}

// Classify reports whether a canary payload marks a successful run: the
// scripts write "1" on failure and the selected lines on success.
func Classify(payload []byte) bool {
	return len(payload) > 0 && payload[0] != '1'
}

// Watcher turns canary file activity into SessionEvents. Writes within the
// debounce window coalesce into one event, and the file is read here rather
// than by the receiver.
type Watcher struct {
	fsw       *fsnotify.Watcher
	path      string
	sessionID string
	debounce  time.Duration
	out       chan<- SessionEvent
	logger    *slog.Logger

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// Watch starts watching path. Events are sent on out until Close.
func Watch(path, sessionID string, debounce time.Duration, out chan<- SessionEvent, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:       fsw,
		path:      path,
		sessionID: sessionID,
		debounce:  debounce,
		out:       out,
		logger:    logger,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			switch {
			case ev.Has(fsnotify.Rename), ev.Has(fsnotify.Remove):
				w.logger.Warn("canary_lost", slog.String("session", w.sessionID), slog.String("op", ev.Op.String()))
				w.emit(SessionEvent{
					Kind: EventRename,
					Err:  &SessionIntegrityError{Path: w.path, SessionID: w.sessionID},
				})
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
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
				fire = timer.C
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("canary_watch_error", slog.String("session", w.sessionID), slog.String("error", err.Error()))
			w.emit(SessionEvent{Kind: EventWatchError, Err: err})
		case <-fire:
			fire = nil
			data, err := os.ReadFile(w.path)
			if err != nil {
				w.emit(SessionEvent{Kind: EventChange, Err: &CanaryReadError{Path: w.path, Cause: err}})
				continue
			}
			w.logger.Debug("canary_changed", slog.String("session", w.sessionID), slog.Int("bytes", len(data)))
			w.emit(SessionEvent{Kind: EventChange, Payload: data})
		}
	}
}

func (w *Watcher) emit(ev SessionEvent) {
	ev.SessionID = w.sessionID
	select {
	case w.out <- ev:
	case <-w.done:
	}
}

// Close stops the watch and waits for the loop to exit. It is idempotent.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		<-w.stopped
	})
	return err
}
