package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// DBChangedMsg is sent when the database file changed on disk, for example
// after `weekview add` ran in another terminal.
type DBChangedMsg struct{}

const defaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a SQLite database file. Bursts of events are
// collapsed into one notification.
type Watcher struct {
	fs       *fsnotify.Watcher
	base     string
	debounce time.Duration
	log      *slog.Logger

	changes   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches the directory of dbPath. SQLite writes through
// journal and WAL files, so the directory is watched rather than the file.
func NewWatcher(dbPath string, log *slog.Logger) (*Watcher, error) {
	return newWatcher(dbPath, log, defaultDebounce)
}

func newWatcher(dbPath string, log *slog.Logger, debounce time.Duration) (*Watcher, error) {
	if dbPath == "" {
		return nil, errors.New("database path is empty")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(dbPath)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fs:       fw,
		base:     filepath.Base(dbPath),
		debounce: debounce,
		log:      log,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	timer := time.NewTimer(0)
	<-timer.C // drain initial timer
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default: // a notification is already pending
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("database watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(name string) bool {
	switch filepath.Base(name) {
	case w.base, w.base + "-wal", w.base + "-journal":
		return true
	}
	return false
}

// Wait returns a command that blocks until the next change. The model issues
// it again after every DBChangedMsg.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.changes:
			return DBChangedMsg{}
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
