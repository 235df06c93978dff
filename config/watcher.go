package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"spritepad/log"
	"spritepad/ui/debounce"
)

const watcherSettle = 200 * time.Millisecond

// Watcher reports config file changes so the app can hot-reload key
// bindings and tooltip settings while running.
type Watcher struct {
	fw        *fsnotify.Watcher
	deb       *debounce.Debouncer
	changes   chan struct{}
	done      chan struct{}
	errEvery  *log.Every
	closeOnce sync.Once
}

// NewWatcher watches the config file for changes. The config directory
// is watched rather than the file itself: saves go through a rename,
// which would retire a watch on the file's inode.
func NewWatcher() (*Watcher, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return newWatcher(configPath)
}

func newWatcher(configPath string) (*Watcher, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		fw:       fw,
		deb:      debounce.New(watcherSettle),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		errEvery: log.NewEvery(30 * time.Second),
	}
	go w.run(filepath.Base(configPath))
	return w, nil
}

// run filters directory events down to the config file and coalesces
// editor write bursts into a single settled notification.
func (w *Watcher) run(name string) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.deb.Trigger(w.notify)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.errEvery.ShouldLog() {
				log.WarningLog.Printf("config watcher error: %v", err)
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
		// A reload is already queued; one signal covers the burst.
	}
}

// Changes delivers one signal per settled burst of config writes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.deb.Cancel()
		err = w.fw.Close()
	})
	return err
}
