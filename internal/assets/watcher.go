package assets

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the registry whenever the user catalog file changes.
// It never touches designer state; reloaded registries are delivered on
// Updates for the event loop to apply.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan *Registry
	done    chan struct{}
	logger  *zap.Logger
}

// Watch starts watching the catalog at path.
func Watch(path string, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create catalog watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan *Registry, 1),
		done:    make(chan struct{}),
		logger:  logger.Named("catalog"),
	}
	go w.loop()
	return w, nil
}

// Updates delivers the most recent successfully reloaded registry.
func (w *Watcher) Updates() <-chan *Registry {
	return w.updates
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	reg, err := LoadRegistry(w.path)
	if err != nil {
		// Half-written files are common; the next write event retries
		w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("assets", reg.Count()))

	// Keep only the newest registry
	select {
	case <-w.updates:
	default:
	}
	w.updates <- reg
}
