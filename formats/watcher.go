package formats

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Reloader перечитывает форматы
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher следит за файлом форматов и перезагружает реестр после изменений.
// Серия быстрых записей схлопывается в одну перезагрузку.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	target   Reloader
	path     string
	logger   *slog.Logger
	debounce time.Duration
	reloads  int
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher создает наблюдателя за файлом path
func NewWatcher(path string, target Reloader, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		watcher:  fw,
		target:   target,
		path:     filepath.Clean(abs),
		logger:   logger,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce меняет интервал схлопывания событий. Вызывается до Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Start начинает наблюдение. Следим за каталогом, а не за файлом:
// редакторы заменяют файл через rename.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("Watching formats file", "path", w.path)

	go w.run(ctx)
	return nil
}

// Stop останавливает наблюдение и ждёт завершения цикла
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("Failed to close formats watcher", "error", err)
	}
}

// Reloads количество выполненных перезагрузок
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			d := w.debounce
			w.mu.Unlock()
			timer.Reset(d)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Formats watcher error", "error", err)

		case <-timer.C:
			if err := w.target.Reload(ctx); err != nil {
				w.logger.Error("Failed to reload formats", "path", w.path, "error", err)
				continue
			}
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()
			w.logger.Info("Formats reloaded after file change", "path", w.path)
		}
	}
}
