package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/edgesplit/edgesplit/internal/bucket"
)

// Watcher reloads the config file when it changes and swaps the new catalog
// into the handle. Errors keep the last-known-good snapshot and are logged
// for operators; visitors never see a reload failure.
type Watcher struct {
	path   string
	handle *Handle
	log    *logrus.Logger
	fsw    *fsnotify.Watcher
	done   chan struct{}
}

// Watch starts watching the config file's directory. Watching the directory
// rather than the file survives editors and deploy tools that replace the
// file by rename.
func Watch(path string, handle *Handle, log *logrus.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:   path,
		handle: handle,
		log:    log,
		fsw:    fsw,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("config watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cat, err := w.reloadCatalog()
	if err != nil {
		w.log.WithError(err).WithField("path", w.path).
			Error("config reload failed, keeping previous catalog")
		return
	}
	w.handle.Swap(cat)
	w.log.WithFields(logrus.Fields{
		"path":  w.path,
		"tests": cat.Len(),
	}).Info("config reloaded")
}

func (w *Watcher) reloadCatalog() (*bucket.Catalog, error) {
	raw, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	return bucket.Build(raw)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
