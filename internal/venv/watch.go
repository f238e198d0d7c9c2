package venv

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the workspace root for the virtual environment directory
// materializing and signals the returned channel when it does. The signal
// only wakes the readiness poll early; the poll itself stays authoritative.
// The returned stop function releases the watcher.
func Watch(workspace string) (<-chan struct{}, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(workspace); err != nil {
		w.Close()
		return nil, nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Create) && filepath.Base(ev.Name) == Dir {
					select {
					case ch <- struct{}{}:
					default:
					}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
				// Watch errors are non-fatal: polling still covers readiness.
			}
		}
	}()

	return ch, func() { w.Close() }, nil
}
