// SPDX-License-Identifier: GPL-3.0-or-later

package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/willyd61/grafana-customTables-panel/logger"
)

// Watcher reports changes of a set of files. The directories holding them are watched,
// so files replaced by editors keep being reported.
type Watcher struct {
	*logger.Logger

	watcher *fsnotify.Watcher
	files   map[string]bool
}

func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		Logger: logger.New().With(
			slog.String("component", "file watcher"),
		),
		watcher: fw,
		files:   make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch '%s': %v", path, err)
		}
		w.files[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch '%s': %v", dir, err)
		}
		dirs[dir] = true
	}

	return w, nil
}

// Run calls changed with the path of every written, created or renamed file
// until the context is done.
func (w *Watcher) Run(ctx context.Context, changed func(path string)) {
	w.Info("instance is started")
	defer func() { w.Info("instance is stopped") }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			w.Debugf("%s: %s", event.Op, name)
			changed(name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Warningf("watch: %v", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
