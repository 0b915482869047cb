// CLASSIFICATION: COMMUNITY
// Filename: watcher.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports file-system changes under the served directory so
// a developer knows when a browser reload will pick up new content.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Logger is the logging surface the watcher needs.
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
	WithError(err error) *logrus.Entry
}

// Watcher follows a directory tree recursively.
type Watcher struct {
	root string
	fsw  *fsnotify.Watcher
	log  Logger

	mu      sync.Mutex
	onEvent []func(fsnotify.Event)
}

// New watches root and every directory below it. Hidden directories such
// as .git are skipped.
func New(root string, log Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{root: root, fsw: fsw, log: log}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// OnEvent registers fn to be called for every event, after it is logged.
func (w *Watcher) OnEvent(fn func(fsnotify.Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEvent = append(w.onEvent, fn)
}

// WatchList returns the directories currently watched.
func (w *Watcher) WatchList() []string {
	return w.fsw.WatchList()
}

// Run logs events until ctx is done, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) && !hidden(ev.Name) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.WithError(err).Warn("watch new directory")
			}
		}
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		rel = ev.Name
	}
	w.log.WithFields(logrus.Fields{
		"path": filepath.ToSlash(rel),
		"op":   ev.Op.String(),
	}).Info("file changed")

	w.mu.Lock()
	hooks := slices.Clone(w.onEvent)
	w.mu.Unlock()
	for _, fn := range hooks {
		fn(ev)
	}
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Directories removed mid-walk are not worth failing over.
			if path != dir {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
