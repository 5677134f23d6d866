// Package watcher reports changes to a single detections file.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-nfc-checklist/internal/util"
)

// FileEvent is a write or create seen on the watched file.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches the directory holding one file, so that editors which
// replace the file on save are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan FileEvent
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan FileEvent, 100),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			util.LogDebugf("Detections file changed: %s (%s)", event.Name, event.Op)
			fw.events <- FileEvent{
				Path:      event.Name,
				Operation: event.Op.String(),
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events delivers changes to the watched file. It is closed by Close.
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
