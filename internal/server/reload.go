package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader watches the rules file for changes and triggers hot-reload.
type Reloader struct {
	watcher *fsnotify.Watcher
	server  *Server
	path    string
}

// NewReloader creates a file watcher for the server's rules file.
// A missing or empty path yields a no-op reloader.
func NewReloader(server *Server, path string) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("server: create file watcher: %w", err)
	}

	watched := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := watcher.Add(path); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("server: watch %q: %w", path, err)
			}
			watched = path
		}
	}

	return &Reloader{watcher: watcher, server: server, path: watched}, nil
}

// Run watches for file changes and reloads the rules. Blocks until ctx
// is cancelled. Writes are debounced so editors that truncate-then-write
// trigger one reload, not two.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, func() {
					if err := r.server.Reload(); err != nil {
						r.server.log.Error().Err(err).Msg("hot-reload failed")
					}
				})
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			r.server.log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
