package render

import (
	"context"
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads layouts whenever a .tmpl file in the override directory
// changes. It blocks until ctx is canceled; callers run it in a goroutine.
// A renderer with no override directory returns immediately.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.overrideDir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(r.overrideDir); err != nil {
		return err
	}
	log.Printf("[render] watching %s for layout overrides", r.overrideDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".tmpl") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := r.Reload(); err != nil {
				// A broken override must not take down rendering; the
				// previous parse stays active.
				log.Printf("[render] reload failed after change to %s: %v", event.Name, err)
				continue
			}
			log.Printf("[render] layouts reloaded after change to %s", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[render] watch error: %v", err)
		}
	}
}
