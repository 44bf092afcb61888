package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/githubnext/flowlint/pkg/console"
	"github.com/githubnext/flowlint/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// watchFiles calls run once, then again each time one of files changes,
// until ctx is cancelled. Bursts of events within debounce collapse into a
// single run, and runs never overlap.
//
// The parent directories are watched rather than the files, since many
// editors save by writing a temporary file and renaming it over the
// original.
func watchFiles(ctx context.Context, files []string, debounce time.Duration, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(files))
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watchLog.Printf("Watching directory %s", dir)
	}

	var mu sync.Mutex
	runLocked := func() {
		mu.Lock()
		defer mu.Unlock()
		run()
	}

	runLocked()
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching for changes. Press Ctrl+C to stop."))

	d := newDebouncer(debounce, runLocked)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("Watch cancelled")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, targets) {
				continue
			}
			watchLog.Printf("Change: %s", event)
			d.trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("watch error: %v", err)))
		}
	}
}

// relevant reports whether event changes the content of a watched file.
func relevant(event fsnotify.Event, targets map[string]bool) bool {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !targets[abs] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// debouncer runs fn once delay has passed without another trigger.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
