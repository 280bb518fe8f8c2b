package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rimloc/rimloc/pkg/console"
	"github.com/rimloc/rimloc/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// debounceDelay coalesces bursts of filesystem events into one rerun.
const debounceDelay = 300 * time.Millisecond

// watchAndRun runs fn once, then re-runs it whenever an XML file under root
// changes. It blocks until interrupted.
func watchAndRun(root string, verbose bool, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewBufferedWatcher(100)
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	addDirs := func() error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					watchLog.Printf("Cannot watch %s: %v", path, err)
				}
			}
			return nil
		})
	}
	if err := addDirs(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching for changes. Press Ctrl+C to stop."))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var timer *time.Timer
	rerun := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceDelay, func() {
			select {
			case rerun <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				// New directories must be watched too.
				_ = watcher.Add(event.Name)
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}
			watchLog.Printf("Change detected: %s", event.Name)
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("watch error: %v", err)))
		case <-rerun:
			if verbose {
				fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Change detected, re-running..."))
			}
			if err := fn(); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			}
		case <-interrupt:
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Stopped watching."))
			return nil
		}
	}
}
