package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/fieldcheck/pkg/console"
	"github.com/githubnext/fieldcheck/pkg/fileutil"
	"github.com/githubnext/fieldcheck/pkg/logger"
)

var watchLog = logger.New("cli:check_watch")

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 300 * time.Millisecond

// WatchCheck runs the check once and again after every change to the schema
// or answers file, until ctx is done. Failed checks are reported but do not
// stop watching.
func WatchCheck(ctx context.Context, config CheckConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := watchTargets(config.SchemaPath, config.AnswersPath)
	if err != nil {
		return err
	}
	// Watch directories, not files, so that atomic saves (write to temp,
	// rename over) keep being seen.
	dirs := make(map[string]bool)
	for path := range targets {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watchLog.Printf("Watching directory: %s", dir)
	}

	runWatchedCheck(ctx, config)
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching for changes. Press Ctrl+C to stop."))

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			watchLog.Print("Watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantEvent(event, targets) {
				continue
			}
			watchLog.Printf("Change detected: %s", event)
			debounce = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("watch error: %v", err)))

		case <-debounce:
			debounce = nil
			runWatchedCheck(ctx, config)
		}
	}
}

func runWatchedCheck(ctx context.Context, config CheckConfig) {
	_, err := RunCheck(ctx, config)
	if err != nil && !errors.Is(err, ErrValidationFailed) {
		watchLog.Printf("Check failed: %v", err)
	}
}

func watchTargets(paths ...string) (map[string]bool, error) {
	targets := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := fileutil.ResolvePath(p)
		if err != nil {
			return nil, err
		}
		targets[abs] = true
	}
	return targets, nil
}

func isRelevantEvent(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
