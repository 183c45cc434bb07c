package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/joshuapare/prefkit/internal/logger"
)

const watchDebounce = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print preferences whenever the profile's files change",
		Long: `The watch command loads the profile, prints every key and then reloads and
prints again each time one of the files is written, replaced or removed.
Stop it with Ctrl-C.

Example:
  prefsctl watch -p app.toml
  prefsctl watch --rc prefs.xml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx)
		},
	}
	return cmd
}

func runWatch(ctx context.Context) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := watchTargets(watcher, p)
	if err != nil {
		return err
	}

	reload := func() {
		store, _, err := openStore()
		if err != nil {
			printError("%v\n", err)
			return
		}
		defer store.Close()
		if err := printItems(collect(store)); err != nil {
			printError("%v\n", err)
		}
		if !jsonOut {
			fmt.Println()
		}
	}

	reload()
	return watchLoop(ctx, watcher, targets, reload)
}

// watchTargets adds the directory of every profile file to w. Directories
// are watched rather than files so atomic replacements are seen.
func watchTargets(w *fsnotify.Watcher, p Profile) (map[string]bool, error) {
	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range append(append([]string{}, p.Sys...), p.RC, p.State) {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
		printVerbose("Watching %s\n", dir)
	}
	return targets, nil
}

// watchLoop calls onChange once a burst of events on targets settles. It
// returns when ctx is done or the watcher is closed.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, targets map[string]bool, onChange func()) error {
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("preference file changed", "file", name, "op", event.Op.String())
			timer.Reset(watchDebounce)
		case <-timer.C:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
