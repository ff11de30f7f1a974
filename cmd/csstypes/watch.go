package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yacobolo/csstypes"
	"github.com/yacobolo/csstypes/internal/report"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 150 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the stylesheet or a content file changes",
	Long: `Run generate once, then again on every change to the input stylesheet
or the directories of the content globs. Unchanged outputs are never
rewritten, so watchers downstream only fire on real changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	rc, err := buildRunConfig()
	if err != nil {
		return err
	}

	// Validate up front and learn the resolved output and content paths
	p, err := csstypes.New(rc.Options)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := watchDirs(append([]string{rc.Input}, p.ContentPaths()...))
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := report.NewReporter(os.Stdout, rc.Color)
	run := func() {
		result, err := generateOnce(rc)
		if err != nil {
			reporter.PrintError(err)
			return
		}
		if !rc.Quiet {
			_ = reporter.Write(result, rc.Format)
		}
	}

	run()
	if !rc.Quiet {
		fmt.Printf("Watching %d directories, press Ctrl+C to stop\n", len(dirs))
	}

	ignored := ownOutputs(p.OutputPath(), rc.CSSOutput)
	return watchLoop(ctx, watcher, ignored, run)
}

// watchLoop calls run once per debounced burst of relevant events until ctx
// is done.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, ignored map[string]bool, run func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, ignored) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New directories under a content root need their own watch
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			timer.Reset(debounce)

		case <-timer.C:
			run()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher error: %v\n", err)
		}
	}
}

// relevant reports whether an event should trigger a run. Writes to our own
// outputs would otherwise loop forever.
func relevant(event fsnotify.Event, ignored map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return !ignored[absPath(event.Name)]
}

func ownOutputs(paths ...string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, path := range paths {
		if path != "" && path != "-" {
			set[absPath(path)] = true
		}
	}
	return set
}

// watchDirs returns every existing directory that can hold a file matching
// one of the patterns: the static base of each glob and, for patterns with
// wildcards, all directories below it. fsnotify does not watch recursively.
func watchDirs(patterns []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, pattern := range patterns {
		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		base = filepath.FromSlash(base)

		info, err := os.Stat(base)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(base))
			continue
		}
		if filepath.Dir(filepath.FromSlash(rest)) == "." {
			add(base)
			continue
		}
		_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
	}
	return dirs
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
