// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/schemareport/internal/config"
	"github.com/api2spec/schemareport/internal/scanner"
)

var (
	watchFlags    validationOptions
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch [payloads...]",
	Short: "Watch payloads and the schema and re-validate on change",
	Long: `Watch payload files and the schema document and re-run validation
whenever one of them changes.

Takes the same arguments as validate. Changes arriving within the debounce
window are batched into a single run. The HTML report is updated in place, so
a browser showing it only needs a reload.

Example:
  schemareport watch --schema schema.json payloads/
  schemareport watch --schema openapi.yaml --endpoint /pets --method get responses/ --report report.html
  schemareport watch --schema schema.json --debounce 1000 payloads/`,
	RunE: runWatch,
}

func init() {
	addValidationFlags(watchCmd, &watchFlags)
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(cfg, watchFlags.schema, paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose("  Directories: %s", strings.Join(dirs, ", "))

	printInfo("Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo("Press Ctrl+C to stop")

	run := func() {
		results, err := runValidation(ctx, cfg, &watchFlags, args)
		if err != nil {
			printError("%v", err)
			return
		}
		if err := printResults(results); err != nil {
			printError("%v", err)
		}
	}
	run()

	return watchLoop(ctx, watcher, time.Duration(cfg.Watch.Debounce)*time.Millisecond, run)
}

// watchLoop calls run once per burst of relevant events until ctx is done.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, run func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			printInfo("Stopped watching")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event) {
				continue
			}
			printVerbose("Changed: %s", event.Name)
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch error: %v", err)
		case <-timer.C:
			run()
		}
	}
}

// isRelevant reports whether an event can change a validation outcome.
func isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return scanner.IsSupportedFile(event.Name)
}

// watchDirs returns the directories holding the schema and the payloads.
// fsnotify watches are not recursive, so every subdirectory of a payload
// directory is watched as well.
func watchDirs(cfg *config.Config, schema string, paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		abs, err := filepath.Abs(dir)
		if err == nil && !seen[abs] {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}

	if schema != "" {
		add(filepath.Dir(schema))
	}

	s := scanner.New(scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
	files, err := s.ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan payloads: %w", err)
	}
	for _, f := range files {
		add(filepath.Dir(f.Path))
	}

	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			add(p)
		}
	}
	return dirs, nil
}
