// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/schemareport/internal/config"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write json", fsnotify.Event{Name: "a.json", Op: fsnotify.Write}, true},
		{"create yaml", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Create}, true},
		{"remove yml", fsnotify.Event{Name: "a.yml", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "a.json", Op: fsnotify.Chmod}, false},
		{"unsupported file", fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: "a.json.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelevant(tt.event))
		})
	}
}

func TestWatchDirs(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"schema/order.json":       orderSchema,
		"payloads/a.json":         `{}`,
		"payloads/nested/b.json":  `{}`,
		"payloads/empty/.gitkeep": ``,
	})
	// macOS temp dirs resolve through a symlink
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	dirs, err := watchDirs(config.Default(), "schema/order.json", []string{"payloads"})
	require.NoError(t, err)

	resolved := make([]string, 0, len(dirs))
	for _, d := range dirs {
		r, err := filepath.EvalSymlinks(d)
		require.NoError(t, err)
		resolved = append(resolved, r)
	}

	assert.Contains(t, resolved, filepath.Join(dir, "schema"))
	assert.Contains(t, resolved, filepath.Join(dir, "payloads"))
	assert.Contains(t, resolved, filepath.Join(dir, "payloads", "nested"))
	assert.Len(t, resolved, 3)
}

func TestWatchLoop_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, watcher.Add(dir))

	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, 100*time.Millisecond, func() { runs.Add(1) })
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "payload.json"), []byte(`{}`), 0o644))
	}

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}
