package loader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "insta.json")
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(tracked, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu      sync.Mutex
		changed []string
	)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{tracked}, func(path string) {
			mu.Lock()
			defer mu.Unlock()
			changed = append(changed, path)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(tracked, []byte(`{"2025-06-01T12:00": 1}`), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range changed {
		assert.Equal(t, tracked, p)
	}
}

func TestWatchNeedsPaths(t *testing.T) {
	assert.Error(t, Watch(context.Background(), nil, func(string) {}))
}
