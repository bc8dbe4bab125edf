package game

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.yaml")
	later := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	var mu sync.Mutex
	seen := map[string]int{}
	w := NewFileWatcher([]string{existing, later}, 10*time.Millisecond, func(p string) {
		mu.Lock()
		seen[p]++
		mu.Unlock()
	})
	w.Start(t.Context())
	defer w.Stop()

	count := func(p string) int {
		mu.Lock()
		defer mu.Unlock()
		return seen[p]
	}

	// priming must not report anything
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, count(existing))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(existing, future, future))
	require.NoError(t, os.WriteFile(later, []byte("y"), 0o644))

	assert.Eventually(t, func() bool {
		return count(existing) >= 1 && count(later) >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	w := NewFileWatcher(nil, 0, nil)
	assert.Equal(t, time.Second, w.Interval)
	w.Stop()
	w.Start(t.Context())
	w.Stop()
}
