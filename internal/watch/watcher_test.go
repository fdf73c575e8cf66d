package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_shouldWatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  []string
		path     string
		want     bool
	}{
		{
			name:     "match go file",
			patterns: []string{"*.go"},
			path:     "/project/main.go",
			want:     true,
		},
		{
			name:     "match nested go file with ** pattern",
			patterns: []string{"**/*.go"},
			path:     "/project/internal/pkg/file.go",
			want:     true,
		},
		{
			name:     "exclude test file",
			patterns: []string{"*.go"},
			exclude:  []string{"*_test.go"},
			path:     "/project/main_test.go",
			want:     false,
		},
		{
			name:     "exclude generated adapters",
			patterns: []string{"*.go", "**/*.go"},
			exclude:  []string{"*_adapters.gen.go"},
			path:     "/project/orders/order_id_adapters.gen.go",
			want:     false,
		},
		{
			name:     "no match",
			patterns: []string{"*.go"},
			path:     "/project/readme.md",
			want:     false,
		},
		{
			name:     "exclude overrides pattern",
			patterns: []string{"*.go"},
			exclude:  []string{"vendor.go"},
			path:     "/project/vendor.go",
			want:     false,
		},
		{
			name:     "trailing slash in exclude",
			patterns: []string{"*.go"},
			exclude:  []string{"vendor/"},
			path:     "/project/vendor",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &FileWatcher{
				patterns: tt.patterns,
				exclude:  tt.exclude,
			}

			got := fw.shouldWatch(tt.path)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Test: events inside the debounce window collapse into one sorted batch
func TestFileWatcher_Debounce(t *testing.T) {
	var (
		mu      sync.Mutex
		batches [][]string
	)
	fw := &FileWatcher{
		debounce: 50 * time.Millisecond,
		pending:  make(map[string]struct{}),
		onChange: func(paths []string) {
			mu.Lock()
			defer mu.Unlock()
			batches = append(batches, paths)
		},
	}

	fw.schedule("/p/b.go")
	fw.schedule("/p/a.go")
	fw.schedule("/p/b.go")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/p/a.go", "/p/b.go"}, batches[0])
}

// Test: without a debounce every event fires immediately
func TestFileWatcher_NoDebounce(t *testing.T) {
	var got [][]string
	fw := &FileWatcher{
		pending:  make(map[string]struct{}),
		onChange: func(paths []string) { got = append(got, paths) },
	}
	fw.schedule("/p/a.go")
	fw.schedule("/p/b.go")
	assert.Equal(t, [][]string{{"/p/a.go"}, {"/p/b.go"}}, got)
}

func TestFileWatcher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0755))

	var (
		mu      sync.Mutex
		changed = make(map[string]bool)
	)
	fw, err := NewFileWatcher(Options{
		Patterns: []string{"*.go", "**/*.go"},
		Exclude:  []string{"*_test.go", "*_adapters.gen.go", "vendor"},
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
	}, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		for _, p := range paths {
			changed[filepath.Base(p)] = true
		}
	})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.AddDirectory(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go fw.Start(ctx)

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "orders.go"), []byte("package orders"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "orders_test.go"), []byte("package orders"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "order_id_adapters.gen.go"), []byte("package orders"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "handler.go"), []byte("package src"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changed["orders.go"] && changed["handler.go"]
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, changed["orders_test.go"])
	assert.False(t, changed["order_id_adapters.gen.go"])
}

func TestFileWatcher_Close(t *testing.T) {
	fw, err := NewFileWatcher(Options{Patterns: []string{"*.go"}}, func([]string) {})
	require.NoError(t, err)

	// Close should not error
	assert.NoError(t, fw.Close())

	// Double close should also be safe
	assert.NoError(t, fw.Close())
}
