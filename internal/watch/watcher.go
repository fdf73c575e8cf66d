// Package watch re-runs a callback when Go sources under a directory change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/adaptergen/internal/errors"
)

// FileWatcher watches files for changes based on patterns. Bursts of events
// within the debounce window collapse into one onChange call carrying every
// path that changed.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	debounce time.Duration
	onChange func(paths []string)
	logger   zerolog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// Options configures a FileWatcher.
type Options struct {
	Patterns []string
	Exclude  []string
	Debounce time.Duration
	Logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(opts Options, onChange func(paths []string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: opts.Patterns,
		exclude:  opts.Exclude,
		debounce: opts.Debounce,
		onChange: onChange,
		logger:   opts.Logger,
		pending:  make(map[string]struct{}),
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip excluded paths
		if path != dir && fw.excluded(filepath.Base(path)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Only watch directories
		if d.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				return errors.Wrapf(err, "failed to watch directory %s", path)
			}
		}

		return nil
	})
}

// Start begins watching for file changes. It returns when ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) error {
	defer fw.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}

			// Check if file matches our patterns
			if fw.shouldWatch(event.Name) {
				fw.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
				fw.schedule(event.Name)
			}

			// If a new directory is created, add it to the watcher
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// schedule records path and (re)arms the debounce timer.
func (fw *FileWatcher) schedule(path string) {
	fw.mu.Lock()
	fw.pending[path] = struct{}{}
	if fw.debounce <= 0 {
		paths := fw.drainLocked()
		fw.mu.Unlock()
		fw.fire(paths)
		return
	}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
	fw.mu.Unlock()
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	paths := fw.drainLocked()
	fw.mu.Unlock()
	fw.fire(paths)
}

func (fw *FileWatcher) drainLocked() []string {
	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	fw.pending = make(map[string]struct{})
	sort.Strings(paths)
	return paths
}

func (fw *FileWatcher) fire(paths []string) {
	if len(paths) > 0 {
		fw.onChange(paths)
	}
}

func (fw *FileWatcher) stopTimer() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
}

func (fw *FileWatcher) excluded(base string) bool {
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(strings.TrimSuffix(pattern, "/"), base); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	// Check excludes first
	if fw.excluded(base) {
		return false
	}

	// Check if file matches any watch pattern
	for _, pattern := range fw.patterns {
		// Handle ** for recursive matching
		if strings.HasPrefix(pattern, "**/") {
			if matched, _ := filepath.Match(strings.TrimPrefix(pattern, "**/"), base); matched {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
