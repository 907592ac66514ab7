package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/lexkit/lexengine/predicate"
)

const (
	// reloadChannelBuffer is the size of the reload event channel.
	reloadChannelBuffer = 16
)

// WatchConfig configures rule-file watching.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before
	// rebuilding.
	DebounceDelay string `yaml:"debounce_delay"`

	// Patterns are the doublestar globs selecting rule files. Defaults
	// to DefaultPatterns.
	Patterns []string `yaml:"patterns"`

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay: "500ms",
		Patterns:      DefaultPatterns,
		ExcludeDirs:   []string{".git"},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// BuildFunc creates the base registry for one reload: a fresh registry
// with all primitive predicates already registered. Rule files are applied
// on top and the result is sealed.
type BuildFunc func() (*predicate.Registry, error)

// ReloadEvent carries the result of one rebuild. On failure Registry is
// nil and the previous registry stays in service; a broken rule file must
// never tear down a working rule set.
type ReloadEvent struct {
	// Registry is the freshly sealed registry.
	Registry *predicate.Registry

	// Files are the rule files applied, relative to the rules directory.
	Files []string

	// Err is the rebuild failure, if any.
	Err error
}

// Watcher watches a rules directory and rebuilds a sealed registry when
// rule files change. Sealed registries are immutable, so a reload always
// produces a new registry rather than mutating the active one.
type Watcher struct {
	config   WatchConfig
	rulesDir string
	build    BuildFunc
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	excludes map[string]bool

	pendingMu sync.Mutex
	pending   int

	events chan ReloadEvent
}

// NewWatcher creates a rule-file watcher over rulesDir.
func NewWatcher(config WatchConfig, rulesDir string, build BuildFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	excludes := make(map[string]bool)
	for _, dir := range config.ExcludeDirs {
		excludes[dir] = true
	}

	return &Watcher{
		config:   config,
		rulesDir: rulesDir,
		build:    build,
		watcher:  fsw,
		logger:   logger,
		excludes: excludes,
		events:   make(chan ReloadEvent, reloadChannelBuffer),
	}, nil
}

// Events returns the channel of reload events.
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Start performs an initial build, begins watching, and emits a reload
// event for every debounced batch of rule-file changes.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.rulesDir); err != nil {
		return err
	}

	// Initial build so consumers have a registry before any change.
	w.emit(w.rebuild())

	go w.processEvents(ctx)

	w.logger.Info("rule watcher started",
		slog.String("rules_dir", w.rulesDir),
		slog.Duration("debounce", w.config.GetDebounceDelay()))
	return nil
}

// Stop stops the watcher. The events channel is closed by processEvents
// when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && path != root) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	// Watch newly created subdirectories.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			base := filepath.Base(event.Name)
			if !w.excludes[base] && !strings.HasPrefix(base, ".") {
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory",
						slog.String("path", event.Name),
						slog.String("error", err.Error()))
				}
			}
			return
		}
	}

	if !w.matchesPatterns(event.Name) {
		return
	}

	w.pendingMu.Lock()
	w.pending++
	w.pendingMu.Unlock()

	w.logger.Debug("rule file change detected",
		slog.String("path", event.Name),
		slog.String("op", event.Op.String()))
}

func (w *Watcher) matchesPatterns(path string) bool {
	rel, err := filepath.Rel(w.rulesDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	patterns := w.config.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	changed := w.pending
	w.pending = 0
	w.pendingMu.Unlock()

	if changed == 0 {
		return
	}

	w.logger.Debug("rebuilding registry",
		slog.Int("changed_files", changed))
	w.emit(w.rebuild())
}

// rebuild produces a fresh sealed registry from the base build plus all
// current rule files.
func (w *Watcher) rebuild() ReloadEvent {
	reg, err := w.build()
	if err != nil {
		return ReloadEvent{Err: err}
	}

	files, err := LoadDir(w.rulesDir, w.config.Patterns, reg)
	if err != nil {
		return ReloadEvent{Err: err}
	}

	if err := reg.Seal(); err != nil {
		return ReloadEvent{Err: err}
	}
	return ReloadEvent{Registry: reg, Files: files}
}

func (w *Watcher) emit(event ReloadEvent) {
	if event.Err != nil {
		w.logger.Warn("registry rebuild failed; previous registry stays active",
			slog.String("error", event.Err.Error()))
	} else {
		w.logger.Info("registry rebuilt",
			slog.Int("predicates", event.Registry.Len()),
			slog.Int("rule_files", len(event.Files)))
	}

	select {
	case w.events <- event:
	default:
		w.logger.Warn("reload channel full, dropping event")
	}
}
