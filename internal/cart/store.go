// Package cart persists the last-known cart so every open checkout and the
// floating cart widget start from the same snapshot.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/logger"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrNoSnapshot is returned by Load when nothing has been persisted yet
var ErrNoSnapshot = errors.New("no cart snapshot")

// Snapshot is the persisted cart
type Snapshot struct {
	Items         []backend.CartItem `json:"items"`
	SubtotalCents int64              `json:"subtotalCents"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// FromCart snapshots a backend cart
func FromCart(c backend.Cart, now time.Time) Snapshot {
	items := make([]backend.CartItem, len(c.Items))
	copy(items, c.Items)
	return Snapshot{Items: items, SubtotalCents: backend.ToCents(c.Subtotal), UpdatedAt: now}
}

// Cart converts the snapshot back into the backend representation
func (s Snapshot) Cart() backend.Cart {
	items := make([]backend.CartItem, len(s.Items))
	copy(items, s.Items)
	return backend.Cart{Items: items, Subtotal: backend.FromCents(s.SubtotalCents)}
}

// FileStore keeps a single snapshot in a JSON file. Writes replace the file
// atomically; concurrent writers are last-write-wins.
type FileStore struct {
	path     string
	debounce time.Duration
}

// FileStoreOption customizes a FileStore
type FileStoreOption func(*FileStore)

// WithDebounce sets how long Watch waits for writes to settle
func WithDebounce(d time.Duration) FileStoreOption {
	return func(s *FileStore) { s.debounce = d }
}

// NewFileStore returns a store backed by path
func NewFileStore(path string, options ...FileStoreOption) *FileStore {
	s := &FileStore{path: path, debounce: 100 * time.Millisecond}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Path returns the snapshot file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot
func (s *FileStore) Load() (Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read cart snapshot: %w", err)
	}
	if len(raw) == 0 {
		return Snapshot{}, ErrNoSnapshot
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot through a temporary file and a rename
func (s *FileStore) Save(snap Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}
	return nil
}

// Remove deletes the snapshot. Removing a missing snapshot is not an error.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cart snapshot: %w", err)
	}
	return nil
}

// Watcher delivers snapshot changes made by other processes
type Watcher struct {
	fsw  *fsnotify.Watcher
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Watch calls onChange with the current snapshot, or ok=false when it was
// removed, each time the file settles after a change. It runs until ctx ends
// or Stop is called.
func (s *FileStore) Watch(ctx context.Context, onChange func(snap Snapshot, ok bool)) (*Watcher, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched because Save swaps the file by rename
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{fsw: fsw, stop: make(chan struct{}), done: make(chan struct{})}
	go s.run(ctx, w, onChange)
	return w, nil
}

func (s *FileStore) run(ctx context.Context, w *Watcher, onChange func(Snapshot, bool)) {
	defer close(w.done)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(s.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Cart watcher error", zap.Error(err))
		case <-timer.C:
			snap, err := s.Load()
			switch {
			case errors.Is(err, ErrNoSnapshot):
				onChange(Snapshot{}, false)
			case err != nil:
				logger.Warn("Ignoring unreadable cart snapshot", zap.String("path", s.path), zap.Error(err))
			default:
				onChange(snap, true)
			}
		}
	}
}

// Stop ends the watch and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		<-w.done
		if err := w.fsw.Close(); err != nil {
			logger.Warn("Failed to close cart watcher", zap.Error(err))
		}
	})
}

// Done is closed once the event loop has exited
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
