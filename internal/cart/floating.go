package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cyphera/storefront/internal/client/backend"
	"github.com/cyphera/storefront/internal/logger"
	"go.uber.org/zap"
)

// Source fetches the authoritative cart
type Source interface {
	GetCart(ctx context.Context) backend.Result[backend.Cart]
}

// FloatingCart is the always-visible cart widget. It reads and writes the
// persisted snapshot and falls back to the backend when none exists.
type FloatingCart struct {
	mu       sync.Mutex
	store    *FileStore
	source   Source
	snapshot Snapshot
	now      func() time.Time
	onChange func(Snapshot)
}

// NewFloatingCart wires the widget to its store and backend
func NewFloatingCart(store *FileStore, source Source) *FloatingCart {
	return &FloatingCart{store: store, source: source, now: time.Now}
}

// OnChange registers a callback fired after every snapshot change
func (f *FloatingCart) OnChange(fn func(Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// Load returns the persisted snapshot, fetching and persisting the backend
// cart when none exists
func (f *FloatingCart) Load(ctx context.Context) (Snapshot, error) {
	snap, err := f.store.Load()
	if err == nil {
		f.set(snap)
		return snap, nil
	}
	if !errors.Is(err, ErrNoSnapshot) {
		logger.Warn("Discarding unreadable cart snapshot", zap.Error(err))
	}

	r := f.source.GetCart(ctx)
	if !r.Succeeded {
		return Snapshot{}, errors.New(r.Message)
	}

	snap = FromCart(r.Data, f.now())
	if err := f.store.Save(snap); err != nil {
		logger.Warn("Failed to persist cart snapshot", zap.Error(err))
	}
	f.set(snap)
	return snap, nil
}

// UpdateQuantity changes an item quantity; zero or less removes it
func (f *FloatingCart) UpdateQuantity(itemID string, quantity int) (Snapshot, error) {
	f.mu.Lock()
	items := make([]backend.CartItem, 0, len(f.snapshot.Items))
	for _, it := range f.snapshot.Items {
		if it.ID == itemID {
			if quantity <= 0 {
				continue
			}
			it.Quantity = quantity
		}
		items = append(items, it)
	}
	f.mu.Unlock()

	return f.replace(items)
}

// Remove drops an item from the cart
func (f *FloatingCart) Remove(itemID string) (Snapshot, error) {
	return f.UpdateQuantity(itemID, 0)
}

// Count is the number of units in the cart
func (f *FloatingCart) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.snapshot.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the cart value in currency units
func (f *FloatingCart) Subtotal() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return backend.FromCents(f.snapshot.SubtotalCents)
}

// Snapshot returns the current in-memory snapshot
func (f *FloatingCart) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// Clear removes the persisted snapshot, used after a successful payment
func (f *FloatingCart) Clear() error {
	f.set(Snapshot{})
	return f.store.Remove()
}

// Sync keeps the widget in step with writes from other processes. A removed
// snapshot triggers a refetch from the backend.
func (f *FloatingCart) Sync(ctx context.Context) (*Watcher, error) {
	return f.store.Watch(ctx, func(snap Snapshot, ok bool) {
		if ok {
			logger.Debug("Cart snapshot changed externally", zap.Int("items", len(snap.Items)))
			f.set(snap)
			return
		}
		if _, err := f.Load(ctx); err != nil {
			logger.Warn("Failed to refetch cart", zap.Error(err))
		}
	})
}

func (f *FloatingCart) replace(items []backend.CartItem) (Snapshot, error) {
	var cents int64
	for _, it := range items {
		cents += backend.ToCents(it.Price) * int64(it.Quantity)
	}
	snap := Snapshot{Items: items, SubtotalCents: cents, UpdatedAt: f.now()}
	if err := f.store.Save(snap); err != nil {
		return Snapshot{}, err
	}
	f.set(snap)
	return snap, nil
}

func (f *FloatingCart) set(snap Snapshot) {
	f.mu.Lock()
	f.snapshot = snap
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
