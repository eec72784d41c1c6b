package cache

import (
	"context"
	"sync"
	"time"

	"github.com/inkthread/backend/internal/domain/cart"
	"github.com/inkthread/backend/internal/domain/shared"
)

// cartEntry is a stored cart with its idle deadline
type cartEntry struct {
	cart      *cart.Cart
	expiresAt time.Time
}

// InMemoryCartStore implements the cart Store with an in-process map.
// Suitable for single-instance deployments and testing; carts do not
// survive a restart and are not shared across instances.
type InMemoryCartStore struct {
	mu         sync.Mutex
	carts      map[string]cartEntry
	idleExpiry time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewInMemoryCartStore creates an in-memory cart store and starts a
// background goroutine that purges idle carts at the given interval
func NewInMemoryCartStore(idleExpiry, purgeInterval time.Duration) *InMemoryCartStore {
	store := &InMemoryCartStore{
		carts:      make(map[string]cartEntry),
		idleExpiry: idleExpiry,
		stopChan:   make(chan struct{}),
	}

	store.wg.Add(1)
	go store.purgeLoop(purgeInterval)

	return store
}

// Get returns the user's cart, or shared.ErrNotFound if none exists
func (s *InMemoryCartStore) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.carts[userID]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, shared.ErrNotFound
	}

	// Reading counts as activity
	entry.expiresAt = time.Now().Add(s.idleExpiry)
	s.carts[userID] = entry

	return entry.cart.Clone(), nil
}

// Mutate applies fn to the user's cart (creating it lazily) and stores
// the result. The store mutex serializes mutations, and fn runs against
// a copy so a failed mutation leaves the stored cart unchanged.
func (s *InMemoryCartStore) Mutate(ctx context.Context, userID string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c *cart.Cart
	if entry, exists := s.carts[userID]; exists && time.Now().Before(entry.expiresAt) {
		c = entry.cart.Clone()
	} else {
		c = cart.NewCart(userID)
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	s.carts[userID] = cartEntry{
		cart:      c,
		expiresAt: time.Now().Add(s.idleExpiry),
	}

	return c.Clone(), nil
}

// Delete removes the user's cart entirely
func (s *InMemoryCartStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

// Close stops the purge goroutine. Safe to call multiple times.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored carts (for testing/monitoring)
func (s *InMemoryCartStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// purgeLoop periodically removes idle carts
func (s *InMemoryCartStore) purgeLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.purge()
		}
	}
}

// purge removes carts past their idle deadline
func (s *InMemoryCartStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, userID)
		}
	}
}

// Ensure InMemoryCartStore implements the cart Store
var _ cart.Store = (*InMemoryCartStore)(nil)
