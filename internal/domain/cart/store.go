package cart

import "context"

// Store persists carts keyed by user. Carts are session-scoped state
// with idle expiry, so implementations live on the cache tier rather
// than the relational store.
type Store interface {
	// Get returns the user's cart, or shared.ErrNotFound if none exists
	Get(ctx context.Context, userID string) (*Cart, error)

	// Mutate applies fn to the user's cart (creating it lazily) and
	// persists the result. Mutations for one user are serialized: two
	// concurrent requests from the same user must both observe their
	// effects, never last-write-wins on the derived totals. If fn
	// returns an error the stored cart is unchanged.
	Mutate(ctx context.Context, userID string, fn func(*Cart) error) (*Cart, error)

	// Delete removes the user's cart entirely
	Delete(ctx context.Context, userID string) error
}
