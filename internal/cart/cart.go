package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/storage"
)

// DefaultKey is the storage key used when no session namespace is given.
const DefaultKey = "cart"

// Item is one cart line: a product plus its quantity.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Store holds the cart lines for one session. Every mutation persists the
// full state to the KV store synchronously; a new Store rehydrates from
// whatever was persisted under its key. The UI never touches items directly.
type Store struct {
	mu    sync.Mutex
	kv    storage.KV
	key   string
	items []Item
}

// NewStore loads the persisted cart for key, or starts empty when nothing is
// stored. Corrupt persisted state also yields an empty cart, never an error.
func NewStore(ctx context.Context, kv storage.KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{kv: kv, key: key}

	data, err := kv.Get(ctx, key)
	if err != nil {
		return s
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		// unparsable state resets to empty rather than crashing the session
		return s
	}
	s.items = items
	return s
}

// Add merges the product into the cart: an existing line's quantity grows by
// qty, a new product gets its own line. Quantities below 1 count as 1.
func (s *Store) Add(ctx context.Context, p product.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += qty
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, Item{Product: p, Quantity: qty})
	return s.persist(ctx)
}

// Remove deletes the line with that product id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets a line's quantity, clamping to a minimum of 1.
// Absent ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id int, qty int) error {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = qty
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the sum of all line quantities, used for the badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the sum of price times quantity over all lines.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// persist writes the full cart state; callers hold the lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.itemsOrEmpty())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, data)
}

// itemsOrEmpty keeps the serialized form a JSON array even when the cart is
// empty, so rehydration round-trips.
func (s *Store) itemsOrEmpty() []Item {
	if s.items == nil {
		return []Item{}
	}
	return s.items
}
