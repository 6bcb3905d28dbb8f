package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/partline/auto-parts-backend/internal/cart"
	"github.com/partline/auto-parts-backend/internal/product"
	"github.com/partline/auto-parts-backend/internal/storage"
)

var (
	ErrNotWishlisted = errors.New("product not in wishlist")
)

// DefaultKey is the storage key used when no session namespace is given.
const DefaultKey = "wishlist"

// Item is a wishlisted product. Quantity only matters when the item moves to
// the cart.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Store holds the wishlist for one session with the same persistence
// discipline as the cart: synchronous write on every mutation, rehydrate on
// construction, corrupt state resets to empty.
type Store struct {
	mu    sync.Mutex
	kv    storage.KV
	key   string
	items []Item
}

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
		return s
	}
	s.items = items
	return s
}

// Add puts the product on the wishlist. Re-adding an already wishlisted
// product is a no-op, never a duplicate entry.
func (s *Store) Add(ctx context.Context, p product.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			return nil
		}
	}
	s.items = append(s.items, Item{Product: p, Quantity: qty})
	return s.persist(ctx)
}

// Remove deletes the entry with that product id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, id)
}

func (s *Store) removeLocked(ctx context.Context, id int) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the quantity used when the item later moves to the
// cart, clamping to a minimum of 1.
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

// IsWishlisted reports membership without side effects.
func (s *Store) IsWishlisted(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

// MoveToCart adds the item to the cart with its wishlist quantity, then
// removes it from the wishlist. If the cart add fails the wishlist is left
// untouched.
func (s *Store) MoveToCart(ctx context.Context, id int, dst *cart.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *Item
	for i := range s.items {
		if s.items[i].ID == id {
			found = &s.items[i]
			break
		}
	}
	if found == nil {
		return ErrNotWishlisted
	}

	if err := dst.Add(ctx, found.Product, found.Quantity); err != nil {
		return err
	}
	return s.removeLocked(ctx, id)
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the number of wishlisted products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear empties the wishlist.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, data)
}
