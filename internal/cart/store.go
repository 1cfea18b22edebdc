// Package cart implements the in-memory shopping cart store. The cart holds
// at most one entry per product id; adding an already-present product merges
// into the existing entry. Totals are pure functions of the current entries,
// recomputed on every read. Subscribers are notified after every mutation
// that actually changed state.
package cart

import (
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/logging"
)

// Item pairs one product with a positive quantity.
type Item struct {
	Product  catalog.Product
	Quantity int
}

// Store is the cart. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	items       []Item
	subscribers map[int]func()
	nextSubID   int
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{subscribers: make(map[int]func())}
}

// Subscribe registers a callback invoked after every mutation. The returned
// function unsubscribes. Callbacks run outside the store lock, so they may
// call back into the store.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Add puts quantity units of a product into the cart. A non-positive quantity
// or a product without an id is a no-op. If the product is already present
// its quantity is incremented; otherwise a new entry is appended, preserving
// insertion order. Stock is deliberately not enforced here.
func (s *Store) Add(p catalog.Product, quantity int) {
	if p.ID == "" || quantity <= 0 {
		return
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: p, Quantity: quantity})
	}
	s.mu.Unlock()

	logging.Cart("add %s x%d (merged=%v)", p.ID, quantity, merged)
	s.notify()
}

// Remove deletes the entry for the given product id. No-op if absent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		logging.Cart("remove %s", productID)
		s.notify()
	}
}

// SetQuantity sets the entry's quantity to exactly quantity (not additive).
// A non-positive quantity removes the entry.
func (s *Store) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			if s.items[i].Quantity != quantity {
				s.items[i].Quantity = quantity
				changed = true
			}
			break
		}
	}
	s.mu.Unlock()

	if changed {
		logging.Cart("set %s -> %d", productID, quantity)
		s.notify()
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	wasEmpty := len(s.items) == 0
	s.items = nil
	s.mu.Unlock()

	if !wasEmpty {
		logging.Cart("clear")
	}
	s.notify()
}

// Items returns a copy of the current entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalCount returns the sum of all quantities.
func (s *Store) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalValue returns the cart value using discounted prices.
func (s *Store) TotalValue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, it := range s.items {
		total += catalog.DiscountedPrice(it.Product) * float64(it.Quantity)
	}
	return total
}
