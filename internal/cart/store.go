// Package cart holds the shopping cart state: one line item per distinct
// product, in insertion order, with derived totals folded on demand.
package cart

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/persist"
)

type Store struct {
	mu      sync.Mutex
	items   []domain.LineItem
	persist persist.Store
}

// New builds a cart store, rehydrating any snapshot left by a previous run.
func New(p persist.Store) *Store {
	s := &Store{persist: p}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var items []domain.LineItem
	err := p.Load(ctx, persist.CartKey, &items)
	switch {
	case err == nil:
		s.items = items
	case errors.Is(err, persist.ErrNotFound):
		// first run, start empty
	default:
		log.Printf("cart: load snapshot error: %v", err)
	}

	return s
}

// AddItem merges a product into the cart. An existing line item gets its
// quantity bumped by one and its totals recomputed with the item's frozen
// discount percentage, not the product's current one. Always succeeds.
func (s *Store) AddItem(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.items[i].Recalculate()
			s.flush(ctx)
			return
		}
	}

	s.items = append(s.items, domain.NewLineItem(product))
	s.flush(ctx)
}

// RemoveItem deletes the line item with that product id; absent ids are a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity sets the line item's quantity. Zero or negative behaves
// exactly like RemoveItem; absent ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.items[i].Recalculate()
			s.flush(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.flush(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total folds the pre-discount line totals. Recomputed on every call so it
// always reflects the latest mutation.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.Total
	}
	return sum
}

func (s *Store) DiscountedTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.DiscountedTotal
	}
	return sum
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int
	for _, item := range s.items {
		sum += item.Quantity
	}
	return sum
}

func (s *Store) removeLocked(ctx context.Context, productID int64) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.flush(ctx)
			return
		}
	}
}

// flush writes the snapshot after every mutation. Persistence failures are
// logged and swallowed so a storage hiccup never blocks the cart.
func (s *Store) flush(ctx context.Context) {
	if err := s.persist.Save(ctx, persist.CartKey, s.items); err != nil {
		log.Printf("cart: save snapshot error: %v", err)
	}
}
