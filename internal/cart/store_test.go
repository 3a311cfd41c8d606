package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/persist"
)

func product(id int64, price, discount float64) domain.Product {
	return domain.Product{
		ID:                 id,
		Title:              "product",
		Price:              price,
		DiscountPercentage: discount,
		Thumbnail:          "thumb.jpg",
	}
}

func newTestStore() *Store {
	return New(persist.NewMemoryStore())
}

func TestAddItem_DistinctProducts(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.AddItem(ctx, product(2, 20, 0))
	s.AddItem(ctx, product(3, 30, 0))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.TotalQuantity())
}

func TestAddItem_SameProductTwice(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 20))
	s.AddItem(ctx, product(1, 10, 20))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 20.0, items[0].Total, 1e-9)
	assert.InDelta(t, 2*10*(100-20.0)/100, items[0].DiscountedTotal, 1e-9)
}

func TestAddItem_DiscountFrozenAtAddTime(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 100, 10))

	// the catalog discount changed since, but the line item keeps its own
	p := product(1, 100, 50)
	s.AddItem(ctx, p)

	items := s.Items()
	require.Len(t, items, 1)
	assert.InDelta(t, 10.0, items[0].DiscountPercentage, 1e-9)
	assert.InDelta(t, 200*(100-10.0)/100, items[0].DiscountedTotal, 1e-9)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(3, 1, 0))
	s.AddItem(ctx, product(1, 1, 0))
	s.AddItem(ctx, product(2, 1, 0))
	s.AddItem(ctx, product(1, 1, 0))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(1), items[1].ID)
	assert.Equal(t, int64(2), items[2].ID)
}

func TestRemoveItem(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.RemoveItem(ctx, 1)
	assert.Equal(t, 0, s.Len())

	// absent id is a no-op
	s.RemoveItem(ctx, 42)
	assert.Equal(t, 0, s.Len())
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 50))
	s.UpdateQuantity(ctx, 1, 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.InDelta(t, 50.0, items[0].Total, 1e-9)
	assert.InDelta(t, 25.0, items[0].DiscountedTotal, 1e-9)
}

func TestUpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.UpdateQuantity(ctx, 1, 0)
	assert.Equal(t, 0, s.Len())

	s.AddItem(ctx, product(1, 10, 0))
	s.UpdateQuantity(ctx, 1, -1)
	assert.Equal(t, 0, s.Len())
}

func TestUpdateQuantity_MissingIDIsNoOp(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.UpdateQuantity(ctx, 99, 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestTotals(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.AddItem(ctx, product(2, 20, 25))
	s.UpdateQuantity(ctx, 2, 2)

	assert.InDelta(t, 50.0, s.Total(), 1e-9)
	assert.InDelta(t, 10+40*(100-25.0)/100, s.DiscountedTotal(), 1e-9)
	assert.Equal(t, 3, s.TotalQuantity())

	// pure folds: calling twice without mutation gives identical results
	assert.Equal(t, s.Total(), s.Total())
	assert.Equal(t, s.DiscountedTotal(), s.DiscountedTotal())
}

func TestTotals_DiscountRelation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	assert.Equal(t, s.Total(), s.DiscountedTotal())

	s.AddItem(ctx, product(2, 10, 5))
	assert.Less(t, s.DiscountedTotal(), s.Total())
}

func TestClear(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	s.AddItem(ctx, product(1, 10, 0))
	s.AddItem(ctx, product(2, 20, 0))
	s.Clear(ctx)

	assert.Equal(t, 0, s.Len())
	assert.Zero(t, s.Total())
}

func TestPersistence_RehydratesAcrossRestart(t *testing.T) {
	p := persist.NewMemoryStore()
	ctx := context.Background()

	s := New(p)
	s.AddItem(ctx, product(1, 10, 20))
	s.AddItem(ctx, product(1, 10, 20))
	s.AddItem(ctx, product(2, 5, 0))

	// simulated restart: a new store over the same persistence
	reborn := New(p)
	items := reborn.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, s.DiscountedTotal(), reborn.DiscountedTotal(), 1e-9)
}

func TestPersistence_ClearIsFlushed(t *testing.T) {
	p := persist.NewMemoryStore()
	ctx := context.Background()

	s := New(p)
	s.AddItem(ctx, product(1, 10, 0))
	s.Clear(ctx)

	reborn := New(p)
	assert.Equal(t, 0, reborn.Len())
}
