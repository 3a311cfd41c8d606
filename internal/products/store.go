// Package products accumulates paginated catalog pages and search results
// for the listing view.
package products

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/api"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/domain"
)

// PageSize is the fixed page size requested from the collaborator.
const PageSize = 20

// Catalog is the slice of the remote client the store needs.
type Catalog interface {
	Products(ctx context.Context, limit, skip int) (*api.ProductsPage, error)
	SearchProducts(ctx context.Context, query string, limit, skip int) (*api.ProductsPage, error)
}

// State is a point-in-time snapshot of the listing.
type State struct {
	Products    []domain.Product `json:"products"`
	Total       int              `json:"total"`
	IsLoading   bool             `json:"isLoading"`
	Error       string           `json:"error,omitempty"`
	HasMore     bool             `json:"hasMore"`
	SearchQuery string           `json:"searchQuery"`
}

type Store struct {
	mu          sync.Mutex
	catalog     Catalog
	products    []domain.Product
	total       int
	isLoading   bool
	errMsg      string
	hasMore     bool
	searchQuery string

	// seq orders in-flight requests; responses that are not the latest
	// issued are discarded, so a slow page 0 cannot clobber a later page.
	seq uint64
	sfg singleflight.Group // collapses duplicate concurrent fetches
}

func New(catalog Catalog) *Store {
	return &Store{
		catalog: catalog,
		hasMore: true,
	}
}

// Load fetches one page at the given offset. With an active search query it
// delegates to Search at the same offset. Offset 0 replaces the accumulated
// list, any other offset appends to it.
func (s *Store) Load(ctx context.Context, skip int) {
	s.mu.Lock()
	if s.searchQuery != "" {
		query := s.searchQuery
		s.mu.Unlock()
		s.Search(ctx, query, skip)
		return
	}
	seq := s.beginLocked()
	s.mu.Unlock()

	key := fmt.Sprintf("list:%d", skip)
	v, err, _ := s.sfg.Do(key, func() (any, error) {
		return s.catalog.Products(ctx, PageSize, skip)
	})
	s.apply(seq, skip, v, err)
}

// Search fetches one page of search results, recording the query as the
// active filter (also on pagination calls).
func (s *Store) Search(ctx context.Context, query string, skip int) {
	s.mu.Lock()
	s.searchQuery = query
	seq := s.beginLocked()
	s.mu.Unlock()

	key := fmt.Sprintf("search:%s:%d", query, skip)
	v, err, _ := s.sfg.Do(key, func() (any, error) {
		return s.catalog.SearchProducts(ctx, query, PageSize, skip)
	})
	s.apply(seq, skip, v, err)
}

// LoadMore requests the next page when one is available and nothing is in
// flight. This is the infinite-scroll entry point.
func (s *Store) LoadMore(ctx context.Context) {
	s.mu.Lock()
	if s.isLoading || !s.hasMore {
		s.mu.Unlock()
		return
	}
	skip := len(s.products)
	s.mu.Unlock()

	s.Load(ctx, skip)
}

// SetQuery records the filter without triggering a fetch.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// Reset clears the listing back to its initial state. Used when navigating
// away from or re-entering the listing view.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.total = 0
	s.searchQuery = ""
	s.errMsg = ""
	s.hasMore = true
	s.seq++ // in-flight responses are stale after a reset
	s.isLoading = false
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return State{
		Products:    out,
		Total:       s.total,
		IsLoading:   s.isLoading,
		Error:       s.errMsg,
		HasMore:     s.hasMore,
		SearchQuery: s.searchQuery,
	}
}

// beginLocked marks a new request as the latest issued and returns its
// sequence number. Caller holds the lock.
func (s *Store) beginLocked() uint64 {
	s.isLoading = true
	s.errMsg = ""
	s.seq++
	return s.seq
}

// apply merges a response into the state, unless a later request has been
// issued since (the pagination race guard). Failures keep the accumulated
// products and record the message for the listing's retry action.
func (s *Store) apply(seq uint64, skip int, v any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return
	}

	if err != nil {
		s.errMsg = err.Error()
		s.isLoading = false
		return
	}

	page := v.(*api.ProductsPage)
	if skip == 0 {
		s.products = page.Products
	} else {
		s.products = append(s.products, page.Products...)
	}
	s.total = page.Total
	s.hasMore = skip+PageSize < page.Total
	s.isLoading = false
}
