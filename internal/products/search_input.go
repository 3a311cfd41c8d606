package products

import (
	"context"
	"strings"
	"time"
)

// DebounceDelay is the quiet period between the last keystroke and the
// search dispatch.
const DebounceDelay = 500 * time.Millisecond

// SearchInput models the listing's search box: keystrokes stream in, and a
// debounced dispatch either runs the search or, on an emptied box, clears
// the filter and reloads the first page.
type SearchInput struct {
	store    *Store
	debounce *Debouncer
}

func NewSearchInput(store *Store, delay time.Duration) *SearchInput {
	return &SearchInput{
		store:    store,
		debounce: NewDebouncer(delay),
	}
}

// Type records one keystroke's worth of input value.
func (si *SearchInput) Type(value string) {
	si.debounce.Trigger(func() {
		si.dispatch(strings.TrimSpace(value))
	})
}

// Clear drops any pending dispatch and resets the listing immediately.
func (si *SearchInput) Clear() {
	si.debounce.Stop()
	si.dispatch("")
}

func (si *SearchInput) dispatch(value string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if value != "" {
		si.store.Search(ctx, value, 0)
		return
	}

	si.store.SetQuery("")
	si.store.Reset()
	si.store.Load(ctx, 0)
}
