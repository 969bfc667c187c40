package listview

import (
	"context"
	"sync"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
)

// DropdownLimit is the page size requested for select-input option lists.
const DropdownLimit = 1000

// Options caches the full, unpaged list of one entity kind for dropdowns.
type Options[T any] struct {
	lister  Lister[T]
	filters map[string]string

	mu     sync.RWMutex
	items  []T
	loaded bool
	err    error
}

// NewOptions creates an empty dropdown cache. filters narrows the list,
// e.g. {"venue_id": "3"}; it may be nil.
func NewOptions[T any](lister Lister[T], filters map[string]string) *Options[T] {
	return &Options[T]{lister: lister, filters: filters}
}

// Load returns the cached options, fetching them on first use.
func (o *Options[T]) Load(ctx context.Context) ([]T, error) {
	o.mu.RLock()
	if o.loaded {
		items := o.copyItems()
		o.mu.RUnlock()
		return items, nil
	}
	o.mu.RUnlock()

	if err := o.Refresh(ctx); err != nil {
		return nil, err
	}
	return o.Items(), nil
}

// Refresh reloads the options. On failure the previous options are kept.
func (o *Options[T]) Refresh(ctx context.Context) error {
	page, err := o.lister.List(ctx, gateway.ListQuery{
		Page:    1,
		Limit:   DropdownLimit,
		Filters: o.filters,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = err
	if err != nil {
		return err
	}
	o.items = page.Items
	o.loaded = true
	return nil
}

// Items returns the cached options without fetching.
func (o *Options[T]) Items() []T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.copyItems()
}

// Err returns the error of the last refresh, if any.
func (o *Options[T]) Err() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.err
}

// Invalidate forces the next Load to fetch.
func (o *Options[T]) Invalidate() {
	o.mu.Lock()
	o.loaded = false
	o.mu.Unlock()
}

func (o *Options[T]) copyItems() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}
