// Package listview drives one paginated, searchable, optionally
// parent-scoped list screen on top of a store and a gateway resource.
package listview

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search is sent.
const DefaultDebounce = 500 * time.Millisecond

// Lister is the part of a gateway resource a view needs.
type Lister[T any] interface {
	List(ctx context.Context, q gateway.ListQuery) (gateway.Page[T], error)
}

// Params are the inputs of the next fetch.
type Params struct {
	ParentID string
	Page     int
	Search   string
}

// Phase is the search input state.
type Phase int

const (
	Idle Phase = iota
	Debouncing
)

func (p Phase) String() string {
	if p == Debouncing {
		return "debouncing"
	}
	return "idle"
}

// Config configures a View.
type Config struct {
	// ParentKey is the filter name carrying the parent id, e.g. "cluster_id".
	// Empty for unscoped lists.
	ParentKey string
	PerPage   int
	Debounce  time.Duration
}

// View is the controller of one list screen.
type View[T store.Identifiable] struct {
	lister    Lister[T]
	store     *store.Store[T]
	parentKey string
	perPage   int
	debounce  time.Duration
	log       *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	params Params
	phase  Phase
	timer  *time.Timer
	gen    uint64

	// Full result of a search answered in one page; paged locally.
	local    []T
	localSeq uint64
}

// New creates a view at page 1 with no search and no parent.
func New[T store.Identifiable](lister Lister[T], st *store.Store[T], cfg Config) *View[T] {
	if cfg.PerPage < 1 {
		cfg.PerPage = pagination.DefaultItemsPerPage
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &View[T]{
		lister:    lister,
		store:     st,
		parentKey: cfg.ParentKey,
		perPage:   cfg.PerPage,
		debounce:  cfg.Debounce,
		log:       logger.WithComponent("listview"),
		ctx:       ctx,
		cancel:    cancel,
		params:    Params{Page: 1},
	}
}

// Store returns the store backing the view.
func (v *View[T]) Store() *store.Store[T] {
	return v.store
}

// Params returns the current fetch parameters.
func (v *View[T]) Params() Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}

// ParentID returns the current parent scope, empty when unscoped.
func (v *View[T]) ParentID() string {
	return v.Params().ParentID
}

// Phase returns the search input state.
func (v *View[T]) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Load fetches the current page. It is the initial fetch of a screen.
func (v *View[T]) Load(ctx context.Context) error {
	return v.fetch(ctx, v.Params())
}

// Refresh refetches with the current parameters.
func (v *View[T]) Refresh(ctx context.Context) error {
	return v.fetch(ctx, v.Params())
}

// SetSearch records term and schedules a fetch once the debounce window
// passes without another call. The page resets to 1 right away, so any
// fetch issued meanwhile (a refresh, a reload) already asks for page 1.
func (v *View[T]) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.params.Search = term
	v.params.Page = 1
	v.local = nil
	v.phase = Debouncing
	v.stopTimerLocked()
	gen := v.gen
	v.timer = time.AfterFunc(v.debounce, func() { v.flushSearch(gen) })
}

func (v *View[T]) flushSearch(gen uint64) {
	v.mu.Lock()
	if gen != v.gen || v.ctx.Err() != nil {
		v.mu.Unlock()
		return
	}
	v.phase = Idle
	v.timer = nil
	v.params.Page = 1
	p := v.params
	v.mu.Unlock()

	if err := v.fetch(v.ctx, p); err != nil {
		v.log.WithError(err).Debug("search fetch failed")
	}
}

// Search applies term at once, as when the search box is submitted, and
// fetches page 1. A pending debounce is dropped.
func (v *View[T]) Search(ctx context.Context, term string) error {
	v.mu.Lock()
	v.stopTimerLocked()
	v.phase = Idle
	v.params.Search = term
	v.params.Page = 1
	v.local = nil
	p := v.params
	v.mu.Unlock()

	return v.fetch(ctx, p)
}

// SetParent changes the parent scope and fetches page 1 immediately,
// cancelling any pending search debounce.
func (v *View[T]) SetParent(ctx context.Context, parentID string) error {
	v.mu.Lock()
	v.stopTimerLocked()
	v.phase = Idle
	v.params.ParentID = parentID
	v.params.Page = 1
	v.local = nil
	p := v.params
	v.mu.Unlock()

	return v.fetch(ctx, p)
}

// GoToPage moves to page n, clamped to the known page range; before the
// first load or on an empty list that is page 1. A locally
// paged search result is re-sliced without a request.
func (v *View[T]) GoToPage(ctx context.Context, n int) error {
	info := v.store.Snapshot().Pagination
	n = pagination.Clamp(n, info.TotalPages)

	v.mu.Lock()
	v.params.Page = n
	p := v.params
	local := v.local
	v.mu.Unlock()

	if local != nil {
		v.applyLocal(local, n)
		return nil
	}
	return v.fetch(ctx, p)
}

// Close stops the pending debounce timer. The view must not be used after.
func (v *View[T]) Close() {
	v.mu.Lock()
	v.stopTimerLocked()
	v.phase = Idle
	v.mu.Unlock()
	v.cancel()
}

func (v *View[T]) stopTimerLocked() {
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *View[T]) query(p Params) gateway.ListQuery {
	q := gateway.ListQuery{
		Page:   p.Page,
		Limit:  v.perPage,
		Search: p.Search,
	}
	if v.parentKey != "" && p.ParentID != "" {
		q.Filters = map[string]string{v.parentKey: p.ParentID}
	}
	return q
}

func (v *View[T]) fetch(ctx context.Context, p Params) error {
	t := v.store.BeginFetch()
	page, err := v.lister.List(ctx, v.query(p))
	if err != nil {
		if !v.store.FetchFailed(t, err) {
			v.log.WithField("seq", t.Seq()).Debug("discarded stale failure")
		}
		return err
	}

	items, info := page.Items, page.Pagination
	var local []T
	if pagination.ClientSide(info, p.Search) && len(items) > v.perPage {
		local = items
		info = pagination.Compute(len(local), pagination.Clamp(p.Page, pagination.TotalPages(len(local), v.perPage)), v.perPage)
		items = pagination.Slice(local, info.CurrentPage, v.perPage)
	}

	if !v.store.FetchSucceeded(t, items, info) {
		v.log.WithField("seq", t.Seq()).Debug("discarded stale response")
		return nil
	}

	v.mu.Lock()
	if t.Seq() > v.localSeq {
		v.localSeq = t.Seq()
		v.local = local
	}
	v.mu.Unlock()
	return nil
}

func (v *View[T]) applyLocal(local []T, page int) {
	info := pagination.Compute(len(local), page, v.perPage)
	t := v.store.BeginFetch()
	v.store.FetchSucceeded(t, pagination.Slice(local, page, v.perPage), info)

	v.mu.Lock()
	if t.Seq() > v.localSeq {
		v.localSeq = t.Seq()
	}
	v.mu.Unlock()
}
