// Package store holds the last-known-good state of one entity kind: the
// current list page, the selected record, transition flags and pagination.
//
// Every method is a pure state transition; the store performs no I/O.
package store

import (
	"sync"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
)

// Identifiable is implemented by every entity kept in a Store.
type Identifiable interface {
	EntityID() string
}

// FailurePolicy decides what happens to loaded items when a fetch fails.
type FailurePolicy int

const (
	// ClearOnFailure discards the loaded page so the screen shows a clean error state.
	ClearOnFailure FailurePolicy = iota
	// KeepOnFailure keeps the last good page next to the error message.
	KeepOnFailure
)

// State is a snapshot of a Store.
type State[T Identifiable] struct {
	Items      []T
	Selected   *T
	Loading    bool
	Error      string
	Pagination pagination.Info
}

// Ticket identifies one fetch. Responses carrying a ticket older than the
// last applied one are discarded.
type Ticket struct {
	seq uint64
}

// Seq returns the ticket's sequence number.
func (t Ticket) Seq() uint64 { return t.seq }

// Store is the state container for one entity kind.
type Store[T Identifiable] struct {
	mu        sync.RWMutex
	state     State[T]
	policy    FailurePolicy
	issued    uint64 // last ticket handed out
	applied   uint64 // last ticket whose response was applied
	selIssued uint64
	selSeq    uint64
	listeners map[int]func(State[T])
	nextID    int
}

// Option configures a Store.
type Option func(*config)

type config struct {
	policy  FailurePolicy
	perPage int
}

// WithFailurePolicy selects the behaviour of FetchFailed.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithItemsPerPage sets the page size used before the first fetch completes.
func WithItemsPerPage(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.perPage = n
		}
	}
}

// New creates an empty store.
func New[T Identifiable](opts ...Option) *Store[T] {
	cfg := config{policy: ClearOnFailure, perPage: pagination.DefaultItemsPerPage}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[T]{
		state: State[T]{
			Items:      []T{},
			Pagination: pagination.Compute(0, 1, cfg.perPage),
		},
		policy:    cfg.policy,
		listeners: make(map[int]func(State[T])),
	}
}

// Policy returns the configured failure policy.
func (s *Store[T]) Policy() FailurePolicy {
	return s.policy
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyState()
}

// Subscribe registers fn to be called after every state change.
// The returned function removes the subscription.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ------------------------
//       List fetches
// ------------------------

// BeginFetch marks the list as loading and clears the error. Existing items
// stay visible while the request is in flight.
func (s *Store[T]) BeginFetch() Ticket {
	s.mu.Lock()
	s.issued++
	t := Ticket{seq: s.issued}
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	s.notify()
	return t
}

// FetchSucceeded replaces items and pagination wholesale. It returns false
// when the response is stale and was discarded.
func (s *Store[T]) FetchSucceeded(t Ticket, items []T, info pagination.Info) bool {
	s.mu.Lock()
	if t.seq <= s.applied {
		s.mu.Unlock()
		return false
	}
	s.applied = t.seq
	s.state.Items = cloneItems(items)
	s.state.Pagination = info
	s.state.Error = ""
	s.state.Loading = t.seq < s.issued
	s.mu.Unlock()

	s.notify()
	return true
}

// FetchFailed records err. Depending on the failure policy the loaded items
// are cleared or kept. Stale failures are discarded.
func (s *Store[T]) FetchFailed(t Ticket, err error) bool {
	s.mu.Lock()
	if t.seq <= s.applied {
		s.mu.Unlock()
		return false
	}
	s.applied = t.seq
	s.state.Loading = t.seq < s.issued
	s.state.Error = message(err)
	if s.policy == ClearOnFailure {
		s.state.Items = []T{}
		s.state.Pagination = pagination.Compute(0, 1, s.state.Pagination.ItemsPerPage)
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// ------------------------
//      Local mutations
// ------------------------

// RecordCreated appends item and increments the total count.
func (s *Store[T]) RecordCreated(item T) {
	s.mu.Lock()
	s.state.Items = append(s.state.Items, item)
	s.state.Pagination = pagination.AfterMutation(s.state.Pagination, 1)
	s.mu.Unlock()

	s.notify()
}

// RecordUpdated replaces the element with the same id. Unknown ids are ignored.
func (s *Store[T]) RecordUpdated(item T) {
	s.mu.Lock()
	changed := false
	for i := range s.state.Items {
		if s.state.Items[i].EntityID() == item.EntityID() {
			s.state.Items[i] = item
			changed = true
			break
		}
	}
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == item.EntityID() {
		sel := item
		s.state.Selected = &sel
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// RecordDeleted removes the element with id, decrements the total count
// (never below zero) and clears the selection when it was the deleted record.
func (s *Store[T]) RecordDeleted(id string) {
	s.mu.Lock()
	for i := range s.state.Items {
		if s.state.Items[i].EntityID() == id {
			s.state.Items = append(s.state.Items[:i:i], s.state.Items[i+1:]...)
			break
		}
	}
	s.state.Pagination = pagination.AfterMutation(s.state.Pagination, -1)
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == id {
		s.state.Selected = nil
	}
	s.mu.Unlock()

	s.notify()
}

// Find returns the loaded item with id, looking at the list and the selection.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.state.Items {
		if it.EntityID() == id {
			return it, true
		}
	}
	if s.state.Selected != nil && (*s.state.Selected).EntityID() == id {
		return *s.state.Selected, true
	}
	var zero T
	return zero, false
}

// ------------------------
//     Single selection
// ------------------------

// BeginSelect starts loading a single record.
func (s *Store[T]) BeginSelect() Ticket {
	s.mu.Lock()
	s.selIssued++
	t := Ticket{seq: s.selIssued}
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	s.notify()
	return t
}

// SelectSucceeded stores item as the selected record.
func (s *Store[T]) SelectSucceeded(t Ticket, item T) bool {
	s.mu.Lock()
	if t.seq <= s.selSeq {
		s.mu.Unlock()
		return false
	}
	s.selSeq = t.seq
	sel := item
	s.state.Selected = &sel
	s.state.Loading = s.applied < s.issued || t.seq < s.selIssued
	s.mu.Unlock()

	s.notify()
	return true
}

// SelectFailed records the error of a single-record fetch.
func (s *Store[T]) SelectFailed(t Ticket, err error) bool {
	s.mu.Lock()
	if t.seq <= s.selSeq {
		s.mu.Unlock()
		return false
	}
	s.selSeq = t.seq
	s.state.Selected = nil
	s.state.Error = message(err)
	s.state.Loading = s.applied < s.issued || t.seq < s.selIssued
	s.mu.Unlock()

	s.notify()
	return true
}

// ClearSelection drops the selected record.
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	s.state.Selected = nil
	s.mu.Unlock()

	s.notify()
}

// ------------------------
//          Helpers
// ------------------------

func (s *Store[T]) notify() {
	s.mu.RLock()
	if len(s.listeners) == 0 {
		s.mu.RUnlock()
		return
	}
	snap := s.copyState()
	fns := make([]func(State[T]), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// copyState must be called with the lock held.
func (s *Store[T]) copyState() State[T] {
	st := s.state
	st.Items = cloneItems(s.state.Items)
	if s.state.Selected != nil {
		sel := *s.state.Selected
		st.Selected = &sel
	}
	return st
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// messenger is implemented by errors that carry a user-facing message.
type messenger interface {
	Message() string
}

func message(err error) string {
	if err == nil {
		return "unknown error"
	}
	if m, ok := err.(messenger); ok {
		return m.Message()
	}
	return err.Error()
}
