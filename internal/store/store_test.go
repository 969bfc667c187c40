package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-kumarsatyam/venue-management-system/internal/pagination"
)

type item struct {
	ID   string
	Name string
}

func (i item) EntityID() string { return i.ID }

type msgErr struct{ msg string }

func (e msgErr) Error() string   { return "wrapped: " + e.msg }
func (e msgErr) Message() string { return e.msg }

func loaded(t *testing.T, s *Store[item], items []item, total int) {
	t.Helper()
	tk := s.BeginFetch()
	require.True(t, s.FetchSucceeded(tk, items, pagination.Compute(total, 1, 10)))
}

func TestStore_BeginFetchKeepsData(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1"}, {ID: "2"}}, 2)

	s.BeginFetch()
	st := s.Snapshot()

	assert.True(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Len(t, st.Items, 2, "stale-while-revalidate keeps the previous page")
}

func TestStore_FetchSucceededReplacesWholesale(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1"}, {ID: "2"}}, 2)

	tk := s.BeginFetch()
	ok := s.FetchSucceeded(tk, []item{{ID: "3"}}, pagination.Compute(11, 2, 10))
	require.True(t, ok)

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, []item{{ID: "3"}}, st.Items)
	assert.Equal(t, 11, st.Pagination.TotalItems)
	assert.Equal(t, 2, st.Pagination.CurrentPage)
}

func TestStore_FetchFailedClearsByDefault(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1"}}, 1)

	tk := s.BeginFetch()
	s.FetchFailed(tk, msgErr{msg: "network down"})

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, "network down", st.Error)
	assert.Empty(t, st.Items)
	assert.Equal(t, 0, st.Pagination.TotalItems)
}

func TestStore_FetchFailedKeepPolicy(t *testing.T) {
	s := New[item](WithFailurePolicy(KeepOnFailure))
	loaded(t, s, []item{{ID: "1"}}, 1)

	tk := s.BeginFetch()
	s.FetchFailed(tk, errors.New("boom"))

	st := s.Snapshot()
	assert.Equal(t, "boom", st.Error)
	assert.Len(t, st.Items, 1)
	assert.Equal(t, KeepOnFailure, s.Policy())
}

func TestStore_StaleResponseIsDiscarded(t *testing.T) {
	s := New[item]()

	older := s.BeginFetch()
	newer := s.BeginFetch()
	assert.Greater(t, newer.Seq(), older.Seq())

	require.True(t, s.FetchSucceeded(newer, []item{{ID: "new"}}, pagination.Compute(1, 1, 10)))
	assert.False(t, s.FetchSucceeded(older, []item{{ID: "old"}}, pagination.Compute(1, 1, 10)))
	assert.False(t, s.FetchFailed(older, errors.New("late failure")))

	st := s.Snapshot()
	assert.Equal(t, []item{{ID: "new"}}, st.Items)
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
}

func TestStore_OlderResponseAppliedWhileNewerPending(t *testing.T) {
	s := New[item]()

	older := s.BeginFetch()
	s.BeginFetch()

	require.True(t, s.FetchSucceeded(older, []item{{ID: "old"}}, pagination.Compute(1, 1, 10)))
	assert.True(t, s.Snapshot().Loading, "a newer request is still in flight")
}

func TestStore_RecordCreated(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1"}}, 10)

	s.RecordCreated(item{ID: "2"})

	st := s.Snapshot()
	assert.Equal(t, 11, st.Pagination.TotalItems)
	assert.Equal(t, 2, st.Pagination.TotalPages)
	_, found := s.Find("2")
	assert.True(t, found)
}

func TestStore_RecordUpdated(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, 2)

	s.RecordUpdated(item{ID: "2", Name: "B"})
	s.RecordUpdated(item{ID: "9", Name: "ghost"})

	st := s.Snapshot()
	assert.Equal(t, []item{{ID: "1", Name: "a"}, {ID: "2", Name: "B"}}, st.Items)
	assert.Equal(t, 2, st.Pagination.TotalItems)
}

func TestStore_RecordDeleted(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1"}, {ID: "2"}}, 2)

	sel := s.BeginSelect()
	s.SelectSucceeded(sel, item{ID: "2"})

	s.RecordDeleted("2")

	st := s.Snapshot()
	assert.Equal(t, []item{{ID: "1"}}, st.Items)
	assert.Equal(t, 1, st.Pagination.TotalItems)
	assert.Nil(t, st.Selected, "deleting the selected record clears the selection")
}

func TestStore_RecordDeletedFloorsAtZero(t *testing.T) {
	s := New[item]()

	s.RecordDeleted("missing")

	assert.Equal(t, 0, s.Snapshot().Pagination.TotalItems)
}

func TestStore_Selection(t *testing.T) {
	s := New[item]()

	tk := s.BeginSelect()
	require.True(t, s.SelectSucceeded(tk, item{ID: "5", Name: "five"}))

	st := s.Snapshot()
	require.NotNil(t, st.Selected)
	assert.Equal(t, "five", st.Selected.Name)
	assert.False(t, st.Loading)

	found, ok := s.Find("5")
	assert.True(t, ok)
	assert.Equal(t, "five", found.Name)

	tk = s.BeginSelect()
	s.SelectFailed(tk, errors.New("not found"))
	assert.Nil(t, s.Snapshot().Selected)
	assert.Equal(t, "not found", s.Snapshot().Error)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := New[item]()
	loaded(t, s, []item{{ID: "1", Name: "a"}}, 1)

	snap := s.Snapshot()
	snap.Items[0].Name = "mutated"

	assert.Equal(t, "a", s.Snapshot().Items[0].Name)
}

func TestStore_Subscribe(t *testing.T) {
	s := New[item]()

	var mu sync.Mutex
	var seen []bool
	unsubscribe := s.Subscribe(func(st State[item]) {
		mu.Lock()
		seen = append(seen, st.Loading)
		mu.Unlock()
	})

	loaded(t, s, []item{{ID: "1"}}, 1)
	unsubscribe()
	s.RecordCreated(item{ID: "2"})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, seen)
}
