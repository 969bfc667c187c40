package admin

import (
	"context"
	"sync"
	"time"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/listview"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/refresh"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
)

// parentKeys maps a parent kind to the list filter carrying its id.
var parentKeys = map[refresh.Kind]string{
	refresh.Cluster:  "cluster_id",
	refresh.Venue:    "venue_id",
	refresh.Facility: "facility_id",
}

// Settings tune every list the client creates.
type Settings struct {
	ItemsPerPage  int
	Debounce      time.Duration
	FailurePolicy store.FailurePolicy
}

// Section groups everything the client holds for one entity kind: the
// gateway resource, the main unscoped list, the dropdown cache and any
// scoped lists mounted by screens.
type Section[T store.Identifiable] struct {
	kind     refresh.Kind
	resource *gateway.Resource[T]
	policy   *refresh.Policy
	settings Settings

	// List is the unscoped list screen.
	List *listview.View[T]
	// Options is the dropdown cache.
	Options *listview.Options[T]

	mu      sync.Mutex
	mounted map[*listview.View[T]]func()
}

func newSection[T store.Identifiable](kind refresh.Kind, res *gateway.Resource[T], policy *refresh.Policy, s Settings) *Section[T] {
	sec := &Section[T]{
		kind:     kind,
		resource: res,
		policy:   policy,
		settings: s,
		Options:  listview.NewOptions[T](res, nil),
		mounted:  make(map[*listview.View[T]]func()),
	}
	sec.List = sec.newView("")
	policy.Register(refresh.List(kind, "", nil, sec.List))
	policy.Register(refresh.Dropdown(kind, sec.Options))
	return sec
}

func (s *Section[T]) newView(parentKey string) *listview.View[T] {
	st := store.New[T](
		store.WithFailurePolicy(s.settings.FailurePolicy),
		store.WithItemsPerPage(s.settings.ItemsPerPage),
	)
	return listview.New[T](s.resource, st, listview.Config{
		ParentKey: parentKey,
		PerPage:   s.settings.ItemsPerPage,
		Debounce:  s.settings.Debounce,
	})
}

// Resource returns the gateway resource of the section.
func (s *Section[T]) Resource() *gateway.Resource[T] {
	return s.resource
}

// Store returns the store of the main list.
func (s *Section[T]) Store() *store.Store[T] {
	return s.List.Store()
}

// Mount creates a list scoped to parentKind, e.g. the venues of one cluster,
// and registers it for cross-entity refreshes. The returned function
// unmounts it.
func (s *Section[T]) Mount(parentKind refresh.Kind) (*listview.View[T], func()) {
	v := s.newView(parentKeys[parentKind])
	unregister := s.policy.Register(refresh.List(s.kind, parentKind, v.ParentID, v))

	var once sync.Once
	unmount := func() {
		once.Do(func() {
			unregister()
			s.mu.Lock()
			delete(s.mounted, v)
			s.mu.Unlock()
			v.Close()
		})
	}

	s.mu.Lock()
	s.mounted[v] = unmount
	s.mu.Unlock()
	return v, unmount
}

// Select loads one record into the main store's selection.
func (s *Section[T]) Select(ctx context.Context, id string) (T, error) {
	st := s.Store()
	t := st.BeginSelect()
	item, err := s.resource.Get(ctx, id)
	if err != nil {
		st.SelectFailed(t, err)
		var zero T
		return zero, err
	}
	st.SelectSucceeded(t, item)
	return item, nil
}

// Find looks for a loaded record in every list of the section.
func (s *Section[T]) Find(id string) (T, bool) {
	for _, st := range s.stores() {
		if item, ok := st.Find(id); ok {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// lookup finds a record in the loaded lists or, failing that, fetches it.
// Mutations need its parent links to know which scoped lists to refetch.
func (s *Section[T]) lookup(ctx context.Context, id string) (T, bool) {
	if item, ok := s.Find(id); ok {
		return item, true
	}
	item, err := s.resource.Get(ctx, id)
	if err != nil {
		logger.WithComponent("admin").WithError(err).WithField("kind", s.kind).WithField("id", id).
			Debug("parent links unknown, refetching every scoped list")
		var zero T
		return zero, false
	}
	return item, true
}

func (s *Section[T]) stores() []*store.Store[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*store.Store[T], 0, len(s.mounted)+1)
	out = append(out, s.List.Store())
	for v := range s.mounted {
		out = append(out, v.Store())
	}
	return out
}

func (s *Section[T]) recordCreated(item T) {
	s.List.Store().RecordCreated(item)
}

func (s *Section[T]) recordUpdated(item T) {
	for _, st := range s.stores() {
		st.RecordUpdated(item)
	}
}

// recordDeleted decrements the count of every list that held the record,
// and of the main list unconditionally.
func (s *Section[T]) recordDeleted(id string) {
	for i, st := range s.stores() {
		if _, ok := st.Find(id); ok || i == 0 {
			st.RecordDeleted(id)
		}
	}
}

func (s *Section[T]) close() {
	s.mu.Lock()
	unmounts := make([]func(), 0, len(s.mounted))
	for _, fn := range s.mounted {
		unmounts = append(unmounts, fn)
	}
	s.mu.Unlock()

	for _, fn := range unmounts {
		fn()
	}
	s.List.Close()
}
