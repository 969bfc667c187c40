// Package refresh decides which other lists must be refetched after a
// successful mutation and refetches exactly those.
package refresh

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

// Kind is an entity kind.
type Kind string

const (
	Cluster  Kind = "cluster"
	Venue    Kind = "venue"
	Zone     Kind = "zone"
	Facility Kind = "facility"
)

// Op is a mutation type.
type Op string

const (
	Create Op = "create"
	Update Op = "update"
	Delete Op = "delete"
)

// Mutation describes a completed create, update or delete and the parent
// links of the record before and after it.
type Mutation struct {
	Kind Kind
	Op   Op
	ID   string

	ClusterID     string // venue
	PrevClusterID string

	VenueID     string // facility
	PrevVenueID string

	VenueIDs     []string // zone
	PrevVenueIDs []string

	FacilityID     string // zone
	PrevFacilityID string

	// LinksUnknown is set when the parents of the record before the mutation
	// could not be determined. Every scoped list of Kind is then refetched.
	LinksUnknown bool
}

// Target is one list that needs a refetch. An empty ParentKind means the
// unscoped list of Kind; AnyParent matches every list scoped by ParentKind.
type Target struct {
	Kind       Kind
	ParentKind Kind
	ParentID   string
	AnyParent  bool
	Dropdown   bool
}

// Targets returns the lists affected by m. The result has no duplicates and
// never contains the mutated record's own detail view.
func Targets(m Mutation) []Target {
	var out []Target
	seen := make(map[Target]struct{})
	add := func(t Target) {
		if t.ParentKind != "" && t.ParentID == "" && !t.AnyParent {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	switch m.Kind {
	case Cluster:
		add(Target{Kind: Cluster})
		add(Target{Kind: Cluster, Dropdown: true})
		add(Target{Kind: Venue, ParentKind: Cluster, ParentID: m.ID})
	case Venue:
		add(Target{Kind: Venue})
		add(Target{Kind: Venue, ParentKind: Cluster, ParentID: m.ClusterID})
		add(Target{Kind: Venue, ParentKind: Cluster, ParentID: m.PrevClusterID})
		add(Target{Kind: Venue, Dropdown: true})
		add(Target{Kind: Cluster})
	case Zone:
		add(Target{Kind: Zone})
		for _, id := range m.VenueIDs {
			add(Target{Kind: Zone, ParentKind: Venue, ParentID: id})
		}
		for _, id := range m.PrevVenueIDs {
			add(Target{Kind: Zone, ParentKind: Venue, ParentID: id})
		}
		add(Target{Kind: Zone, ParentKind: Facility, ParentID: m.FacilityID})
		add(Target{Kind: Zone, ParentKind: Facility, ParentID: m.PrevFacilityID})
		add(Target{Kind: Zone, Dropdown: true})
	case Facility:
		add(Target{Kind: Facility})
		add(Target{Kind: Facility, ParentKind: Venue, ParentID: m.VenueID})
		add(Target{Kind: Facility, ParentKind: Venue, ParentID: m.PrevVenueID})
		add(Target{Kind: Facility, Dropdown: true})
	}

	if m.LinksUnknown {
		for _, parent := range parentKinds[m.Kind] {
			add(Target{Kind: m.Kind, ParentKind: parent, AnyParent: true})
		}
	}
	return out
}

// parentKinds lists the scopes a list of each kind can be mounted under.
var parentKinds = map[Kind][]Kind{
	Venue:    {Cluster},
	Zone:     {Venue, Facility},
	Facility: {Venue},
}

// Refresher is anything that can refetch itself.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Binding ties a mounted list or dropdown to the targets it answers to.
type Binding interface {
	Refresher
	Matches(t Target) bool
}

type listBinding struct {
	kind       Kind
	parentKind Kind
	parent     func() string
	r          Refresher
}

// List binds a list of kind. parentKind is empty for unscoped lists; parent
// returns the current scope at match time and may be nil.
func List(kind, parentKind Kind, parent func() string, r Refresher) Binding {
	return &listBinding{kind: kind, parentKind: parentKind, parent: parent, r: r}
}

func (b *listBinding) Matches(t Target) bool {
	if t.Dropdown || t.Kind != b.kind {
		return false
	}
	current := ""
	if b.parent != nil {
		current = b.parent()
	}
	// A scoped list showing no parent behaves as the unscoped list.
	if b.parentKind == "" || current == "" {
		return t.ParentKind == ""
	}
	if t.AnyParent {
		return t.ParentKind == b.parentKind
	}
	return t.ParentKind == b.parentKind && t.ParentID == current
}

func (b *listBinding) Refresh(ctx context.Context) error {
	return b.r.Refresh(ctx)
}

type dropdownBinding struct {
	kind Kind
	r    Refresher
}

// Dropdown binds the option cache of kind.
func Dropdown(kind Kind, r Refresher) Binding {
	return &dropdownBinding{kind: kind, r: r}
}

func (b *dropdownBinding) Matches(t Target) bool {
	return t.Dropdown && t.Kind == b.kind
}

func (b *dropdownBinding) Refresh(ctx context.Context) error {
	return b.r.Refresh(ctx)
}

// Policy holds the mounted bindings.
type Policy struct {
	mu       sync.RWMutex
	bindings map[int]Binding
	nextID   int
}

// NewPolicy creates an empty policy.
func NewPolicy() *Policy {
	return &Policy{bindings: make(map[int]Binding)}
}

// Register mounts b. The returned function unmounts it.
func (p *Policy) Register(b Binding) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.bindings[id] = b
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.bindings, id)
		p.mu.Unlock()
	}
}

// Apply refetches every mounted binding matching the targets of m. Nothing
// happens when mutationErr is non-nil. Refetches run concurrently; the first
// failure is returned after all of them finish.
func (p *Policy) Apply(ctx context.Context, m Mutation, mutationErr error) error {
	if mutationErr != nil {
		return nil
	}

	targets := Targets(m)
	p.mu.RLock()
	var matched []Binding
	for _, b := range p.bindings {
		for _, t := range targets {
			if b.Matches(t) {
				matched = append(matched, b)
				break
			}
		}
	}
	p.mu.RUnlock()

	if len(matched) == 0 {
		return nil
	}

	logger.WithComponent("refresh").
		WithField("kind", m.Kind).
		WithField("op", m.Op).
		Debugf("refetching %d lists", len(matched))

	var g errgroup.Group
	for _, b := range matched {
		g.Go(func() error { return b.Refresh(ctx) })
	}
	return g.Wait()
}
