package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n   int32
	err error
}

func (c *counter) Refresh(ctx context.Context) error {
	atomic.AddInt32(&c.n, 1)
	return c.err
}

func (c *counter) count() int {
	return int(atomic.LoadInt32(&c.n))
}

func fixed(id string) func() string {
	return func() string { return id }
}

func TestTargets_Cluster(t *testing.T) {
	got := Targets(Mutation{Kind: Cluster, Op: Update, ID: "7"})
	assert.ElementsMatch(t, []Target{
		{Kind: Cluster},
		{Kind: Cluster, Dropdown: true},
		{Kind: Venue, ParentKind: Cluster, ParentID: "7"},
	}, got)
}

func TestTargets_VenueMovedBetweenClusters(t *testing.T) {
	got := Targets(Mutation{Kind: Venue, Op: Update, ID: "3", ClusterID: "2", PrevClusterID: "1"})
	assert.ElementsMatch(t, []Target{
		{Kind: Venue},
		{Kind: Venue, ParentKind: Cluster, ParentID: "2"},
		{Kind: Venue, ParentKind: Cluster, ParentID: "1"},
		{Kind: Venue, Dropdown: true},
		{Kind: Cluster},
	}, got)
}

func TestTargets_OrphanVenueSkipsScopedList(t *testing.T) {
	got := Targets(Mutation{Kind: Venue, Op: Create, ID: "3"})
	for _, tg := range got {
		assert.NotEqual(t, Cluster, tg.ParentKind)
	}
}

func TestTargets_ZoneDeduplicatesVenues(t *testing.T) {
	got := Targets(Mutation{
		Kind: Zone, Op: Update, ID: "9",
		VenueIDs: []string{"1", "2"}, PrevVenueIDs: []string{"2", "3"},
		FacilityID: "5",
	})
	assert.ElementsMatch(t, []Target{
		{Kind: Zone},
		{Kind: Zone, ParentKind: Venue, ParentID: "1"},
		{Kind: Zone, ParentKind: Venue, ParentID: "2"},
		{Kind: Zone, ParentKind: Venue, ParentID: "3"},
		{Kind: Zone, ParentKind: Facility, ParentID: "5"},
		{Kind: Zone, Dropdown: true},
	}, got)
}

func TestTargets_Facility(t *testing.T) {
	got := Targets(Mutation{Kind: Facility, Op: Delete, ID: "4", VenueID: "8"})
	assert.ElementsMatch(t, []Target{
		{Kind: Facility},
		{Kind: Facility, ParentKind: Venue, ParentID: "8"},
		{Kind: Facility, Dropdown: true},
	}, got)
}

// A venue created under cluster 7 refreshes the venue list scoped to 7 and
// leaves the one scoped to 8 alone.
func TestApply_VenueCreateRefreshesScopedList(t *testing.T) {
	p := NewPolicy()
	scoped7, scoped8, clusters, zones := &counter{}, &counter{}, &counter{}, &counter{}
	p.Register(List(Venue, Cluster, fixed("7"), scoped7))
	p.Register(List(Venue, Cluster, fixed("8"), scoped8))
	p.Register(List(Cluster, "", nil, clusters))
	p.Register(List(Zone, "", nil, zones))

	err := p.Apply(context.Background(), Mutation{Kind: Venue, Op: Create, ID: "30", ClusterID: "7"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, scoped7.count())
	assert.Equal(t, 0, scoped8.count())
	assert.Equal(t, 1, clusters.count())
	assert.Equal(t, 0, zones.count())
}

// A failed delete changes nothing and refreshes nothing.
func TestApply_FailedMutationRefreshesNothing(t *testing.T) {
	p := NewPolicy()
	zones, dropdown := &counter{}, &counter{}
	p.Register(List(Zone, "", nil, zones))
	p.Register(Dropdown(Zone, dropdown))

	err := p.Apply(context.Background(), Mutation{Kind: Zone, Op: Delete, ID: "9"}, errors.New("500"))
	require.NoError(t, err)
	assert.Equal(t, 0, zones.count())
	assert.Equal(t, 0, dropdown.count())
}

func TestApply_ScopedListWithoutParentActsUnscoped(t *testing.T) {
	p := NewPolicy()
	venues := &counter{}
	p.Register(List(Venue, Cluster, fixed(""), venues))

	require.NoError(t, p.Apply(context.Background(), Mutation{Kind: Venue, Op: Delete, ID: "1"}, nil))
	assert.Equal(t, 1, venues.count())
}

func TestApply_DropdownOnlyForDropdownTargets(t *testing.T) {
	p := NewPolicy()
	clusterDropdown, venueDropdown := &counter{}, &counter{}
	p.Register(Dropdown(Cluster, clusterDropdown))
	p.Register(Dropdown(Venue, venueDropdown))

	require.NoError(t, p.Apply(context.Background(), Mutation{Kind: Cluster, Op: Create, ID: "1"}, nil))
	assert.Equal(t, 1, clusterDropdown.count())
	assert.Equal(t, 0, venueDropdown.count())
}

func TestApply_UnregisterAndErrors(t *testing.T) {
	p := NewPolicy()
	failing := &counter{err: errors.New("refetch failed")}
	other := &counter{}
	p.Register(List(Facility, "", nil, failing))
	unregister := p.Register(Dropdown(Facility, other))

	err := p.Apply(context.Background(), Mutation{Kind: Facility, Op: Create, ID: "1", VenueID: "2"}, nil)
	assert.EqualError(t, err, "refetch failed")
	assert.Equal(t, 1, other.count(), "every matching binding runs")

	unregister()
	_ = p.Apply(context.Background(), Mutation{Kind: Facility, Op: Create, ID: "1"}, nil)
	assert.Equal(t, 1, other.count())
	assert.Equal(t, 2, failing.count())
}

func TestTargets_UnknownLinksCoverEveryScope(t *testing.T) {
	got := Targets(Mutation{Kind: Zone, Op: Delete, ID: "42", LinksUnknown: true})
	assert.Contains(t, got, Target{Kind: Zone, ParentKind: Venue, AnyParent: true})
	assert.Contains(t, got, Target{Kind: Zone, ParentKind: Facility, AnyParent: true})

	got = Targets(Mutation{Kind: Cluster, Op: Delete, ID: "7", LinksUnknown: true})
	for _, tg := range got {
		assert.False(t, tg.AnyParent)
	}
}

func TestApply_UnknownLinksRefreshScopedLists(t *testing.T) {
	p := NewPolicy()
	ofVenue, ofFacility, unscopedFacilities := &counter{}, &counter{}, &counter{}
	p.Register(List(Zone, Venue, fixed("3"), ofVenue))
	p.Register(List(Zone, Facility, fixed("5"), ofFacility))
	p.Register(List(Facility, "", nil, unscopedFacilities))

	require.NoError(t, p.Apply(context.Background(), Mutation{Kind: Zone, Op: Delete, ID: "42", LinksUnknown: true}, nil))
	assert.Equal(t, 1, ofVenue.count())
	assert.Equal(t, 1, ofFacility.count())
	assert.Equal(t, 0, unscopedFacilities.count())
}
