package admin

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/gateway"
	"github.com/ft-kumarsatyam/venue-management-system/internal/listview"
	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/refresh"
	"github.com/ft-kumarsatyam/venue-management-system/internal/store"
)

// Entity paths of the venue API.
const (
	ClusterPath   = "cluster"
	VenuePath     = "venue"
	ZonePath      = "zone"
	FacilityPath  = "facility"
	SportTypePath = "sport-type"
)

// Client is the admin dashboard core: one section per entity kind sharing a
// refresh policy.
type Client struct {
	Clusters   *Section[Cluster]
	Venues     *Section[Venue]
	Zones      *Section[Zone]
	Facilities *Section[Facility]
	SportTypes *listview.Options[SportType]

	policy *refresh.Policy
	log    *logrus.Entry
}

// New wires a client on top of gw.
func New(gw *gateway.Client, s Settings) *Client {
	policy := refresh.NewPolicy()
	return &Client{
		Clusters:   newSection(refresh.Cluster, gateway.NewResource[Cluster](gw, ClusterPath), policy, s),
		Venues:     newSection(refresh.Venue, gateway.NewResource[Venue](gw, VenuePath), policy, s),
		Zones:      newSection(refresh.Zone, gateway.NewResource[Zone](gw, ZonePath), policy, s),
		Facilities: newSection(refresh.Facility, gateway.NewResource[Facility](gw, FacilityPath), policy, s),
		SportTypes: listview.NewOptions[SportType](gateway.NewResource[SportType](gw, SportTypePath), nil),
		policy:     policy,
		log:        logger.WithComponent("admin"),
	}
}

// Policy returns the shared refresh policy.
func (c *Client) Policy() *refresh.Policy {
	return c.policy
}

// Close stops every list view.
func (c *Client) Close() {
	c.Clusters.close()
	c.Venues.close()
	c.Zones.close()
	c.Facilities.close()
}

// ------------------------
//         Clusters
// ------------------------

func (c *Client) CreateCluster(ctx context.Context, f ClusterForm) (Cluster, error) {
	return create(ctx, c, c.Clusters, f, clusterLinks)
}

func (c *Client) UpdateCluster(ctx context.Context, id string, f ClusterForm) (Cluster, error) {
	return update(ctx, c, c.Clusters, id, f, clusterLinks)
}

func (c *Client) DeleteCluster(ctx context.Context, id string) error {
	return remove(ctx, c, c.Clusters, id, clusterLinks)
}

func clusterLinks(cl Cluster) refresh.Mutation {
	return refresh.Mutation{Kind: refresh.Cluster, ID: cl.ID}
}

// ------------------------
//          Venues
// ------------------------

func (c *Client) CreateVenue(ctx context.Context, f VenueForm) (Venue, error) {
	return create(ctx, c, c.Venues, f, venueLinks)
}

func (c *Client) UpdateVenue(ctx context.Context, id string, f VenueForm) (Venue, error) {
	return update(ctx, c, c.Venues, id, f, venueLinks)
}

func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	return remove(ctx, c, c.Venues, id, venueLinks)
}

func venueLinks(v Venue) refresh.Mutation {
	return refresh.Mutation{Kind: refresh.Venue, ID: v.ID, ClusterID: v.ClusterRef()}
}

// ------------------------
//          Zones
// ------------------------

func (c *Client) CreateZone(ctx context.Context, f ZoneForm) (Zone, error) {
	return create(ctx, c, c.Zones, f, zoneLinks)
}

func (c *Client) UpdateZone(ctx context.Context, id string, f ZoneForm) (Zone, error) {
	return update(ctx, c, c.Zones, id, f, zoneLinks)
}

func (c *Client) DeleteZone(ctx context.Context, id string) error {
	return remove(ctx, c, c.Zones, id, zoneLinks)
}

func zoneLinks(z Zone) refresh.Mutation {
	return refresh.Mutation{
		Kind:       refresh.Zone,
		ID:         z.ID,
		VenueIDs:   append([]string(nil), z.VenueIDs...),
		FacilityID: z.FacilityRef(),
	}
}

// ------------------------
//        Facilities
// ------------------------

func (c *Client) CreateFacility(ctx context.Context, f FacilityForm) (Facility, error) {
	return create(ctx, c, c.Facilities, f, facilityLinks)
}

func (c *Client) UpdateFacility(ctx context.Context, id string, f FacilityForm) (Facility, error) {
	return update(ctx, c, c.Facilities, id, f, facilityLinks)
}

func (c *Client) DeleteFacility(ctx context.Context, id string) error {
	return remove(ctx, c, c.Facilities, id, facilityLinks)
}

func facilityLinks(f Facility) refresh.Mutation {
	return refresh.Mutation{Kind: refresh.Facility, ID: f.ID, VenueID: f.VenueID}
}

// ------------------------
//      Mutation flow
// ------------------------

// submittable is a form that can be validated and encoded.
type submittable interface {
	Validate() error
	Multipart(mode gateway.Mode) (*gateway.Form, error)
}

func create[T store.Identifiable](ctx context.Context, c *Client, s *Section[T], f submittable, links func(T) refresh.Mutation) (T, error) {
	var zero T
	if err := f.Validate(); err != nil {
		return zero, err
	}
	mp, err := f.Multipart(gateway.ModeCreate)
	if err != nil {
		return zero, err
	}

	created, err := s.resource.Create(ctx, mp)
	if err != nil {
		c.log.WithError(err).WithField("kind", s.kind).Warn("create failed")
		return zero, err
	}

	s.recordCreated(created)
	m := links(created)
	m.Op = refresh.Create
	c.refetch(ctx, m)
	return created, nil
}

func update[T store.Identifiable](ctx context.Context, c *Client, s *Section[T], id string, f submittable, links func(T) refresh.Mutation) (T, error) {
	var zero T
	if err := f.Validate(); err != nil {
		return zero, err
	}
	mp, err := f.Multipart(gateway.ModeUpdate)
	if err != nil {
		return zero, err
	}

	prev, hadPrev := s.lookup(ctx, id)
	updated, err := s.resource.Update(ctx, id, mp)
	if err != nil {
		c.log.WithError(err).WithField("kind", s.kind).WithField("id", id).Warn("update failed")
		return zero, err
	}

	s.recordUpdated(updated)
	m := links(updated)
	m.Op = refresh.Update
	if hadPrev {
		m = withPrevious(m, links(prev))
	} else {
		m.LinksUnknown = true
	}
	c.refetch(ctx, m)
	return updated, nil
}

func remove[T store.Identifiable](ctx context.Context, c *Client, s *Section[T], id string, links func(T) refresh.Mutation) error {
	known, ok := s.lookup(ctx, id)

	if err := s.resource.Delete(ctx, id); err != nil {
		c.log.WithError(err).WithField("kind", s.kind).WithField("id", id).Warn("delete failed")
		return err
	}

	s.recordDeleted(id)
	m := refresh.Mutation{Kind: s.kind, ID: id, LinksUnknown: true}
	if ok {
		m = links(known)
	}
	m.Op = refresh.Delete
	c.refetch(ctx, m)
	return nil
}

// withPrevious copies the parent links of prev into the Prev fields of m.
func withPrevious(m, prev refresh.Mutation) refresh.Mutation {
	m.PrevClusterID = prev.ClusterID
	m.PrevVenueID = prev.VenueID
	m.PrevVenueIDs = prev.VenueIDs
	m.PrevFacilityID = prev.FacilityID
	return m
}

// refetch applies the refresh policy. Refetch failures are recorded by each
// list's store and do not fail the mutation.
func (c *Client) refetch(ctx context.Context, m refresh.Mutation) {
	if err := c.policy.Apply(ctx, m, nil); err != nil {
		c.log.WithError(err).WithField("kind", m.Kind).Debug("dependent refetch failed")
	}
}
