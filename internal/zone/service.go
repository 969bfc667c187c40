package zone

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

// VenueChecker reports which venue ids do not exist.
type VenueChecker interface {
	Missing(ctx context.Context, ids []string) ([]string, error)
}

// FacilityLocator returns the venue a facility belongs to. ok is false when
// the facility does not exist.
type FacilityLocator interface {
	VenueOf(ctx context.Context, facilityID string) (venueID string, ok bool, err error)
}

// Service defines business logic for zones.
type Service interface {
	Create(ctx context.Context, d Details) (*Zone, error)
	GetByID(ctx context.Context, id string) (*Zone, error)
	List(ctx context.Context, filter ZoneFilter) ([]*Zone, int, error)
	Update(ctx context.Context, id string, d Details) (*Zone, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	venues     VenueChecker
	facilities FacilityLocator
	log        *logrus.Entry
}

// NewService creates a new zone service.
func NewService(repo Repository, venues VenueChecker, facilities FacilityLocator) Service {
	return &service{
		repo:       repo,
		venues:     venues,
		facilities: facilities,
		log:        logger.WithComponent("zone"),
	}
}

func (s *service) Create(ctx context.Context, d Details) (*Zone, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	z := &Zone{Details: d}
	if err := s.repo.Create(ctx, z); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"zone_id": z.ID,
		"common":  z.CommonZoneStatus(),
	}).Info("zone created")
	return z, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Zone, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ZoneFilter) ([]*Zone, int, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces every editable field. Omitting facility_id turns the zone
// into a common zone.
func (s *service) Update(ctx context.Context, id string, d Details) (*Zone, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	z, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	z.Details = d
	if err := s.repo.Update(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("zone_id", id).Info("zone deleted")
	return nil
}

func (s *service) check(ctx context.Context, d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}

	missing, err := s.venues.Missing(ctx, d.VenueIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		s.log.WithField("venue_ids", missing).Debug("zone references unknown venues")
		return ErrVenueNotFound
	}

	if d.FacilityID == nil {
		return nil
	}
	venueID, ok, err := s.facilities.VenueOf(ctx, *d.FacilityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFacilityNotFound
	}
	if !slices.Contains(d.VenueIDs, venueID) {
		return ErrFacilityElsewhere
	}
	return nil
}
