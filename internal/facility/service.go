package facility

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

// VenueChecker reports which venue ids do not exist.
type VenueChecker interface {
	Missing(ctx context.Context, ids []string) ([]string, error)
}

// SportTypeChecker reports whether a sport type exists.
type SportTypeChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ZoneChecker returns the zones among zoneIDs that are not zones of venueID.
type ZoneChecker interface {
	Outside(ctx context.Context, venueID string, zoneIDs []string) ([]string, error)
}

// Service defines business logic for facilities.
type Service interface {
	Create(ctx context.Context, d Details) (*Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter FacilityFilter) ([]*Facility, int, error)
	Update(ctx context.Context, id string, d Details) (*Facility, error)
	Delete(ctx context.Context, id string) error
	VenueOf(ctx context.Context, id string) (string, bool, error)
}

type service struct {
	repo       Repository
	venues     VenueChecker
	sportTypes SportTypeChecker
	zones      ZoneChecker
	log        *logrus.Entry
}

// NewService creates a new facility service.
func NewService(repo Repository, venues VenueChecker, sportTypes SportTypeChecker, zones ZoneChecker) Service {
	return &service{
		repo:       repo,
		venues:     venues,
		sportTypes: sportTypes,
		zones:      zones,
		log:        logger.WithComponent("facility"),
	}
}

func (s *service) Create(ctx context.Context, d Details) (*Facility, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	f := &Facility{Details: d}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"facility_id": f.ID,
		"venue_id":    f.VenueID,
		"zones":       len(f.ZoneIDs),
	}).Info("facility created")
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter FacilityFilter) ([]*Facility, int, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces every editable field. Zones dropped from zone_ids become
// common zones.
func (s *service) Update(ctx context.Context, id string, d Details) (*Facility, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Details = d
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("facility_id", id).Info("facility deleted")
	return nil
}

func (s *service) VenueOf(ctx context.Context, id string) (string, bool, error) {
	return s.repo.VenueOf(ctx, id)
}

func (s *service) check(ctx context.Context, d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}

	missing, err := s.venues.Missing(ctx, []string{d.VenueID})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return ErrVenueNotFound
	}

	ok, err := s.sportTypes.Exists(ctx, d.SportTypeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSportTypeNotFound
	}

	outside, err := s.zones.Outside(ctx, d.VenueID, d.ZoneIDs)
	if err != nil {
		return err
	}
	if len(outside) > 0 {
		s.log.WithField("zone_ids", outside).Debug("facility references zones of other venues")
		return ErrZoneOutsideVenue
	}
	return nil
}
