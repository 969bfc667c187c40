package venue

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

// ClusterChecker reports whether a cluster exists.
type ClusterChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service defines business logic for venues.
type Service interface {
	Create(ctx context.Context, d Details) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]*Venue, int, error)
	Update(ctx context.Context, id string, d Details) (*Venue, error)
	Delete(ctx context.Context, id string) error
	Missing(ctx context.Context, ids []string) ([]string, error)
}

type service struct {
	repo     Repository
	clusters ClusterChecker
	log      *logrus.Entry
}

// NewService creates a new venue service.
func NewService(repo Repository, clusters ClusterChecker) Service {
	return &service{repo: repo, clusters: clusters, log: logger.WithComponent("venue")}
}

func (s *service) Create(ctx context.Context, d Details) (*Venue, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	v := &Venue{Details: d}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.log.WithField("venue_id", v.ID).Info("venue created")
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter VenueFilter) ([]*Venue, int, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces every editable field, including the cluster link.
func (s *service) Update(ctx context.Context, id string, d Details) (*Venue, error) {
	if err := s.check(ctx, d); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := v.ClusterID
	v.Details = d
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	if !sameCluster(prev, v.ClusterID) {
		s.log.WithFields(logrus.Fields{
			"venue_id": v.ID,
			"from":     deref(prev),
			"to":       deref(v.ClusterID),
		}).Info("venue moved between clusters")
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("venue_id", id).Info("venue deleted")
	return nil
}

func (s *service) Missing(ctx context.Context, ids []string) ([]string, error) {
	return s.repo.Missing(ctx, ids)
}

func (s *service) check(ctx context.Context, d Details) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.ClusterID == nil {
		return nil
	}
	ok, err := s.clusters.Exists(ctx, *d.ClusterID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrClusterNotFound
	}
	return nil
}

func sameCluster(a, b *string) bool {
	return deref(a) == deref(b)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
