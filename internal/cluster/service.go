package cluster

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

// Service defines business logic for clusters.
type Service interface {
	Create(ctx context.Context, info site.Info) (*Cluster, error)
	GetByID(ctx context.Context, id string) (*Cluster, error)
	List(ctx context.Context, filter ClusterFilter) ([]*Cluster, int, error)
	Update(ctx context.Context, id string, info site.Info) (*Cluster, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo Repository
	log  *logrus.Entry
}

// NewService creates a new cluster service.
func NewService(repo Repository) Service {
	return &service{repo: repo, log: logger.WithComponent("cluster")}
}

func (s *service) Create(ctx context.Context, info site.Info) (*Cluster, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	c := &Cluster{Info: info}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.WithField("cluster_id", c.ID).Info("cluster created")
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Cluster, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ClusterFilter) ([]*Cluster, int, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces every editable field of the cluster.
func (s *service) Update(ctx context.Context, id string, info site.Info) (*Cluster, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Info = info
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("cluster_id", id).Info("cluster deleted")
	return nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}
