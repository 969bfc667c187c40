package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ft-kumarsatyam/venue-management-system/internal/site"
)

// Repository defines methods for accessing cluster data.
type Repository interface {
	Create(ctx context.Context, c *Cluster) error
	GetByID(ctx context.Context, id string) (*Cluster, error)
	List(ctx context.Context, filter ClusterFilter) ([]*Cluster, int, error)
	Update(ctx context.Context, c *Cluster) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new cluster repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// selectClusters selects every cluster column plus the live venue count.
func selectClusters(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{"c.id"}, site.Columns("c")...)
	cols = append(cols,
		"(SELECT count(*) FROM public.venues v WHERE v.cluster_id = c.id) AS venue_count",
		"c.created_at", "c.updated_at",
	)
	cols = append(cols, extra...)
	return psql.Select(cols...).From("public.clusters c")
}

func scanCluster(row pgx.Row, extra ...any) (*Cluster, error) {
	var c Cluster
	sc := site.NewScanner(&c.Info)
	dest := append([]any{&c.ID}, sc.Dest()...)
	dest = append(dest, &c.VenueCount, &c.CreatedAt, &c.UpdatedAt)
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := sc.Finish(); err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation
}

func (r *pgxRepository) Create(ctx context.Context, c *Cluster) error {
	values, err := c.Values()
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.clusters").
		Columns(site.Columns("")...).
		Values(values...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create cluster query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("create cluster failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Cluster, error) {
	query, args, err := selectClusters().
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get cluster query failed: %w", err)
	}

	c, err := scanCluster(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cluster failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter ClusterFilter) ([]*Cluster, int, error) {
	query := selectClusters("count(*) OVER() AS total_count")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.code": pattern},
		})
	}

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("c.created_at DESC", "c.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list clusters query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clusters failed: %w", err)
	}
	defer rows.Close()

	var clusters []*Cluster
	var total int

	for rows.Next() {
		c, err := scanCluster(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cluster failed: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list clusters failed: %w", err)
	}

	return clusters, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Cluster) error {
	set, err := c.SetMap()
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.clusters").
		SetMap(set).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update cluster query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("update cluster failed: %w", err)
	}
	return nil
}

// Delete removes a cluster. Its venues become orphans (ON DELETE SET NULL).
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.clusters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete cluster query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete cluster failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Exists(ctx context.Context, id string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.clusters").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build cluster exists query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("cluster exists failed: %w", err)
	}
	return true, nil
}
