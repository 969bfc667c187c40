package venue

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

// Repository defines data access methods for venues.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]*Venue, int, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
	// Utility methods
	Missing(ctx context.Context, ids []string) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func selectVenues(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{"v.id"}, site.Columns("v")...)
	cols = append(cols, "v.cluster_id", "v.capacity", "v.address", "v.created_at", "v.updated_at")
	cols = append(cols, extra...)
	return psql.Select(cols...).From("public.venues v")
}

func scanVenue(row pgx.Row, extra ...any) (*Venue, error) {
	var v Venue
	sc := site.NewScanner(&v.Info)
	dest := append([]any{&v.ID}, sc.Dest()...)
	dest = append(dest, &v.ClusterID, &v.Capacity, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := sc.Finish(); err != nil {
		return nil, err
	}
	return &v, nil
}

// mapWriteError translates constraint violations of venue writes.
func mapWriteError(err error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) {
		switch e.Code {
		case pgerrcode.UniqueViolation:
			return ErrCodeTaken
		case pgerrcode.ForeignKeyViolation:
			return ErrClusterNotFound
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	values, err := v.Values()
	if err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.venues").
		Columns(append(site.Columns(""), "cluster_id", "capacity", "address")...).
		Values(append(values, v.ClusterID, v.Capacity, v.Address)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create venue query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create venue failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	query, args, err := selectVenues().
		Where(squirrel.Eq{"v.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venue query failed: %w", err)
	}

	v, err := scanVenue(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue failed: %w", err)
	}
	return v, nil
}

func (r *pgxRepository) List(ctx context.Context, filter VenueFilter) ([]*Venue, int, error) {
	query := selectVenues("count(*) OVER() AS total_count")

	// Dynamic Filtering
	if filter.ClusterID != "" {
		query = query.Where(squirrel.Eq{"v.cluster_id": filter.ClusterID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"v.name": pattern},
			squirrel.ILike{"v.code": pattern},
			squirrel.ILike{"v.address": pattern},
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

	query = query.OrderBy("v.created_at DESC", "v.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list venues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}
	defer rows.Close()

	var venues []*Venue
	var total int

	for rows.Next() {
		v, err := scanVenue(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venue failed: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}

	return venues, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Venue) error {
	set, err := v.SetMap()
	if err != nil {
		return err
	}
	set["cluster_id"] = v.ClusterID
	set["capacity"] = v.Capacity
	set["address"] = v.Address

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.venues").
		SetMap(set).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update venue query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update venue failed: %w", err)
	}
	return nil
}

// Delete removes a venue together with its facilities and zone links.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete venue query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete venue failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ------------------------
//     Utility methods
// ------------------------

// Missing returns the ids that do not name a venue.
func (r *pgxRepository) Missing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT wanted.id::text
		FROM unnest($1::uuid[]) AS wanted(id)
		LEFT JOIN public.venues v ON v.id = wanted.id
		WHERE v.id IS NULL
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("check venues failed: %w", err)
	}
	defer rows.Close()

	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("check venues failed: %w", err)
	}
	return missing, nil
}
