package zone

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

// Repository defines data access methods for zones.
type Repository interface {
	Create(ctx context.Context, z *Zone) error
	GetByID(ctx context.Context, id string) (*Zone, error)
	List(ctx context.Context, filter ZoneFilter) ([]*Zone, int, error)
	Update(ctx context.Context, z *Zone) error
	Delete(ctx context.Context, id string) error
	// Outside returns the ids among zoneIDs that are not zones of venueID.
	Outside(ctx context.Context, venueID string, zoneIDs []string) ([]string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const venueIDsColumn = `COALESCE(ARRAY(
		SELECT zv.venue_id::text FROM public.zone_venues zv
		WHERE zv.zone_id = z.id ORDER BY zv.venue_id
	), '{}') AS venue_ids`

func selectZones(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := []string{
		"z.id", "z.code", "z.name", "z.capacity", "z.latitude", "z.longitude", "z.radius",
		"z.supervisor_name", "z.supervisor_contact", "z.supervisor_email", "z.image_url",
		"z.facility_id", "z.created_at", "z.updated_at", venueIDsColumn,
	}
	return psql.Select(append(cols, extra...)...).From("public.zones z")
}

func scanZone(row pgx.Row, extra ...any) (*Zone, error) {
	var z Zone
	var lat, lng *float64
	dest := []any{
		&z.ID, &z.Code, &z.Name, &z.Capacity, &lat, &lng, &z.Radius,
		&z.Supervisor.Name, &z.Supervisor.Contact, &z.Supervisor.Email, &z.ImageURL,
		&z.FacilityID, &z.CreatedAt, &z.UpdatedAt, &z.VenueIDs,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		z.Coordinates = &site.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &z, nil
}

func (d Details) columns() map[string]any {
	var lat, lng *float64
	if d.Coordinates != nil {
		lat, lng = &d.Coordinates.Lat, &d.Coordinates.Lng
	}
	return map[string]any{
		"code":               d.Code,
		"name":               d.Name,
		"capacity":           d.Capacity,
		"latitude":           lat,
		"longitude":          lng,
		"radius":             d.Radius,
		"supervisor_name":    d.Supervisor.Name,
		"supervisor_contact": d.Supervisor.Contact,
		"supervisor_email":   d.Supervisor.Email,
		"image_url":          d.ImageURL,
		"facility_id":        d.FacilityID,
	}
}

func mapWriteError(err error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) {
		switch {
		case e.Code == pgerrcode.UniqueViolation:
			return ErrCodeTaken
		case e.Code == pgerrcode.ForeignKeyViolation && e.ConstraintName == "zones_facility_id_fkey":
			return ErrFacilityNotFound
		case e.Code == pgerrcode.ForeignKeyViolation:
			return ErrVenueNotFound
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, z *Zone) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.zones").
		SetMap(z.columns()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create zone query failed: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create zone failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, query, args...).Scan(&z.ID, &z.CreatedAt, &z.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create zone failed: %w", err)
	}
	if err := linkVenues(ctx, tx, z.ID, z.VenueIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// linkVenues replaces the venue links of a zone.
func linkVenues(ctx context.Context, tx pgx.Tx, zoneID string, venueIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM public.zone_venues WHERE zone_id = $1`, zoneID); err != nil {
		return fmt.Errorf("unlink zone venues failed: %w", err)
	}
	if len(venueIDs) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.zone_venues").Columns("zone_id", "venue_id")
	for _, id := range venueIDs {
		insert = insert.Values(zoneID, id)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build link zone venues query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("link zone venues failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Zone, error) {
	query, args, err := selectZones().
		Where(squirrel.Eq{"z.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get zone query failed: %w", err)
	}

	z, err := scanZone(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get zone failed: %w", err)
	}
	return z, nil
}

func (r *pgxRepository) List(ctx context.Context, filter ZoneFilter) ([]*Zone, int, error) {
	query := selectZones("count(*) OVER() AS total_count")

	// Dynamic Filtering
	if filter.VenueID != "" {
		query = query.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.zone_venues f WHERE f.zone_id = z.id AND f.venue_id = ?)", filter.VenueID,
		))
	}
	if filter.FacilityID != "" {
		query = query.Where(squirrel.Eq{"z.facility_id": filter.FacilityID})
	}
	if filter.Common != nil {
		if *filter.Common {
			query = query.Where(squirrel.Eq{"z.facility_id": nil})
		} else {
			query = query.Where(squirrel.NotEq{"z.facility_id": nil})
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"z.name": pattern},
			squirrel.ILike{"z.code": pattern},
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

	query = query.OrderBy("z.created_at DESC", "z.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list zones query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list zones failed: %w", err)
	}
	defer rows.Close()

	var zones []*Zone
	var total int

	for rows.Next() {
		z, err := scanZone(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan zone failed: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list zones failed: %w", err)
	}

	return zones, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, z *Zone) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.zones").
		SetMap(z.columns()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": z.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update zone query failed: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update zone failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, query, args...).Scan(&z.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update zone failed: %w", err)
	}
	if err := linkVenues(ctx, tx, z.ID, z.VenueIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.zones").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete zone query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete zone failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Outside(ctx context.Context, venueID string, zoneIDs []string) ([]string, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT wanted.id::text
		FROM unnest($2::uuid[]) AS wanted(id)
		WHERE NOT EXISTS (
			SELECT 1 FROM public.zone_venues zv
			WHERE zv.zone_id = wanted.id AND zv.venue_id = $1
		)
	`

	rows, err := r.pool.Query(ctx, query, venueID, zoneIDs)
	if err != nil {
		return nil, fmt.Errorf("check zone venues failed: %w", err)
	}
	defer rows.Close()

	outside, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("check zone venues failed: %w", err)
	}
	return outside, nil
}
