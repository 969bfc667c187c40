package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for facilities.
type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter FacilityFilter) ([]*Facility, int, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id string) error
	VenueOf(ctx context.Context, id string) (string, bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const zoneIDsColumn = `COALESCE(ARRAY(
		SELECT z.id::text FROM public.zones z
		WHERE z.facility_id = f.id ORDER BY z.id
	), '{}') AS zone_ids`

func selectFacilities(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := []string{
		"f.id", "f.venue_id", "f.sport_type_id", "f.code", "f.capacity", "f.radius",
		"f.amenities", "f.created_at", "f.updated_at", zoneIDsColumn,
	}
	return psql.Select(append(cols, extra...)...).From("public.facilities f")
}

func scanFacility(row pgx.Row, extra ...any) (*Facility, error) {
	var f Facility
	dest := []any{
		&f.ID, &f.VenueID, &f.SportTypeID, &f.Code, &f.Capacity, &f.Radius,
		&f.Amenities, &f.CreatedAt, &f.UpdatedAt, &f.ZoneIDs,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (d Details) columns() map[string]any {
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return map[string]any{
		"venue_id":      d.VenueID,
		"sport_type_id": d.SportTypeID,
		"code":          d.Code,
		"capacity":      d.Capacity,
		"radius":        d.Radius,
		"amenities":     amenities,
	}
}

func mapWriteError(err error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) {
		switch {
		case e.Code == pgerrcode.UniqueViolation:
			return ErrCodeTaken
		case e.Code == pgerrcode.ForeignKeyViolation && e.ConstraintName == "facilities_sport_type_id_fkey":
			return ErrSportTypeNotFound
		case e.Code == pgerrcode.ForeignKeyViolation:
			return ErrVenueNotFound
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, f *Facility) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.facilities").
		SetMap(f.columns()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create facility query failed: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create facility failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create facility failed: %w", err)
	}
	if err := claimZones(ctx, tx, f.ID, f.ZoneIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// claimZones points exactly zoneIDs at the facility; zones it held before and
// no longer lists become common zones.
func claimZones(ctx context.Context, tx pgx.Tx, facilityID string, zoneIDs []string) error {
	if zoneIDs == nil {
		zoneIDs = []string{}
	}

	_, err := tx.Exec(ctx, `
		UPDATE public.zones SET facility_id = NULL, updated_at = now()
		WHERE facility_id = $1 AND NOT (id = ANY($2::uuid[]))
	`, facilityID, zoneIDs)
	if err != nil {
		return fmt.Errorf("release facility zones failed: %w", err)
	}

	if len(zoneIDs) == 0 {
		return nil
	}
	_, err = tx.Exec(ctx, `
		UPDATE public.zones SET facility_id = $1, updated_at = now()
		WHERE id = ANY($2::uuid[]) AND facility_id IS DISTINCT FROM $1
	`, facilityID, zoneIDs)
	if err != nil {
		return fmt.Errorf("claim facility zones failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Facility, error) {
	query, args, err := selectFacilities().
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get facility query failed: %w", err)
	}

	f, err := scanFacility(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get facility failed: %w", err)
	}
	return f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter FacilityFilter) ([]*Facility, int, error) {
	query := selectFacilities("count(*) OVER() AS total_count")

	// Dynamic Filtering
	if filter.VenueID != "" {
		query = query.Where(squirrel.Eq{"f.venue_id": filter.VenueID})
	}
	if filter.SportTypeID != "" {
		query = query.Where(squirrel.Eq{"f.sport_type_id": filter.SportTypeID})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.ILike{"f.code": "%" + filter.Search + "%"})
	}

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("f.created_at DESC", "f.id").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	var facilities []*Facility
	var total int

	for rows.Next() {
		f, err := scanFacility(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan facility failed: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list facilities failed: %w", err)
	}

	return facilities, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Facility) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.facilities").
		SetMap(f.columns()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update facility query failed: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update facility failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, query, args...).Scan(&f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update facility failed: %w", err)
	}
	if err := claimZones(ctx, tx, f.ID, f.ZoneIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Delete removes a facility; its zones become common zones.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete facility query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete facility failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) VenueOf(ctx context.Context, id string) (string, bool, error) {
	var venueID string
	err := r.pool.QueryRow(ctx, `SELECT venue_id::text FROM public.facilities WHERE id = $1`, id).Scan(&venueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get facility venue failed: %w", err)
	}
	return venueID, true, nil
}
