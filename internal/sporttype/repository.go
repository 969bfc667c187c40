package sporttype

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

type Repository interface {
	Create(ctx context.Context, st *SportType) error
	GetByID(ctx context.Context, id string) (*SportType, error)
	List(ctx context.Context, filter Filter) ([]*SportType, int, error)
	Update(ctx context.Context, st *SportType) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var sortColumns = map[string]string{
	"name":       "st.name",
	"created_at": "st.created_at",
}

func pgCode(err error) string {
	var e *pgconn.PgError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func (r *pgxRepository) Create(ctx context.Context, st *SportType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sport_types").
		Columns("name", "description").
		Values(st.Name, st.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create sport type query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create sport type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*SportType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("st.id", "st.name", "st.description", "st.created_at").
		From("public.sport_types st").
		Where(squirrel.Eq{"st.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sport type query failed: %w", err)
	}

	var st SportType
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&st.ID, &st.Name, &st.Description, &st.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sport type failed: %w", err)
	}
	return &st, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*SportType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"st.id", "st.name", "st.description", "st.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.sport_types st")

	if filter.Search != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"st.name": "%" + filter.Search + "%"})
	}

	// Sorting
	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "st.name"
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}

	queryBuilder = queryBuilder.OrderBy(orderBy+" "+orderDir, "st.id")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sport types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sport types failed: %w", err)
	}
	defer rows.Close()

	var result []*SportType
	var total int

	for rows.Next() {
		var st SportType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &st.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan sport type failed: %w", err)
		}
		result = append(result, &st)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, st *SportType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sport_types").
		Set("name", st.Name).
		Set("description", st.Description).
		Where(squirrel.Eq{"id": st.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update sport type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update sport type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete fails with ErrInUse while facilities reference the sport type.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.sport_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sport type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if pgCode(err) == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("delete sport type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM public.sport_types WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sport type failed: %w", err)
	}
	return exists, nil
}
