package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ft-kumarsatyam/venue-management-system/internal/logger"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// Migration is one embedded schema change.
type Migration struct {
	// Version is the filename prefix, e.g. 20260101_000000.
	Version string
	Name    string
	SQL     string
}

// Migrate applies every pending migration in version order. Each migration
// runs in its own transaction together with its schema_migrations row.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log := logger.WithComponent("db")

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS public.schema_migrations (
			version    text PRIMARY KEY,
			applied_at timestamptz NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations failed: %w", err)
	}

	migrations, err := LoadMigrations(migrationsFS)
	if err != nil {
		return err
	}

	rows, err := pool.Query(ctx, `SELECT version FROM public.schema_migrations`)
	if err != nil {
		return fmt.Errorf("list applied migrations failed: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("scan applied migrations failed: %w", err)
	}

	for _, m := range Pending(migrations, applied) {
		if err := apply(ctx, pool, m); err != nil {
			return fmt.Errorf("apply migration %s (%s) failed: %w", m.Version, m.Name, err)
		}
		log.WithField("version", m.Version).WithField("name", m.Name).Info("migration applied")
	}
	return nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, m Migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO public.schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// LoadMigrations reads every *.up.sql file under migrations/ in fsys, sorted
// by version. Filenames follow YYYYMMDD_HHMMSS_name.up.sql.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir failed: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".up.sql")
		parts := strings.SplitN(base, "_", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid migration filename %q", e.Name())
		}

		body, err := fs.ReadFile(fsys, "migrations/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s failed: %w", e.Name(), err)
		}
		out = append(out, Migration{
			Version: parts[0] + "_" + parts[1],
			Name:    parts[2],
			SQL:     string(body),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Pending returns the migrations whose version is not in applied.
func Pending(all []Migration, applied []string) []Migration {
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}
	var out []Migration
	for _, m := range all {
		if !done[m.Version] {
			out = append(out, m)
		}
	}
	return out
}
