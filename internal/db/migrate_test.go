package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embedded(t *testing.T) {
	ms, err := LoadMigrations(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, ms)

	assert.Equal(t, "20260101_000000", ms[0].Version)
	assert.Equal(t, "init", ms[0].Name)
	assert.Contains(t, ms[0].SQL, "zones_facility_id_fkey")
	assert.Contains(t, ms[0].SQL, "facilities_sport_type_id_fkey")
}

func TestLoadMigrations_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/20260201_000000_second.up.sql": {Data: []byte("SELECT 2")},
		"migrations/20260101_000000_first.up.sql":  {Data: []byte("SELECT 1")},
		"migrations/README.md":                     {Data: []byte("notes")},
	}
	ms, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "first", ms[0].Name)
	assert.Equal(t, "second", ms[1].Name)
}

func TestLoadMigrations_BadName(t *testing.T) {
	fsys := fstest.MapFS{"migrations/init.up.sql": {Data: []byte("SELECT 1")}}
	_, err := LoadMigrations(fsys)
	assert.Error(t, err)
}

func TestPending(t *testing.T) {
	all := []Migration{{Version: "a"}, {Version: "b"}, {Version: "c"}}
	got := Pending(all, []string{"a", "c"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Version)
	assert.Empty(t, Pending(all, []string{"a", "b", "c"}))
}
