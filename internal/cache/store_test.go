package cache

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/shared/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return NewStore(filepath.Join(t.TempDir(), "cache", "sumup.db"), nil, logger)
}

func TestLoadMissingCache(t *testing.T) {
	store := newTestStore(t)

	datasets, ok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, datasets)
	assert.False(t, store.Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testutil.SampleDatasets()
	want.Unassigned = 3
	// missing values must survive the round trip
	want.Antarctica.Rows[0].Error = math.NaN()
	want.Greenland.Rows[0].MaxDepth = math.NaN()
	want.Greenland.Cores[0].MaxDepth = math.NaN()

	require.NoError(t, store.Save(ctx, want, "sumup_density_2019.nc"))
	assert.True(t, store.Exists())

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveReplacesExistingCache(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testutil.SampleDatasets()
	require.NoError(t, store.Save(ctx, first, "a.nc"))

	second := testutil.SampleDatasets()
	second.Antarctica.Rows = second.Antarctica.Rows[:0]
	second.Antarctica.Cores = second.Antarctica.Cores[:0]
	require.NoError(t, store.Save(ctx, second, "b.nc"))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, got.Greenland.Len())
	assert.Equal(t, 0, got.Antarctica.Len())

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoadCorruptCache(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"garbage", []byte("this is not a sqlite database, just some bytes that are long enough to matter")},
		{"empty file", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
			require.NoError(t, os.WriteFile(store.Path(), tt.content, 0644))

			datasets, ok, err := store.Load(context.Background())
			require.Error(t, err)
			assert.False(t, ok)
			assert.Nil(t, datasets)
			assert.True(t, errors.Is(err, apperrors.ErrCache))
		})
	}
}

func TestLoadOldSchemaVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testutil.SampleDatasets(), "a.nc"))

	db, err := sql.Open("sqlite", store.Path())
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE cache_info SET value = '0' WHERE key = ?`, infoSchemaVersion)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, ok, err := store.Load(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, apperrors.ErrCache))
	assert.Contains(t, err.Error(), "schema version 0")
}

func TestHemisphereViews(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), testutil.SampleDatasets(), "a.nc"))

	db, err := sql.Open("sqlite", store.Path())
	require.NoError(t, err)
	defer db.Close()

	var coreID int
	var lat float64
	require.NoError(t, db.QueryRow(`SELECT core_id, latitude FROM greenland`).Scan(&coreID, &lat))
	assert.Equal(t, 1, coreID)
	assert.Equal(t, 72.5796, lat)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM antarctica`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInvalidate(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), testutil.SampleDatasets(), "a.nc"))
	require.NoError(t, store.Invalidate())
	assert.False(t, store.Exists())
	assert.NoError(t, store.Invalidate())
}
