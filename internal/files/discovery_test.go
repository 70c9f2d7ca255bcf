package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "sumupcli/internal/errors"
)

func writeFile(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestFindArchives(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFile(t, filepath.Join(dir, "sumup_density_2019.nc"), now.Add(-time.Hour))
	writeFile(t, filepath.Join(dir, "sumup_density_2020.NC"), now)
	writeFile(t, filepath.Join(dir, "notes.txt"), now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.nc"), 0755))

	archives, err := NewDiscovery(dir).FindArchives(".")
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Equal(t, "sumup_density_2019.nc", archives[0].Name)
	assert.Equal(t, "sumup_density_2020.NC", archives[1].Name)

	_, err = NewDiscovery(dir).FindArchives("missing")
	assert.Error(t, err)
}

func TestResolveArchive(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	older := filepath.Join(dir, "archives", "a.nc")
	newer := filepath.Join(dir, "archives", "b.nc")
	writeFile(t, older, now.Add(-2*time.Hour))
	writeFile(t, newer, now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "empty"), 0755))

	d := NewDiscovery(dir)

	got, err := d.ResolveArchive(older)
	require.NoError(t, err)
	assert.Equal(t, older, got)

	got, err = d.ResolveArchive("archives")
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	_, err = d.ResolveArchive("missing.nc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), filepath.Join(dir, "missing.nc"))

	_, err = d.ResolveArchive("empty")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestGetLatestFile(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)

	now := time.Now()
	latest, ok := GetLatestFile([]FileInfo{
		{Name: "a", ModTime: now.Add(-time.Minute)},
		{Name: "b", ModTime: now},
		{Name: "c", ModTime: now.Add(-time.Hour)},
	})
	require.True(t, ok)
	assert.Equal(t, "b", latest.Name)
}
