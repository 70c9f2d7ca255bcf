package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumupcli/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	return config.NewPaths(t.TempDir(), config.Default())
}

func TestManagerResolvePath(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	tests := []struct {
		path string
		want string
	}{
		{"reports/a.csv", filepath.Join(paths.ReportsDir, "a.csv")},
		{"cache/sumup.db", filepath.Join(paths.CacheDir, "sumup.db")},
		{"logs/run.log", filepath.Join(paths.LogsDir, "run.log")},
		{"sumup.nc", filepath.Join(paths.DataDir, "sumup.nc")},
		{"/abs/file", "/abs/file"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.resolvePath(tt.path))
		})
	}

	assert.Equal(t, "relative/x", NewManager(nil).resolvePath("relative/x"))
}

func TestManagerFileOperations(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	require.NoError(t, m.EnsureDirectory("reports/"))
	assert.DirExists(t, paths.ReportsDir)
	require.NoError(t, m.EnsureDirectory("reports/"), "second call must be a no-op")

	src := filepath.Join(paths.ReportsDir, "src.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))
	assert.True(t, m.FileExists("reports/src.txt"))
	assert.False(t, m.FileExists("reports/missing.txt"))

	require.NoError(t, m.CopyFile("reports/src.txt", "reports/nested/copy.txt"))
	content, err := os.ReadFile(filepath.Join(paths.ReportsDir, "nested", "copy.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	size, err := m.GetFileSize("reports/src.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	require.NoError(t, m.DeleteFile("reports/src.txt"))
	assert.False(t, m.FileExists("reports/src.txt"))
	assert.NoError(t, m.DeleteFile("reports/src.txt"), "deleting a missing file is not an error")
}

func TestManagerReplaceFile(t *testing.T) {
	paths := testPaths(t)
	m := NewManager(paths)

	dst := filepath.Join(paths.CacheDir, "sumup.db")
	require.NoError(t, os.MkdirAll(paths.CacheDir, 0755))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0644))

	tmp, err := m.TempFile("cache/", "sumup-*.db")
	require.NoError(t, err)
	assert.Equal(t, paths.CacheDir, filepath.Dir(tmp))
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0644))

	require.NoError(t, m.ReplaceFile(tmp, "cache/sumup.db"))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
	assert.NoFileExists(t, tmp)
}

func TestManagerReplaceFileMissingSource(t *testing.T) {
	m := NewManager(testPaths(t))
	assert.Error(t, m.ReplaceFile("cache/missing.db", "cache/sumup.db"))
}
