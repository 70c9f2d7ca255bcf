package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumupcli/internal/files"
	"sumupcli/internal/shared/testutil"
)

func TestCSVWriterWriteCSV(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	w := NewCSVWriter(files.NewManager(nil), logger)

	tests := []struct {
		name    string
		options WriteOptions
		want    string
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "x,y"}},
			},
			want: "a,b\n1,2\n3,\"x,y\"\n",
		},
		{
			name:    "records only",
			options: WriteOptions{Records: [][]string{{"1"}}},
			want:    "1\n",
		},
		{
			name:    "headers only",
			options: WriteOptions{Headers: []string{"h"}},
			want:    "h\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "reports")
			path := filepath.Join(dir, "out.csv")

			require.NoError(t, w.WriteCSV(path, tt.options))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files may remain")
		})
	}
}

func TestCSVWriterReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content\nmore,rows\n"), 0644))

	w := NewCSVWriter(nil, nil)
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"new"}}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestCSVWriterFailedReplaceKeepsDirectoryClean(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.csv")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0644))

	err := NewCSVWriter(nil, nil).WriteCSV(target, WriteOptions{Headers: []string{"h"}})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
	assert.FileExists(t, filepath.Join(target, "keep"))
}

func TestCSVWriterUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil, nil).WriteCSV(filepath.Join(blocker, "out.csv"), WriteOptions{})
	assert.Error(t, err)
}
