package exporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumupcli/internal/config"
	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/shared/testutil"
	"sumupcli/pkg/contracts/domain"
)

func TestExportAll(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantFiles []string
	}{
		{
			name:      "csv only",
			opts:      Options{CSV: true},
			wantFiles: []string{config.AntarcticaMetadataCSV, config.GreenlandMetadataCSV},
		},
		{
			name:      "csv and workbook",
			opts:      Options{CSV: true, Workbook: true},
			wantFiles: []string{config.AntarcticaMetadataCSV, config.GreenlandMetadataCSV, config.DefaultWorkbookFile},
		},
		{
			name:      "workbook only",
			opts:      Options{Workbook: true},
			wantFiles: []string{config.DefaultWorkbookFile},
		},
		{
			name: "nothing",
			opts: Options{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			paths := config.NewPaths(t.TempDir(), config.Default())
			exp := NewExporter(paths, logger, nil)

			written, err := exp.ExportAll(context.Background(), testutil.SampleDatasets(), tt.opts)
			require.NoError(t, err)

			var names []string
			for _, path := range written {
				assert.FileExists(t, path)
				assert.Equal(t, paths.ReportsDir, filepath.Dir(path))
				names = append(names, filepath.Base(path))
			}
			assert.ElementsMatch(t, tt.wantFiles, names)
		})
	}
}

func TestExportAllMetadataContent(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir(), config.Default())

	_, err := NewExporter(paths, logger, nil).ExportAll(context.Background(), testutil.SampleDatasets(), Options{CSV: true})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(paths.ReportsDir, config.GreenlandMetadataCSV))
	require.NoError(t, err)
	assert.Equal(t,
		"Latitude,Longitude,Citation,coreid,bot_depth,date\n72.5796,-38.4592,5,1,1.000,19950101\n",
		string(content))
}

func TestExportAllFailure(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	base := t.TempDir()
	paths := config.NewPaths(base, config.Default())

	// a regular file where the reports directory should be
	require.NoError(t, os.MkdirAll(filepath.Dir(paths.ReportsDir), 0755))
	require.NoError(t, os.WriteFile(paths.ReportsDir, []byte("x"), 0644))

	written, err := NewExporter(paths, logger, nil).ExportAll(context.Background(), testutil.SampleDatasets(), Options{CSV: true, Workbook: true})
	require.Error(t, err)
	assert.Nil(t, written)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))
}

func TestExportAllFailureLeavesCompleteFiles(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir(), config.Default())
	require.NoError(t, os.MkdirAll(paths.ReportsDir, 0755))

	greenland := paths.MetadataCSVPath(domain.HemisphereGreenland)
	old := "Latitude,Longitude,Citation,coreid,bot_depth,date\n1.0000,2.0000,3,4,5.000,19990101\n"
	require.NoError(t, os.WriteFile(greenland, []byte(old), 0644))

	// the Antarctica target cannot be replaced
	antarctica := paths.MetadataCSVPath(domain.HemisphereAntarctica)
	require.NoError(t, os.MkdirAll(filepath.Join(antarctica, "occupied"), 0755))

	_, err := NewExporter(paths, logger, nil).ExportAll(context.Background(), testutil.SampleDatasets(), Options{CSV: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStorage))

	content, err := os.ReadFile(greenland)
	require.NoError(t, err)
	assert.Contains(t, []string{
		old,
		"Latitude,Longitude,Citation,coreid,bot_depth,date\n72.5796,-38.4592,5,1,1.000,19950101\n",
	}, string(content), "the Greenland file must be either the old or the complete new file")

	entries, err := os.ReadDir(paths.ReportsDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{config.GreenlandMetadataCSV, config.AntarcticaMetadataCSV}, names)
}
