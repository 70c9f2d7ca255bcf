package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumupcli/internal/cache"
	"sumupcli/internal/config"
	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
	"sumupcli/internal/shared/testutil"
)

// setupEnv points every configured directory at a temp dir and returns the
// resolved paths
func setupEnv(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()

	t.Setenv("SUMUP_CONFIG_FILE", "")
	t.Setenv("SUMUP_LOGGING_OUTPUT", "console")
	t.Setenv("SUMUP_LOGGING_LEVEL", "error")
	t.Setenv("SUMUP_PATHS_DATA_DIR", filepath.Join(root, "data"))
	t.Setenv("SUMUP_PATHS_REPORTS_DIR", filepath.Join(root, "reports"))
	t.Setenv("SUMUP_PATHS_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("SUMUP_PATHS_LOGS_DIR", filepath.Join(root, "logs"))
	t.Setenv("SUMUP_TELEMETRY_METRICS_FILE", filepath.Join(root, "metrics", "sumup.prom"))

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(root, "data")
	cfg.Paths.ReportsDir = filepath.Join(root, "reports")
	cfg.Paths.CacheDir = filepath.Join(root, "cache")
	cfg.Paths.LogsDir = filepath.Join(root, "logs")
	return config.NewPaths(root, cfg)
}

// seedCache stores the sample datasets so a run is served from the cache
func seedCache(t *testing.T, paths *config.Paths) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	store := cache.NewStore(paths.CacheFile, files.NewManager(paths), logger)
	require.NoError(t, store.Save(context.Background(), testutil.SampleDatasets(), "seed.nc"))
}

func TestRun_MissingArchive(t *testing.T) {
	paths := setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error:")
	assert.Contains(t, stderr.String(), paths.ArchivePath)
	assert.Contains(t, stderr.String(), "not found")
	assert.Empty(t, stdout.String())
	assert.NoDirExists(t, paths.ReportsDir)
	assert.NoDirExists(t, paths.CacheDir)
}

func TestRun_FromCache(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantCSV bool
	}{
		{name: "default writes csv", args: nil, wantCSV: true},
		{name: "explicit csv", args: []string{"-csv"}, wantCSV: true},
		{name: "csv disabled", args: []string{"-csv=false"}, wantCSV: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := setupEnv(t)
			seedCache(t, paths)
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stdout, &stderr)

			require.Equal(t, 0, code, stderr.String())
			assert.Contains(t, stdout.String(), "Greenland: 1 measurements, 1 cores")
			assert.Contains(t, stdout.String(), "Antarctica: 1 measurements, 1 cores")

			greenland := filepath.Join(paths.ReportsDir, config.GreenlandMetadataCSV)
			antarctica := filepath.Join(paths.ReportsDir, config.AntarcticaMetadataCSV)
			if tt.wantCSV {
				assert.FileExists(t, greenland)
				assert.FileExists(t, antarctica)
				assert.Contains(t, stdout.String(), "wrote "+greenland)
			} else {
				assert.NoFileExists(t, greenland)
				assert.NoFileExists(t, antarctica)
			}
		})
	}
}

func TestRun_WritesMetricsFile(t *testing.T) {
	paths := setupEnv(t)
	seedCache(t, paths)
	var stdout, stderr bytes.Buffer

	require.Equal(t, 0, run(context.Background(), []string{"-csv=false"}, &stdout, &stderr))

	metrics := filepath.Join(filepath.Dir(paths.DataDir), "metrics", "sumup.prom")
	assert.FileExists(t, metrics)
}

func TestRun_BadFlag(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-unknown"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "-unknown")
}

func TestRun_Help(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run(context.Background(), []string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-csv")
}

func TestRun_InvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("SUMUP_LOGGING_LEVEL", "verbose")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "[CONFIG]")
	assert.Contains(t, stderr.String(), "Level")
}

func TestRun_UnopenableLogFileFallsBackToStderr(t *testing.T) {
	paths := setupEnv(t)
	seedCache(t, paths)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	t.Setenv("SUMUP_LOGGING_OUTPUT", "file")
	t.Setenv("SUMUP_LOGGING_FILE_PATH", filepath.Join(blocker, "sumup.log"))
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-csv=false"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "warning:")
	assert.Contains(t, stdout.String(), "Greenland: 1 measurements, 1 cores")
}
