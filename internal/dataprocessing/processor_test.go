package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumupcli/internal/shared/testutil"
)

func TestPipelineBuildScenario(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	pipeline := NewPipeline(logger, nil)

	datasets, err := pipeline.Build(context.Background(), testutil.ScenarioArchive())
	require.NoError(t, err)

	green := datasets.Greenland
	require.Equal(t, 2, green.Len())
	assert.Equal(t, "19950101", green.Rows[0].DateCode())
	assert.Equal(t, "19950115", green.Rows[1].DateCode())
	assert.NotEqual(t, green.Rows[0].CoreID, green.Rows[1].CoreID)
	assert.Equal(t, 1.0, green.Rows[0].MaxDepth)
	assert.Equal(t, 3.0, green.Rows[1].MaxDepth)
	assert.Len(t, green.Cores, 2)

	ant := datasets.Antarctica
	require.Equal(t, 1, ant.Len())
	assert.Equal(t, -80.0, ant.Rows[0].Latitude)
	assert.Equal(t, 4.0, ant.Rows[0].MaxDepth)
	assert.Equal(t, 0, datasets.Unassigned)

	stats := pipeline.Statistics()
	assert.Equal(t, 3, stats.Cores)
	assert.Equal(t, 2, stats.Repair.DatesRepaired)
	assert.Equal(t, 2, stats.GreenlandRows)
	assert.Equal(t, 1, stats.AntarcticaRows)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Repaired archive fields")
	testutil.AssertLogAttr(t, handler, "component", "pipeline")
	testutil.AssertLogAttr(t, handler, "dates_repaired", int64(2))
	testutil.AssertNoErrors(t, handler)
}

func TestPipelineBuildSentinelLandsInGreenland(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	archive := testutil.NewArchive(
		testutil.ArchiveRow{Lat: -9999, Lon: -9999, Citation: 42, Date: 19550000, StopDepth: 30, Midpoint: 29},
		testutil.ArchiveRow{Lat: -9999, Lon: -9999, Citation: 42, Date: 19550000, StopDepth: 60, Midpoint: 59},
	)

	datasets, err := NewPipeline(logger, nil).Build(context.Background(), archive)
	require.NoError(t, err)

	require.Equal(t, 2, datasets.Greenland.Len())
	assert.Equal(t, 0, datasets.Antarctica.Len())
	for _, row := range datasets.Greenland.Rows {
		assert.Equal(t, 75.0, row.Latitude)
		assert.Equal(t, -60.0, row.Longitude)
		assert.Equal(t, 1, row.CoreID)
		assert.Equal(t, 60.0, row.MaxDepth)
		assert.Equal(t, "19550101", row.DateCode())
	}
}

func TestPipelineBuildEmptyArchive(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	datasets, err := NewPipeline(logger, nil).Build(context.Background(), testutil.NewArchive())
	require.NoError(t, err)
	assert.Equal(t, 0, datasets.Greenland.Len())
	assert.Equal(t, 0, datasets.Antarctica.Len())
}

func TestPipelineBuildCancelled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(logger, nil).Build(ctx, testutil.ScenarioArchive())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
