package dataprocessing

import (
	"math"

	"sumupcli/pkg/contracts/domain"
)

// AggregateCores computes the metadata of every core from its member rows.
// Key fields come from the first member row. MaxDepth is the largest stop
// or midpoint depth over all members; NaN depths are ignored and a core
// without any finite depth gets NaN.
func AggregateCores(rows []domain.Measurement, ids []int) map[int]domain.CoreMetadata {
	cores := make(map[int]domain.CoreMetadata)

	for i, row := range rows {
		id := ids[i]
		meta, ok := cores[id]
		if !ok {
			meta = domain.CoreMetadata{
				CoreID:     id,
				Latitude:   row.Latitude,
				Longitude:  row.Longitude,
				Citation:   row.Citation,
				Date:       row.Date,
				MaxDepth:   math.NaN(),
				Hemisphere: row.Hemisphere(),
			}
		}

		meta.MeasurementCount++
		meta.MaxDepth = maxDepth(meta.MaxDepth, row.StopDepth, row.Midpoint)
		cores[id] = meta
	}

	return cores
}

// maxDepth returns the largest non-NaN value, or NaN when all are NaN
func maxDepth(values ...float64) float64 {
	result := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(result) || v > result {
			result = v
		}
	}
	return result
}

// JoinCores annotates every row with its core id and the core's max depth
func JoinCores(rows []domain.Measurement, ids []int, cores map[int]domain.CoreMetadata) []domain.CoreMeasurement {
	joined := make([]domain.CoreMeasurement, len(rows))
	for i, row := range rows {
		joined[i] = domain.CoreMeasurement{
			Measurement: row,
			CoreID:      ids[i],
			MaxDepth:    cores[ids[i]].MaxDepth,
		}
	}
	return joined
}
