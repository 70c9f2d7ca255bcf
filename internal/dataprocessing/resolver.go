package dataprocessing

import (
	"math"

	"sumupcli/pkg/contracts/domain"
)

// coreKey is the exact identity of a core. Coordinates are compared by
// their bit pattern after folding -0 into 0 and every NaN into one NaN, so
// equal keys always compare equal.
type coreKey struct {
	lat      uint64
	lon      uint64
	citation int64
	date     string
}

var canonicalNaN = math.Float64bits(math.NaN())

func coordinateBits(v float64) uint64 {
	switch {
	case math.IsNaN(v):
		return canonicalNaN
	case v == 0:
		return 0
	default:
		return math.Float64bits(v)
	}
}

func keyOf(m domain.Measurement) coreKey {
	return coreKey{
		lat:      coordinateBits(m.Latitude),
		lon:      coordinateBits(m.Longitude),
		citation: m.Citation,
		date:     m.DateCode(),
	}
}

// ResolveCores assigns a core id to every row. Two rows share an id exactly
// when their latitude, longitude, citation and date are equal. Ids start at
// 1 and follow the order in which each key first appears.
func ResolveCores(rows []domain.Measurement) []int {
	ids := make([]int, len(rows))
	index := make(map[coreKey]int)

	for i, row := range rows {
		key := keyOf(row)
		id, ok := index[key]
		if !ok {
			id = len(index) + 1
			index[key] = id
		}
		ids[i] = id
	}

	return ids
}
