package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sumupcli/internal/shared/testutil"
	"sumupcli/pkg/contracts/domain"
)

func measurement(lat, lon float64, citation int64, date string) domain.Measurement {
	return domain.Measurement{
		Latitude:  lat,
		Longitude: lon,
		Citation:  citation,
		Date:      testutil.Date(date),
	}
}

func TestResolveCores(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.Measurement
		want []int
	}{
		{
			name: "empty",
			rows: nil,
			want: []int{},
		},
		{
			name: "first appearance order",
			rows: []domain.Measurement{
				measurement(70, -40, 5, "19950101"),
				measurement(-80, 10, 9, "20010101"),
				measurement(70, -40, 5, "19950101"),
				measurement(71, -40, 5, "19950101"),
			},
			want: []int{1, 2, 1, 3},
		},
		{
			name: "each key field separates cores",
			rows: []domain.Measurement{
				measurement(70, -40, 5, "19950101"),
				measurement(70.0001, -40, 5, "19950101"),
				measurement(70, -40.0001, 5, "19950101"),
				measurement(70, -40, 6, "19950101"),
				measurement(70, -40, 5, "19950102"),
			},
			want: []int{1, 2, 3, 4, 5},
		},
		{
			name: "negative zero equals zero",
			rows: []domain.Measurement{
				measurement(0, math.Copysign(0, -1), 1, "19950101"),
				measurement(math.Copysign(0, -1), 0, 1, "19950101"),
			},
			want: []int{1, 1},
		},
		{
			name: "missing coordinates group together",
			rows: []domain.Measurement{
				measurement(math.NaN(), 10, 1, "19950101"),
				measurement(-math.NaN(), 10, 1, "19950101"),
				measurement(math.NaN(), 11, 1, "19950101"),
			},
			want: []int{1, 1, 2},
		},
		{
			name: "delimiter collisions stay distinct",
			rows: []domain.Measurement{
				measurement(1, 11, 1, "19950101"),
				measurement(11, 1, 1, "19950101"),
			},
			want: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCores(tt.rows)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCoresIsPartition(t *testing.T) {
	rows := []domain.Measurement{
		measurement(70, -40, 5, "19950101"),
		measurement(70, -40, 5, "19950115"),
		measurement(-80, 10, 9, "20010101"),
		measurement(70, -40, 5, "19950101"),
		measurement(-80, 10, 9, "20010101"),
	}

	ids := ResolveCores(rows)
	for i := range rows {
		for j := range rows {
			sameKey := keyOf(rows[i]) == keyOf(rows[j])
			assert.Equal(t, sameKey, ids[i] == ids[j], "rows %d and %d", i, j)
		}
	}

	assert.Equal(t, ids, ResolveCores(rows), "resolution is not deterministic")
}
