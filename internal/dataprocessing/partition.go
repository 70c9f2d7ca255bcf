package dataprocessing

import (
	"cmp"
	"slices"

	"sumupcli/pkg/contracts/domain"
)

// Partition splits annotated rows into the Greenland (latitude > 0) and
// Antarctica (latitude < 0) datasets. Rows on the equator, or with no
// latitude, go to neither and are counted as unassigned. Rows in each
// dataset are ordered by core id, latitude, longitude, date and citation,
// keeping input order for ties. Cores are ordered by id.
func Partition(rows []domain.CoreMeasurement, cores map[int]domain.CoreMetadata) *domain.Datasets {
	datasets := &domain.Datasets{
		Greenland:  &domain.Dataset{Hemisphere: domain.HemisphereGreenland, Rows: []domain.CoreMeasurement{}, Cores: []domain.CoreMetadata{}},
		Antarctica: &domain.Dataset{Hemisphere: domain.HemisphereAntarctica, Rows: []domain.CoreMeasurement{}, Cores: []domain.CoreMetadata{}},
	}

	for _, row := range rows {
		switch row.Hemisphere() {
		case domain.HemisphereGreenland:
			datasets.Greenland.Rows = append(datasets.Greenland.Rows, row)
		case domain.HemisphereAntarctica:
			datasets.Antarctica.Rows = append(datasets.Antarctica.Rows, row)
		default:
			datasets.Unassigned++
		}
	}

	for _, ds := range datasets.All() {
		slices.SortStableFunc(ds.Rows, compareRows)
		ds.Cores = coresOf(ds.Rows, cores)
	}

	return datasets
}

func compareRows(a, b domain.CoreMeasurement) int {
	return cmp.Or(
		cmp.Compare(a.CoreID, b.CoreID),
		cmp.Compare(a.Latitude, b.Latitude),
		cmp.Compare(a.Longitude, b.Longitude),
		a.Date.Compare(b.Date),
		cmp.Compare(a.Citation, b.Citation),
	)
}

// coresOf returns the metadata of the cores present in sorted rows
func coresOf(sorted []domain.CoreMeasurement, cores map[int]domain.CoreMetadata) []domain.CoreMetadata {
	result := []domain.CoreMetadata{}
	for i, row := range sorted {
		if i > 0 && sorted[i-1].CoreID == row.CoreID {
			continue
		}
		result = append(result, cores[row.CoreID])
	}
	return result
}
