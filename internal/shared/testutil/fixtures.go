package testutil

import (
	"time"

	"sumupcli/pkg/contracts/domain"
)

// ArchiveRow is one raw archive row for building test archives
type ArchiveRow struct {
	Lat, Lon   float64
	Date       int64
	Citation   int64
	Density    float64
	StartDepth float64
	StopDepth  float64
	Midpoint   float64
	Elevation  float64
	Error      float64
}

// NewArchive builds an archive whose columns hold rows in order
func NewArchive(rows ...ArchiveRow) *domain.Archive {
	a := &domain.Archive{Source: "fixture.nc"}
	for _, r := range rows {
		a.Latitude = append(a.Latitude, r.Lat)
		a.Longitude = append(a.Longitude, r.Lon)
		a.Date = append(a.Date, r.Date)
		a.Citation = append(a.Citation, r.Citation)
		a.Density = append(a.Density, r.Density)
		a.StartDepth = append(a.StartDepth, r.StartDepth)
		a.StopDepth = append(a.StopDepth, r.StopDepth)
		a.Midpoint = append(a.Midpoint, r.Midpoint)
		a.Elevation = append(a.Elevation, r.Elevation)
		a.Error = append(a.Error, r.Error)
	}
	return a
}

// ScenarioRows returns the three rows used by the end-to-end tests: two
// Greenland rows whose dates differ only after repair and one Antarctica row.
func ScenarioRows() []ArchiveRow {
	return []ArchiveRow{
		{Lat: 70, Lon: -40, Citation: 5, Date: 19950000, Density: 350, StartDepth: 0, StopDepth: 1, Midpoint: 0.5, Elevation: 2000},
		{Lat: 70, Lon: -40, Citation: 5, Date: 19950015, Density: 420, StartDepth: 1, StopDepth: 3, Midpoint: 2, Elevation: 2000},
		{Lat: -80, Lon: 10, Citation: 9, Date: 20010101, Density: 500, StartDepth: 2, StopDepth: 4, Midpoint: 3, Elevation: 3000},
	}
}

// ScenarioArchive returns ScenarioRows as an in-memory archive
func ScenarioArchive() *domain.Archive {
	return NewArchive(ScenarioRows()...)
}

// Date parses a YYYYMMDD string and panics on error
func Date(code string) time.Time {
	t, err := time.Parse(domain.DateLayout, code)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleDatasets returns small hemisphere datasets with one core each
func SampleDatasets() *domain.Datasets {
	green := domain.CoreMeasurement{
		Measurement: domain.Measurement{
			Latitude: 72.5796, Longitude: -38.4592, Date: Date("19950101"),
			Density: 350.5, StartDepth: 0, StopDepth: 1, Midpoint: 0.5,
			Elevation: 3200, Error: 5, Citation: 5,
		},
		CoreID:   1,
		MaxDepth: 1,
	}
	ant := domain.CoreMeasurement{
		Measurement: domain.Measurement{
			Latitude: -75.1, Longitude: 123.35, Date: Date("20010115"),
			Density: 412.25, StartDepth: 2, StopDepth: 4.125, Midpoint: 3.0625,
			Elevation: 3233, Error: 0, Citation: 9,
		},
		CoreID:   2,
		MaxDepth: 4.125,
	}

	return &domain.Datasets{
		Greenland: &domain.Dataset{
			Hemisphere: domain.HemisphereGreenland,
			Rows:       []domain.CoreMeasurement{green},
			Cores: []domain.CoreMetadata{{
				CoreID: 1, Latitude: green.Latitude, Longitude: green.Longitude,
				Citation: 5, Date: green.Date, MaxDepth: 1, MeasurementCount: 1,
				Hemisphere: domain.HemisphereGreenland,
			}},
		},
		Antarctica: &domain.Dataset{
			Hemisphere: domain.HemisphereAntarctica,
			Rows:       []domain.CoreMeasurement{ant},
			Cores: []domain.CoreMetadata{{
				CoreID: 2, Latitude: ant.Latitude, Longitude: ant.Longitude,
				Citation: 9, Date: ant.Date, MaxDepth: 4.125, MeasurementCount: 1,
				Hemisphere: domain.HemisphereAntarctica,
			}},
		},
	}
}
