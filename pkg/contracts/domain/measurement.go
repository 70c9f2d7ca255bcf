package domain

import (
	"time"
)

// DateLayout is the compact YYYYMMDD layout used by the archive date codes
const DateLayout = "20060102"

// Measurement is one depth-interval density record from the archive.
// Date holds the repaired calendar date; the archive has no row identifier.
type Measurement struct {
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Date       time.Time `json:"date" db:"date"`
	Density    float64   `json:"density" db:"density"`
	StartDepth float64   `json:"start_depth" db:"start_depth"`
	StopDepth  float64   `json:"stop_depth" db:"stop_depth"`
	Midpoint   float64   `json:"midpoint" db:"midpoint"`
	Elevation  float64   `json:"elevation" db:"elevation"`
	Error      float64   `json:"error" db:"error"`
	Citation   int64     `json:"citation" db:"citation"`
}

// DateCode returns the measurement date in YYYYMMDD form
func (m Measurement) DateCode() string {
	return m.Date.Format(DateLayout)
}

// Hemisphere returns the partition the measurement belongs to
func (m Measurement) Hemisphere() Hemisphere {
	return HemisphereForLatitude(m.Latitude)
}

// CoreMeasurement is a Measurement annotated with its resolved core
type CoreMeasurement struct {
	Measurement
	CoreID   int     `json:"core_id" db:"core_id"`
	MaxDepth float64 `json:"max_depth" db:"max_depth"`
}
