package domain

import (
	"time"
)

// Hemisphere identifies which polar dataset a core belongs to
type Hemisphere string

const (
	HemisphereGreenland  Hemisphere = "greenland"
	HemisphereAntarctica Hemisphere = "antarctica"
	// HemisphereNone is assigned to cores sitting exactly on the equator
	HemisphereNone Hemisphere = "none"
)

// HemisphereForLatitude maps a latitude to its partition. Zero is claimed
// by neither hemisphere.
func HemisphereForLatitude(lat float64) Hemisphere {
	switch {
	case lat > 0:
		return HemisphereGreenland
	case lat < 0:
		return HemisphereAntarctica
	default:
		return HemisphereNone
	}
}

// Title returns the display name used for sheets and log messages
func (h Hemisphere) Title() string {
	switch h {
	case HemisphereGreenland:
		return "Greenland"
	case HemisphereAntarctica:
		return "Antarctica"
	default:
		return "Unassigned"
	}
}

// CoreMetadata is the per-core summary derived from its member measurements
type CoreMetadata struct {
	CoreID           int        `json:"core_id" db:"core_id"`
	Latitude         float64    `json:"latitude" db:"latitude"`
	Longitude        float64    `json:"longitude" db:"longitude"`
	Citation         int64      `json:"citation" db:"citation"`
	Date             time.Time  `json:"date" db:"date"`
	MaxDepth         float64    `json:"max_depth" db:"max_depth"`
	MeasurementCount int        `json:"measurement_count" db:"measurement_count"`
	Hemisphere       Hemisphere `json:"hemisphere" db:"hemisphere"`
}
