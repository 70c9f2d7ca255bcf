package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sumupcli/pkg/contracts/domain"
)

// Coordinate repair constants
const (
	// SentinelLatitude marks "no location recorded"; anything below it is rewritten
	SentinelLatitude  = -100.0
	FallbackLatitude  = 75.0
	FallbackLongitude = -60.0
)

// DefaultDateCode replaces date codes that cannot be read as digits
const DefaultDateCode = "00010101"

// swappedCitations lists citations whose latitude and longitude are
// transposed at the source
var swappedCitations = map[int64]bool{
	180: true,
}

// Repair kinds reported in RepairStats and run metrics
const (
	RepairKindSwap     = "coordinate_swap"
	RepairKindSentinel = "coordinate_sentinel"
	RepairKindDate     = "date"
	RepairKindDefault  = "date_default"
)

// RepairStats counts the rows touched by each repair
type RepairStats struct {
	Rows           int
	SwappedRows    int
	SentinelRows   int
	DatesRepaired  int
	DatesDefaulted int
}

// ByKind returns the counts keyed by repair kind
func (s RepairStats) ByKind() map[string]int {
	return map[string]int{
		RepairKindSwap:     s.SwappedRows,
		RepairKindSentinel: s.SentinelRows,
		RepairKindDate:     s.DatesRepaired,
		RepairKindDefault:  s.DatesDefaulted,
	}
}

// RepairDateCode repairs a YYYYMMDD integer date code
func RepairDateCode(code int64) string {
	if code < 0 {
		return DefaultDateCode
	}
	return RepairDate(strconv.FormatInt(code, 10))
}

// RepairDate repairs a YYYYMMDD date string. Short codes are left-padded
// with zeros. Month 00 and 90 become 01; any other month above 12 resets the
// date to the first of January. Day 00 becomes 01, day 32 becomes 31 and
// any day past the end of the month is clamped to its last day. Input that
// is not 1 to 8 digits yields DefaultDateCode. The result always parses
// with domain.DateLayout.
func RepairDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > 8 || !isDigits(raw) {
		return DefaultDateCode
	}
	raw = strings.Repeat("0", 8-len(raw)) + raw

	year, _ := strconv.Atoi(raw[0:4])
	month, _ := strconv.Atoi(raw[4:6])
	day, _ := strconv.Atoi(raw[6:8])

	switch {
	case month == 0 || month == 90:
		month = 1
	case month > 12:
		month, day = 1, 1
	}

	switch day {
	case 0:
		day = 1
	case 32:
		day = 31
	}
	if last := daysIn(year, month); day > last {
		day = last
	}

	return fmt.Sprintf("%s%02d%02d", raw[0:4], month, day)
}

// RepairCoordinates rewrites the sentinel location to the fallback
// coordinate. It reports whether the row was changed.
func RepairCoordinates(lat, lon float64) (float64, float64, bool) {
	if lat < SentinelLatitude {
		return FallbackLatitude, FallbackLongitude, true
	}
	return lat, lon, false
}

// SwapCoordinates swaps latitude and longitude for citations known to store
// them transposed. It reports whether the row was changed.
func SwapCoordinates(citation int64, lat, lon float64) (float64, float64, bool) {
	if swappedCitations[citation] {
		return lon, lat, true
	}
	return lat, lon, false
}

// RepairMeasurements builds repaired measurements from the archive columns.
// Repairs run in a fixed order: citation swap, sentinel location, date.
func RepairMeasurements(archive *domain.Archive) ([]domain.Measurement, RepairStats) {
	n := archive.Len()
	stats := RepairStats{Rows: n}
	rows := make([]domain.Measurement, n)

	for i := 0; i < n; i++ {
		citation := archive.Citation[i]

		lat, lon, swapped := SwapCoordinates(citation, archive.Latitude[i], archive.Longitude[i])
		if swapped {
			stats.SwappedRows++
		}

		lat, lon, sentinel := RepairCoordinates(lat, lon)
		if sentinel {
			stats.SentinelRows++
		}

		code := archive.Date[i]
		repaired := RepairDateCode(code)
		switch {
		case repaired == DefaultDateCode && !validDigits(code):
			stats.DatesDefaulted++
		case repaired != fmt.Sprintf("%08d", code):
			stats.DatesRepaired++
		}
		date, _ := time.Parse(domain.DateLayout, repaired)

		rows[i] = domain.Measurement{
			Latitude:   lat,
			Longitude:  lon,
			Date:       date,
			Density:    archive.Density[i],
			StartDepth: archive.StartDepth[i],
			StopDepth:  archive.StopDepth[i],
			Midpoint:   archive.Midpoint[i],
			Elevation:  archive.Elevation[i],
			Error:      archive.Error[i],
			Citation:   citation,
		}
	}

	return rows, stats
}

func validDigits(code int64) bool {
	return code >= 0 && code <= 99999999
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
