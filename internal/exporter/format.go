package exporter

import (
	"math"
	"strconv"
)

// formatCoordinate formats a latitude or longitude with 4 decimal places
func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// formatDepth formats a depth in meters with 3 decimal places. A core
// without any finite depth gets an empty cell.
func formatDepth(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// formatInt formats an integer value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
