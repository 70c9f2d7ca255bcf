package domain

// Archive variable names as stored in the SUMup density file
const (
	VarLatitude   = "Latitude"
	VarLongitude  = "Longitude"
	VarDate       = "Date"
	VarDensity    = "Density"
	VarStartDepth = "Start_Depth"
	VarStopDepth  = "Stop_Depth"
	VarMidpoint   = "Midpoint"
	VarElevation  = "Elevation"
	VarError      = "Error"
	VarCitation   = "Citation"
)

// ArchiveVariables lists every variable the pipeline reads, in load order
var ArchiveVariables = []string{
	VarLatitude, VarLongitude, VarDate, VarDensity, VarStartDepth,
	VarStopDepth, VarMidpoint, VarElevation, VarError, VarCitation,
}

// Archive holds the raw parallel columns read from the archive file.
// Dates are the unrepaired YYYYMMDD integer codes.
type Archive struct {
	Source     string
	Latitude   []float64
	Longitude  []float64
	Date       []int64
	Density    []float64
	StartDepth []float64
	StopDepth  []float64
	Midpoint   []float64
	Elevation  []float64
	Error      []float64
	Citation   []int64
}

// Len returns the number of rows in the archive
func (a *Archive) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Latitude)
}

// Lengths returns the length of every column keyed by variable name
func (a *Archive) Lengths() map[string]int {
	return map[string]int{
		VarLatitude:   len(a.Latitude),
		VarLongitude:  len(a.Longitude),
		VarDate:       len(a.Date),
		VarDensity:    len(a.Density),
		VarStartDepth: len(a.StartDepth),
		VarStopDepth:  len(a.StopDepth),
		VarMidpoint:   len(a.Midpoint),
		VarElevation:  len(a.Elevation),
		VarError:      len(a.Error),
		VarCitation:   len(a.Citation),
	}
}
