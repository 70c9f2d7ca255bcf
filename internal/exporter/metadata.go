package exporter

import (
	"sumupcli/pkg/contracts/domain"
)

// MetadataHeaders is the header row of the per-core metadata export
var MetadataHeaders = []string{"Latitude", "Longitude", "Citation", "coreid", "bot_depth", "date"}

// MetadataRecords renders one record per core of ds, ordered by core id
func MetadataRecords(ds *domain.Dataset) [][]string {
	if ds == nil {
		return [][]string{}
	}

	records := make([][]string, 0, len(ds.Cores))
	for _, core := range ds.Cores {
		records = append(records, []string{
			formatCoordinate(core.Latitude),
			formatCoordinate(core.Longitude),
			formatInt(core.Citation),
			formatInt(int64(core.CoreID)),
			formatDepth(core.MaxDepth),
			core.Date.Format(domain.DateLayout),
		})
	}
	return records
}
