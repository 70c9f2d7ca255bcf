// Package dataprocessing turns the raw SUMup density archive into the two
// hemisphere datasets.
//
// # Stages
//
// The pipeline runs five stages over one in-memory snapshot of the archive:
//
//  1. ParseArchive reads the named netCDF variables into parallel columns
//  2. RepairMeasurements fixes swapped coordinates, the sentinel location
//     and malformed date codes
//  3. ResolveCores assigns a core id to every row from its repaired
//     (latitude, longitude, citation, date) key
//  4. AggregateCores computes the per-core metadata and JoinCores annotates
//     every row with it
//  5. Partition splits the annotated rows by latitude sign
//
// Pipeline.Build runs stages 2 to 5 with one trace span per stage.
//
// # Usage
//
//	archive, err := dataprocessing.ParseArchive("data/sumup_density_2019.nc")
//	if err != nil {
//	    return err
//	}
//	pipeline := dataprocessing.NewPipeline(logger, telemetry)
//	datasets, err := pipeline.Build(ctx, archive)
//
// # Repairs
//
// Repairs never fail. Date codes that match no known defect are normalized
// to a valid calendar date rather than rejected, which is lossy. RepairStats
// reports how many rows each repair touched.
package dataprocessing
