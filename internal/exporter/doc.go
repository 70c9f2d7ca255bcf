// Package exporter writes the per-core metadata of the hemisphere datasets.
//
// CSVWriter is the low-level CSV writer. MetadataRecords renders one row per
// core in the column layout geographic tools import directly:
//
//	Latitude,Longitude,Citation,coreid,bot_depth,date
//
// WorkbookExporter writes the same rows to an XLSX workbook with one sheet
// per hemisphere. Exporter ties both together and writes the hemisphere
// files concurrently.
//
// Example usage:
//
//	exp := exporter.NewExporter(paths, logger, telemetry)
//	written, err := exp.ExportAll(ctx, datasets, exporter.Options{CSV: true})
package exporter
