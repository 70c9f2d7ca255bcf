package exporter

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"sumupcli/internal/config"
	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
	"sumupcli/pkg/contracts/domain"
)

// Export formats reported to run metrics
const (
	FormatCSV      = "csv"
	FormatWorkbook = "xlsx"
)

// Options selects the export artifacts
type Options struct {
	CSV      bool
	Workbook bool
}

// Exporter writes the metadata exports of a run
type Exporter struct {
	paths     *config.Paths
	csv       *CSVWriter
	workbook  *WorkbookExporter
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
}

// NewExporter creates an exporter writing below paths.ReportsDir, which is
// created on the first write. telemetry may be nil.
func NewExporter(paths *config.Paths, logger *slog.Logger, telemetry *infrastructure.Telemetry) *Exporter {
	manager := files.NewManager(paths)
	return &Exporter{
		paths:     paths,
		csv:       NewCSVWriter(manager, logger),
		workbook:  NewWorkbookExporter(manager, logger),
		telemetry: telemetry,
		logger:    infrastructure.WithComponent(logger, "exporter"),
	}
}

// ExportAll writes the selected artifacts and returns the written paths.
// Hemisphere CSV files are written concurrently; the first failure cancels
// the rest and is returned as a STORAGE error.
func (e *Exporter) ExportAll(ctx context.Context, datasets *domain.Datasets, opts Options) ([]string, error) {
	ctx, span := e.telemetry.StartSpan(ctx, "export")
	defer span.End()

	var (
		mu      sync.Mutex
		written []string
	)
	record := func(path, format string) {
		mu.Lock()
		written = append(written, path)
		mu.Unlock()
		e.telemetry.RecordExport(ctx, format)
	}

	g, gctx := errgroup.WithContext(ctx)

	if opts.CSV {
		for _, ds := range datasets.All() {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				path := e.paths.MetadataCSVPath(ds.Hemisphere)
				if err := e.WriteMetadataCSV(path, ds); err != nil {
					return apperrors.NewStorageError("failed to write "+path, err)
				}
				record(path, FormatCSV)
				return nil
			})
		}
	}

	if opts.Workbook {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := e.paths.WorkbookFile
			if err := e.workbook.Write(path, datasets.All()); err != nil {
				return apperrors.NewStorageError("failed to write "+path, err)
			}
			record(path, FormatWorkbook)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.telemetry.RecordFailure(ctx, err)
		return nil, err
	}

	slices.Sort(written)
	if len(written) > 0 {
		e.logger.InfoContext(ctx, "Export complete", slog.Any("files", written))
	}
	return written, nil
}

// WriteMetadataCSV writes the per-core metadata CSV of ds to path
func (e *Exporter) WriteMetadataCSV(path string, ds *domain.Dataset) error {
	return e.csv.WriteCSV(path, WriteOptions{
		Headers: MetadataHeaders,
		Records: MetadataRecords(ds),
	})
}
