package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
	"sumupcli/pkg/contracts/domain"
)

// WorkbookExporter writes the core metadata of both hemispheres to one
// XLSX workbook, one sheet per hemisphere
type WorkbookExporter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter(manager *files.Manager, logger *slog.Logger) *WorkbookExporter {
	if manager == nil {
		manager = files.NewManager(nil)
	}
	return &WorkbookExporter{
		files:  manager,
		logger: infrastructure.WithComponent(logger, "workbook"),
	}
}

// Write saves the workbook to path, replacing any existing file only once
// the new workbook is complete
func (w *WorkbookExporter) Write(path string, datasets []*domain.Dataset) error {
	if len(datasets) == 0 {
		return fmt.Errorf("no datasets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	for i, ds := range datasets {
		sheet := ds.Hemisphere.Title()
		if i == 0 {
			if err := f.SetSheetName(first, sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, ds); err != nil {
			return err
		}
	}

	// SaveAs checks the extension, so the temporary name keeps it
	tmp, err := w.files.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := f.SaveAs(tmp); err != nil {
		w.files.DeleteFile(tmp)
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := w.files.ReplaceFile(tmp, path); err != nil {
		w.files.DeleteFile(tmp)
		return err
	}

	w.logger.Info("Wrote workbook",
		slog.String("path", path),
		slog.Int("sheets", len(datasets)))
	return nil
}

func writeSheet(f *excelize.File, sheet string, ds *domain.Dataset) error {
	header := make([]interface{}, len(MetadataHeaders))
	for i, h := range MetadataHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of sheet %s: %w", sheet, err)
	}

	for i, core := range ds.Cores {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			cellFloat(core.Latitude),
			cellFloat(core.Longitude),
			core.Citation,
			core.CoreID,
			cellFloat(core.MaxDepth),
			core.Date.Format(domain.DateLayout),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write core %d to sheet %s: %w", core.CoreID, sheet, err)
		}
	}

	return f.SetColWidth(sheet, "A", "F", 12)
}

// cellFloat leaves missing values as empty cells
func cellFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
