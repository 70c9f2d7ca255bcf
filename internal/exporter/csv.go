package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(manager *files.Manager, logger *slog.Logger) *CSVWriter {
	if manager == nil {
		manager = files.NewManager(nil)
	}
	return &CSVWriter{
		files:  manager,
		logger: infrastructure.WithComponent(logger, "csv"),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteCSV writes data to a temporary file next to path and then replaces
// path with it. A failed write leaves any existing file untouched.
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("full_path", path),
		slog.Int("record_count", len(options.Records)))

	tmp, err := w.files.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	if err := writeRecords(tmp, options); err != nil {
		w.files.DeleteFile(tmp)
		return err
	}

	if err := w.files.ReplaceFile(tmp, path); err != nil {
		w.files.DeleteFile(tmp)
		return err
	}
	return nil
}

func writeRecords(path string, options WriteOptions) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
