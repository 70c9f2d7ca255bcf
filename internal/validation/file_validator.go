package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/infrastructure"
)

// netCDF classic files start with "CDF"; netCDF-4 files are HDF5
var archiveSignatures = [][]byte{
	[]byte("CDF\x01"),
	[]byte("CDF\x02"),
	[]byte("CDF\x05"),
	[]byte("\x89HDF\r\n\x1a\n"),
}

// FileValidator checks input and output locations before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	return &FileValidator{
		logger: infrastructure.WithComponent(logger, "validation"),
	}
}

// ValidateFile checks that path is a readable regular file. A missing file
// is a NOT_FOUND error naming the path.
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist", slog.String("file", path))
		return apperrors.NewNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewAppValidationError(fmt.Sprintf("failed to stat file %s: %v", path, err))
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file", slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is not readable: %v", path, err))
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateArchive checks that path is a readable file carrying a netCDF or
// HDF5 signature
func (v *FileValidator) ValidateArchive(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		v.logger.Error("Archive does not exist", slog.String("archive", path))
		return apperrors.NewNotFoundError(fmt.Sprintf("archive %s", path), err)
	}
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewAppValidationError(fmt.Sprintf("archive %s is not readable: %v", path, err))
	}
	defer file.Close()

	header := make([]byte, 8)
	n, _ := file.Read(header)
	header = header[:n]

	for _, sig := range archiveSignatures {
		if len(header) >= len(sig) && string(header[:len(sig)]) == string(sig) {
			v.logger.Info("Archive validated", slog.String("archive", path))
			return nil
		}
	}

	v.logger.Error("File is not a netCDF archive", slog.String("archive", path))
	return apperrors.NewAppValidationError(fmt.Sprintf("%s is not a netCDF archive", path))
}

// ValidateOutputDirectory ensures dir exists or can be created and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}
