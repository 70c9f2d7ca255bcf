package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sumupcli/pkg/contracts/domain"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	CacheDir      string
	LogsDir       string

	// ArchivePath is either the archive file or a directory holding archives
	ArchivePath  string
	CacheFile    string
	WorkbookFile string
	LogFile      string
}

// GetPaths resolves the configured paths relative to the executable location
func GetPaths(cfg *Config) (*Paths, error) {
	exeDir, err := executableDir()
	if err != nil {
		return nil, err
	}
	return NewPaths(exeDir, cfg), nil
}

// NewPaths resolves the configured paths against baseDir
func NewPaths(baseDir string, cfg *Config) *Paths {
	if cfg == nil {
		cfg = Default()
	}

	dataDir := resolve(baseDir, cfg.Paths.DataDir)
	reportsDir := resolve(baseDir, cfg.Paths.ReportsDir)
	cacheDir := resolve(baseDir, cfg.Paths.CacheDir)
	logsDir := resolve(baseDir, cfg.Paths.LogsDir)

	logFile := cfg.Logging.FilePath
	if logFile != "" {
		logFile = resolve(baseDir, logFile)
	}

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		CacheDir:      cacheDir,
		LogsDir:       logsDir,
		ArchivePath:   resolve(dataDir, cfg.Paths.ArchiveFile),
		CacheFile:     resolve(cacheDir, cfg.Cache.File),
		WorkbookFile:  resolve(reportsDir, cfg.Export.WorkbookFile),
		LogFile:       logFile,
	}
}

// executableDir returns the directory containing the running binary
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return filepath.Dir(exe), nil
}

// resolve joins path onto base unless it is already absolute
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetCachePath returns the path for a cache file
func (p *Paths) GetCachePath(filename string) string {
	return filepath.Join(p.CacheDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// MetadataCSVPath returns the per-core metadata CSV for a hemisphere
func (p *Paths) MetadataCSVPath(h domain.Hemisphere) string {
	switch h {
	case domain.HemisphereGreenland:
		return p.GetReportPath(GreenlandMetadataCSV)
	case domain.HemisphereAntarctica:
		return p.GetReportPath(AntarcticaMetadataCSV)
	default:
		return p.GetReportPath(fmt.Sprintf("sumup_%s.csv", h))
	}
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("cache", p.CacheDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("archive", p.ArchivePath),
			slog.Bool("archive_exists", FileExists(p.ArchivePath)),
			slog.String("cache", p.CacheFile),
			slog.Bool("cache_exists", FileExists(p.CacheFile)),
			slog.String("workbook", p.WorkbookFile),
		))
}
