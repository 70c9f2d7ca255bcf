package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sumupcli/internal/config"
	"sumupcli/internal/infrastructure"
)

// Manager provides file management operations
type Manager struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewManager creates a new file manager. With nil paths, relative paths are
// used as given.
func NewManager(paths *config.Paths) *Manager {
	return &Manager{
		paths:  paths,
		logger: infrastructure.WithComponent(infrastructure.GetLogger(), "files"),
	}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	_, err := os.Stat(fullPath)
	exists := err == nil

	m.logger.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.resolvePath(path)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		m.logger.Debug("Creating directory", slog.String("full_path", fullPath))
		return os.MkdirAll(fullPath, 0755)
	}
	return nil
}

// TempFile creates an empty temporary file in dir and returns its path.
// Use it with ReplaceFile so the final rename stays on one filesystem.
func (m *Manager) TempFile(dir, pattern string) (string, error) {
	fullDir := m.resolvePath(dir)
	if err := m.EnsureDirectory(fullDir); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(fullDir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return name, nil
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	if err := m.EnsureDirectory(filepath.Dir(dstPath)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return dstFile.Sync()
}

// ReplaceFile moves src over dst. Readers of dst see either the old or the
// new content. When a rename is impossible the content is copied to a
// temporary file next to dst and renamed from there.
func (m *Manager) ReplaceFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	m.logger.Debug("Replacing file",
		slog.String("src_path", srcPath),
		slog.String("dst_path", dstPath))

	if err := m.EnsureDirectory(filepath.Dir(dstPath)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(srcPath, dstPath); err == nil {
		return nil
	}

	staged, err := m.TempFile(filepath.Dir(dstPath), "."+filepath.Base(dstPath)+".*")
	if err != nil {
		return err
	}
	if err := m.CopyFile(srcPath, staged); err != nil {
		os.Remove(staged)
		return err
	}
	if err := os.Rename(staged, dstPath); err != nil {
		os.Remove(staged)
		return fmt.Errorf("failed to replace %s: %w", dstPath, err)
	}

	return os.Remove(srcPath)
}

// DeleteFile deletes a file. A missing file is not an error.
func (m *Manager) DeleteFile(path string) error {
	fullPath := m.resolvePath(path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetFileSize returns the size of a file in bytes
func (m *Manager) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(m.resolvePath(path))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// resolvePath resolves a path relative to the appropriate base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) || m.paths == nil {
		return path
	}

	switch {
	case strings.HasPrefix(path, "reports/"):
		return m.paths.GetReportPath(strings.TrimPrefix(path, "reports/"))
	case strings.HasPrefix(path, "cache/"):
		return m.paths.GetCachePath(strings.TrimPrefix(path, "cache/"))
	case strings.HasPrefix(path, "logs/"):
		return m.paths.GetLogPath(strings.TrimPrefix(path, "logs/"))
	default:
		return filepath.Join(m.paths.DataDir, path)
	}
}
