package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sumupcli/internal/config"
	apperrors "sumupcli/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) fullPath(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// FindArchives finds all netCDF archives in dir, oldest first
func (d *Discovery) FindArchives(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, config.ArchiveExtension)
}

func (d *Discovery) findByExtension(dir, ext string) ([]FileInfo, error) {
	fullPath := d.fullPath(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// ResolveArchive returns the archive file named by path. When path is a
// directory the most recently modified archive inside it is used. A missing
// file or an empty directory is a NOT_FOUND error naming the path.
func (d *Discovery) ResolveArchive(path string) (string, error) {
	fullPath := d.fullPath(path)

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("archive %s", fullPath), err)
		}
		return "", apperrors.NewParsingError(fmt.Sprintf("cannot access archive %s", fullPath), err)
	}
	if !info.IsDir() {
		return fullPath, nil
	}

	archives, err := d.FindArchives(fullPath)
	if err != nil {
		return "", apperrors.NewParsingError(fmt.Sprintf("cannot list archives in %s", fullPath), err)
	}

	latest, ok := GetLatestFile(archives)
	if !ok {
		return "", apperrors.NewNotFoundError(
			fmt.Sprintf("archive (*%s) in directory %s", config.ArchiveExtension, fullPath), nil)
	}
	return latest.Path, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
