package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
	"sumupcli/pkg/contracts/domain"
)

// Store reads and writes the dataset cache file
type Store struct {
	path   string
	files  *files.Manager
	logger *slog.Logger
}

// Info describes a saved cache
type Info struct {
	SchemaVersion int
	CreatedAt     time.Time
	Source        string
}

// NewStore creates a store for the cache file at path
func NewStore(path string, manager *files.Manager, logger *slog.Logger) *Store {
	if manager == nil {
		manager = files.NewManager(nil)
	}
	return &Store{
		path:   path,
		files:  manager,
		logger: infrastructure.WithComponent(logger, "cache"),
	}
}

// Path returns the cache file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a cache file is present
func (s *Store) Exists() bool {
	return s.files.FileExists(s.path)
}

// Load reads the cached datasets. It returns (nil, false, nil) when no cache
// file exists and a CACHE error when the file cannot be read as a cache of
// the current schema version.
func (s *Store) Load(ctx context.Context) (*domain.Datasets, bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewCacheError(fmt.Sprintf("cannot access cache %s", s.path), err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, false, apperrors.NewCacheError(fmt.Sprintf("failed to open cache %s", s.path), err)
	}
	defer db.Close()

	info, unassigned, err := readInfo(ctx, db)
	if err != nil {
		return nil, false, apperrors.NewCacheError(fmt.Sprintf("cache %s is unreadable", s.path), err)
	}
	if info.SchemaVersion != SchemaVersion {
		return nil, false, apperrors.NewCacheError(
			fmt.Sprintf("cache %s has schema version %d, want %d", s.path, info.SchemaVersion, SchemaVersion), nil)
	}

	datasets := &domain.Datasets{
		Greenland:  &domain.Dataset{Hemisphere: domain.HemisphereGreenland, Rows: []domain.CoreMeasurement{}, Cores: []domain.CoreMetadata{}},
		Antarctica: &domain.Dataset{Hemisphere: domain.HemisphereAntarctica, Rows: []domain.CoreMeasurement{}, Cores: []domain.CoreMetadata{}},
		Unassigned: unassigned,
	}

	if err := readMeasurements(ctx, db, datasets); err != nil {
		return nil, false, apperrors.NewCacheError(fmt.Sprintf("cache %s has unreadable measurements", s.path), err)
	}
	if err := readCores(ctx, db, datasets); err != nil {
		return nil, false, apperrors.NewCacheError(fmt.Sprintf("cache %s has unreadable cores", s.path), err)
	}

	s.logger.InfoContext(ctx, "Loaded datasets from cache",
		slog.String("path", s.path),
		slog.Time("created_at", info.CreatedAt),
		slog.String("source", info.Source),
		slog.Int("greenland_rows", datasets.Greenland.Len()),
		slog.Int("antarctica_rows", datasets.Antarctica.Len()))

	return datasets, true, nil
}

// Save writes datasets to the cache, replacing any previous cache. source
// names the archive the datasets were built from.
func (s *Store) Save(ctx context.Context, datasets *domain.Datasets, source string) error {
	tmp, err := s.files.TempFile(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return apperrors.NewStorageError("failed to create cache file", err)
	}

	if err := write(ctx, tmp, datasets, source); err != nil {
		s.files.DeleteFile(tmp)
		return apperrors.NewStorageError(fmt.Sprintf("failed to write cache %s", s.path), err)
	}

	if err := s.files.ReplaceFile(tmp, s.path); err != nil {
		s.files.DeleteFile(tmp)
		return apperrors.NewStorageError(fmt.Sprintf("failed to replace cache %s", s.path), err)
	}

	size, _ := s.files.GetFileSize(s.path)
	s.logger.InfoContext(ctx, "Saved datasets to cache",
		slog.String("path", s.path),
		slog.Int64("size_bytes", size))
	return nil
}

// Invalidate removes the cache file
func (s *Store) Invalidate() error {
	if err := s.files.DeleteFile(s.path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to remove cache %s", s.path), err)
	}
	return nil
}

func write(ctx context.Context, path string, datasets *domain.Datasets, source string) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := writeInfo(ctx, tx, datasets.Unassigned, source); err != nil {
		return err
	}
	if err := writeMeasurements(ctx, tx, datasets); err != nil {
		return err
	}
	if err := writeCores(ctx, tx, datasets); err != nil {
		return err
	}

	return tx.Commit()
}

func writeInfo(ctx context.Context, tx *sql.Tx, unassigned int, source string) error {
	values := map[string]string{
		infoSchemaVersion: strconv.Itoa(SchemaVersion),
		infoCreatedAt:     time.Now().UTC().Format(time.RFC3339),
		infoSource:        source,
		infoUnassigned:    strconv.Itoa(unassigned),
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `INSERT INTO cache_info (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to write cache info: %w", err)
		}
	}
	return nil
}

func writeMeasurements(ctx context.Context, tx *sql.Tx, datasets *domain.Datasets) error {
	stmt, err := tx.PrepareContext(ctx, insertMeasurement)
	if err != nil {
		return err
	}
	defer stmt.Close()

	id := 0
	for _, ds := range datasets.All() {
		for _, row := range ds.Rows {
			id++
			_, err := stmt.ExecContext(ctx,
				id, string(ds.Hemisphere), row.CoreID,
				nullable(row.Latitude), nullable(row.Longitude),
				row.DateCode(), row.Citation,
				nullable(row.Density), nullable(row.StartDepth), nullable(row.StopDepth),
				nullable(row.Midpoint), nullable(row.Elevation), nullable(row.Error),
				nullable(row.MaxDepth))
			if err != nil {
				return fmt.Errorf("failed to write measurement %d: %w", id, err)
			}
		}
	}
	return nil
}

func writeCores(ctx context.Context, tx *sql.Tx, datasets *domain.Datasets) error {
	stmt, err := tx.PrepareContext(ctx, insertCore)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ds := range datasets.All() {
		for _, core := range ds.Cores {
			_, err := stmt.ExecContext(ctx,
				core.CoreID, string(core.Hemisphere),
				nullable(core.Latitude), nullable(core.Longitude),
				core.Citation, core.Date.Format(domain.DateLayout),
				nullable(core.MaxDepth), core.MeasurementCount)
			if err != nil {
				return fmt.Errorf("failed to write core %d: %w", core.CoreID, err)
			}
		}
	}
	return nil
}

func readInfo(ctx context.Context, db *sql.DB) (Info, int, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM cache_info`)
	if err != nil {
		return Info{}, 0, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Info{}, 0, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return Info{}, 0, err
	}

	var info Info
	if info.SchemaVersion, err = strconv.Atoi(values[infoSchemaVersion]); err != nil {
		return Info{}, 0, fmt.Errorf("invalid schema version %q", values[infoSchemaVersion])
	}
	info.CreatedAt, _ = time.Parse(time.RFC3339, values[infoCreatedAt])
	info.Source = values[infoSource]

	unassigned, err := strconv.Atoi(values[infoUnassigned])
	if err != nil {
		return Info{}, 0, fmt.Errorf("invalid unassigned count %q", values[infoUnassigned])
	}
	return info, unassigned, nil
}

func readMeasurements(ctx context.Context, db *sql.DB, datasets *domain.Datasets) error {
	rows, err := db.QueryContext(ctx, selectMeasurements)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hemisphere, date                                     string
			row                                                  domain.CoreMeasurement
			lat, lon, density, start, stop, mid, elev, e, maxDep sql.NullFloat64
		)
		if err := rows.Scan(&hemisphere, &row.CoreID, &lat, &lon, &date, &row.Citation,
			&density, &start, &stop, &mid, &elev, &e, &maxDep); err != nil {
			return err
		}

		if row.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		row.Latitude, row.Longitude = value(lat), value(lon)
		row.Density, row.StartDepth, row.StopDepth = value(density), value(start), value(stop)
		row.Midpoint, row.Elevation, row.Error = value(mid), value(elev), value(e)
		row.MaxDepth = value(maxDep)

		ds, err := datasetFor(datasets, hemisphere)
		if err != nil {
			return err
		}
		ds.Rows = append(ds.Rows, row)
	}
	return rows.Err()
}

func readCores(ctx context.Context, db *sql.DB, datasets *domain.Datasets) error {
	rows, err := db.QueryContext(ctx, selectCores)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hemisphere, date   string
			core               domain.CoreMetadata
			lat, lon, maxDepth sql.NullFloat64
		)
		if err := rows.Scan(&core.CoreID, &hemisphere, &lat, &lon, &core.Citation, &date,
			&maxDepth, &core.MeasurementCount); err != nil {
			return err
		}

		if core.Date, err = time.Parse(domain.DateLayout, date); err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		core.Hemisphere = domain.Hemisphere(hemisphere)
		core.Latitude, core.Longitude, core.MaxDepth = value(lat), value(lon), value(maxDepth)

		ds, err := datasetFor(datasets, hemisphere)
		if err != nil {
			return err
		}
		ds.Cores = append(ds.Cores, core)
	}
	return rows.Err()
}

func datasetFor(datasets *domain.Datasets, hemisphere string) (*domain.Dataset, error) {
	switch domain.Hemisphere(hemisphere) {
	case domain.HemisphereGreenland:
		return datasets.Greenland, nil
	case domain.HemisphereAntarctica:
		return datasets.Antarctica, nil
	default:
		return nil, fmt.Errorf("unknown hemisphere %q", hemisphere)
	}
}

// nullable maps NaN to NULL; SQLite has no NaN
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func value(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
