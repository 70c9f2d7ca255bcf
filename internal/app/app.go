package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"sumupcli/internal/cache"
	"sumupcli/internal/config"
	"sumupcli/internal/dataprocessing"
	"sumupcli/internal/exporter"
	"sumupcli/internal/files"
	"sumupcli/internal/infrastructure"
	"sumupcli/internal/validation"
	"sumupcli/pkg/contracts/domain"
)

// Cache lookup results reported to run metrics
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheInvalid  = "invalid"
	CacheDisabled = "disabled"
)

// Application holds the components of a run
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry

	Store     *cache.Store
	Pipeline  *dataprocessing.Pipeline
	Exporter  *exporter.Exporter
	Validator *validation.FileValidator
	Discovery *files.Discovery

	// parseArchive reads the archive; replaced in tests
	parseArchive func(path string) (*domain.Archive, error)
}

// Result describes the outcome of Run
type Result struct {
	Datasets  *domain.Datasets
	FromCache bool
	// Source is the archive the datasets were built from; empty on a cache hit
	Source     string
	Exported   []string
	Statistics *dataprocessing.BuildStatistics
}

// NewApplication creates the run components. Nothing is written to disk
// until Run has a readable archive or a valid cache. telemetry may be nil.
func NewApplication(cfg *config.Config, paths *config.Paths, logger *slog.Logger, telemetry *infrastructure.Telemetry) (*Application, error) {
	if cfg == nil || paths == nil {
		return nil, fmt.Errorf("config and paths are required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	manager := files.NewManager(paths)

	return &Application{
		Config:       cfg,
		Paths:        paths,
		Logger:       infrastructure.WithComponent(logger, "app"),
		Telemetry:    telemetry,
		Store:        cache.NewStore(paths.CacheFile, manager, logger),
		Pipeline:     dataprocessing.NewPipeline(logger, telemetry),
		Exporter:     exporter.NewExporter(paths, logger, telemetry),
		Validator:    validation.NewFileValidator(logger),
		Discovery:    files.NewDiscovery(paths.DataDir),
		parseArchive: dataprocessing.ParseArchive,
	}, nil
}

// Run builds or loads the hemisphere datasets and writes the exports.
// writeCSV selects the per-core metadata CSV files.
func (a *Application) Run(ctx context.Context, writeCSV bool) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := a.Telemetry.StartSpan(ctx, "run", attribute.Bool("csv", writeCSV))
	defer span.End()

	opts := exporter.Options{CSV: writeCSV, Workbook: a.Config.Export.Workbook}
	result := &Result{}

	datasets, ok := a.LoadCached(ctx)
	if ok {
		if err := a.ValidateOutputs(opts, false); err != nil {
			return nil, a.fail(ctx, err)
		}
		result.Datasets = datasets
		result.FromCache = true
	} else {
		source, err := a.ResolveArchive(ctx)
		if err != nil {
			return nil, a.fail(ctx, err)
		}
		if err := a.ValidateOutputs(opts, a.Config.Cache.Enabled); err != nil {
			return nil, a.fail(ctx, err)
		}
		datasets, err := a.BuildFromArchive(ctx, source)
		if err != nil {
			return nil, a.fail(ctx, err)
		}
		stats := a.Pipeline.Statistics()
		result.Datasets = datasets
		result.Source = source
		result.Statistics = &stats
	}

	exported, err := a.Exporter.ExportAll(ctx, result.Datasets, opts)
	if err != nil {
		return nil, err
	}
	result.Exported = exported

	logger := a.Logger
	if otelTraceID := infrastructure.TraceIDFromContext(ctx); otelTraceID != "" {
		logger = logger.With(slog.String("otel_trace_id", otelTraceID))
	}
	logger.InfoContext(ctx, "Run complete",
		slog.Bool("from_cache", result.FromCache),
		slog.Int("greenland_rows", result.Datasets.Greenland.Len()),
		slog.Int("antarctica_rows", result.Datasets.Antarctica.Len()),
		slog.Int("exported_files", len(result.Exported)))

	return result, nil
}

func (a *Application) fail(ctx context.Context, err error) error {
	a.Telemetry.RecordFailure(ctx, err)
	return err
}

// LoadCached returns the cached datasets when the cache is enabled and
// holds a valid cache. An unreadable cache is logged and treated as absent.
func (a *Application) LoadCached(ctx context.Context) (*domain.Datasets, bool) {
	if !a.Config.Cache.Enabled || a.Config.Cache.Rebuild {
		a.Logger.DebugContext(ctx, "Cache skipped",
			slog.Bool("enabled", a.Config.Cache.Enabled),
			slog.Bool("rebuild", a.Config.Cache.Rebuild))
		a.Telemetry.RecordCacheLookup(ctx, CacheDisabled)
		return nil, false
	}

	datasets, ok, err := a.Store.Load(ctx)
	switch {
	case err != nil:
		infrastructure.WithError(a.Logger, err).WarnContext(ctx, "Cache unreadable, rebuilding from archive",
			slog.String("cache", a.Store.Path()))
		a.Telemetry.RecordCacheLookup(ctx, CacheInvalid)
		a.Telemetry.RecordFailure(ctx, err)
		return nil, false
	case !ok:
		a.Logger.InfoContext(ctx, "No cache found, building from archive",
			slog.String("cache", a.Store.Path()))
		a.Telemetry.RecordCacheLookup(ctx, CacheMiss)
		return nil, false
	default:
		a.Telemetry.RecordCacheLookup(ctx, CacheHit)
		return datasets, true
	}
}

// ResolveArchive finds the archive named by the configured path and checks
// that it is a netCDF file. A missing archive is a NOT_FOUND error naming
// the path.
func (a *Application) ResolveArchive(ctx context.Context) (string, error) {
	source, err := a.Discovery.ResolveArchive(a.Paths.ArchivePath)
	if err != nil {
		return "", err
	}
	if err := a.Validator.ValidateArchive(source); err != nil {
		return "", err
	}
	a.Logger.DebugContext(ctx, "Archive resolved", slog.String("archive", source))
	return source, nil
}

// ValidateOutputs creates and checks the directories the run will write to:
// the reports directory when anything is exported and, with withCache, the
// cache directory.
func (a *Application) ValidateOutputs(opts exporter.Options, withCache bool) error {
	var dirs []string
	if opts.CSV || opts.Workbook {
		dirs = append(dirs, a.Paths.ReportsDir)
	}
	if withCache {
		dirs = append(dirs, a.Paths.CacheDir)
	}
	for _, dir := range dirs {
		if err := a.Validator.ValidateOutputDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}

// BuildFromArchive parses the archive at source, runs the pipeline and
// saves the result to the cache when caching is enabled. A forced rebuild
// removes the old cache first so it is never served again. Failing to save
// the cache is logged and does not fail the build.
func (a *Application) BuildFromArchive(ctx context.Context, source string) (*domain.Datasets, error) {
	if a.Config.Cache.Enabled && a.Config.Cache.Rebuild && a.Store.Exists() {
		if err := a.Store.Invalidate(); err != nil {
			return nil, err
		}
		a.Logger.InfoContext(ctx, "Removed cache for rebuild", slog.String("cache", a.Store.Path()))
	}

	a.Logger.InfoContext(ctx, "Reading archive", slog.String("archive", source))
	archive, err := a.parseArchive(source)
	if err != nil {
		return nil, err
	}

	datasets, err := a.Pipeline.Build(ctx, archive)
	if err != nil {
		return nil, err
	}

	if a.Config.Cache.Enabled {
		if err := a.Store.Save(ctx, datasets, source); err != nil {
			infrastructure.WithError(a.Logger, err).WarnContext(ctx, "Failed to save cache",
				slog.String("cache", a.Store.Path()))
			a.Telemetry.RecordFailure(ctx, err)
		}
	}

	return datasets, nil
}

// Summary returns one line per hemisphere for display
func (r *Result) Summary() []string {
	lines := make([]string, 0, 3)
	for _, ds := range r.Datasets.All() {
		lines = append(lines, fmt.Sprintf("%s: %d measurements, %d cores",
			ds.Hemisphere.Title(), ds.Len(), len(ds.Cores)))
	}
	if r.Datasets.Unassigned > 0 {
		lines = append(lines, fmt.Sprintf("%s: %d measurements on the equator excluded",
			domain.HemisphereNone.Title(), r.Datasets.Unassigned))
	}
	return lines
}
