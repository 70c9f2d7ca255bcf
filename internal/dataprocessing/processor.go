package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"sumupcli/internal/infrastructure"
	"sumupcli/pkg/contracts/domain"
)

// Pipeline runs repair, core resolution, aggregation and partitioning over
// an archive snapshot
type Pipeline struct {
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	stats     BuildStatistics
}

// NewPipeline creates a pipeline. telemetry may be nil.
func NewPipeline(logger *slog.Logger, telemetry *infrastructure.Telemetry) *Pipeline {
	return &Pipeline{
		logger:    infrastructure.WithComponent(logger, "pipeline"),
		telemetry: telemetry,
	}
}

// Statistics returns the statistics of the last Build
func (p *Pipeline) Statistics() BuildStatistics {
	return p.stats
}

// Build turns the raw archive columns into the two hemisphere datasets
func (p *Pipeline) Build(ctx context.Context, archive *domain.Archive) (*domain.Datasets, error) {
	ctx, span := p.telemetry.StartSpan(ctx, "pipeline.build",
		attribute.String("archive", archive.Source),
		attribute.Int("rows", archive.Len()))
	defer span.End()

	p.stats = BuildStatistics{}
	p.telemetry.RecordRowsRead(ctx, archive.Len())

	var rows []domain.Measurement
	if err := p.stage(ctx, StageRepair, func() error {
		rows, p.stats.Repair = RepairMeasurements(archive)
		return nil
	}); err != nil {
		return nil, err
	}
	for kind, n := range p.stats.Repair.ByKind() {
		p.telemetry.RecordRepairs(ctx, kind, n)
	}
	p.logger.InfoContext(ctx, "Repaired archive fields",
		slog.Int("rows", p.stats.Repair.Rows),
		slog.Int("swapped", p.stats.Repair.SwappedRows),
		slog.Int("sentinel", p.stats.Repair.SentinelRows),
		slog.Int("dates_repaired", p.stats.Repair.DatesRepaired),
		slog.Int("dates_defaulted", p.stats.Repair.DatesDefaulted))

	var ids []int
	if err := p.stage(ctx, StageResolve, func() error {
		ids = ResolveCores(rows)
		return nil
	}); err != nil {
		return nil, err
	}

	var cores map[int]domain.CoreMetadata
	if err := p.stage(ctx, StageAggregate, func() error {
		cores = AggregateCores(rows, ids)
		return nil
	}); err != nil {
		return nil, err
	}
	p.stats.Cores = len(cores)
	p.telemetry.RecordCores(ctx, len(cores))

	var joined []domain.CoreMeasurement
	if err := p.stage(ctx, StageJoin, func() error {
		joined = JoinCores(rows, ids, cores)
		return nil
	}); err != nil {
		return nil, err
	}

	var datasets *domain.Datasets
	if err := p.stage(ctx, StagePartition, func() error {
		datasets = Partition(joined, cores)
		return nil
	}); err != nil {
		return nil, err
	}

	p.stats.GreenlandRows = datasets.Greenland.Len()
	p.stats.AntarcticaRows = datasets.Antarctica.Len()
	p.stats.UnassignedRows = datasets.Unassigned
	p.stats.GreenlandCores = len(datasets.Greenland.Cores)
	p.stats.AntarcticaCores = len(datasets.Antarctica.Cores)

	for _, ds := range datasets.All() {
		p.telemetry.RecordHemisphereRows(ctx, string(ds.Hemisphere), ds.Len())
	}
	p.telemetry.RecordHemisphereRows(ctx, string(domain.HemisphereNone), datasets.Unassigned)

	p.logger.InfoContext(ctx, "Resolved cores",
		slog.Int("cores", p.stats.Cores),
		slog.Int("greenland_rows", p.stats.GreenlandRows),
		slog.Int("greenland_cores", p.stats.GreenlandCores),
		slog.Int("antarctica_rows", p.stats.AntarcticaRows),
		slog.Int("antarctica_cores", p.stats.AntarcticaCores),
		slog.Int("unassigned_rows", p.stats.UnassignedRows))

	return datasets, nil
}

// stage runs fn inside a span and records its duration. It stops early when
// ctx is already done.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := p.telemetry.StartSpan(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	p.telemetry.RecordStage(ctx, name, elapsed)

	if err != nil {
		p.telemetry.RecordFailure(ctx, err)
		return err
	}

	p.logger.DebugContext(ctx, "Stage complete",
		slog.String("stage", name),
		slog.Duration("duration", elapsed))
	return nil
}
