package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"sumupcli/internal/config"
	apperrors "sumupcli/internal/errors"
)

const (
	ServiceName = "sumup-density"
	MeterName   = "sumupcli"
)

// Trace exporters accepted by TelemetryConfig.TraceExporter
const (
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)

// Telemetry holds the tracer and meter used by one run. The meter reports
// into a private Prometheus registry that is written to a textfile at the
// end of the run. A nil *Telemetry is valid and records nothing.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *PipelineMetrics

	metricsFile string
	logger      *slog.Logger
}

// PipelineMetrics holds the run counters and stage timings
type PipelineMetrics struct {
	RowsRead       metric.Int64Counter
	Repairs        metric.Int64Counter
	CoresResolved  metric.Int64Counter
	HemisphereRows metric.Int64Counter
	CacheLookups   metric.Int64Counter
	ExportFiles    metric.Int64Counter
	Errors         metric.Int64Counter
	StageDuration  metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics for a run
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg.TraceExporter, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

func (t *Telemetry) initializeTracing(exporterName string, res *resource.Resource) error {
	switch exporterName {
	case TraceExporterStdout:
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}

		t.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.Tracer = t.TracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	case TraceExporterNone, "":
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", exporterName)
	}
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.Registry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(t.Registry),
		prometheus.WithoutScopeInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	metrics, err := CreatePipelineMetrics(t.Meter)
	if err != nil {
		return err
	}
	t.Metrics = metrics
	return nil
}

// CreatePipelineMetrics creates the run instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"sumup_rows_read_total",
		metric.WithDescription("Measurement rows read from the archive"),
	)
	if err != nil {
		return nil, err
	}

	repairs, err := meter.Int64Counter(
		"sumup_repairs_total",
		metric.WithDescription("Field repairs applied, by kind"),
	)
	if err != nil {
		return nil, err
	}

	coresResolved, err := meter.Int64Counter(
		"sumup_cores_resolved_total",
		metric.WithDescription("Distinct cores resolved"),
	)
	if err != nil {
		return nil, err
	}

	hemisphereRows, err := meter.Int64Counter(
		"sumup_hemisphere_rows_total",
		metric.WithDescription("Measurement rows assigned to each hemisphere"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"sumup_cache_lookups_total",
		metric.WithDescription("Cache lookups, by result"),
	)
	if err != nil {
		return nil, err
	}

	exportFiles, err := meter.Int64Counter(
		"sumup_export_files_total",
		metric.WithDescription("Export files written, by format"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"sumup_errors_total",
		metric.WithDescription("Errors, by type"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"sumup_stage_duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:       rowsRead,
		Repairs:        repairs,
		CoresResolved:  coresResolved,
		HemisphereRows: hemisphereRows,
		CacheLookups:   cacheLookups,
		ExportFiles:    exportFiles,
		Errors:         errorsTotal,
		StageDuration:  stageDuration,
	}, nil
}

// StartSpan starts a span named name. It returns a non-recording span when
// tracing is disabled.
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil || t.Tracer == nil {
		return noop.NewTracerProvider().Tracer(MeterName).Start(ctx, name)
	}
	return t.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (t *Telemetry) metrics() *PipelineMetrics {
	if t == nil {
		return nil
	}
	return t.Metrics
}

// RecordRowsRead counts rows read from the archive
func (t *Telemetry) RecordRowsRead(ctx context.Context, n int) {
	if m := t.metrics(); m != nil {
		m.RowsRead.Add(ctx, int64(n))
	}
}

// RecordRepairs counts n repairs of the given kind
func (t *Telemetry) RecordRepairs(ctx context.Context, kind string, n int) {
	if m := t.metrics(); m != nil && n > 0 {
		m.Repairs.Add(ctx, int64(n), metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// RecordCores counts resolved cores
func (t *Telemetry) RecordCores(ctx context.Context, n int) {
	if m := t.metrics(); m != nil {
		m.CoresResolved.Add(ctx, int64(n))
	}
}

// RecordHemisphereRows counts rows assigned to hemisphere
func (t *Telemetry) RecordHemisphereRows(ctx context.Context, hemisphere string, n int) {
	if m := t.metrics(); m != nil {
		m.HemisphereRows.Add(ctx, int64(n), metric.WithAttributes(attribute.String("hemisphere", hemisphere)))
	}
}

// RecordCacheLookup counts a cache lookup; result is hit, miss or invalid
func (t *Telemetry) RecordCacheLookup(ctx context.Context, result string) {
	if m := t.metrics(); m != nil {
		m.CacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

// RecordExport counts a written export file
func (t *Telemetry) RecordExport(ctx context.Context, format string) {
	if m := t.metrics(); m != nil {
		m.ExportFiles.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
	}
}

// RecordStage records how long a pipeline stage took
func (t *Telemetry) RecordStage(ctx context.Context, stage string, d time.Duration) {
	if m := t.metrics(); m != nil {
		m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
	}
}

// RecordFailure counts err by its application error type and marks the
// current span as failed.
func (t *Telemetry) RecordFailure(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if m := t.metrics(); m != nil {
		errType := "UNKNOWN"
		if typ, ok := apperrors.TypeOf(err); ok {
			errType = string(typ)
		}
		m.Errors.Add(ctx, 1, metric.WithAttributes(attribute.String("type", errType)))
	}
	RecordError(ctx, err)
}

// WriteMetricsFile writes the current metric values to the configured
// textfile. It does nothing when no file is configured.
func (t *Telemetry) WriteMetricsFile() error {
	if t == nil || t.metricsFile == "" || t.Registry == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}

	if err := promclient.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	t.logger.Debug("Metrics written", slog.String("file", t.metricsFile))
	return nil
}

// Shutdown flushes and stops the tracer and meter providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var errs []error

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}
	return nil
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from ctx
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
