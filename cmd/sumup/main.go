// Command sumup builds the Greenland and Antarctica firn-core density
// datasets from the SUMup archive, caches them and writes the per-core
// metadata CSV files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"sumupcli/internal/app"
	"sumupcli/internal/config"
	apperrors "sumupcli/internal/errors"
	"sumupcli/internal/infrastructure"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sumup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	writeCSV := fs.Bool("csv", true, "write the per-core metadata CSV file for each hemisphere")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", apperrors.NewConfigError("failed to load configuration", err))
		return 1
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", apperrors.NewConfigError("failed to resolve paths", err))
		return 1
	}
	if paths.LogFile != "" {
		cfg.Logging.FilePath = paths.LogFile
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v, logging to stderr\n", err)
		logger = infrastructure.NewLogger(stderr, cfg.Logging.Level)
	}
	defer infrastructure.CloseLogFile()

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer func() {
		if err := telemetry.WriteMetricsFile(); err != nil {
			logger.Warn("Failed to write metrics file", slog.String("error", err.Error()))
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shut down telemetry", slog.String("error", err.Error()))
		}
	}()

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Starting "+config.AppName,
		slog.String("version", config.AppVersion),
		slog.Bool("csv", *writeCSV))
	paths.LogPathResolution(logger)

	application, err := app.NewApplication(cfg, paths, logger, telemetry)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	result, err := application.Run(ctx, *writeCSV)
	if err != nil {
		logger.ErrorContext(ctx, "Run failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	for _, line := range result.Summary() {
		fmt.Fprintln(stdout, line)
	}
	for _, path := range result.Exported {
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}
	return 0
}
