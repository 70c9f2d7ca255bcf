// Package config provides centralized configuration management for the
// SUMup processor. It loads configuration from multiple sources, validates
// it, and resolves every file system path the command touches.
//
// # Configuration Sources
//
// Configuration is layered in the following order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SUMUP_<SECTION>_<KEY>:
//
//	SUMUP_LOGGING_LEVEL=debug
//	SUMUP_PATHS_ARCHIVE_FILE=/data/sumup_density_2020.nc
//	SUMUP_CACHE_REBUILD=true
//	SUMUP_EXPORT_WORKBOOK=true
//	SUMUP_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/sumup.prom
//
// SUMUP_CONFIG_FILE points at an explicit YAML file; otherwise config.yaml
// and configs/config.yaml are searched.
//
// # Path Management
//
// Relative paths are resolved against the executable directory, never the
// current working directory:
//
//	cfg, _ := config.Load()
//	paths, _ := config.GetPaths(cfg)
//	csv := paths.MetadataCSVPath(domain.HemisphereGreenland)
package config
