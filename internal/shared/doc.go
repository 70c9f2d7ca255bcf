// Package shared holds helpers used by more than one internal package.
//
// The testutil subpackage provides a capturing slog handler and archive and
// measurement fixtures for the pipeline, cache and exporter tests. It must
// not import any package under internal/ other than config and errors.
package shared
