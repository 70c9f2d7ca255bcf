// Package files provides file system operations and archive discovery.
//
// Discovery finds netCDF archives and resolves the configured archive path,
// which may name either a file or a directory holding archives.
//
// Manager performs the write side: ensuring directories, copying files and
// atomically replacing an output with a freshly written temporary file.
// Relative paths are resolved against the configured application
// directories ("reports/", "cache/", "logs/" prefixes, otherwise the data
// directory).
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.DataDir)
//	archive, err := discovery.ResolveArchive(paths.ArchivePath)
//
//	manager := files.NewManager(paths)
//	tmp, err := manager.TempFile("cache/", "sumup-*.db")
//	// write tmp ...
//	err = manager.ReplaceFile(tmp, "cache/sumup.db")
package files
