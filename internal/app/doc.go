// Package app wires the components of a run together.
//
// # Run Flow
//
// Application.Run performs one "build or load" operation:
//
//  1. LoadCached returns the cached datasets when a valid cache exists
//  2. otherwise ResolveArchive finds and checks the archive and
//     BuildFromArchive parses it, runs the pipeline and saves the cache
//  3. the metadata CSV files and the optional workbook are exported
//
// Output directories are created by ValidateOutputs only once the input is
// known to be usable, so a run that fails on a missing archive writes
// nothing.
//
// The cache decision is explicit: a missing, disabled or unreadable cache
// leads to a rebuild and is never an error. A missing archive is fatal and
// the error names the path.
//
// # Error Handling
//
// All errors are returned to the caller. The app does not call os.Exit(),
// leaving the exit code to the command.
package app
