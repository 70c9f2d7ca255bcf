// Package cache stores the hemisphere datasets in a SQLite file so later
// runs can skip the archive entirely.
//
// The cache holds three tables and two views:
//
//	measurements  every annotated row with its hemisphere, in dataset order
//	cores         per-core metadata
//	cache_info    schema version, creation time, source archive, unassigned count
//	greenland     view of the Greenland measurements
//	antarctica    view of the Antarctica measurements
//
// The views make the file directly queryable with the sqlite3 shell.
//
// Load reports a missing cache as (nil, false, nil) and an unreadable one as
// a CACHE error; callers rebuild in both cases. Save writes a new database
// next to the cache and renames it into place, so a failed save never
// damages an existing cache. Missing float values are stored as NULL.
package cache
