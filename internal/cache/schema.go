package cache

// SchemaVersion is bumped whenever the table layout changes. Older caches
// are rejected and rebuilt.
const SchemaVersion = 1

const schema = `
CREATE TABLE measurements (
	id          INTEGER PRIMARY KEY,
	hemisphere  TEXT    NOT NULL,
	core_id     INTEGER NOT NULL,
	latitude    REAL,
	longitude   REAL,
	date        TEXT    NOT NULL,
	citation    INTEGER NOT NULL,
	density     REAL,
	start_depth REAL,
	stop_depth  REAL,
	midpoint    REAL,
	elevation   REAL,
	error       REAL,
	max_depth   REAL
);
CREATE INDEX idx_measurements_core ON measurements(core_id);
CREATE INDEX idx_measurements_hemisphere ON measurements(hemisphere, id);

CREATE TABLE cores (
	core_id           INTEGER PRIMARY KEY,
	hemisphere        TEXT    NOT NULL,
	latitude          REAL,
	longitude         REAL,
	citation          INTEGER NOT NULL,
	date              TEXT    NOT NULL,
	max_depth         REAL,
	measurement_count INTEGER NOT NULL
);

CREATE TABLE cache_info (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE VIEW greenland AS
	SELECT core_id, latitude, longitude, date, citation, density, start_depth,
	       stop_depth, midpoint, elevation, error, max_depth
	FROM measurements WHERE hemisphere = 'greenland' ORDER BY id;

CREATE VIEW antarctica AS
	SELECT core_id, latitude, longitude, date, citation, density, start_depth,
	       stop_depth, midpoint, elevation, error, max_depth
	FROM measurements WHERE hemisphere = 'antarctica' ORDER BY id;
`

const (
	infoSchemaVersion = "schema_version"
	infoCreatedAt     = "created_at"
	infoSource        = "source"
	infoUnassigned    = "unassigned"
)

const insertMeasurement = `
INSERT INTO measurements (id, hemisphere, core_id, latitude, longitude, date, citation,
	density, start_depth, stop_depth, midpoint, elevation, error, max_depth)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertCore = `
INSERT INTO cores (core_id, hemisphere, latitude, longitude, citation, date, max_depth, measurement_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const selectMeasurements = `
SELECT hemisphere, core_id, latitude, longitude, date, citation, density, start_depth,
	stop_depth, midpoint, elevation, error, max_depth
FROM measurements ORDER BY id`

const selectCores = `
SELECT core_id, hemisphere, latitude, longitude, citation, date, max_depth, measurement_count
FROM cores ORDER BY core_id`
