package config

// Application constants
const (
	AppName    = "SUMup Density Processor"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (SUMUP_LOGGING_LEVEL, ...)
	EnvPrefix = "SUMUP"

	// Directories (relative to the executable unless absolute)
	DefaultDataDir    = "data"
	DefaultReportsDir = "data/reports"
	DefaultCacheDir   = "data/cache"
	DefaultLogsDir    = "logs"

	// Files
	DefaultArchiveFile  = "sumup_density_2019.nc"
	DefaultCacheFile    = "sumup.db"
	DefaultWorkbookFile = "sumup_cores.xlsx"
	DefaultLogFile      = "logs/sumup.log"

	// Metadata CSV names, one per hemisphere
	GreenlandMetadataCSV  = "sumup_greenland.csv"
	AntarcticaMetadataCSV = "sumup_antarctica.csv"

	// ArchiveExtension is used when the archive path names a directory
	ArchiveExtension = ".nc"
)
