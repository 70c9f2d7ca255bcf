package dataprocessing

// Pipeline stage names used for spans, metrics and logs
const (
	StageRepair    = "repair"
	StageResolve   = "resolve"
	StageAggregate = "aggregate"
	StageJoin      = "join"
	StagePartition = "partition"
)

// BuildStatistics summarizes one pipeline run
type BuildStatistics struct {
	Repair          RepairStats
	Cores           int
	GreenlandRows   int
	AntarcticaRows  int
	UnassignedRows  int
	GreenlandCores  int
	AntarcticaCores int
}
