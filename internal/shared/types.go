package shared

// Asynq task types
const (
	TypeExportRender    = "export:render"
	TypeExportReapStale = "export:reap_stale"
)

// Asynq queue names
const (
	QueueExport      = "export"
	QueueMaintenance = "maintenance"
)
