package schema

// CoreReportTable represents the 'core.report' table
type CoreReportTable struct {
	Table      string
	ID         string
	ReporterID string
	PhotoID    string
	Reason     string
	Status     string
	ResolvedBy string
	CreatedAt  string
	ResolvedAt string
}

// CoreReport is the schema definition for core.report
var CoreReport = CoreReportTable{
	Table:      "core.report",
	ID:         "id",
	ReporterID: "reporterid",
	PhotoID:    "photoid",
	Reason:     "reason",
	Status:     "status",
	ResolvedBy: "resolvedby",
	CreatedAt:  "createdat",
	ResolvedAt: "resolvedat",
}

