package runs

import "time"

// Status represents the lifecycle of a generation run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one timeline generation attempt persisted in SQLite. The ledger is
// append-only history: a re-run of the same identifier creates a new row.
type Run struct {
	ID             string
	Project        string
	Identifier     string
	ScriptType     string
	Status         Status
	TimingSource   string
	DurationSource string
	TotalDuration  float64
	Entries        int
	Dropped        int
	TimelinePath   string
	ErrorMessage   string
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// Outcome carries the fields recorded when a run completes successfully.
type Outcome struct {
	TimingSource   string
	DurationSource string
	TotalDuration  float64
	Entries        int
	Dropped        int
	TimelinePath   string
}

// HealthSummary describes aggregated run counts per lifecycle state.
type HealthSummary struct {
	Total     int
	Running   int
	Completed int
	Failed    int
}

// DatabaseHealth captures diagnostic information about the run database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	IntegrityCheck   bool
	TotalRuns        int
	Error            string
}
