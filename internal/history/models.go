package history

import "time"

// Status is the lifecycle state of a split run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	// StatusRejected marks input the pipeline refused: malformed or
	// noncompliant sheets and unsupported sources.
	StatusRejected Status = "rejected"
)

// Run is one row of the history table.
type Run struct {
	ID         string
	CuePath    string
	OutputDir  string
	Encoder    string
	Layout     string
	Tracks     int
	Status     Status
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Duration reports how long a finished run took, or zero while running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
