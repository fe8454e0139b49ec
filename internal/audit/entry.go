package audit

import "time"

// Entry represents a single audit log record: one executed target.
type Entry struct {
	Seq        uint64    `json:"seq"`
	Time       time.Time `json:"ts"`
	RunID      string    `json:"run_id"`
	PrevHash   string    `json:"prev_hash"`
	Flow       string    `json:"flow"`            // flow description path
	Target     string    `json:"target"`          // component name requested
	Kind       string    `json:"kind,omitempty"`  // component variant of the target
	Components int       `json:"components"`      // registry size after parsing
	ExitCode   int       `json:"exit_code"`       // 0 = success
	Error      string    `json:"error,omitempty"` // error message if failed
	Duration   float64   `json:"duration_ms"`     // execution time in milliseconds
	Cwd        string    `json:"cwd"`             // working directory
	Hash       string    `json:"hash"`            // SHA-256 of this entry (with hash field empty)
}

// Run carries what the caller knows about one execution. An empty Cwd is
// filled in with the process working directory.
type Run struct {
	Flow       string
	Target     string
	Kind       string
	Components int
	ExitCode   int
	Error      string
	Duration   time.Duration
	Cwd        string
}

// entry builds the unchained record for run.
func (run Run) entry(now time.Time, runID string) Entry {
	return Entry{
		Time:       now.UTC(),
		RunID:      runID,
		Flow:       run.Flow,
		Target:     run.Target,
		Kind:       run.Kind,
		Components: run.Components,
		ExitCode:   run.ExitCode,
		Error:      run.Error,
		Duration:   float64(run.Duration.Microseconds()) / 1000.0,
		Cwd:        run.Cwd,
	}
}
