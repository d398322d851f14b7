package model

import "time"

// Run captures one complete spray execution: the pairing parameters that
// were in effect and every result that was produced. Runs are what the
// database stores and what summary reports are rendered from.
type Run struct {
	// ID is the database row ID. Zero until the run has been saved.
	ID int64 `json:"id,omitempty"`

	// StartedAt is when dispatching began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last outstanding probe drained.
	FinishedAt time.Time `json:"finished_at"`

	// Window is the concurrency window the run was executed with.
	Window int `json:"window"`

	// ProxyCount and TargetCount record the size of the expanded input
	// sets, before scheme-compatibility filtering.
	ProxyCount  int `json:"proxy_count"`
	TargetCount int `json:"target_count"`

	// Results holds every probe outcome in the order it was reported.
	Results []Result `json:"results"`
}

// Summary aggregates a run's results for progress lines and reports.
type Summary struct {
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Summarize computes aggregate counts over the run's results.
func (r *Run) Summarize() Summary {
	s := Summary{
		Attempted: len(r.Results),
		Elapsed:   r.FinishedAt.Sub(r.StartedAt),
	}
	for _, res := range r.Results {
		if res.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
