package generator

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
	"git.home.luguber.info/inful/faviconbuilder/internal/version"
)

// Report describes one generation run. It is handed to observers once the
// run has finished and is not modified afterwards.
type Report struct {
	InvocationID     string                  `json:"invocationId"`
	Version          string                  `json:"version"`
	Start            time.Time               `json:"start"`
	End              time.Time               `json:"end"`
	Outcome          Outcome                 `json:"outcome"`
	OutputPath       string                  `json:"outputPath,omitempty"`
	SourceHash       string                  `json:"sourceHash,omitempty"`
	ConfigHash       string                  `json:"configHash,omitempty"`
	CacheKey         string                  `json:"cacheKey,omitempty"`
	CacheLookup      metrics.CacheLookup     `json:"cacheLookup,omitempty"`
	CacheWriteFailed bool                    `json:"cacheWriteFailed,omitempty"`
	Assets           int                     `json:"assets"`
	StageDurations   map[Stage]time.Duration `json:"stageDurations"`
	StageResults     map[Stage]StageResult   `json:"stageResults"`
	Error            string                  `json:"error,omitempty"`
}

func newReport(now time.Time) *Report {
	return &Report{
		InvocationID:   uuid.NewString(),
		Version:        version.CacheTag(),
		Start:          now,
		StageDurations: make(map[Stage]time.Duration),
		StageResults:   make(map[Stage]StageResult),
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

func (r *Report) finish(now time.Time, outcome Outcome, err error) {
	r.End = now
	r.Outcome = outcome
	if err != nil {
		r.Error = err.Error()
	}
}
