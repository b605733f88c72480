package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultSkipped  ResultLabel = "skipped"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// CacheLookup is the result of a cache check.
type CacheLookup string

const (
	CacheHit      CacheLookup = "hit"
	CacheMiss     CacheLookup = "miss"
	CacheDisabled CacheLookup = "disabled"
)

// Recorder defines observability hooks for generations and their stages.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerationDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncGenerationOutcome(outcome string) // hit|generated|failed
	IncCacheLookup(result CacheLookup)
	IncCacheWriteFailure()
	AddEmittedAssets(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerationDuration(time.Duration)    {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncGenerationOutcome(string)                {}
func (NoopRecorder) IncCacheLookup(CacheLookup)                 {}
func (NoopRecorder) IncCacheWriteFailure()                      {}
func (NoopRecorder) AddEmittedAssets(int)                       {}
