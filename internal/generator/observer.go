package generator

import (
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
)

// Observer receives callbacks around stage execution and the generation
// lifecycle. Callbacks run synchronously on the generating goroutine.
type Observer interface {
	OnStageStart(stage Stage)
	OnStageComplete(stage Stage, duration time.Duration, result StageResult)
	OnGenerationComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(_ Stage)                                    {}
func (NoopObserver) OnStageComplete(_ Stage, _ time.Duration, _ StageResult) {}
func (NoopObserver) OnGenerationComplete(_ *Report)                          {}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnStageStart(_ Stage) {}

func (r RecorderObserver) OnStageComplete(stage Stage, d time.Duration, result StageResult) {
	if r.Recorder != nil {
		r.Recorder.ObserveStageDuration(string(stage), d)
		r.Recorder.IncStageResult(string(stage), result.label())
	}
}

func (r RecorderObserver) OnGenerationComplete(report *Report) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveGenerationDuration(report.Duration())
	r.Recorder.IncGenerationOutcome(string(report.Outcome))
	if report.CacheLookup != "" {
		r.Recorder.IncCacheLookup(report.CacheLookup)
	}
	if report.CacheWriteFailed {
		r.Recorder.IncCacheWriteFailure()
	}
	r.Recorder.AddEmittedAssets(report.Assets)
}

// MultiObserver fans callbacks out to every observer in order.
type MultiObserver []Observer

func (m MultiObserver) OnStageStart(stage Stage) {
	for _, o := range m {
		o.OnStageStart(stage)
	}
}

func (m MultiObserver) OnStageComplete(stage Stage, d time.Duration, result StageResult) {
	for _, o := range m {
		o.OnStageComplete(stage, d, result)
	}
}

func (m MultiObserver) OnGenerationComplete(report *Report) {
	for _, o := range m {
		o.OnGenerationComplete(report)
	}
}
