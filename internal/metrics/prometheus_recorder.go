package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "faviconbuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	generationDuration prom.Histogram
	stageResults       *prom.CounterVec
	outcomes           *prom.CounterVec
	cacheLookups       *prom.CounterVec
	cacheWriteFailures prom.Counter
	emittedAssets      prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		generationDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Total generation duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generation_outcomes_total",
			Help:      "Generation outcomes by final status",
		}, []string{"outcome"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by result",
		}, []string{"result"}),
		cacheWriteFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_write_failures_total",
			Help:      "Cache records that could not be written",
		}),
		emittedAssets: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "emitted_assets_total",
			Help:      "Images and files handed to the output store",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.generationDuration, pr.stageResults, pr.outcomes,
		pr.cacheLookups, pr.cacheWriteFailures, pr.emittedAssets)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerationDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generationDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncGenerationOutcome(outcome string) {
	if p == nil {
		return
	}
	p.outcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(result CacheLookup) {
	if p == nil {
		return
	}
	p.cacheLookups.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncCacheWriteFailure() {
	if p == nil {
		return
	}
	p.cacheWriteFailures.Inc()
}

func (p *PrometheusRecorder) AddEmittedAssets(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.emittedAssets.Add(float64(n))
}
