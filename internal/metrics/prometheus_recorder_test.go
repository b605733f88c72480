package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveGenerationDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncGenerationOutcome("generated")
	pr.IncCacheLookup(CacheMiss)
	pr.IncCacheLookup(CacheMiss)
	pr.IncCacheWriteFailure()
	pr.AddEmittedAssets(3)
	pr.AddEmittedAssets(-1)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 7 {
		t.Fatalf("expected 7 metric families, got %d", len(mfs))
	}
	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				counters[mf.GetName()] += c.GetValue()
			}
		}
	}
	if got := counters["faviconbuilder_cache_lookups_total"]; got != 2 {
		t.Fatalf("cache lookups = %v, want 2", got)
	}
	if got := counters["faviconbuilder_emitted_assets_total"]; got != 3 {
		t.Fatalf("emitted assets = %v, want 3", got)
	}
}

func TestPrometheusRecorderNilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("render", time.Second)
	pr.IncGenerationOutcome("failed")
	pr.AddEmittedAssets(1)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncGenerationOutcome("hit")

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `faviconbuilder_generation_outcomes_total{outcome="hit"} 1`) {
		t.Fatalf("outcome counter missing from scrape:\n%s", rec.Body.String())
	}
}
