// Package metrics records generation metrics behind the Recorder interface.
//
// Components default to NoopRecorder so metrics collection never needs nil
// checks at call sites. PrometheusRecorder is the real implementation; the
// watch command serves it through HTTPHandler:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	pipeline := generator.New(cfg, ...).WithObserver(generator.RecorderObserver{Recorder: recorder})
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
