package metrics

import "sync"

var promOnce sync.Once

// InitPrometheusMetrics replaces the discarding metrics by the prometheus
// ones. The collectors are registered once.
func InitPrometheusMetrics() {
	promOnce.Do(func() {
		Version = PromVersion()
		Program = PromProgramMetrics()
		API = PromAPIMetrics()
	})
}
