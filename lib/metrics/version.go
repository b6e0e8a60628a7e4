package metrics

import (
	"runtime"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"boscoin.io/pollchain/lib/version"
)

// Version is always 1; the build and the network of the node are in its
// labels.
var Version metrics.Gauge = discard.NewGauge()

func PromVersion() metrics.Gauge {
	return prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "version",
		Help:      "Build and network of the node.",
	}, []string{"version", "git_commit", "build_date", "go_version", "network_id"})
}

func SetVersion(networkID []byte) {
	Version.With(
		"version", version.Version,
		"git_commit", version.GitCommit,
		"build_date", version.BuildDate,
		"go_version", runtime.Version(),
		"network_id", string(networkID),
	).Set(1)
}
