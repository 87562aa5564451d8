package perf

import (
	"expvar"
	"time"

	"github.com/encodeous/metric"
)

// stage latencies in microseconds
var (
	PlacementLatency = metric.NewHistogram("1m1s")
	DiscoveryLatency = metric.NewHistogram("1m1s")
	ClusterLatency   = metric.NewHistogram("1m1s")
	LinkLatency      = metric.NewHistogram("1m1s")
	ReduceLatency    = metric.NewHistogram("1m1s")
	BuildLatency     = metric.NewHistogram("1m1s")
	BuildsPerSecond  = metric.NewCounter("10s1s")
)

// Stages lists the histograms by stage name, in pipeline order
var Stages = []struct {
	Name string
	Hist metric.Metric
}{
	{"placement", PlacementLatency},
	{"discovery", DiscoveryLatency},
	{"cluster", ClusterLatency},
	{"link", LinkLatency},
	{"reduce", ReduceLatency},
	{"build", BuildLatency},
}

func init() {
	expvar.Publish("topogen:PlacementLatency (µs)", PlacementLatency)
	expvar.Publish("topogen:DiscoveryLatency (µs)", DiscoveryLatency)
	expvar.Publish("topogen:ClusterLatency (µs)", ClusterLatency)
	expvar.Publish("topogen:LinkLatency (µs)", LinkLatency)
	expvar.Publish("topogen:ReduceLatency (µs)", ReduceLatency)
	expvar.Publish("topogen:BuildLatency (µs)", BuildLatency)
	expvar.Publish("topogen:Builds/s", BuildsPerSecond)
}

// Since records the time elapsed from start into hist
func Since(hist metric.Metric, start time.Time) {
	hist.Add(float64(time.Since(start).Microseconds()))
}
