package core

import (
	"context"
	"log/slog"
	"os"
	"runtime/trace"

	"github.com/encodeous/topogen/perf"
)

// StartTrace records a runtime execution trace to path until the returned stop func is called
func StartTrace(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := trace.Start(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		trace.Stop()
		f.Close()
	}, nil
}

// logStages dumps the per-stage latency histograms, they are only worth the noise at debug level
func logStages(log *slog.Logger) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, s := range perf.Stages {
		log.Debug("stage latency (µs)", "stage", s.Name, "hist", s.Hist.String())
	}
}
