package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/encodeous/topogen/coracle"
	"github.com/encodeous/topogen/metrics"
	"github.com/encodeous/topogen/render"
	"github.com/encodeous/topogen/state"
	"github.com/encodeous/topogen/topology"
)

type GenerateOpts struct {
	// Output is the simulator config path, empty or "-" writes to Stdout
	Output string
	Stdout io.Writer
	// Image renders the topology when set, the format follows the extension
	Image      string
	MetricsOut string
	// Metrics defaults to the process-wide registry
	Metrics *metrics.Registry
}

type Result struct {
	Topology *topology.Topology
	Document *coracle.Document
}

// Generate validates cfg, synthesizes the topology and writes every requested artifact
func Generate(cfg *state.BuildCfg, opts GenerateOpts, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := state.BuildConfigValidator(cfg); err != nil {
		return nil, err
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}

	start := time.Now()
	t, err := topology.Build(*cfg, log)
	reg.RecordBuild(cfg.Topology, t, err, time.Since(start))
	if opts.MetricsOut != "" {
		if werr := reg.WriteTextfile(opts.MetricsOut); werr != nil {
			log.Error("failed to write metrics", "path", opts.MetricsOut, "error", werr)
		}
	}
	logStages(log)
	if err != nil {
		return nil, fmt.Errorf("build %s topology (seed %d): %w", cfg.Topology, cfg.Seed, err)
	}

	doc, err := coracle.Build(t, cfg)
	if err != nil {
		return nil, err
	}
	if err := writeDocument(doc, opts); err != nil {
		return nil, err
	}
	if opts.Image != "" {
		if err := render.Save(t, opts.Image, render.DefaultOptions()); err != nil {
			return nil, fmt.Errorf("render %s: %w", opts.Image, err)
		}
		log.Info("rendered topology", "path", opts.Image)
	}
	return &Result{Topology: t, Document: doc}, nil
}

func writeDocument(doc *coracle.Document, opts GenerateOpts) error {
	if opts.Output == "" || opts.Output == "-" {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return coracle.Write(out, doc)
	}
	return coracle.WriteFile(opts.Output, doc)
}
