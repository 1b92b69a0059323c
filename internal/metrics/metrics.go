// Package metrics is the ambient observability layer over internal/engine's
// operations (§2 "the core itself ... does not log"; this is the one place
// structured instrumentation is added). It is never imported by engine
// itself — callers (the CLI, the MCP server) record against it around
// their own calls to engine.Build.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FilesParsedTotal counts every source file handed to the parser,
	// labeled by language and outcome ("ok" or "error").
	FilesParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegraph_files_parsed_total",
		Help: "Total number of source files parsed.",
	}, []string{"language", "outcome"})

	// BuildDuration measures wall-clock time for one engine.Build call,
	// labeled by language.
	BuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codegraph_build_seconds",
		Help:    "Time spent running the C1-C9 pipeline over one file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	// CFGErrorsTotal counts §7 CFGError diagnostics surfaced by the CFG
	// builder, labeled by language.
	CFGErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegraph_cfg_errors_total",
		Help: "Total number of CFG construction errors encountered.",
	}, []string{"language"})

	// RDAWorklistIterations records, once per build, the total fixed-point
	// iterations of the reaching-definitions pass plus (when last_use is
	// requested) the reaching-uses pass.
	RDAWorklistIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codegraph_rda_worklist_iterations",
		Help:    "Number of worklist iterations until a reaching-definitions/uses fixed point.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})

	// ComposedNodesTotal and ComposedEdgesTotal track the size of the
	// composed multigraph returned by the most recent build, mirroring
	// a dependency graph's own node/edge gauges.
	ComposedNodesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codegraph_composed_nodes",
		Help: "Number of nodes in the most recently composed graph.",
	})
	ComposedEdgesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codegraph_composed_edges",
		Help: "Number of edges in the most recently composed graph.",
	})
)
