package metrics

import (
	"time"

	"github.com/dusk-indust/codegraph/internal/schema"
)

// RecordBuild observes one internal/engine.Build call's duration and
// updates the gauge/counter metrics from its resulting stream. engine
// itself stays metrics-free (§5 "pure function", "no shared mutable
// state") — callers (the CLI, the MCP server) wrap their own call to
// engine.Build with this.
func RecordBuild(language string, dur time.Duration, stream schema.Stream, parseErr bool) {
	outcome := "ok"
	if parseErr {
		outcome = "error"
	}
	FilesParsedTotal.WithLabelValues(language, outcome).Inc()
	BuildDuration.WithLabelValues(language).Observe(dur.Seconds())

	cfgErrors := 0
	for _, d := range stream.Diagnostics {
		if d.Kind == schema.DiagnosticCFGError {
			cfgErrors++
		}
	}
	if cfgErrors > 0 {
		CFGErrorsTotal.WithLabelValues(language).Add(float64(cfgErrors))
	}

	ComposedNodesTotal.Set(float64(len(stream.Nodes)))
	ComposedEdgesTotal.Set(float64(len(stream.Edges)))

	if stream.Stats.RDAWorklistIterations > 0 {
		RDAWorklistIterations.Observe(float64(stream.Stats.RDAWorklistIterations))
	}
}
