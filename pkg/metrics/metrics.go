// Package metrics instruments the analysis pipeline with Prometheus
// collectors. Batch runs expose them through the default gatherer; nothing
// here opens a network surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the pipeline's collectors around one Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	RulesValidated        prometheus.Counter
	InteractionsTotal     *prometheus.CounterVec
	GraphNodes            prometheus.Gauge
	GraphEdges            prometheus.Gauge
	PathBranchesTotal     prometheus.Counter
	PathTreesTotal        prometheus.Counter
	AnalysisDuration      prometheus.Histogram
	TargetsNotFoundTotal  prometheus.Counter
	ExtractionChunksTotal *prometheus.CounterVec
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.RulesValidated = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "rulegraph_rules_validated_total",
			Help: "Total number of rule records accepted by validation",
		},
	)

	r.InteractionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "rulegraph_interactions_total",
			Help: "Discovered cross-rule interactions by filter verdict",
		},
		[]string{"verdict"}, // plausible, pruned, skipped
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "rulegraph_graph_nodes",
			Help: "Node count of the most recently built graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "rulegraph_graph_edges",
			Help: "Edge count of the most recently built graph",
		},
	)

	r.PathBranchesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "rulegraph_path_branches_total",
			Help: "Raw path branches found by reverse search",
		},
	)

	r.PathTreesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "rulegraph_path_trees_total",
			Help: "Independent path trees after OR splitting",
		},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rulegraph_analysis_duration_seconds",
			Help:    "Duration of one target analysis",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.TargetsNotFoundTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "rulegraph_targets_not_found_total",
			Help: "Analysis requests for ids absent from the node set",
		},
	)

	r.ExtractionChunksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "rulegraph_extraction_chunks_total",
			Help: "Model extraction chunks by outcome",
		},
		[]string{"outcome"}, // ok, error
	)

	return r
}

// Prometheus exposes the underlying registry for exposition and for tests.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}
