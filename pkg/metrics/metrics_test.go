package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_CountersAccumulate(t *testing.T) {
	r := NewRegistry()

	r.PathBranchesTotal.Add(4)
	r.PathTreesTotal.Inc()
	r.TargetsNotFoundTotal.Inc()
	r.GraphNodes.Set(12)
	r.InteractionsTotal.WithLabelValues("plausible").Add(3)
	r.InteractionsTotal.WithLabelValues("pruned").Inc()
	r.ExtractionChunksTotal.WithLabelValues("ok").Inc()

	if got := testutil.ToFloat64(r.PathBranchesTotal); got != 4 {
		t.Errorf("Expected 4 branches, got %v", got)
	}
	if got := testutil.ToFloat64(r.GraphNodes); got != 12 {
		t.Errorf("Expected 12 nodes, got %v", got)
	}
	if got := testutil.ToFloat64(r.InteractionsTotal.WithLabelValues("plausible")); got != 3 {
		t.Errorf("Expected 3 plausible interactions, got %v", got)
	}
}

func TestRegistry_Isolated(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.PathTreesTotal.Add(5)

	if got := testutil.ToFloat64(b.PathTreesTotal); got != 0 {
		t.Errorf("Registries must not share state, got %v", got)
	}
}

func TestRegistry_GathersAllFamilies(t *testing.T) {
	r := NewRegistry()
	r.RulesValidated.Inc()
	r.AnalysisDuration.Observe(0.05)

	families, err := r.Prometheus().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Expected registered metric families")
	}
}
