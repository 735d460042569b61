package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calista-labs/rulegraph/pkg/dot"
	"github.com/calista-labs/rulegraph/pkg/graph"
	"github.com/calista-labs/rulegraph/pkg/metrics"
	"github.com/calista-labs/rulegraph/pkg/report"
	"github.com/calista-labs/rulegraph/pkg/rules"
)

// TestRuleBatchToScoredPaths walks the whole pipeline: a two-rule batch
// becomes DOT text, parses into a typed graph, survives a graph info round
// trip, and yields a scored causal path from the heater action to the
// thermostat trigger.
func TestRuleBatchToScoredPaths(t *testing.T) {
	batch := []rules.Rule{
		{
			RuleID: "rule1",
			Triggers: rules.TriggerBlocks{{
				Conditions: []rules.Condition{{
					DeviceName: "motion_sensor",
					Attribute:  "motion",
					Operator:   "==",
					Value:      "active",
				}},
			}},
			Actions: []rules.Action{{
				DeviceName:              "heater",
				Command:                 "on",
				ImplicitPhysicalChannel: "temperature",
			}},
		},
		{
			RuleID: "rule2",
			Triggers: rules.TriggerBlocks{{
				Conditions: []rules.Condition{{
					DeviceName:              "thermostat",
					Attribute:               "temperature",
					Operator:                ">",
					Value:                   25,
					ImplicitPhysicalChannel: "temperature",
				}},
			}},
			Actions: []rules.Action{{
				DeviceName: "window",
				Command:    "open",
			}},
		},
	}
	require.NoError(t, rules.Validate(batch))

	// Rules -> DOT -> typed graph.
	dotText := dot.Write(batch)
	nodes, edges, err := dot.Parse(dotText)
	require.NoError(t, err)
	g := graph.Build(nodes, edges)

	// The graph survives serialization without re-deriving anything.
	doc, err := report.MarshalGraphInfo(g)
	require.NoError(t, err)
	restored, err := report.LoadGraphInfo(doc)
	require.NoError(t, err)
	require.Equal(t, g.NodeCount(), restored.NodeCount())
	require.Equal(t, g.EdgeCount(), restored.EdgeCount())

	reg := metrics.NewRegistry()
	analyzer := NewAnalyzer(restored, WithMetrics(reg))

	// rule2's action is reachable from rule1's trigger through the
	// temperature channel and rule2's own trigger.
	res, err := analyzer.Analyze(context.Background(), "A_rule2_0")
	require.NoError(t, err)
	require.NotEmpty(t, res.Branches)
	require.NotEmpty(t, res.Paths)

	// The deepest path rides the physical channel twice (into and out of
	// CH_temperature), so its cost includes two 5-cost hops.
	var best ScoredPath
	for _, p := range res.Paths {
		if p.Metrics.Cost > best.Metrics.Cost {
			best = p
		}
	}
	assert.GreaterOrEqual(t, best.Metrics.Cost, 10.0)
	require.NotNil(t, best.Metrics.Stealth)
	assert.Greater(t, *best.Metrics.Stealth, 0.0)
	assert.Greater(t, best.Metrics.Length, 0)

	// Every sequence must end at the analysis target.
	for _, p := range res.Paths {
		var last string
		p.Sequence.Walk(func(id string) { last = id })
		assert.Equal(t, "A_rule2_0", last)
	}
}

func TestAnalyze_UnknownTargetIsEmptyNotFatal(t *testing.T) {
	g := graph.Build([]graph.NodeDecl{{ID: "only", Type: graph.TypeTrigger}}, nil)
	analyzer := NewAnalyzer(g, WithMetrics(metrics.NewRegistry()))

	res, err := analyzer.Analyze(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, res.Branches)
	assert.Empty(t, res.Paths)
	assert.Equal(t, "missing", res.Target)
}

func TestAnalyzeAll_KeepsTargetOrder(t *testing.T) {
	nodes := []graph.NodeDecl{
		{ID: "a", Type: graph.TypeAction},
		{ID: "b", Type: graph.TypeTrigger},
	}
	edges := []graph.EdgeDecl{{Source: "a", Target: "b"}}
	g := graph.Build(nodes, edges)
	analyzer := NewAnalyzer(g)

	results, err := analyzer.AnalyzeAll(context.Background(), []string{"b", "a", "missing"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].Target)
	assert.Len(t, results[0].Paths, 1)
	assert.Equal(t, "a", results[1].Target)
	assert.Empty(t, results[2].Paths)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	nodes := []graph.NodeDecl{
		{ID: "a", Type: graph.TypeAction},
		{ID: "b", Type: graph.TypeTrigger},
	}
	edges := []graph.EdgeDecl{{Source: "a", Target: "b"}}
	g := graph.Build(nodes, edges)
	analyzer := NewAnalyzer(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, "b")
	assert.ErrorIs(t, err, context.Canceled)
}
