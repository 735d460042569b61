// Package score computes per-path metrics (adversarial cost, stealth, hop
// length, and structural criticality) over the nested path sequences
// produced by the paths package. Everything here is a pure function of the
// sequence and the graph's node/edge lookups.
package score

import (
	"math"

	"github.com/calista-labs/rulegraph/pkg/graph"
	"github.com/calista-labs/rulegraph/pkg/paths"
)

// Metrics holds the scores of one independent path. Stealth and Criticality
// are nil when no hop (respectively no node) carried a value; absence is
// reported, never defaulted to zero.
type Metrics struct {
	Cost        float64
	Stealth     *float64
	Length      int
	Criticality *float64
}

// Scorer evaluates path sequences against a graph.
type Scorer struct {
	g *graph.Graph
}

// NewScorer returns a Scorer reading edge attributes and centrality from g.
func NewScorer(g *graph.Graph) *Scorer {
	return &Scorer{g: g}
}

// Analyze computes all four metrics for one path sequence.
func (s *Scorer) Analyze(seq paths.Seq) Metrics {
	hops := ExtractHops(seq)
	return Metrics{
		Cost:        s.cost(hops),
		Stealth:     s.stealth(hops),
		Length:      s.length(seq),
		Criticality: s.criticality(seq),
	}
}

// cost sums edge cost over all hops that have one. Hops over undeclared
// edges or edges without a cost contribute nothing. Every branch of an AND
// group appears in the hop list individually, so this is the sum across all
// branches plus the shared spine.
func (s *Scorer) cost(hops []Hop) float64 {
	total := 0.0
	for _, h := range hops {
		if e := s.g.Edge(h.From, h.To); e != nil && e.Cost != nil {
			total += *e.Cost
		}
	}
	return total
}

// stealth averages edge stealth over all hops that define it, across the
// whole flattened hop list. Returns nil when no hop carries a value. The
// mean is rounded half-to-even at three decimals to match the reference
// report output.
func (s *Scorer) stealth(hops []Hop) *float64 {
	sum, n := 0.0, 0
	for _, h := range hops {
		if e := s.g.Edge(h.From, h.To); e != nil && e.Stealth != nil {
			sum += *e.Stealth
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := math.RoundToEven(sum/float64(n)*1000) / 1000
	return &mean
}

// length is the hop count of the sequence: total node count, where an AND
// branch group counts as the longest of its branches, minus the logic
// placeholder nodes that join branches without being real steps, minus one.
func (s *Scorer) length(seq paths.Seq) int {
	return countNodes(seq) - s.countLogicNodes(seq) - 1
}

func countNodes(seq paths.Seq) int {
	total := 0
	for _, el := range seq {
		if !el.IsBranches() {
			total++
			continue
		}
		longest := 0
		for _, br := range el.Branches {
			if n := countNodes(br); n > longest {
				longest = n
			}
		}
		total += longest
	}
	return total
}

func (s *Scorer) countLogicNodes(seq paths.Seq) int {
	count := 0
	seq.Walk(func(id string) {
		if t, ok := s.g.NodeType(id); ok && t.IsLogic() {
			count++
		}
	})
	return count
}

// criticality is the maximum centrality over every node in the sequence.
// Undeclared nodes are absent from the comparison; nil when nothing carries
// a value.
func (s *Scorer) criticality(seq paths.Seq) *float64 {
	var best *float64
	seq.Walk(func(id string) {
		c, ok := s.g.Centrality(id)
		if !ok {
			return
		}
		if best == nil || c > *best {
			v := c
			best = &v
		}
	})
	return best
}
