// Package report renders the pipeline's output surfaces: the graph info
// JSON document, the per-path score table, and the split path-forest text
// rendering.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/calista-labs/rulegraph/pkg/graph"
)

// NodeRecord is the JSON shape of one node in a graph info document.
type NodeRecord struct {
	ID         string   `json:"ID"`
	Label      string   `json:"Label"`
	Type       string   `json:"Type"`
	Target     []string `json:"Target"`
	Source     []string `json:"Source"`
	Centrality float64  `json:"centrality"`
}

// EdgeRecord is the JSON shape of one edge in a graph info document.
type EdgeRecord struct {
	Source  string   `json:"source"`
	Target  string   `json:"target"`
	Type    string   `json:"type"`
	Cost    *float64 `json:"cost"`
	Stealth *float64 `json:"stealth"`
}

// GraphInfo is the document exchanged between the graph generation and
// analysis stages.
type GraphInfo struct {
	Nodes []NodeRecord `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

// ExportGraphInfo renders a graph as its JSON document.
func ExportGraphInfo(g *graph.Graph) GraphInfo {
	info := GraphInfo{
		Nodes: make([]NodeRecord, 0, g.NodeCount()),
		Edges: make([]EdgeRecord, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		info.Nodes = append(info.Nodes, NodeRecord{
			ID:         n.ID,
			Label:      n.Label,
			Type:       n.Type.String(),
			Target:     append([]string{}, n.Targets...),
			Source:     append([]string{}, n.Sources...),
			Centrality: n.Centrality,
		})
	}
	for _, e := range g.Edges() {
		info.Edges = append(info.Edges, EdgeRecord{
			Source:  e.Source,
			Target:  e.Target,
			Type:    e.Type.String(),
			Cost:    e.Cost,
			Stealth: e.Stealth,
		})
	}
	return info
}

// MarshalGraphInfo renders the document as indented JSON.
func MarshalGraphInfo(g *graph.Graph) ([]byte, error) {
	return json.MarshalIndent(ExportGraphInfo(g), "", "  ")
}

// LoadGraphInfo restores a graph from a JSON document, trusting the stored
// edge attributes and centrality values. A record with a type name outside
// the vocabulary is a parse error.
func LoadGraphInfo(data []byte) (*graph.Graph, error) {
	var info GraphInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, &graph.BuildError{Op: "LoadGraphInfo", Entity: "document", Cause: graph.ErrParse}
	}

	nodes := make([]graph.Node, 0, len(info.Nodes))
	for _, r := range info.Nodes {
		t, ok := graph.ParseNodeType(r.Type)
		if !ok {
			return nil, &graph.BuildError{Op: "LoadGraphInfo", Entity: "node", ID: r.ID,
				Cause: fmt.Errorf("%w: unknown node type %q", graph.ErrParse, r.Type)}
		}
		nodes = append(nodes, graph.Node{
			ID:         r.ID,
			Label:      r.Label,
			Type:       t,
			Centrality: r.Centrality,
		})
	}

	edges := make([]graph.Edge, 0, len(info.Edges))
	for _, r := range info.Edges {
		t, ok := graph.ParseEdgeType(r.Type)
		if !ok {
			return nil, &graph.BuildError{Op: "LoadGraphInfo", Entity: "edge",
				ID: r.Source + "->" + r.Target,
				Cause: fmt.Errorf("%w: unknown edge type %q", graph.ErrParse, r.Type)}
		}
		edges = append(edges, graph.Edge{
			Source:  r.Source,
			Target:  r.Target,
			Type:    t,
			Cost:    r.Cost,
			Stealth: r.Stealth,
		})
	}

	return graph.Restore(nodes, edges), nil
}
