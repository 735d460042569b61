// Package graph holds the typed node/edge model of a rule interaction graph
// and computes betweenness centrality over it. The model is immutable once
// built; path enumeration and scoring read from it without locking.
package graph

// Graph is the typed node/edge store. Nodes are keyed by id; edges are keyed
// by the ordered (source, target) pair, so duplicate declarations of the same
// directed pair collapse to one record. Insertion order is preserved for
// deterministic iteration.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[[2]string]*Edge
	edgeOrder [][2]string
}

// Build constructs a Graph from node and edge declarations: it types every
// edge from the adjacent node types, derives each node's Target/Source lists,
// and runs the betweenness pass. Edge endpoints that were never declared as
// nodes are tolerated; they contribute no adjacency entries and receive no
// centrality.
func Build(nodeDecls []NodeDecl, edgeDecls []EdgeDecl) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node, len(nodeDecls)),
		edges: make(map[[2]string]*Edge, len(edgeDecls)),
	}

	for _, d := range nodeDecls {
		if _, ok := g.nodes[d.ID]; ok {
			continue
		}
		g.nodes[d.ID] = &Node{ID: d.ID, Label: d.Label, Type: d.Type}
		g.nodeOrder = append(g.nodeOrder, d.ID)
	}

	for _, d := range edgeDecls {
		key := [2]string{d.Source, d.Target}
		if _, ok := g.edges[key]; ok {
			continue
		}
		e := g.classify(d.Source, d.Target)
		g.edges[key] = e
		g.edgeOrder = append(g.edgeOrder, key)

		if src, ok := g.nodes[d.Source]; ok {
			src.Targets = append(src.Targets, d.Target)
		}
		if tgt, ok := g.nodes[d.Target]; ok {
			tgt.Sources = append(tgt.Sources, d.Source)
		}
	}

	g.assignCentrality()
	return g
}

// classify applies the fixed edge typing table. The order of the checks is
// part of the contract: a logic-typed source wins over everything, then a
// logic-typed target (which yields no cost or stealth, even when the other
// endpoint is a channel), then physical channels, then system channels.
func (g *Graph) classify(source, target string) *Edge {
	e := &Edge{Source: source, Target: target}

	srcType, srcKnown := g.nodeType(source)
	tgtType, tgtKnown := g.nodeType(target)

	switch {
	case srcKnown && srcType.IsLogic():
		e.Type = EdgeExplicit
		e.Cost = ptr(1)
		e.Stealth = ptr(1)
	case tgtKnown && tgtType.IsLogic():
		// Edges into a gate keep nil cost and stealth so that the hop into
		// the gate never contributes to aggregation.
		e.Type = EdgeExplicit
	case srcKnown && srcType == TypePhysicalChannel || tgtKnown && tgtType == TypePhysicalChannel:
		e.Type = EdgePhysicalImplicit
		e.Cost = ptr(5)
		e.Stealth = ptr(3)
	case srcKnown && srcType == TypeSystemChannel || tgtKnown && tgtType == TypeSystemChannel:
		e.Type = EdgeSystemImplicit
		e.Cost = ptr(3)
		e.Stealth = ptr(2)
	default:
		e.Type = EdgeExplicit
		e.Cost = ptr(1)
		e.Stealth = ptr(1)
	}
	return e
}

func (g *Graph) nodeType(id string) (NodeType, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, false
	}
	return n.Type, true
}

func ptr(v float64) *float64 { return &v }

// Node returns the node with the given id, or ErrNodeNotFound.
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, &BuildError{Op: "Lookup", Entity: "node", ID: id, Cause: ErrNodeNotFound}
	}
	return n, nil
}

// HasNode reports whether the id was declared as a node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeType returns the declared type of id. The second result is false for
// ids that only ever appeared as edge endpoints.
func (g *Graph) NodeType(id string) (NodeType, bool) {
	return g.nodeType(id)
}

// Centrality returns the betweenness centrality stored for id. Channel and
// AND-gate nodes always read back 0. The second result is false for
// undeclared ids, which are excluded from criticality comparisons.
func (g *Graph) Centrality(id string) (float64, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, false
	}
	return n.Centrality, true
}

// Edge returns the edge record for the ordered (source, target) pair, or nil
// when no such edge was declared.
func (g *Graph) Edge(source, target string) *Edge {
	return g.edges[[2]string{source, target}]
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in declaration order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, g.edges[key])
	}
	return out
}

// NodeCount returns the number of declared nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Predecessors returns, for every edge (s, t), s appended under t, preserving
// edge declaration order. This is the lookup the path enumerator walks
// backwards from a target.
func (g *Graph) Predecessors() map[string][]string {
	preds := make(map[string][]string, len(g.nodes))
	for _, key := range g.edgeOrder {
		preds[key[1]] = append(preds[key[1]], key[0])
	}
	return preds
}
