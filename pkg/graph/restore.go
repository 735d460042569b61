package graph

// ParseNodeType maps a wire name back to its NodeType. The second result is
// false for names outside the fixed vocabulary.
func ParseNodeType(s string) (NodeType, bool) {
	switch s {
	case "trigger":
		return TypeTrigger, true
	case "action":
		return TypeAction, true
	case "AND":
		return TypeAndGate, true
	case "OR":
		return TypeOrGate, true
	case "logic":
		return TypeLogic, true
	case "physical_channel":
		return TypePhysicalChannel, true
	case "system_channel":
		return TypeSystemChannel, true
	case "channel":
		return TypeGenericChannel, true
	default:
		return 0, false
	}
}

// ParseEdgeType maps a wire name back to its EdgeType.
func ParseEdgeType(s string) (EdgeType, bool) {
	switch s {
	case "explicit":
		return EdgeExplicit, true
	case "physical_implicit":
		return EdgePhysicalImplicit, true
	case "system_implicit":
		return EdgeSystemImplicit, true
	default:
		return 0, false
	}
}

// Restore rebuilds a Graph from previously exported nodes and edges, keeping
// their stored attributes as-is: no edge re-classification, no centrality
// recomputation. Adjacency lists are rebuilt from the edge set so they stay
// consistent with it; duplicate directed pairs still collapse.
func Restore(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node, len(nodes)),
		edges: make(map[[2]string]*Edge, len(edges)),
	}

	for i := range nodes {
		n := nodes[i]
		if _, ok := g.nodes[n.ID]; ok {
			continue
		}
		n.Targets = nil
		n.Sources = nil
		g.nodes[n.ID] = &n
		g.nodeOrder = append(g.nodeOrder, n.ID)
	}

	for i := range edges {
		e := edges[i]
		key := [2]string{e.Source, e.Target}
		if _, ok := g.edges[key]; ok {
			continue
		}
		g.edges[key] = &e
		g.edgeOrder = append(g.edgeOrder, key)

		if src, ok := g.nodes[e.Source]; ok {
			src.Targets = append(src.Targets, e.Target)
		}
		if tgt, ok := g.nodes[e.Target]; ok {
			tgt.Sources = append(tgt.Sources, e.Source)
		}
	}

	return g
}
