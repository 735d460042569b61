package graph

import "container/list"

// assignCentrality computes betweenness centrality over the subgraph induced
// by removing every AND-gate node, then stores the normalised score on
// trigger, action, and logic nodes. Channels participate in the computation
// (paths may run through them) but always read back 0, as do the AND gates
// excluded from the graph; gates fan one logical decision out over several
// structural nodes and would distort the ranking of true decision points.
func (g *Graph) assignCentrality() {
	scores := g.betweenness()

	for _, n := range g.nodes {
		if n.Type == TypeAndGate || n.Type.IsChannel() {
			n.Centrality = 0
			continue
		}
		n.Centrality = scores[n.ID]
	}
}

// betweenness runs a single O(VE) Brandes pass over the AND-gate-free
// subgraph and returns normalised node betweenness in [0, 1].
func (g *Graph) betweenness() map[string]float64 {
	nodeIDs := make([]string, 0, len(g.nodeOrder))
	included := make(map[string]bool, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		if g.nodes[id].Type == TypeAndGate {
			continue
		}
		nodeIDs = append(nodeIDs, id)
		included[id] = true
	}

	adjacency := make(map[string][]string, len(nodeIDs))
	for _, key := range g.edgeOrder {
		if included[key[0]] && included[key[1]] {
			adjacency[key[0]] = append(adjacency[key[0]], key[1])
		}
	}

	betweenness := make(map[string]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		betweenness[id] = 0
	}

	for _, source := range nodeIDs {
		stack := make([]string, 0, len(nodeIDs))
		predecessors := make(map[string][]string, len(nodeIDs))
		sigma := make(map[string]float64, len(nodeIDs))
		distance := make(map[string]int, len(nodeIDs))

		for _, id := range nodeIDs {
			sigma[id] = 0
			distance[id] = -1
		}
		sigma[source] = 1
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(string)
			if !ok {
				continue
			}
			stack = append(stack, v)

			for _, w := range adjacency[v] {
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies
		delta := make(map[string]float64, len(nodeIDs))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if n := len(nodeIDs); n > 2 {
		normFactor := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= normFactor
		}
	}

	return betweenness
}
