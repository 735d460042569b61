// Package paths enumerates every causal chain that can reach a target node
// of a rule interaction graph. Enumeration walks edges backwards from the
// target, branches on alternative predecessors (OR semantics) and on AND-gate
// inputs (joined semantics), merges the raw branches into a prefix-shared
// forest, and splits the forest back into independent path trees at OR
// points. All structures are transient per query.
package paths

import (
	"errors"

	"github.com/calista-labs/rulegraph/pkg/graph"
)

// ErrTargetNotFound signals that the requested target id is not a declared
// node. Callers recover by treating the path set as empty.
var ErrTargetNotFound = errors.New("target node not found")

// Enumerator finds raw path branches by reverse depth-first search.
type Enumerator struct {
	g     *graph.Graph
	preds map[string][]string
}

// NewEnumerator builds the predecessor lookup for g once; an Enumerator can
// serve any number of targets.
func NewEnumerator(g *graph.Graph) *Enumerator {
	return &Enumerator{g: g, preds: g.Predecessors()}
}

// frame is one pending branch of the reverse search. Each frame owns its
// trail; branching copies, so sibling branches never share mutable state.
type frame struct {
	node  string
	trail []string
}

// FindPaths returns every raw path branch reaching target. Each branch is
// ordered from the target back to a root cause: the first element is always
// target, the last is a node with no predecessors (or the point where a cycle
// was truncated). AND-gate-joined branches share an identical prefix from the
// target down to the gate.
//
// An unknown target yields ErrTargetNotFound and an empty result; it is a
// recoverable condition, not a failure of the graph.
func (e *Enumerator) FindPaths(target string) ([][]string, error) {
	if !e.g.HasNode(target) {
		return nil, ErrTargetNotFound
	}

	var found [][]string
	stack := []frame{{node: target}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Cycle guard: revisiting a node inside its own trail truncates the
		// branch. The trail so far is kept; the cycle itself is not reported.
		if contains(f.trail, f.node) {
			found = append(found, reversed(f.trail))
			continue
		}

		trail := prepend(f.node, f.trail)
		preds := e.preds[f.node]

		if len(preds) == 0 {
			found = append(found, reversed(trail))
			continue
		}

		if gate := preds[0]; len(preds) == 1 && e.isAndGate(gate) {
			withGate := prepend(gate, trail)
			inputs := e.preds[gate]
			if len(inputs) == 0 {
				// A gate with no inputs terminates the branch; it is not an
				// error, just a dangling join.
				found = append(found, reversed(withGate))
				continue
			}
			// Every input branch continues from the same gate-prefixed trail.
			for i := len(inputs) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: inputs[i], trail: withGate})
			}
			continue
		}

		// One ordinary predecessor continues the line; several are
		// independent alternatives. Both recurse the same way.
		for i := len(preds) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: preds[i], trail: trail})
		}
	}

	return found, nil
}

func (e *Enumerator) isAndGate(id string) bool {
	t, ok := e.g.NodeType(id)
	return ok && t == graph.TypeAndGate
}

// prepend returns a new slice [head, tail...]; the tail is never mutated.
func prepend(head string, tail []string) []string {
	out := make([]string, 0, len(tail)+1)
	out = append(out, head)
	return append(out, tail...)
}

// reversed returns a reversed copy.
func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
