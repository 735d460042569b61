package score

import "github.com/calista-labs/rulegraph/pkg/paths"

// Hop is one directed adjacent pair extracted from a path sequence; hops are
// the unit of cost and stealth aggregation.
type Hop struct {
	From string
	To   string
}

// ExtractHops flattens a path sequence into its ordered hop list. Inside a
// branch group every branch contributes its own internal hops; the element
// preceding the group fans out to the first node of every branch, and the
// last node of every branch fans back in to the element that follows. Nested
// groups recurse the same way. A hop whose endpoints are the same node (a
// truncated cycle folding onto itself) is skipped.
func ExtractHops(seq paths.Seq) []Hop {
	var hops []Hop
	walkHops(seq, nil, &hops)
	return hops
}

// walkHops traverses one sequence. entry holds the nodes immediately
// preceding the sequence (nil at the top level); the return value is the set
// of nodes the sequence exits through, which the caller bridges to whatever
// follows.
func walkHops(seq paths.Seq, entry []string, hops *[]Hop) []string {
	cur := entry
	for _, el := range seq {
		if !el.IsBranches() {
			for _, p := range cur {
				if p != el.ID {
					*hops = append(*hops, Hop{From: p, To: el.ID})
				}
			}
			cur = []string{el.ID}
			continue
		}

		var exits []string
		for _, br := range el.Branches {
			for _, p := range cur {
				for _, first := range firstNodes(br) {
					*hops = append(*hops, Hop{From: p, To: first})
				}
			}
			exits = append(exits, walkHops(br, nil, hops)...)
		}
		cur = exits
	}
	return cur
}

// firstNodes returns the entry nodes of a sequence: its leading id, or the
// entry nodes of every branch when the sequence opens with a branch group.
func firstNodes(seq paths.Seq) []string {
	if len(seq) == 0 {
		return nil
	}
	el := seq[0]
	if !el.IsBranches() {
		return []string{el.ID}
	}
	var firsts []string
	for _, br := range el.Branches {
		firsts = append(firsts, firstNodes(br)...)
	}
	return firsts
}
