package paths

import "strings"

// Elem is one element of a path sequence: either a plain node id or a group
// of AND branches that hold simultaneously. Branches is nil for plain ids.
type Elem struct {
	ID       string
	Branches []Seq
}

// IsBranches reports whether the element is an AND branch group.
func (e Elem) IsBranches() bool { return e.Branches != nil }

// Seq is an ordered path sequence over node ids, possibly nested through AND
// branch groups. After Sequence's final reversal it runs in causal order,
// from root causes towards the target, which is the order the scorer's hop
// extraction relies on for edge lookups.
type Seq []Elem

// Sequence renders a path tree as a nested sequence and then reverses the
// sequence and every nested branch element-wise. The reversal flips the
// tree's target-first orientation into causal source-to-target order; hop
// extraction keys edge lookups by literal adjacency, so the reversal is
// load-bearing, not cosmetic.
func Sequence(t *PathTree) Seq {
	return reverseDeep(flatten(t, t.root))
}

// flatten converts the subtree at idx into a sequence: a leaf is the
// one-element sequence of its id, a chain prepends its id to the child's
// sequence, and an AND join is its id followed by the group of branch
// sequences.
func flatten(t *PathTree, idx int) Seq {
	n := t.nodes[idx]
	switch n.kind {
	case KindChain:
		return append(Seq{{ID: n.id}}, flatten(t, n.child)...)
	case KindAndJoin:
		branches := make([]Seq, 0, len(n.branches))
		for _, b := range n.branches {
			branches = append(branches, flatten(t, b))
		}
		return Seq{{ID: n.id}, {Branches: branches}}
	default:
		return Seq{{ID: n.id}}
	}
}

// reverseDeep reverses element order and recurses into branch groups,
// reversing both the branch list and each branch's own sequence.
func reverseDeep(s Seq) Seq {
	out := make(Seq, len(s))
	for i, el := range s {
		if el.IsBranches() {
			branches := make([]Seq, len(el.Branches))
			for j, br := range el.Branches {
				branches[len(el.Branches)-1-j] = reverseDeep(br)
			}
			el = Elem{Branches: branches}
		}
		out[len(s)-1-i] = el
	}
	return out
}

// String renders the sequence as nested bracketed lists, the representation
// used in score reports.
func (s Seq) String() string {
	var b strings.Builder
	writeSeq(&b, s)
	return b.String()
}

func writeSeq(b *strings.Builder, s Seq) {
	b.WriteByte('[')
	for i, el := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		if el.IsBranches() {
			b.WriteByte('[')
			for j, br := range el.Branches {
				if j > 0 {
					b.WriteString(", ")
				}
				writeSeq(b, br)
			}
			b.WriteByte(']')
		} else {
			b.WriteString(el.ID)
		}
	}
	b.WriteByte(']')
}

// Walk visits every node id in the sequence in order, descending into branch
// groups depth-first.
func (s Seq) Walk(visit func(id string)) {
	for _, el := range s {
		if el.IsBranches() {
			for _, br := range el.Branches {
				br.Walk(visit)
			}
			continue
		}
		visit(el.ID)
	}
}
