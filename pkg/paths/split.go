package paths

import "github.com/calista-labs/rulegraph/pkg/graph"

// Kind tags a path-tree node. Whether a node joins AND branches is a fact of
// the tree's type, not a lookup made at every use site.
type Kind uint8

const (
	// KindLeaf ends a chain.
	KindLeaf Kind = iota
	// KindChain continues linearly into exactly one child.
	KindChain
	// KindAndJoin holds branch subtrees that must all hold simultaneously.
	KindAndJoin
)

// PathTree is one independent path tree produced by splitting. Nodes live in
// an arena and reference each other by index. A PathTree is transient: built
// per target query, scored, discarded.
type PathTree struct {
	nodes []pathNode
	root  int
}

type pathNode struct {
	id       string
	kind     Kind
	child    int   // KindChain only
	branches []int // KindAndJoin only
}

func (t *PathTree) add(n pathNode) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// graft copies the subtree rooted at idx in src into t and returns its new
// arena index.
func (t *PathTree) graft(src *PathTree, idx int) int {
	n := src.nodes[idx]
	copied := pathNode{id: n.id, kind: n.kind}
	switch n.kind {
	case KindChain:
		copied.child = t.graft(src, n.child)
	case KindAndJoin:
		copied.branches = make([]int, 0, len(n.branches))
		for _, b := range n.branches {
			copied.branches = append(copied.branches, t.graft(src, b))
		}
	}
	return t.add(copied)
}

// Root returns the arena index of the tree's root.
func (t *PathTree) Root() int { return t.root }

// NodeID returns the graph node id stored at arena index i.
func (t *PathTree) NodeID(i int) string { return t.nodes[i].id }

// KindOf returns the tag of the node at arena index i.
func (t *PathTree) KindOf(i int) Kind { return t.nodes[i].kind }

// ChildIndices returns the children of i in order: the single continuation
// of a chain, the branch set of an AND join, nothing for a leaf.
func (t *PathTree) ChildIndices(i int) []int {
	n := t.nodes[i]
	switch n.kind {
	case KindChain:
		return []int{n.child}
	case KindAndJoin:
		return n.branches
	default:
		return nil
	}
}

// Splitter decomposes merged forest trees into independent path trees at OR
// branch points, leaving AND joins intact.
type Splitter struct {
	g *graph.Graph
}

// NewSplitter returns a Splitter that resolves AND semantics through g.
func NewSplitter(g *graph.Graph) *Splitter {
	return &Splitter{g: g}
}

// SplitForest splits every tree of the forest and concatenates the results.
func (s *Splitter) SplitForest(f *Forest) []*PathTree {
	var out []*PathTree
	for _, root := range f.Roots() {
		out = append(out, s.split(f, root)...)
	}
	return out
}

// split returns the independent path trees under idx. Every call returns its
// own freshly built trees; callers merge them explicitly, nothing is
// accumulated through shared state.
//
// An AND-gate node re-attaches the split results of all its children as the
// branch set of a single tree: AND branches co-occur by definition and never
// split apart. An ordinary node with several children is an OR point; each
// split child becomes its own tree re-rooted at this node. A tree without an
// OR point at any ordinary node therefore survives splitting unchanged.
func (s *Splitter) split(f *Forest, idx int) []*PathTree {
	id := f.ID(idx)
	children := f.Children(idx)

	if len(children) == 0 {
		t := &PathTree{}
		t.root = t.add(pathNode{id: id, kind: KindLeaf})
		return []*PathTree{t}
	}

	if s.isAndGate(id) {
		t := &PathTree{}
		var branches []int
		for _, c := range children {
			for _, sub := range s.split(f, c) {
				branches = append(branches, t.graft(sub, sub.root))
			}
		}
		t.root = t.add(pathNode{id: id, kind: KindAndJoin, branches: branches})
		return []*PathTree{t}
	}

	var out []*PathTree
	for _, c := range children {
		for _, sub := range s.split(f, c) {
			t := &PathTree{}
			child := t.graft(sub, sub.root)
			t.root = t.add(pathNode{id: id, kind: KindChain, child: child})
			out = append(out, t)
		}
	}
	return out
}

func (s *Splitter) isAndGate(id string) bool {
	t, ok := s.g.NodeType(id)
	return ok && t == graph.TypeAndGate
}
