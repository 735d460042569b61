package paths

// Forest merges raw path branches into prefix-shared trees, one tree per
// distinct first element observed among the branches. Tree nodes live in a
// single arena and refer to each other by index; there is no aliasing
// between trees and no pointer-shaped sharing to reason about.
type Forest struct {
	nodes []forestNode
	roots []int
}

type forestNode struct {
	id       string
	children []int
}

// BuildForest merges branches front-to-back: a child with the same id at the
// same position is reused, anything new grows the tree. Identical sub-chains
// that recur across branches (reconverging OR alternatives, shared AND
// spines) collapse into one prefix.
func BuildForest(branches [][]string) *Forest {
	f := &Forest{}
	rootIndex := make(map[string]int)

	for _, branch := range branches {
		if len(branch) == 0 {
			continue
		}

		root, ok := rootIndex[branch[0]]
		if !ok {
			root = f.alloc(branch[0])
			rootIndex[branch[0]] = root
			f.roots = append(f.roots, root)
		}

		cur := root
		for _, id := range branch[1:] {
			next := f.findChild(cur, id)
			if next < 0 {
				next = f.alloc(id)
				f.nodes[cur].children = append(f.nodes[cur].children, next)
			}
			cur = next
		}
	}

	return f
}

func (f *Forest) alloc(id string) int {
	f.nodes = append(f.nodes, forestNode{id: id})
	return len(f.nodes) - 1
}

func (f *Forest) findChild(parent int, id string) int {
	for _, c := range f.nodes[parent].children {
		if f.nodes[c].id == id {
			return c
		}
	}
	return -1
}

// Roots returns the arena indices of the merged trees in first-seen order.
// Branches produced for a single target share their first element, so the
// usual case is exactly one root.
func (f *Forest) Roots() []int { return f.roots }

// ID returns the graph node id stored at arena index i.
func (f *Forest) ID(i int) string { return f.nodes[i].id }

// Children returns the arena indices of i's children in insertion order.
func (f *Forest) Children(i int) []int { return f.nodes[i].children }

// Size returns the number of tree nodes in the arena.
func (f *Forest) Size() int { return len(f.nodes) }
