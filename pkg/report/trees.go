package report

import (
	"fmt"
	"strings"

	"github.com/calista-labs/rulegraph/pkg/paths"
)

// RenderTrees writes the split path trees in the box-drawing text format
// used for manual inspection of a target's causal structure.
func RenderTrees(trees []*paths.PathTree, targetID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Path Trees: From each start to target %s ###\n", targetID)
	b.WriteString("========================================================\n\n")

	for i, t := range trees {
		fmt.Fprintf(&b, "--- Path Tree %d ---\n", i+1)
		fmt.Fprintf(&b, "%s\n", t.NodeID(t.Root()))
		children := t.ChildIndices(t.Root())
		for j, c := range children {
			renderSubtree(&b, t, c, "", j == len(children)-1)
		}
		b.WriteString("\n========================================================\n\n")
	}
	return b.String()
}

func renderSubtree(b *strings.Builder, t *paths.PathTree, idx int, prefix string, last bool) {
	connector := "├── "
	childPrefix := prefix + "│   "
	if last {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	fmt.Fprintf(b, "%s%s%s\n", prefix, connector, t.NodeID(idx))

	children := t.ChildIndices(idx)
	for j, c := range children {
		renderSubtree(b, t, c, childPrefix, j == len(children)-1)
	}
}
