package paths

import "testing"

func TestBuildForest_SharedPrefixMerges(t *testing.T) {
	branches := [][]string{
		{"T", "GATE", "X"},
		{"T", "GATE", "Y", "Z"},
	}
	f := BuildForest(branches)

	roots := f.Roots()
	if len(roots) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(roots))
	}
	if f.ID(roots[0]) != "T" {
		t.Errorf("Expected root T, got %s", f.ID(roots[0]))
	}

	// T and GATE are shared; X, Y, Z are distinct. 6 branch elements merge
	// into 5 tree nodes.
	if f.Size() != 5 {
		t.Errorf("Expected 5 arena nodes, got %d", f.Size())
	}

	gateChildren := f.Children(f.Children(roots[0])[0])
	if len(gateChildren) != 2 {
		t.Fatalf("Expected 2 children under the gate, got %d", len(gateChildren))
	}
	if f.ID(gateChildren[0]) != "X" || f.ID(gateChildren[1]) != "Y" {
		t.Errorf("Expected gate children [X Y], got [%s %s]",
			f.ID(gateChildren[0]), f.ID(gateChildren[1]))
	}
}

func TestBuildForest_DistinctRoots(t *testing.T) {
	branches := [][]string{
		{"T1", "A"},
		{"T2", "B"},
	}
	f := BuildForest(branches)

	roots := f.Roots()
	if len(roots) != 2 {
		t.Fatalf("Expected 2 roots, got %d", len(roots))
	}
	if f.ID(roots[0]) != "T1" || f.ID(roots[1]) != "T2" {
		t.Errorf("Expected roots [T1 T2], got [%s %s]", f.ID(roots[0]), f.ID(roots[1]))
	}
}

func TestBuildForest_IdenticalBranchesCollapse(t *testing.T) {
	branches := [][]string{
		{"T", "A", "B"},
		{"T", "A", "B"},
	}
	f := BuildForest(branches)

	if f.Size() != 3 {
		t.Errorf("Expected identical branches to share all nodes, got %d", f.Size())
	}
}

func TestBuildForest_EmptyInput(t *testing.T) {
	f := BuildForest(nil)

	if len(f.Roots()) != 0 || f.Size() != 0 {
		t.Errorf("Expected empty forest, got %d roots and %d nodes",
			len(f.Roots()), f.Size())
	}
}
