package layout

import (
	"math/rand"
	"sort"
	"testing"
)

func contents(t *Tree) []Pane {
	leaves := t.Leaves()
	out := make([]Pane, len(leaves))
	for i, leaf := range leaves {
		out[i] = leaf.Content
	}
	return out
}

func sortedContents(t *Tree) []Pane {
	out := contents(t)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func mustFind(t *testing.T, tree *Tree, content Pane) NodeID {
	t.Helper()
	id, ok := tree.Find(content)
	if !ok {
		t.Fatalf("expected leaf showing %s", content)
	}
	return id
}

func TestCanonicalLayout(t *testing.T) {
	tree := Canonical()
	if err := tree.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got := contents(tree)
	want := []Pane{PaneFileList, PaneDataEntry, PaneViewer}
	if len(got) != len(want) {
		t.Fatalf("expected %d leaves, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected leaves %v, got %v", want, got)
		}
	}
	splits := tree.Splits()
	if len(splits) != 2 {
		t.Fatalf("expected 2 splits, got %d", len(splits))
	}
	if splits[0].Axis != AxisVertical || splits[1].Axis != AxisHorizontal {
		t.Fatalf("unexpected split axes %#v", splits)
	}
}

func TestNewSingleLeaf(t *testing.T) {
	tree := New(PaneViewer)
	if tree.Len() != 1 {
		t.Fatalf("expected a single leaf, got %d", tree.Len())
	}
	if !tree.IsLeaf(tree.Root()) {
		t.Fatalf("expected root to be a leaf")
	}
	if tree.Remove(tree.Root()) {
		t.Fatalf("expected last leaf removal to be refused")
	}
}

func TestResizeClampsAndIgnoresUnknownIDs(t *testing.T) {
	tree := Canonical()
	root := tree.Root()
	if !tree.Resize(root, 2) {
		t.Fatalf("expected resize to apply")
	}
	if r, _ := tree.Ratio(root); r != MaxRatio {
		t.Fatalf("expected ratio clamped to %v, got %v", MaxRatio, r)
	}
	tree.Resize(root, -3)
	if r, _ := tree.Ratio(root); r != MinRatio {
		t.Fatalf("expected ratio clamped to %v, got %v", MinRatio, r)
	}
	if tree.Resize(NodeID{}, 0.3) {
		t.Fatalf("expected zero id to be ignored")
	}
	leaf := mustFind(t, tree, PaneViewer)
	if tree.Resize(leaf, 0.3) {
		t.Fatalf("expected resize of a leaf to be ignored")
	}
	if tree.Len() != 3 {
		t.Fatalf("expected resize to keep leaves, got %d", tree.Len())
	}
}

func TestResizeStaleSplitAfterRemove(t *testing.T) {
	tree := Canonical()
	data := mustFind(t, tree, PaneDataEntry)
	parent, ok := tree.Parent(data)
	if !ok {
		t.Fatalf("expected data entry to have a parent split")
	}
	if !tree.Remove(data) {
		t.Fatalf("expected remove to succeed")
	}
	if tree.Resize(parent, 0.3) {
		t.Fatalf("expected stale split id to be ignored")
	}
	if tree.Contains(data) {
		t.Fatalf("expected removed leaf id to be stale")
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSwapExchangesContents(t *testing.T) {
	tree := Canonical()
	files := mustFind(t, tree, PaneFileList)
	viewer := mustFind(t, tree, PaneViewer)
	if !tree.Swap(files, viewer) {
		t.Fatalf("expected swap to apply")
	}
	if c, _ := tree.Content(files); c != PaneViewer {
		t.Fatalf("expected first leaf to show viewer, got %s", c)
	}
	if c, _ := tree.Content(viewer); c != PaneFileList {
		t.Fatalf("expected last leaf to show file list, got %s", c)
	}
	if tree.Swap(files, files) {
		t.Fatalf("expected self swap to be a no-op")
	}
}

func TestMoveToBottomEdge(t *testing.T) {
	tree := Canonical()
	data := mustFind(t, tree, PaneDataEntry)
	viewer := mustFind(t, tree, PaneViewer)
	if !tree.Move(viewer, data, EdgeBottom) {
		t.Fatalf("expected move to apply")
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !tree.Contains(viewer) || !tree.Contains(data) {
		t.Fatalf("expected moved leaves to keep their ids")
	}
	splits := tree.Splits()
	if len(splits) != 2 || splits[0].Axis != AxisHorizontal || splits[1].Axis != AxisHorizontal {
		t.Fatalf("expected two horizontal splits, got %#v", splits)
	}
	got := contents(tree)
	if got[0] != PaneFileList || got[1] != PaneDataEntry || got[2] != PaneViewer {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestMoveToLeadingEdge(t *testing.T) {
	tree := Canonical()
	files := mustFind(t, tree, PaneFileList)
	viewer := mustFind(t, tree, PaneViewer)
	if !tree.DragSwap(viewer, DropTarget{Leaf: files, Edge: EdgeLeft}) {
		t.Fatalf("expected drag to apply")
	}
	got := contents(tree)
	if got[0] != PaneViewer || got[1] != PaneFileList || got[2] != PaneDataEntry {
		t.Fatalf("unexpected order %v", got)
	}
	parent, _ := tree.Parent(viewer)
	if p2, _ := tree.Parent(files); p2 != parent {
		t.Fatalf("expected viewer and file list to share a split")
	}
}

func TestDragOntoSelfIsNoop(t *testing.T) {
	tree := Canonical()
	viewer := mustFind(t, tree, PaneViewer)
	before := tree.Splits()
	for _, edge := range []Edge{EdgeCenter, EdgeLeft, EdgeTop} {
		if tree.DragSwap(viewer, DropTarget{Leaf: viewer, Edge: edge}) {
			t.Fatalf("expected drop onto self (%s) to be ignored", edge)
		}
	}
	if len(tree.Splits()) != len(before) {
		t.Fatalf("expected structure unchanged")
	}
}

func TestResetInvalidatesOldIDs(t *testing.T) {
	tree := New(PaneViewer)
	old := tree.Root()
	tree.Reset(Canonical())
	if tree.Contains(old) {
		t.Fatalf("expected ids issued before reset to be stale")
	}
	if tree.Len() != 3 {
		t.Fatalf("expected canonical leaves after reset, got %d", tree.Len())
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	tree.Reset(tree)
	if tree.Len() != 3 {
		t.Fatalf("expected self reset to keep the layout, got %d", tree.Len())
	}
}

func TestRandomOperationsPreserveInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := Canonical()
	want := sortedContents(tree)
	edges := []Edge{EdgeCenter, EdgeLeft, EdgeRight, EdgeTop, EdgeBottom}
	for step := 0; step < 500; step++ {
		leaves := tree.Leaves()
		splits := tree.Splits()
		switch rng.Intn(3) {
		case 0:
			if len(splits) > 0 {
				s := splits[rng.Intn(len(splits))]
				tree.Resize(s.ID, rng.Float64()*1.4-0.2)
			}
		case 1:
			a := leaves[rng.Intn(len(leaves))]
			b := leaves[rng.Intn(len(leaves))]
			tree.Swap(a.ID, b.ID)
		case 2:
			a := leaves[rng.Intn(len(leaves))]
			b := leaves[rng.Intn(len(leaves))]
			tree.DragSwap(a.ID, DropTarget{Leaf: b.ID, Edge: edges[rng.Intn(len(edges))]})
		}
		if err := tree.Validate(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		got := sortedContents(tree)
		if len(got) != len(want) {
			t.Fatalf("step %d: leaf count changed to %d", step, len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("step %d: contents changed to %v", step, got)
			}
		}
	}
}

func TestSplitRefusesPaneAlreadyShown(t *testing.T) {
	tree := Canonical()
	files := mustFind(t, tree, PaneFileList)
	if _, ok := tree.Split(files, AxisVertical, PaneFileList, 0.5); ok {
		t.Fatalf("expected split with a shown pane to be refused")
	}
	if _, ok := tree.Split(files, AxisVertical, PaneViewer, 0.5); ok {
		t.Fatalf("expected split with another shown pane to be refused")
	}
	if tree.Len() != 3 {
		t.Fatalf("expected 3 leaves, got %v", contents(tree))
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	single := New(PaneFileList)
	if _, ok := single.Split(single.Root(), AxisHorizontal, PaneViewer, 0.5); !ok {
		t.Fatalf("expected split with a new pane to succeed")
	}
}

func TestValidateRejectsDuplicateLeaves(t *testing.T) {
	tree := Canonical()
	viewer := mustFind(t, tree, PaneViewer)
	tree.nodes[viewer.index].content = PaneFileList
	if err := tree.Validate(); err == nil {
		t.Fatalf("expected duplicate leaf contents to fail validation")
	}
}
