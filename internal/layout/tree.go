package layout

import (
	"errors"
	"fmt"
	"math"
)

const noNode = -1

type node struct {
	gen     uint32
	live    bool
	split   bool
	axis    Axis
	ratio   float64
	first   int
	second  int
	parent  int
	content Pane
}

// Tree is a non-empty binary tree of panes. Re-parenting rewrites arena
// indices in place; removed slots are recycled with a bumped generation.
type Tree struct {
	nodes []node
	free  []int
	root  int
}

// New returns a tree holding a single leaf.
func New(content Pane) *Tree {
	t := &Tree{root: noNode}
	t.root = t.allocLeaf(content, noNode)
	return t
}

// Canonical returns the layout installed whenever a project opens:
// FileList above DataEntry on the left, Viewer on the right.
func Canonical() *Tree {
	t := New(PaneFileList)
	files := t.Root()
	t.Split(files, AxisVertical, PaneViewer, defaultRatio)
	t.Split(files, AxisHorizontal, PaneDataEntry, defaultRatio)
	return t
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return t.id(t.root)
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.Leaves())
}

// Leaves returns every leaf in display order (first child before second).
func (t *Tree) Leaves() []Leaf {
	out := make([]Leaf, 0, 4)
	t.walk(t.root, func(i int) {
		if !t.nodes[i].split {
			out = append(out, Leaf{ID: t.id(i), Content: t.nodes[i].content})
		}
	})
	return out
}

// Splits returns every split in pre-order.
func (t *Tree) Splits() []Split {
	var out []Split
	t.walk(t.root, func(i int) {
		n := t.nodes[i]
		if n.split {
			out = append(out, Split{ID: t.id(i), Axis: n.axis, Ratio: n.ratio})
		}
	})
	return out
}

// Contains reports whether id still addresses a node in the tree.
func (t *Tree) Contains(id NodeID) bool {
	_, ok := t.lookup(id)
	return ok
}

// IsLeaf reports whether id addresses a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	i, ok := t.lookup(id)
	return ok && !t.nodes[i].split
}

// Content returns the pane held by a leaf.
func (t *Tree) Content(id NodeID) (Pane, bool) {
	i, ok := t.lookup(id)
	if !ok || t.nodes[i].split {
		return 0, false
	}
	return t.nodes[i].content, true
}

// Ratio returns a split's ratio.
func (t *Tree) Ratio(id NodeID) (float64, bool) {
	i, ok := t.lookup(id)
	if !ok || !t.nodes[i].split {
		return 0, false
	}
	return t.nodes[i].ratio, true
}

// Parent returns the split that directly contains id.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	i, ok := t.lookup(id)
	if !ok || t.nodes[i].parent == noNode {
		return NodeID{}, false
	}
	return t.id(t.nodes[i].parent), true
}

// Find returns the first leaf showing content.
func (t *Tree) Find(content Pane) (NodeID, bool) {
	for _, leaf := range t.Leaves() {
		if leaf.Content == content {
			return leaf.ID, true
		}
	}
	return NodeID{}, false
}

// Split turns leaf into a split whose second child is a new leaf showing
// content. It returns the new leaf's id. A pane already shown by another
// leaf is refused.
func (t *Tree) Split(leaf NodeID, axis Axis, content Pane, ratio float64) (NodeID, bool) {
	i, ok := t.lookup(leaf)
	if !ok || t.nodes[i].split {
		return NodeID{}, false
	}
	if _, dup := t.Find(content); dup {
		return NodeID{}, false
	}
	fresh := t.allocLeaf(content, noNode)
	t.splitAt(i, fresh, axis, false, ratio)
	return t.id(fresh), true
}

// Resize sets a split's ratio, clamped to [MinRatio, MaxRatio]. Unknown or
// stale ids are ignored.
func (t *Tree) Resize(split NodeID, ratio float64) bool {
	i, ok := t.lookup(split)
	if !ok || !t.nodes[i].split || math.IsNaN(ratio) {
		return false
	}
	ratio = clampRatio(ratio)
	if t.nodes[i].ratio == ratio {
		return false
	}
	t.nodes[i].ratio = ratio
	return true
}

// Swap exchanges the contents of two leaves.
func (t *Tree) Swap(a, b NodeID) bool {
	ia, okA := t.lookup(a)
	ib, okB := t.lookup(b)
	if !okA || !okB || ia == ib || t.nodes[ia].split || t.nodes[ib].split {
		return false
	}
	t.nodes[ia].content, t.nodes[ib].content = t.nodes[ib].content, t.nodes[ia].content
	return true
}

// Move detaches source and re-attaches it beside target on the given edge.
// EdgeCenter swaps contents instead. Both leaves keep their ids.
func (t *Tree) Move(source, target NodeID, edge Edge) bool {
	if edge == EdgeCenter {
		return t.Swap(source, target)
	}
	is, okS := t.lookup(source)
	it, okT := t.lookup(target)
	if !okS || !okT || is == it || t.nodes[is].split || t.nodes[it].split {
		return false
	}
	if t.nodes[is].parent == noNode {
		return false
	}
	t.detach(is)
	t.splitAt(it, is, edge.axis(), edge.leading(), defaultRatio)
	return true
}

// DragSwap applies a resolved drop: swap on the interior, re-split on an
// edge. Dropping a leaf onto itself does nothing.
func (t *Tree) DragSwap(source NodeID, target DropTarget) bool {
	return t.Move(source, target.Leaf, target.Edge)
}

// Remove drops a leaf and lets its sibling take the parent's place. The last
// leaf cannot be removed.
func (t *Tree) Remove(leaf NodeID) bool {
	i, ok := t.lookup(leaf)
	if !ok || t.nodes[i].split || t.nodes[i].parent == noNode {
		return false
	}
	t.detach(i)
	t.release(i)
	return true
}

// Reset replaces the whole tree with a copy of src. Every id issued before
// the reset stops matching.
func (t *Tree) Reset(src *Tree) {
	if src == nil || src.root == noNode {
		src = New(PaneFileList)
	}
	if src == t {
		src = t.Clone()
	}
	for i := range t.nodes {
		if t.nodes[i].live {
			t.release(i)
		}
	}
	t.root = t.graft(src, src.root, noNode)
}

// Clone returns an independent copy with identical ids.
func (t *Tree) Clone() *Tree {
	clone := &Tree{root: t.root}
	clone.nodes = append([]node(nil), t.nodes...)
	clone.free = append([]int(nil), t.free...)
	return clone
}

// Validate checks the structural invariants: a live root, ratios inside
// (0,1), consistent parent links, no orphaned nodes and no pane shown by
// two leaves.
func (t *Tree) Validate() error {
	if t == nil {
		return errors.New("layout: nil tree")
	}
	if t.root < 0 || t.root >= len(t.nodes) || !t.nodes[t.root].live {
		return errors.New("layout: tree has no root")
	}
	if t.nodes[t.root].parent != noNode {
		return errors.New("layout: root has a parent")
	}
	seen := make(map[int]bool)
	shown := make(map[Pane]int)
	var check func(i int) error
	check = func(i int) error {
		if i < 0 || i >= len(t.nodes) || !t.nodes[i].live {
			return fmt.Errorf("layout: dangling child %d", i)
		}
		if seen[i] {
			return fmt.Errorf("layout: node %d reachable twice", i)
		}
		seen[i] = true
		n := t.nodes[i]
		if !n.split {
			if other, dup := shown[n.content]; dup {
				return fmt.Errorf("layout: leaves %d and %d both show %s", other, i, n.content)
			}
			shown[n.content] = i
			return nil
		}
		if !(n.ratio > 0 && n.ratio < 1) {
			return fmt.Errorf("layout: split %d ratio %v outside (0,1)", i, n.ratio)
		}
		for _, c := range []int{n.first, n.second} {
			if c >= 0 && c < len(t.nodes) && t.nodes[c].parent != i {
				return fmt.Errorf("layout: child %d does not point back to %d", c, i)
			}
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(t.root); err != nil {
		return err
	}
	live := 0
	for _, n := range t.nodes {
		if n.live {
			live++
		}
	}
	if live != len(seen) {
		return fmt.Errorf("layout: %d live nodes but %d reachable", live, len(seen))
	}
	return nil
}

func (t *Tree) id(i int) NodeID {
	if i < 0 || i >= len(t.nodes) || !t.nodes[i].live {
		return NodeID{}
	}
	return NodeID{index: i, gen: t.nodes[i].gen}
}

func (t *Tree) lookup(id NodeID) (int, bool) {
	if t == nil || !id.Valid() || id.index < 0 || id.index >= len(t.nodes) {
		return 0, false
	}
	n := t.nodes[id.index]
	if !n.live || n.gen != id.gen {
		return 0, false
	}
	return id.index, true
}

func (t *Tree) alloc() int {
	var i int
	if n := len(t.free); n > 0 {
		i = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node{})
		i = len(t.nodes) - 1
	}
	gen := t.nodes[i].gen + 1
	t.nodes[i] = node{gen: gen, live: true, first: noNode, second: noNode, parent: noNode}
	return i
}

func (t *Tree) allocLeaf(content Pane, parent int) int {
	i := t.alloc()
	t.nodes[i].content = content
	t.nodes[i].parent = parent
	return i
}

func (t *Tree) release(i int) {
	t.nodes[i].live = false
	t.free = append(t.free, i)
}

// splitAt replaces leaf with a new split holding leaf and fresh.
func (t *Tree) splitAt(leaf, fresh int, axis Axis, freshFirst bool, ratio float64) {
	if math.IsNaN(ratio) {
		ratio = defaultRatio
	}
	parent := t.nodes[leaf].parent
	s := t.alloc()
	t.nodes[s].split = true
	t.nodes[s].axis = axis
	t.nodes[s].ratio = clampRatio(ratio)
	t.nodes[s].parent = parent
	if freshFirst {
		t.nodes[s].first, t.nodes[s].second = fresh, leaf
	} else {
		t.nodes[s].first, t.nodes[s].second = leaf, fresh
	}
	t.replaceChild(parent, leaf, s)
	t.nodes[leaf].parent = s
	t.nodes[fresh].parent = s
}

// detach unlinks a non-root leaf and collapses its parent split.
func (t *Tree) detach(i int) {
	p := t.nodes[i].parent
	sibling := t.nodes[p].first
	if sibling == i {
		sibling = t.nodes[p].second
	}
	grand := t.nodes[p].parent
	t.replaceChild(grand, p, sibling)
	t.nodes[sibling].parent = grand
	t.nodes[i].parent = noNode
	t.release(p)
}

func (t *Tree) replaceChild(parent, old, repl int) {
	if parent == noNode {
		t.root = repl
		return
	}
	if t.nodes[parent].first == old {
		t.nodes[parent].first = repl
	} else if t.nodes[parent].second == old {
		t.nodes[parent].second = repl
	}
}

func (t *Tree) graft(src *Tree, si, parent int) int {
	sn := src.nodes[si]
	i := t.alloc()
	t.nodes[i].parent = parent
	if !sn.split {
		t.nodes[i].content = sn.content
		return i
	}
	t.nodes[i].split = true
	t.nodes[i].axis = sn.axis
	t.nodes[i].ratio = sn.ratio
	first := t.graft(src, sn.first, i)
	second := t.graft(src, sn.second, i)
	t.nodes[i].first = first
	t.nodes[i].second = second
	return i
}

func (t *Tree) walk(i int, fn func(int)) {
	if t == nil || i < 0 || i >= len(t.nodes) || !t.nodes[i].live {
		return
	}
	fn(i)
	if t.nodes[i].split {
		t.walk(t.nodes[i].first, fn)
		t.walk(t.nodes[i].second, fn)
	}
}
