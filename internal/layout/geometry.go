package layout

// Rect is a cell rectangle inside the project screen body.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// interiorMargin is the fraction of a leaf's width/height on each side that
// counts as an edge band; drops inside the remaining interior swap contents.
const interiorMargin = 0.25

// Rects lays the tree out over a w x h area and returns a rectangle for
// every node, splits included.
func (t *Tree) Rects(w, h int) map[NodeID]Rect {
	out := make(map[NodeID]Rect)
	if t == nil || w <= 0 || h <= 0 {
		return out
	}
	t.layout(t.root, Rect{W: w, H: h}, out)
	return out
}

// LeafRects is Rects restricted to leaves, in display order.
func (t *Tree) LeafRects(w, h int) []LeafRect {
	rects := t.Rects(w, h)
	leaves := t.Leaves()
	out := make([]LeafRect, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, LeafRect{Leaf: leaf, Rect: rects[leaf.ID]})
	}
	return out
}

// LeafRect pairs a leaf with its on-screen rectangle.
type LeafRect struct {
	Leaf
	Rect Rect
}

func (t *Tree) layout(i int, r Rect, out map[NodeID]Rect) {
	if i < 0 || i >= len(t.nodes) || !t.nodes[i].live {
		return
	}
	out[t.id(i)] = r
	n := t.nodes[i]
	if !n.split {
		return
	}
	a, b := splitRect(r, n.axis, n.ratio)
	t.layout(n.first, a, out)
	t.layout(n.second, b, out)
}

func splitRect(r Rect, axis Axis, ratio float64) (Rect, Rect) {
	if axis == AxisVertical {
		first := firstSpan(r.W, ratio)
		return Rect{X: r.X, Y: r.Y, W: first, H: r.H},
			Rect{X: r.X + first, Y: r.Y, W: r.W - first, H: r.H}
	}
	first := firstSpan(r.H, ratio)
	return Rect{X: r.X, Y: r.Y, W: r.W, H: first},
		Rect{X: r.X, Y: r.Y + first, W: r.W, H: r.H - first}
}

func firstSpan(total int, ratio float64) int {
	span := int(float64(total)*ratio + 0.5)
	if total >= 2 {
		if span < 1 {
			span = 1
		}
		if span > total-1 {
			span = total - 1
		}
	}
	return span
}

// HitTest resolves a drop point to a target leaf and edge. Points in the
// interior of a leaf resolve to EdgeCenter even when an edge band of a
// neighbouring region would also apply.
func (t *Tree) HitTest(x, y, w, h int) (DropTarget, bool) {
	for _, lr := range t.LeafRects(w, h) {
		r := lr.Rect
		if r.Empty() || !r.Contains(x, y) {
			continue
		}
		fx := (float64(x-r.X) + 0.5) / float64(r.W)
		fy := (float64(y-r.Y) + 0.5) / float64(r.H)
		if fx >= interiorMargin && fx <= 1-interiorMargin && fy >= interiorMargin && fy <= 1-interiorMargin {
			return DropTarget{Leaf: lr.ID, Edge: EdgeCenter}, true
		}
		edge, best := EdgeLeft, fx
		if d := 1 - fx; d < best {
			edge, best = EdgeRight, d
		}
		if fy < best {
			edge, best = EdgeTop, fy
		}
		if d := 1 - fy; d < best {
			edge = EdgeBottom
		}
		return DropTarget{Leaf: lr.ID, Edge: edge}, true
	}
	return DropTarget{}, false
}

// DividerAt returns the innermost split whose divider touches (x, y). The
// divider is the pair of cells on either side of the boundary.
func (t *Tree) DividerAt(x, y, w, h int) (NodeID, bool) {
	rects := t.Rects(w, h)
	var (
		found NodeID
		area  = -1
	)
	for _, s := range t.Splits() {
		r := rects[s.ID]
		if r.Empty() || !r.Contains(x, y) {
			continue
		}
		a, _ := splitRect(r, s.Axis, s.Ratio)
		hit := false
		if s.Axis == AxisVertical {
			boundary := a.X + a.W
			hit = x == boundary || x == boundary-1
		} else {
			boundary := a.Y + a.H
			hit = y == boundary || y == boundary-1
		}
		if !hit {
			continue
		}
		if size := r.W * r.H; area < 0 || size < area {
			found, area = s.ID, size
		}
	}
	return found, area >= 0
}

// RatioAt converts a pointer position into a ratio for split.
func (t *Tree) RatioAt(split NodeID, x, y, w, h int) (float64, bool) {
	i, ok := t.lookup(split)
	if !ok || !t.nodes[i].split {
		return 0, false
	}
	r := t.Rects(w, h)[split]
	if r.Empty() {
		return 0, false
	}
	if t.nodes[i].axis == AxisVertical {
		return clampRatio(float64(x-r.X) / float64(r.W)), true
	}
	return clampRatio(float64(y-r.Y) / float64(r.H)), true
}
