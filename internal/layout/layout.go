// Package layout holds the project screen's pane tree: a binary tree of
// splits stored in an arena and addressed by generation-stamped ids.
package layout

import "fmt"

// Pane names the content shown by a leaf.
type Pane int

const (
	PaneFileList Pane = iota
	PaneDataEntry
	PaneViewer
)

// Title returns the label shown in the pane's title bar.
func (p Pane) Title() string {
	switch p {
	case PaneFileList:
		return "File Tree"
	case PaneDataEntry:
		return "Metadata"
	case PaneViewer:
		return "Viewer"
	default:
		return "Pane"
	}
}

func (p Pane) String() string {
	switch p {
	case PaneFileList:
		return "filelist"
	case PaneDataEntry:
		return "dataentry"
	case PaneViewer:
		return "viewer"
	default:
		return fmt.Sprintf("pane(%d)", int(p))
	}
}

// Axis is the direction of a split's divider.
type Axis int

const (
	// AxisHorizontal stacks children top and bottom.
	AxisHorizontal Axis = iota
	// AxisVertical places children side by side.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Edge describes where a dragged pane lands relative to the target leaf.
type Edge int

const (
	EdgeCenter Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeCenter:
		return "center"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

func (e Edge) axis() Axis {
	switch e {
	case EdgeTop, EdgeBottom:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

func (e Edge) leading() bool {
	return e == EdgeLeft || e == EdgeTop
}

// NodeID addresses a node in a Tree. The zero value never matches a node,
// and an id stops matching once its node is removed from the tree.
type NodeID struct {
	index int
	gen   uint32
}

// Valid reports whether the id was ever issued by a tree.
func (id NodeID) Valid() bool {
	return id.gen != 0
}

func (id NodeID) String() string {
	if !id.Valid() {
		return "n-"
	}
	return fmt.Sprintf("n%d.%d", id.index, id.gen)
}

// DropTarget is the resolved destination of a pane drag.
type DropTarget struct {
	Leaf NodeID
	Edge Edge
}

// Leaf describes a leaf node.
type Leaf struct {
	ID      NodeID
	Content Pane
}

// Split describes an interior node.
type Split struct {
	ID    NodeID
	Axis  Axis
	Ratio float64
}

// Ratio bounds applied by Resize and Split.
const (
	MinRatio = 0.05
	MaxRatio = 0.95
)

const defaultRatio = 0.5

func clampRatio(r float64) float64 {
	if r < MinRatio {
		return MinRatio
	}
	if r > MaxRatio {
		return MaxRatio
	}
	return r
}
