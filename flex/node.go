// Package flex is the Flex Engine Wrapper: a small flexbox solver operating
// on a tree of internal node handles, plus the measure-callback capability
// for leaf nodes whose intrinsic size comes from the host (e.g. text).
//
// Grounded on glimo's instructions/auto_layout.go — computeInner,
// baseMainCross, placeLines' flex grow/shrink remainder distribution (floor
// + largest-fractional-part), and the justify/align offset math are all the
// same shape as that file, generalized from int pixels to float32 layout
// units, from single-line to recursive (children may themselves be
// containers whose percentages depend on this node's resolved size), and
// extended with the measure-callback re-entrance spec.md requires. Line
// wrapping is intentionally not implemented: the host design tool this
// engine serves never emits multi-line flex containers (SPEC_FULL.md §6.4).
package flex

import "github.com/krispeckt/layoutbridge/style"

// NodeID is an internal engine node handle — distinct from the host's
// external node IDs, which the node.Table in the node package maps to
// these.
type NodeID int32

// NoNode is the sentinel for "no such node" / "no parent".
const NoNode NodeID = -1

// MeasureFunc is the host-supplied measure callback for a leaf node. It is
// invoked synchronously during layout compute. knownWidth/knownHeight are
// -1 when the node has no definite size on that axis; availWidth/availHeight
// are MaxContentValue when the available space on that axis is indefinite
// (unbounded). The solver never passes a MinContent (0) constraint.
type MeasureFunc func(knownWidth, knownHeight float32, availWidth, availHeight float32) (width, height float32)

// MaxContentValue stands in for taffy's AvailableSpace::MaxContent when
// calling into a MeasureFunc — effectively "unbounded".
const MaxContentValue float32 = 3.4e38

// Layout is the solved box for one node: position relative to its parent's
// top-left corner (the parent's padding included), border-box size, and the content-box extent (used by the
// Change Tracker's Layout struct and exposed to the host).
type Layout struct {
	// Order is the node's index among its parent's children in the order
	// the host declared them — its z-position for stacking purposes. It is
	// assigned by the parent's placement pass and is independent of
	// flex-direction reversal, which only affects visual position. A root
	// node (no parent) always keeps Order 0.
	Order                        int32
	X, Y                        float32
	Width, Height                float32
	ContentWidth, ContentHeight float32
}

// node is the engine's internal representation of one tree node.
type node struct {
	id       NodeID
	parent   NodeID
	children []NodeID
	style    style.Resolved
	measure  MeasureFunc
	layout   Layout
	hasLayout bool
}
