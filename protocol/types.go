// Package protocol is the Batch Protocol: the wire types a host sends to
// add/update a batch of nodes in one call, and the ChangedResponse the
// manager sends back after recomputing layout.
//
// Grounded on the original dc_jni::layout_manager's bincode-framed
// LayoutNodeList / LayoutChangedResponse, adapted to msgpack per
// SPEC_FULL.md §3 DOMAIN STACK.
package protocol

import "github.com/krispeckt/layoutbridge/style"

// LayoutNodeInput describes one node to add or update. ParentID and
// ChildIndex are only consulted when this is the node's first sighting —
// subsequent sightings of the same NodeID restyle in place and leave
// existing parent/child wiring untouched (spec.md §4.2/§4.7).
type LayoutNodeInput struct {
	NodeID     int32       `msgpack:"node_id"`
	ParentID   int32       `msgpack:"parent_id"`   // -1 = no parent (root)
	ChildIndex int32       `msgpack:"child_index"` // negative = not inserted; wiring comes from ParentChildren
	Name       string      `msgpack:"name"`
	UseMeasure bool        `msgpack:"use_measure"` // true => host wants the measure callback invoked for this node
	Style      style.Style `msgpack:"style"`
}

// ParentChildren replaces a parent's child list wholesale, applied after
// every node in the batch has been added/updated (spec.md §4.7 step 2).
// Any child ID not present in the batch or the existing tree is dropped.
type ParentChildren struct {
	ParentID int32   `msgpack:"parent_id"`
	ChildIDs []int32 `msgpack:"child_ids"`
}

// NodeList is the full request payload for AddNodes.
type NodeList struct {
	LayoutNodes    []LayoutNodeInput `msgpack:"layout_nodes"`
	ParentChildren []ParentChildren  `msgpack:"parent_children"`
}

// Layout is the wire form of a solved node box — the subset of flex.Layout
// exposed to hosts.
type Layout struct {
	Order         int32   `msgpack:"order"`
	X             float32 `msgpack:"x"`
	Y             float32 `msgpack:"y"`
	Width         float32 `msgpack:"width"`
	Height        float32 `msgpack:"height"`
	ContentWidth  float32 `msgpack:"content_width"`
	ContentHeight float32 `msgpack:"content_height"`
}

// ChangedResponse is returned by every External Interface operation that
// can trigger a recompute: the current monotonic layout_state, and the
// minimal set of nodes whose Layout changed (plus parent redraw anchors).
type ChangedResponse struct {
	LayoutState    int64           `msgpack:"layout_state"`
	ChangedLayouts map[int32]Layout `msgpack:"changed_layouts"`
}
