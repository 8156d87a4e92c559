// Package node is the Node Table: the bidirectional map between a host's
// stable external node IDs and the flex engine's internal node handles,
// plus the debug-name map and the set of IDs registered as subtree roots.
//
// Grounded on the original's LayoutManager node_id / view maps
// (dc_layout/src/layout_manager.rs) — a plain HashMap pair kept in lockstep,
// generalized here into one small owning type so the manager package
// doesn't have to juggle two maps itself.
package node

import "github.com/krispeckt/layoutbridge/flex"

// ExternalID is the host-assigned stable integer ID for a node. -1 denotes
// "no parent" / "not a registered node".
type ExternalID int32

// NoParent is the sentinel external ID meaning "this node has no parent" —
// i.e. it is a subtree root.
const NoParent ExternalID = -1

// Table is the bidirectional external-ID <-> internal-handle map for one
// manager's node tree(s).
type Table struct {
	toInternal map[ExternalID]flex.NodeID
	toExternal map[flex.NodeID]ExternalID
	names      map[ExternalID]string
	roots      map[ExternalID]bool
}

// NewTable constructs an empty Table.
func NewTable() *Table {
	return &Table{
		toInternal: make(map[ExternalID]flex.NodeID),
		toExternal: make(map[flex.NodeID]ExternalID),
		names:      make(map[ExternalID]string),
		roots:      make(map[ExternalID]bool),
	}
}

// Insert records the mapping between a host's external ID and the internal
// node handle the flex tree allocated for it.
func (t *Table) Insert(ext ExternalID, internal flex.NodeID) {
	t.toInternal[ext] = internal
	t.toExternal[internal] = ext
}

// Internal looks up the internal node handle for an external ID.
func (t *Table) Internal(ext ExternalID) (flex.NodeID, bool) {
	id, ok := t.toInternal[ext]
	return id, ok
}

// External looks up the external ID for an internal node handle.
func (t *Table) External(internal flex.NodeID) (ExternalID, bool) {
	ext, ok := t.toExternal[internal]
	return ext, ok
}

// SetName records a debug name for an external ID (optional, host-supplied).
func (t *Table) SetName(ext ExternalID, name string) {
	if name == "" {
		return
	}
	t.names[ext] = name
}

// Name returns the debug name recorded for an external ID, if any.
func (t *Table) Name(ext ExternalID) (string, bool) {
	n, ok := t.names[ext]
	return n, ok
}

// MarkRoot records that an external ID is a registered subtree root.
func (t *Table) MarkRoot(ext ExternalID) { t.roots[ext] = true }

// UnmarkRoot clears a root registration.
func (t *Table) UnmarkRoot(ext ExternalID) { delete(t.roots, ext) }

// IsRoot reports whether an external ID is a registered subtree root.
func (t *Table) IsRoot(ext ExternalID) bool { return t.roots[ext] }

// Remove purges every map entry for an external ID. It does not touch the
// flex.Tree itself — callers remove the engine node separately.
func (t *Table) Remove(ext ExternalID) {
	if internal, ok := t.toInternal[ext]; ok {
		delete(t.toExternal, internal)
	}
	delete(t.toInternal, ext)
	delete(t.names, ext)
	delete(t.roots, ext)
}

// Externals returns every external ID currently registered, in no
// particular order.
func (t *Table) Externals() []ExternalID {
	out := make([]ExternalID, 0, len(t.toInternal))
	for ext := range t.toInternal {
		out = append(out, ext)
	}
	return out
}

// Len reports how many nodes are currently registered.
func (t *Table) Len() int { return len(t.toInternal) }
