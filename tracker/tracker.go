// Package tracker is the Change Tracker: a monotonic layout-state counter
// plus a per-node Layout cache, used to compute the minimal set of changed
// nodes after a recompute — emitting a changed node's parent too, as a
// redraw anchor, exactly as the original's update_layout_internal does.
package tracker

import (
	"github.com/krispeckt/layoutbridge/flex"
	"github.com/krispeckt/layoutbridge/node"
)

// Tracker owns the layout_state counter and the last-seen Layout for every
// node this manager has computed.
type Tracker struct {
	state int64
	cache map[node.ExternalID]flex.Layout
}

// New constructs an empty Tracker at layout_state 0.
func New() *Tracker {
	return &Tracker{cache: make(map[node.ExternalID]flex.Layout)}
}

// State returns the current layout_state.
func (t *Tracker) State() int64 { return t.state }

func layoutsEqual(a, b flex.Layout) bool {
	return a.Order == b.Order && a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height &&
		a.ContentWidth == b.ContentWidth && a.ContentHeight == b.ContentHeight
}

// Commit increments layout_state by one (called once per successful
// compute_node_layout) and diffs the subtree rooted at rootInternal against
// the cache, returning the minimal set of changed nodes. When a node's
// Layout changed, its parent's (now-current) cached Layout is included too
// — even if the parent itself didn't change — so the host always has a
// redraw anchor for repositioned content (P5 / spec.md §8).
func (t *Tracker) Commit(tree *flex.Tree, table *node.Table, rootInternal flex.NodeID) map[node.ExternalID]flex.Layout {
	t.state++
	changed := make(map[node.ExternalID]flex.Layout)

	tree.Walk(rootInternal, func(id flex.NodeID) {
		ext, ok := table.External(id)
		if !ok {
			return
		}
		current, ok := tree.Layout(id)
		if !ok {
			return
		}
		prev, hadPrev := t.cache[ext]
		t.cache[ext] = current
		if hadPrev && layoutsEqual(prev, current) {
			return
		}
		changed[ext] = current

		if parent, err := tree.Parent(id); err == nil && parent != flex.NoNode {
			if parentExt, ok := table.External(parent); ok {
				if parentLayout, ok := t.cache[parentExt]; ok {
					changed[parentExt] = parentLayout
				}
			}
		}
	})

	return changed
}

// Forget purges a node's cache entry — called when a node is removed from
// the tree, so a later re-add under the same external ID is treated as new
// rather than diffed against a stale cached Layout.
func (t *Tracker) Forget(ext node.ExternalID) {
	delete(t.cache, ext)
}
