// Package overlay is the Customization Overlay: per-external-ID fixed-size
// overrides that persist across style re-installs (a host re-sending a
// node's style via AddNodes must not clobber a size the host separately
// pinned via SetNodeSize).
//
// Grounded on the original's LayoutManager::set_node_size, which records
// the override in a side map and re-applies it to min/preferred/max on both
// axes every time that node's style is (re)installed.
package overlay

import (
	"github.com/krispeckt/layoutbridge/node"
	"github.com/krispeckt/layoutbridge/style"
)

// Override is a fixed-size customization pinned for one node, in layout
// units, independent of whatever size its authored style carries.
type Override struct {
	Width, Height float32
}

// Overlay owns the set of active per-node size overrides for one manager.
type Overlay struct {
	sizes map[node.ExternalID]Override
}

// New constructs an empty Overlay.
func New() *Overlay {
	return &Overlay{sizes: make(map[node.ExternalID]Override)}
}

// Set records (or replaces) a fixed-size override for a node.
func (o *Overlay) Set(ext node.ExternalID, width, height float32) {
	o.sizes[ext] = Override{Width: width, Height: height}
}

// Clear removes any override for a node — used when a node is removed from
// the tree so a later re-add under the same external ID starts clean.
func (o *Overlay) Clear(ext node.ExternalID) {
	delete(o.sizes, ext)
}

// Get returns the active override for a node, if any.
func (o *Overlay) Get(ext node.ExternalID) (Override, bool) {
	v, ok := o.sizes[ext]
	return v, ok
}

// Apply clamps a resolved style's size, min-size, and max-size on both axes
// to an active override, if one is set for this node. It is called every
// time a node's style is (re)installed, so the override survives restyles.
func Apply(ext node.ExternalID, o *Overlay, r style.Resolved) style.Resolved {
	ov, ok := o.Get(ext)
	if !ok {
		return r
	}
	r.Size.Width = style.Pt(ov.Width)
	r.Size.Height = style.Pt(ov.Height)
	r.MinSize.Width = style.Pt(ov.Width)
	r.MinSize.Height = style.Pt(ov.Height)
	r.MaxSize.Width = style.Pt(ov.Width)
	r.MaxSize.Height = style.Pt(ov.Height)
	return r
}
