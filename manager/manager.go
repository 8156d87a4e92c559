package manager

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/krispeckt/layoutbridge/flex"
	"github.com/krispeckt/layoutbridge/node"
	"github.com/krispeckt/layoutbridge/overlay"
	"github.com/krispeckt/layoutbridge/protocol"
	"github.com/krispeckt/layoutbridge/style"
	"github.com/krispeckt/layoutbridge/tracker"
)

const defaultAvailableSpace float32 = 500

// Manager owns one flex tree, its Node Table, Customization Overlay, and
// Change Tracker, plus the bookkeeping batch-apply needs: the host's last
// raw Style per node (so an overlay change can be re-applied without the
// host resending it) and the per-root available space compute_node_layout
// should use.
type Manager struct {
	mu sync.Mutex

	tree    *flex.Tree
	table   *node.Table
	overlay *overlay.Overlay
	tracker *tracker.Tracker

	rawStyles map[node.ExternalID]style.Style
	availW    map[node.ExternalID]float32
	availH    map[node.ExternalID]float32

	defaultAvailWidth  float32
	defaultAvailHeight float32

	measureHost HostMeasureFunc
	log         *logrus.Logger
}

func newManager(opts ...Option) *Manager {
	m := &Manager{
		tree:               flex.NewTree(),
		table:               node.NewTable(),
		overlay:             overlay.New(),
		tracker:             tracker.New(),
		rawStyles:           make(map[node.ExternalID]style.Style),
		availW:              make(map[node.ExternalID]float32),
		availH:              make(map[node.ExternalID]float32),
		defaultAvailWidth:   defaultAvailableSpace,
		defaultAvailHeight:  defaultAvailableSpace,
		log:                 logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetMeasureCallback (re)registers the host's measure callback after
// creation.
func (m *Manager) SetMeasureCallback(fn HostMeasureFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.measureHost = fn
}

func (m *Manager) availSpaceFor(root node.ExternalID) (float32, float32) {
	w, okW := m.availW[root]
	h, okH := m.availH[root]
	if !okW {
		w = m.defaultAvailWidth
	}
	if !okH {
		h = m.defaultAvailHeight
	}
	return w, h
}

func (m *Manager) measureFor(ext node.ExternalID) flex.MeasureFunc {
	if m.measureHost == nil {
		return nil
	}
	host := m.measureHost
	id := int32(ext)
	return func(knownWidth, knownHeight, availWidth, availHeight float32) (float32, float32) {
		return host(id, knownWidth, knownHeight, availWidth, availHeight)
	}
}

// applyStyle translates and overlay-applies a host style for ext and returns
// the result; callers install it on the tree. Per-node translation
// failures are logged and skipped, never surfaced to the caller (spec.md
// §7).
func (m *Manager) applyStyle(ext node.ExternalID, hostStyle style.Style) (style.Resolved, bool) {
	resolved, err := style.Translate(hostStyle)
	if err != nil {
		m.log.WithField("external_id", int32(ext)).WithError(err).Warn("layoutbridge: skipping node with invalid style")
		return style.Resolved{}, false
	}
	resolved = overlay.Apply(ext, m.overlay, resolved)
	return resolved, true
}

// AddNodes applies a decoded batch: per-node add-or-update (best effort,
// recoverable), then ParentChildren wiring (unknown IDs dropped), then a
// recompute of rootExt and a Change Tracker diff.
//
// Grounded on the original's LayoutManager::add_view / set_node_layout plus
// update_layout_internal (dc_jni/src/layout_manager.rs, dc_layout's
// LayoutManager), generalized to a single batch call per spec.md §4.7.
func (m *Manager) AddNodes(rootExt node.ExternalID, nl protocol.NodeList) (protocol.ChangedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, in := range nl.LayoutNodes {
		ext := node.ExternalID(in.NodeID)

		if !in.Style.Display {
			m.log.WithField("external_id", int32(ext)).Debug("layoutbridge: node not displayed, skipping")
			continue
		}

		resolved, ok := m.applyStyle(ext, in.Style)
		if !ok {
			continue
		}
		m.rawStyles[ext] = in.Style

		internal, existed := m.table.Internal(ext)
		if existed {
			_ = m.tree.SetStyle(internal, resolved)
			if in.UseMeasure {
				_ = m.tree.SetMeasure(internal, m.measureFor(ext))
			} else {
				_ = m.tree.SetMeasure(internal, nil)
			}
			m.table.SetName(ext, in.Name)
			continue
		}

		var measure flex.MeasureFunc
		if in.UseMeasure {
			measure = m.measureFor(ext)
		}
		internal = m.tree.NewNode(resolved, measure)
		m.table.Insert(ext, internal)
		m.table.SetName(ext, in.Name)

		parentExt := node.ExternalID(in.ParentID)
		if parentExt == node.NoParent {
			m.table.MarkRoot(ext)
			continue
		}
		if parentInternal, ok := m.table.Internal(parentExt); ok && in.ChildIndex >= 0 {
			_ = m.tree.InsertChildAt(parentInternal, internal, int(in.ChildIndex))
		}
		// A missing parent, or a negative ChildIndex, defers wiring to the
		// batch's ParentChildren pass below.
	}

	for _, pc := range nl.ParentChildren {
		parentExt := node.ExternalID(pc.ParentID)
		parentInternal, ok := m.table.Internal(parentExt)
		if !ok {
			m.log.WithField("external_id", pc.ParentID).Warn("layoutbridge: parent_children names unknown parent, skipping")
			continue
		}
		children := make([]flex.NodeID, 0, len(pc.ChildIDs))
		for _, cid := range pc.ChildIDs {
			if internal, ok := m.table.Internal(node.ExternalID(cid)); ok {
				children = append(children, internal)
			}
		}
		_ = m.tree.SetChildren(parentInternal, children)
	}

	return m.recompute(rootExt)
}

// recompute resolves rootExt to an internal node, runs the solver against
// that root's recorded (or default) available space, and returns the
// Change Tracker diff. Must be called with mu held.
func (m *Manager) recompute(rootExt node.ExternalID) (protocol.ChangedResponse, error) {
	rootInternal, ok := m.table.Internal(rootExt)
	if !ok {
		return protocol.ChangedResponse{}, &ErrUnknownRoot{RootID: int32(rootExt)}
	}

	w, h := m.availSpaceFor(rootExt)
	if err := m.tree.ComputeNodeLayout(rootInternal, w, h); err != nil {
		m.log.WithField("external_id", int32(rootExt)).WithError(err).Warn("layoutbridge: solve failed")
		return protocol.ChangedResponse{LayoutState: m.tracker.State()}, nil
	}

	changed := m.tracker.Commit(m.tree, m.table, rootInternal)
	return protocol.ChangedResponse{
		LayoutState:    m.tracker.State(),
		ChangedLayouts: toWireLayouts(changed),
	}, nil
}

func toWireLayouts(in map[node.ExternalID]flex.Layout) map[int32]protocol.Layout {
	out := make(map[int32]protocol.Layout, len(in))
	for ext, l := range in {
		out[int32(ext)] = protocol.Layout{
			Order: l.Order,
			X:     l.X, Y: l.Y,
			Width: l.Width, Height: l.Height,
			ContentWidth: l.ContentWidth, ContentHeight: l.ContentHeight,
		}
	}
	return out
}

// SetNodeSize pins ext's size to a fixed value via the Customization
// Overlay and, when ext is itself rootExt, also records that size as the
// available space future recomputes of rootExt should use — the original's
// set_node_size doubles as "set the viewport" when called on a root
// (SPEC_FULL.md §11).
func (m *Manager) SetNodeSize(ext, rootExt node.ExternalID, width, height float32) (protocol.ChangedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overlay.Set(ext, width, height)

	if raw, ok := m.rawStyles[ext]; ok {
		if resolved, ok := m.applyStyle(ext, raw); ok {
			if internal, ok := m.table.Internal(ext); ok {
				_ = m.tree.SetStyle(internal, resolved)
			}
		}
	}

	if ext == rootExt {
		m.availW[rootExt] = width
		m.availH[rootExt] = height
	}

	return m.recompute(rootExt)
}

// RemoveNode deletes ext and its entire subtree, purging the Node Table,
// Overlay, and Change Tracker cache for every descendant, and optionally
// recomputes rootExt. An unknown ext is a recoverable no-op per spec.md §7.
//
// Grounded on the original's LayoutManager::remove_view (mark the parent
// dirty, detach from the engine, then purge bookkeeping maps).
func (m *Manager) RemoveNode(ext, rootExt node.ExternalID, computeLayout bool) (protocol.ChangedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	internal, ok := m.table.Internal(ext)
	if !ok {
		m.log.WithField("external_id", int32(ext)).Debug("layoutbridge: remove of unknown node, ignoring")
		return protocol.ChangedResponse{LayoutState: m.tracker.State()}, nil
	}

	var doomed []flex.NodeID
	m.tree.Walk(internal, func(id flex.NodeID) {
		doomed = append(doomed, id)
	})
	for _, id := range doomed {
		if dext, ok := m.table.External(id); ok {
			m.overlay.Clear(dext)
			m.tracker.Forget(dext)
			delete(m.rawStyles, dext)
			delete(m.availW, dext)
			delete(m.availH, dext)
			m.table.Remove(dext)
		}
		m.tree.Remove(id)
	}

	if !computeLayout {
		return protocol.ChangedResponse{LayoutState: m.tracker.State()}, nil
	}
	return m.recompute(rootExt)
}
