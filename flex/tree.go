package flex

import (
	"fmt"

	"github.com/krispeckt/layoutbridge/style"
)

// Tree owns a set of nodes forming (possibly several) flex trees, addressed
// by NodeID. One Tree backs one manager.Manager.
type Tree struct {
	nodes  map[NodeID]*node
	nextID NodeID
}

// NewTree constructs an empty Tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*node)}
}

// NewNode allocates a new, childless node with the given style and
// optional measure function (nil for non-leaf / non-measured nodes).
func (t *Tree) NewNode(s style.Resolved, measure MeasureFunc) NodeID {
	id := t.nextID
	t.nextID++
	t.nodes[id] = &node{id: id, parent: NoNode, style: s, measure: measure}
	return id
}

// SetStyle replaces a node's resolved style in place.
func (t *Tree) SetStyle(id NodeID, s style.Resolved) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("flex: unknown node %d", id)
	}
	n.style = s
	return nil
}

// SetMeasure replaces a node's measure function (nil clears it).
func (t *Tree) SetMeasure(id NodeID, measure MeasureFunc) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("flex: unknown node %d", id)
	}
	n.measure = measure
	return nil
}

// SetChildren replaces a node's child list wholesale (order is the flex
// item order). Previously-attached children have their parent cleared.
func (t *Tree) SetChildren(id NodeID, children []NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("flex: unknown node %d", id)
	}
	for _, old := range n.children {
		if oldNode, ok := t.nodes[old]; ok && oldNode.parent == id {
			oldNode.parent = NoNode
		}
	}
	n.children = append([]NodeID(nil), children...)
	for _, c := range n.children {
		if cn, ok := t.nodes[c]; ok {
			cn.parent = id
		}
	}
	return nil
}

// InsertChildAt splices a child into a parent's child list at a specific
// index (clamped to the current length), used when a host supplies an
// explicit child_index on first sighting of a node (spec.md §4.2/§4.7).
func (t *Tree) InsertChildAt(parent, child NodeID, index int) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("flex: unknown node %d", parent)
	}
	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = append(p.children, NoNode)
	copy(p.children[index+1:], p.children[index:])
	p.children[index] = child
	if cn, ok := t.nodes[child]; ok {
		cn.parent = parent
	}
	return nil
}

// Children returns a node's current child list.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("flex: unknown node %d", id)
	}
	return n.children, nil
}

// Parent returns a node's parent, or NoNode if it has none.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return NoNode, fmt.Errorf("flex: unknown node %d", id)
	}
	return n.parent, nil
}

// Remove deletes a single node (not its subtree — the manager package's
// RemoveNode walks the subtree and removes each node) and detaches it from
// its parent's child list.
func (t *Tree) Remove(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	if n.parent != NoNode {
		if p, ok := t.nodes[n.parent]; ok {
			for i, c := range p.children {
				if c == id {
					p.children = append(p.children[:i], p.children[i+1:]...)
					break
				}
			}
		}
	}
	delete(t.nodes, id)
}

// Layout returns the last computed Layout for a node, if any.
func (t *Tree) Layout(id NodeID) (Layout, bool) {
	n, ok := t.nodes[id]
	if !ok || !n.hasLayout {
		return Layout{}, false
	}
	return n.layout, true
}

// Style returns a node's currently resolved style.
func (t *Tree) Style(id NodeID) (style.Resolved, error) {
	n, ok := t.nodes[id]
	if !ok {
		return style.Resolved{}, fmt.Errorf("flex: unknown node %d", id)
	}
	return n.style, nil
}

func (t *Tree) get(id NodeID) *node { return t.nodes[id] }

// Walk visits id and its descendants in pre-order (parent before children),
// the order the Change Tracker relies on so a parent's cache entry is
// already current by the time a changed child looks it up.
func (t *Tree) Walk(id NodeID, fn func(NodeID)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	fn(id)
	for _, c := range n.children {
		t.Walk(c, fn)
	}
}
