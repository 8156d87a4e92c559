// Package layoutbridge is the external interface: the small set of
// host-facing calls a design-tool runtime makes across its FFI boundary —
// create/release a manager, add or update a batch of nodes, pin a node's
// size, and remove a node — each returning a framed, msgpack-encoded
// protocol.ChangedResponse.
//
// Grounded on glimo's own root aliases.go (a thin facade re-exporting
// instructions), generalized here to wrap the manager Registry instead of
// re-exporting types directly, since every call here also has to decode a
// request and encode a response.
package layoutbridge

import (
	"github.com/krispeckt/layoutbridge/manager"
	"github.com/krispeckt/layoutbridge/node"
	"github.com/krispeckt/layoutbridge/protocol"
)

var registry = manager.NewRegistry()

// CreateManager allocates a new manager and returns its handle.
func CreateManager(opts ...manager.Option) int32 {
	return registry.Create(opts...)
}

// ReleaseManager drops a manager's handle. Safe to call on an already
// unknown or already-released handle.
func ReleaseManager(managerID int32) {
	registry.Release(managerID)
}

// AddNodes decodes a NodeList batch, applies it to managerID's tree, and
// recomputes rootID. A bad handle or a payload that fails to decode aborts
// the whole call (spec.md §7); per-node failures inside a decodable batch
// are recovered individually and never reach this layer as an error.
func AddNodes(managerID, rootID int32, serializedNodeList []byte) ([]byte, error) {
	m, ok := registry.Get(managerID)
	if !ok {
		return nil, &manager.ErrInvalidHandle{Handle: managerID}
	}
	nl, err := protocol.DecodeNodeList(serializedNodeList)
	if err != nil {
		return nil, err
	}
	resp, err := m.AddNodes(node.ExternalID(rootID), nl)
	if err != nil {
		return nil, err
	}
	return protocol.EncodeChangedResponse(resp)
}

// SetNodeSize pins nodeID's size via the Customization Overlay and
// recomputes rootID.
func SetNodeSize(managerID, nodeID, rootID int32, width, height float32) ([]byte, error) {
	m, ok := registry.Get(managerID)
	if !ok {
		return nil, &manager.ErrInvalidHandle{Handle: managerID}
	}
	resp, err := m.SetNodeSize(node.ExternalID(nodeID), node.ExternalID(rootID), width, height)
	if err != nil {
		return nil, err
	}
	return protocol.EncodeChangedResponse(resp)
}

// RemoveNode deletes nodeID and its subtree, optionally recomputing rootID.
func RemoveNode(managerID, nodeID, rootID int32, computeLayout bool) ([]byte, error) {
	m, ok := registry.Get(managerID)
	if !ok {
		return nil, &manager.ErrInvalidHandle{Handle: managerID}
	}
	resp, err := m.RemoveNode(node.ExternalID(nodeID), node.ExternalID(rootID), computeLayout)
	if err != nil {
		return nil, err
	}
	return protocol.EncodeChangedResponse(resp)
}
