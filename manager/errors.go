package manager

import "fmt"

// ErrInvalidHandle is returned by the root facade when a manager ID doesn't
// name a live Manager — a batch-level error, same family as the original's
// InvalidHandle variant (spec.md §7). Unlike a per-node translation failure,
// this aborts the whole call: there's no manager to recover into.
type ErrInvalidHandle struct {
	Handle int32
}

func (e *ErrInvalidHandle) Error() string {
	return fmt.Sprintf("manager: invalid handle %d", e.Handle)
}

// ErrUnknownRoot is returned when a caller names a root external ID that
// isn't registered in the manager's Node Table — compute_node_layout has no
// subtree to solve. Also batch-level: the caller asked for a specific
// recompute and there's nothing to report back.
type ErrUnknownRoot struct {
	RootID int32
}

func (e *ErrUnknownRoot) Error() string {
	return fmt.Sprintf("manager: unknown root node %d", e.RootID)
}
