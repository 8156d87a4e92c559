package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krispeckt/layoutbridge/flex"
	"github.com/krispeckt/layoutbridge/node"
	"github.com/krispeckt/layoutbridge/style"
)

func fixedStyle(w, h float32) style.Resolved {
	r, _ := style.Translate(style.Style{
		Size:        style.Size{Width: style.Pt(w), Height: style.Pt(h)},
		BoundingBox: style.Size{Width: style.Pt(w), Height: style.Pt(h)},
	})
	return r
}

func buildTree(t *testing.T) (*flex.Tree, *node.Table, flex.NodeID, flex.NodeID) {
	t.Helper()
	tr := flex.NewTree()
	child := tr.NewNode(fixedStyle(50, 50), nil)
	root := tr.NewNode(fixedStyle(200, 100), nil)
	require.NoError(t, tr.SetChildren(root, []flex.NodeID{child}))

	tbl := node.NewTable()
	tbl.Insert(1, root)
	tbl.MarkRoot(1)
	tbl.Insert(2, child)
	return tr, tbl, root, child
}

func TestCommitIncrementsState(t *testing.T) {
	tr, tbl, root, _ := buildTree(t)
	tracker := New()
	require.Equal(t, int64(0), tracker.State())

	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	tracker.Commit(tr, tbl, root)
	require.Equal(t, int64(1), tracker.State())

	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	tracker.Commit(tr, tbl, root)
	require.Equal(t, int64(2), tracker.State())
}

func TestCommitFirstPassReportsEveryNode(t *testing.T) {
	tr, tbl, root, child := buildTree(t)
	tracker := New()
	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))

	changed := tracker.Commit(tr, tbl, root)
	_, rootChanged := changed[1]
	_, childChanged := changed[2]
	require.True(t, rootChanged)
	require.True(t, childChanged)
	_ = child
}

func TestCommitSecondIdenticalPassReportsNothing(t *testing.T) {
	tr, tbl, root, _ := buildTree(t)
	tracker := New()
	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	tracker.Commit(tr, tbl, root)

	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	changed := tracker.Commit(tr, tbl, root)
	require.Empty(t, changed)
}

func TestCommitIncludesParentAsRedrawAnchor(t *testing.T) {
	tr, tbl, root, child := buildTree(t)
	tracker := New()
	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	tracker.Commit(tr, tbl, root)

	require.NoError(t, tr.SetStyle(child, fixedStyle(60, 60)))
	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	changed := tracker.Commit(tr, tbl, root)

	_, childChanged := changed[2]
	_, rootIncluded := changed[1]
	require.True(t, childChanged)
	require.True(t, rootIncluded, "parent must be included as a redraw anchor even if unchanged")
}

func TestForgetDropsCacheEntry(t *testing.T) {
	tr, tbl, root, _ := buildTree(t)
	tracker := New()
	require.NoError(t, tr.ComputeNodeLayout(root, 200, 100))
	tracker.Commit(tr, tbl, root)

	tracker.Forget(2)
	require.NotContains(t, tracker.cache, node.ExternalID(2))
}
