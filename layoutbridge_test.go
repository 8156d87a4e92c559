package layoutbridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krispeckt/layoutbridge/manager"
	"github.com/krispeckt/layoutbridge/protocol"
	"github.com/krispeckt/layoutbridge/style"
)

func dimPtr(d style.Dimension) *style.Dimension { return &d }

func encodedSimpleTree(t *testing.T) []byte {
	t.Helper()
	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID:   1,
				ParentID: -1,
				Name:     "root",
				Style: style.Style{
					Display:     true,
					Direction:   style.Row,
					Size:        style.Size{Width: style.Pt(200), Height: style.Pt(100)},
					BoundingBox: style.Size{Width: style.Pt(200), Height: style.Pt(100)},
				},
			},
			{
				NodeID:     2,
				ParentID:   1,
				ChildIndex: 0,
				Name:       "child",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(50), Height: style.Pt(50)},
					BoundingBox: style.Size{Width: style.Pt(50), Height: style.Pt(50)},
				},
			},
		},
	}
	b, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)
	return b
}

func TestEndToEndAddNodesSetSizeRemove(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	resp, err := AddNodes(handle, 1, encodedSimpleTree(t))
	require.NoError(t, err)

	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.Equal(t, int64(1), decoded.LayoutState)
	require.Equal(t, float32(200), decoded.ChangedLayouts[1].Width)
	require.Equal(t, float32(50), decoded.ChangedLayouts[2].Width)

	resp, err = SetNodeSize(handle, 2, 1, 120, 60)
	require.NoError(t, err)
	decoded, err = protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.Equal(t, int64(2), decoded.LayoutState)
	require.Equal(t, float32(120), decoded.ChangedLayouts[2].Width)

	resp, err = RemoveNode(handle, 2, 1, true)
	require.NoError(t, err)
	decoded, err = protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	_, stillPresent := decoded.ChangedLayouts[2]
	require.False(t, stillPresent)
}

func TestEndToEndUnknownHandleIsInvalid(t *testing.T) {
	_, err := AddNodes(99999, 1, encodedSimpleTree(t))
	require.Error(t, err)
	var invalid *manager.ErrInvalidHandle
	require.ErrorAs(t, err, &invalid)
}

func TestEndToEndManagersAreIsolated(t *testing.T) {
	h1 := CreateManager()
	h2 := CreateManager()
	defer ReleaseManager(h1)
	defer ReleaseManager(h2)

	_, err := AddNodes(h1, 1, encodedSimpleTree(t))
	require.NoError(t, err)

	_, err = AddNodes(h2, 1, encodedSimpleTree(t))
	require.NoError(t, err)

	// Resize only affects the manager it targets.
	_, err = SetNodeSize(h1, 2, 1, 999, 999)
	require.NoError(t, err)

	// h2's node 2 keeps its 50px layout, so re-sending the same batch to h2
	// reports no change for it; a leaked 999x999 override would report it.
	resp, err := AddNodes(h2, 1, encodedSimpleTree(t))
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.NotContains(t, decoded.ChangedLayouts, int32(2))
}

func TestEndToEndDecodeFailureAborts(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	_, err := AddNodes(handle, 1, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestEndToEndDefaultAvailableSpaceOption(t *testing.T) {
	handle := CreateManager(manager.WithDefaultAvailableSpace(50, 50))
	defer ReleaseManager(handle)

	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID:   1,
				ParentID: -1,
				Style: style.Style{
					Display: true,
					Size:    style.Size{Width: style.Pct(100), Height: style.Pct(100)},
				},
			},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)

	resp, err := AddNodes(handle, 1, payload)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.Equal(t, float32(50), decoded.ChangedLayouts[1].Width)
	require.Equal(t, float32(50), decoded.ChangedLayouts[1].Height)
}

// TestScenarioS1VerticalAutoLayoutTwoFixedChildren is S1: a hug-content
// column root with 10px padding on every side and a 10px gap between two
// fixed-size children lands the root at 100x110, with the children stacked
// at (10,10) and (10,70).
func TestScenarioS1VerticalAutoLayoutTwoFixedChildren(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	pad := style.Inset{
		Top: dimPtr(style.Pt(10)), Right: dimPtr(style.Pt(10)),
		Bottom: dimPtr(style.Pt(10)), Left: dimPtr(style.Pt(10)),
	}
	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID: 1, ParentID: -1, Name: "root",
				Style: style.Style{
					Display:     true,
					Direction:   style.Column,
					Padding:     pad,
					ItemSpacing: style.FixedSpacing(10),
				},
			},
			{
				NodeID: 2, ParentID: 1, ChildIndex: 0, Name: "child1",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(50), Height: style.Pt(50)},
					BoundingBox: style.Size{Width: style.Pt(50), Height: style.Pt(50)},
				},
			},
			{
				NodeID: 3, ParentID: 1, ChildIndex: 1, Name: "child2",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(80), Height: style.Pt(30)},
					BoundingBox: style.Size{Width: style.Pt(80), Height: style.Pt(30)},
				},
			},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)

	resp, err := AddNodes(handle, 1, payload)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)

	root := decoded.ChangedLayouts[1]
	require.Equal(t, float32(100), root.Width)
	require.Equal(t, float32(110), root.Height)

	c1 := decoded.ChangedLayouts[2]
	require.Equal(t, float32(10), c1.X)
	require.Equal(t, float32(10), c1.Y)
	require.Equal(t, float32(50), c1.Width)
	require.Equal(t, float32(50), c1.Height)

	c2 := decoded.ChangedLayouts[3]
	require.Equal(t, float32(10), c2.X)
	require.Equal(t, float32(70), c2.Y)
	require.Equal(t, float32(80), c2.Width)
	require.Equal(t, float32(30), c2.Height)
}

// TestScenarioS2FillHeightInsideFixedContainer is S2: inside a 150x130 row
// with 10px padding and a 10px gap, a 50-wide fixed-height sibling leaves
// exactly zero slack for child_right's declared 70px width (the gap absorbs
// it), but align-items: stretch still forces child_right's own Auto height
// up to the container's full content height — independent of what its own
// (content-hugging) sub-layout would have produced on its own.
func TestScenarioS2FillHeightInsideFixedContainer(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	pad := style.Inset{
		Top: dimPtr(style.Pt(10)), Right: dimPtr(style.Pt(10)),
		Bottom: dimPtr(style.Pt(10)), Left: dimPtr(style.Pt(10)),
	}
	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID: 1, ParentID: -1, Name: "root",
				Style: style.Style{
					Display:     true,
					Direction:   style.Row,
					AlignItems:  style.AlignStretch,
					Padding:     pad,
					ItemSpacing: style.FixedSpacing(10),
					Size:        style.Size{Width: style.Pt(150), Height: style.Pt(130)},
					BoundingBox: style.Size{Width: style.Pt(150), Height: style.Pt(130)},
				},
			},
			{
				NodeID: 2, ParentID: 1, ChildIndex: 0, Name: "child_left",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(50), Height: style.Pt(110)},
					BoundingBox: style.Size{Width: style.Pt(50), Height: style.Pt(110)},
				},
			},
			{
				NodeID: 3, ParentID: 1, ChildIndex: 1, Name: "child_right",
				Style: style.Style{
					Display:     true,
					Direction:   style.Column,
					AlignItems:  style.AlignStretch,
					FlexGrow:    1,
					Size:        style.Size{Width: style.Pt(70), Height: style.AutoDim},
					BoundingBox: style.Size{Width: style.Pt(70)},
				},
			},
			{
				NodeID: 4, ParentID: 3, ChildIndex: 0, Name: "fill_child",
				Style: style.Style{
					Display:   true,
					FlexGrow:  1,
					FlexBasis: style.Pt(30),
				},
			},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)

	resp, err := AddNodes(handle, 1, payload)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)

	left := decoded.ChangedLayouts[2]
	require.Equal(t, float32(10), left.X)
	require.Equal(t, float32(10), left.Y)

	right := decoded.ChangedLayouts[3]
	require.Equal(t, float32(70), right.X)
	require.Equal(t, float32(10), right.Y)
	require.Equal(t, float32(70), right.Width)
	require.Equal(t, float32(110), right.Height)

	fill := decoded.ChangedLayouts[4]
	require.Equal(t, float32(70), fill.Width)
	require.Equal(t, float32(30), fill.Height)
}

// TestScenarioS3CustomizationOverrideSurvivesRestyle is S3: once a node's
// size is pinned via the Customization Overlay, re-pushing its original
// design-time style in a later batch must not undo the override.
func TestScenarioS3CustomizationOverrideSurvivesRestyle(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	designStyle := style.Style{
		Display:     true,
		Size:        style.Size{Width: style.Pt(50), Height: style.Pt(50)},
		BoundingBox: style.Size{Width: style.Pt(50), Height: style.Pt(50)},
	}
	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID: 1, ParentID: -1, Name: "root",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(300), Height: style.Pt(300)},
					BoundingBox: style.Size{Width: style.Pt(300), Height: style.Pt(300)},
				},
			},
			{NodeID: 2, ParentID: 1, ChildIndex: 0, Name: "N", Style: designStyle},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)
	_, err = AddNodes(handle, 1, payload)
	require.NoError(t, err)

	resp, err := SetNodeSize(handle, 2, 1, 200, 300)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.Equal(t, float32(200), decoded.ChangedLayouts[2].Width)
	require.Equal(t, float32(300), decoded.ChangedLayouts[2].Height)

	restyle := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{NodeID: 2, ParentID: 1, Name: "N", Style: designStyle},
		},
	}
	payload2, err := protocol.EncodeNodeList(restyle)
	require.NoError(t, err)
	resp2, err := AddNodes(handle, 1, payload2)
	require.NoError(t, err)
	decoded2, err := protocol.DecodeChangedResponse(resp2)
	require.NoError(t, err)
	// The restyle ran a recompute, and N's layout stayed the 200x300 reported
	// above, so the change set leaves it out; losing the override would
	// report N at 50x50.
	require.Equal(t, decoded.LayoutState+1, decoded2.LayoutState)
	require.NotContains(t, decoded2.ChangedLayouts, int32(2))
}

// TestScenarioS4PercentAgainstZeroWidthParent is S4: a zero-width parent's
// absolutely-positioned child carries percent-based left/right insets —
// resolving a percentage against a zero basis must land on a clean 0, never
// NaN or Inf.
func TestScenarioS4PercentAgainstZeroWidthParent(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID: 1, ParentID: -1, Name: "root",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(0), Height: style.Pt(0)},
					BoundingBox: style.Size{Width: style.Pt(0), Height: style.Pt(0)},
				},
			},
			{
				NodeID: 2, ParentID: 1, ChildIndex: 0, Name: "child",
				Style: style.Style{
					Display:      true,
					PositionType: style.Absolute,
					Inset: style.Inset{
						Left:  dimPtr(style.Pct(50)),
						Right: dimPtr(style.Pct(50)),
					},
				},
			},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)

	resp, err := AddNodes(handle, 1, payload)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)

	child := decoded.ChangedLayouts[2]
	require.False(t, math.IsNaN(float64(child.Width)))
	require.Equal(t, float32(0), child.Width)
}

// TestScenarioS5RotationCollapse is S5: a node authored with a concrete
// Points width but rotated 30 degrees in the design tool reports its
// last-known (post-rotation) bounding-box width instead of its authored one.
func TestScenarioS5RotationCollapse(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	nl := protocol.NodeList{
		LayoutNodes: []protocol.LayoutNodeInput{
			{
				NodeID: 1, ParentID: -1, Name: "root",
				Style: style.Style{Display: true},
			},
			{
				NodeID: 2, ParentID: 1, ChildIndex: 0, Name: "rotated",
				Style: style.Style{
					Display:     true,
					Size:        style.Size{Width: style.Pt(40), Height: style.AutoDim},
					BoundingBox: style.Size{Width: style.Pt(100), Height: style.Pt(20)},
				},
			},
		},
	}
	payload, err := protocol.EncodeNodeList(nl)
	require.NoError(t, err)

	resp, err := AddNodes(handle, 1, payload)
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	require.Equal(t, float32(100), decoded.ChangedLayouts[2].Width)
}

// TestScenarioS6RemoveWithoutRecompute is S6: removing a node with
// computeLayout=false must not touch layout_state or report any changed
// node, and the removed external ID must be free for a later AddNodes call
// to treat as brand new.
func TestScenarioS6RemoveWithoutRecompute(t *testing.T) {
	handle := CreateManager()
	defer ReleaseManager(handle)

	resp, err := AddNodes(handle, 1, encodedSimpleTree(t))
	require.NoError(t, err)
	decoded, err := protocol.DecodeChangedResponse(resp)
	require.NoError(t, err)
	stateBefore := decoded.LayoutState

	resp2, err := RemoveNode(handle, 2, 1, false)
	require.NoError(t, err)
	decoded2, err := protocol.DecodeChangedResponse(resp2)
	require.NoError(t, err)
	require.Equal(t, stateBefore, decoded2.LayoutState)
	require.Empty(t, decoded2.ChangedLayouts)

	resp3, err := AddNodes(handle, 1, encodedSimpleTree(t))
	require.NoError(t, err)
	decoded3, err := protocol.DecodeChangedResponse(resp3)
	require.NoError(t, err)
	require.Contains(t, decoded3.ChangedLayouts, int32(2))
}
