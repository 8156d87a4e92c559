package style

// Resolved is the fully-defaulted, engine-ready style produced by
// Translate. Every field here has a concrete meaning the flex solver can
// consume without further enum-hole handling.
//
// Grounded on the original's `impl TryIntoTaffy<taffy::prelude::Style> for
// &LayoutStyle` (dc_layout/src/layout_style.rs): padding/gap/align/justify
// map straight across, a node's own Display is always Flex once it is part
// of the tree (an undisplayed node is filtered out by the caller before
// translation), overflow is always clipped on both axes, and any authored
// Points width/height is overridden by the node's last-known bounding box
// with Min/Max cleared on that axis — the rotation-collapse rule.
type Resolved struct {
	PositionType   PositionType
	Direction      FlexDirection
	JustifyContent JustifyContent
	AlignItems     AlignItems
	AlignSelf      AlignSelfKind
	AlignContent   AlignContent

	FlexGrow   float32
	FlexShrink float32
	FlexBasis  Dimension

	Size    Size
	MinSize Size
	MaxSize Size

	MarginTop, MarginRight, MarginBottom, MarginLeft   Dimension
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft Dimension
	InsetTop, InsetRight, InsetBottom, InsetLeft         Dimension

	MainGap, CrossGap float32

	// OverflowClipped is always true: this engine always clips content to
	// the node's box on both axes, matching the original's unconditional
	// overflow.x = overflow.y = Hidden.
	OverflowClipped bool
}

func resolveInset(in *Dimension, fallback Dimension) Dimension {
	if in == nil {
		return fallback
	}
	return *in
}

// Translate converts a host Style into a Resolved style the flex solver can
// consume directly. err is non-nil (and typed *MissingFieldError or
// *UnknownEnumVariantError) when the style cannot be translated; callers
// recover per spec.md §7 by skipping the node and logging.
func Translate(s Style) (Resolved, error) {
	if s.FlexGrow < 0 {
		return Resolved{}, &MissingFieldError{Field: "flex_grow"}
	}
	if s.FlexShrink < 0 {
		return Resolved{}, &MissingFieldError{Field: "flex_shrink"}
	}
	if s.Direction > None {
		return Resolved{}, &UnknownEnumVariantError{Enum: "flex_direction", Value: int(s.Direction)}
	}
	if s.JustifyContent > JustifySpaceEvenly {
		return Resolved{}, &UnknownEnumVariantError{Enum: "justify_content", Value: int(s.JustifyContent)}
	}
	if s.AlignItems > AlignBaseline {
		return Resolved{}, &UnknownEnumVariantError{Enum: "align_items", Value: int(s.AlignItems)}
	}
	if s.AlignContent > AlignContentSpaceAround {
		return Resolved{}, &UnknownEnumVariantError{Enum: "align_content", Value: int(s.AlignContent)}
	}

	r := Resolved{
		PositionType:   s.PositionType,
		Direction:      normalizeDirection(s.Direction),
		JustifyContent: s.JustifyContent,
		AlignItems:     collapseBaseline(s.AlignItems),
		AlignSelf:      collapseBaselineSelf(s.AlignSelf),
		AlignContent:   s.AlignContent,

		FlexGrow:   s.FlexGrow,
		FlexShrink: s.FlexShrink,
		FlexBasis:  s.FlexBasis,

		Size:    s.Size,
		MinSize: s.MinSize,
		MaxSize: s.MaxSize,

		MarginTop:    resolveInset(s.Margin.Top, Pt(0)),
		MarginRight:  resolveInset(s.Margin.Right, Pt(0)),
		MarginBottom: resolveInset(s.Margin.Bottom, Pt(0)),
		MarginLeft:   resolveInset(s.Margin.Left, Pt(0)),

		PaddingTop:    resolveInset(s.Padding.Top, Pt(0)),
		PaddingRight:  resolveInset(s.Padding.Right, Pt(0)),
		PaddingBottom: resolveInset(s.Padding.Bottom, Pt(0)),
		PaddingLeft:   resolveInset(s.Padding.Left, Pt(0)),

		InsetTop:    resolveInset(s.Inset.Top, AutoDim),
		InsetRight:  resolveInset(s.Inset.Right, AutoDim),
		InsetBottom: resolveInset(s.Inset.Bottom, AutoDim),
		InsetLeft:   resolveInset(s.Inset.Left, AutoDim),

		MainGap:  s.ItemSpacing.Resolved(),
		CrossGap: s.CrossItemSpacing.Resolved(),

		OverflowClipped: true,
	}

	if s.FillContainer {
		r.FlexBasis = Pt(0)
	}

	// Rotation collapse: an authored concrete width/height is replaced by
	// the node's last-known bounding box on that axis, with min/max
	// cleared, because a design-tool rotation makes the authored
	// width/height describe the pre-rotation box, not the box the solver
	// should lay out against.
	if s.Size.Width.HasPoints() {
		r.Size.Width = Pt(s.BoundingBox.Width.Value)
		r.MinSize.Width = AutoDim
		r.MaxSize.Width = AutoDim
	}
	if s.Size.Height.HasPoints() {
		r.Size.Height = Pt(s.BoundingBox.Height.Value)
		r.MinSize.Height = AutoDim
		r.MaxSize.Height = AutoDim
	}

	return r, nil
}

// normalizeDirection collapses None ("no auto-layout on this axis") to Row,
// the original's FLEX_DIRECTION_NONE => Ok(Row) mapping — distinct from the
// UNSPECIFIED variant, which is an enum hole and errors instead.
func normalizeDirection(d FlexDirection) FlexDirection {
	if d == None {
		return Row
	}
	return d
}

func collapseBaseline(a AlignItems) AlignItems {
	if a == AlignBaseline {
		return AlignFlexStart
	}
	return a
}

func collapseBaselineSelf(a AlignSelfKind) AlignSelfKind {
	if a == AlignSelfBaseline {
		return AlignSelfFlexStart
	}
	return a
}
