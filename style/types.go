// Package style defines the host-facing layout style — a tagged-union
// dimension type plus the flexbox style enums — and translates it into the
// engine's internal, fully-resolved node style.
//
// Sum types, not inheritance: Dimension and ItemSpacing are Go discriminated
// unions (a Kind tag plus the payload for that kind) rather than embedding
// or optional-pointer soup, mirroring glimo's plain value-style structs and
// the original Rust enums this was distilled from.
package style

// DimensionKind discriminates a Dimension's payload.
type DimensionKind uint8

const (
	// Auto means "let the engine decide" — content size for most axes,
	// zero for margin/inset.
	Auto DimensionKind = iota
	// Points is an absolute length in layout units.
	Points
	// Percent is a fraction (0-100) of the nearest definite ancestor size.
	Percent
)

// Dimension is a tagged-union length: Auto, Points(v), or Percent(v).
type Dimension struct {
	Kind  DimensionKind `msgpack:"kind"`
	Value float32       `msgpack:"value"`
}

// Pt constructs a Points dimension.
func Pt(v float32) Dimension { return Dimension{Kind: Points, Value: v} }

// Pct constructs a Percent dimension. v is in [0, 100].
func Pct(v float32) Dimension { return Dimension{Kind: Percent, Value: v} }

// AutoDim is the Auto dimension singleton value.
var AutoDim = Dimension{Kind: Auto}

// HasPoints reports whether this is a concrete Points dimension — the
// trigger for the Style Translator's rotation-collapse rule (§6).
func (d Dimension) HasPoints() bool { return d.Kind == Points }

// Resolve returns the dimension in layout units given the definite size of
// the axis it is being resolved against (ignored for Auto/Points).
// ok is false when the dimension cannot currently be resolved (Auto, or
// Percent against an indefinite ancestor).
func (d Dimension) Resolve(basis float32, basisDefinite bool) (value float32, ok bool) {
	switch d.Kind {
	case Points:
		return d.Value, true
	case Percent:
		if !basisDefinite {
			return 0, false
		}
		return basis * d.Value / 100, true
	default:
		return 0, false
	}
}

// FlexDirection is the main-axis direction of a flex container.
type FlexDirection uint8

const (
	Row FlexDirection = iota
	Column
	RowReverse
	ColumnReverse
	// None means "no auto-layout direction" — a host-sent node that isn't
	// participating in auto-layout on this axis. The Style Translator
	// collapses it to Row rather than treating it as an enum hole.
	None
)

// IsRow reports whether the main axis runs horizontally.
func (d FlexDirection) IsRow() bool { return d == Row || d == RowReverse }

// IsReverse reports whether the main axis is laid out back-to-front.
func (d FlexDirection) IsReverse() bool { return d == RowReverse || d == ColumnReverse }

// JustifyContent distributes free space along the main axis.
type JustifyContent uint8

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems/AlignSelf distribute items along the cross axis.
type AlignItems uint8

const (
	AlignFlexStart AlignItems = iota
	AlignFlexEnd
	AlignCenter
	AlignStretch
	// AlignBaseline collapses to AlignFlexStart: this engine does not
	// implement text baseline metrics (text shaping is a Non-goal).
	AlignBaseline
)

// AlignSelfKind adds Auto (inherit the container's AlignItems) on top of
// AlignItems, matching the original's per-item override semantics.
type AlignSelfKind uint8

const (
	AlignSelfAuto AlignSelfKind = iota
	AlignSelfFlexStart
	AlignSelfFlexEnd
	AlignSelfCenter
	AlignSelfStretch
	AlignSelfBaseline
)

// AlignContent distributes free space between lines along the cross axis.
type AlignContent uint8

const (
	AlignContentFlexStart AlignContent = iota
	AlignContentFlexEnd
	AlignContentCenter
	AlignContentStretch
	AlignContentSpaceBetween
	AlignContentSpaceAround
)

// PositionType controls whether a node participates in flex flow.
type PositionType uint8

const (
	Relative PositionType = iota
	Absolute
)

// ItemSpacingKind discriminates gap semantics.
type ItemSpacingKind uint8

const (
	// Fixed is a constant gap between items, in layout units.
	Fixed ItemSpacingKind = iota
	// AutoSpacing distributes remaining space using a minimum gap and an
	// item-size hint. Both values are parsed but not applied (Open
	// Question, resolved in SPEC_FULL.md §11): it collapses to a zero gap.
	AutoSpacing
)

// ItemSpacing is the tagged-union gap type: Fixed(v) or Auto(min, itemSize).
type ItemSpacing struct {
	Kind     ItemSpacingKind `msgpack:"kind"`
	Min      float32         `msgpack:"min"`
	ItemSize float32         `msgpack:"item_size"`
}

// Resolved returns the gap to actually use between items: the fixed gap for
// Fixed, zero for AutoSpacing.
func (s ItemSpacing) Resolved() float32 {
	if s.Kind == Fixed {
		return s.Min
	}
	return 0
}

// FixedSpacing constructs a constant-gap ItemSpacing.
func FixedSpacing(v float32) ItemSpacing { return ItemSpacing{Kind: Fixed, Min: v} }

// Inset is the four-sided Top/Right/Bottom/Left box used by margin,
// padding, and absolute-position offsets. A nil entry means "not set".
type Inset struct {
	Top    *Dimension `msgpack:"top"`
	Right  *Dimension `msgpack:"right"`
	Bottom *Dimension `msgpack:"bottom"`
	Left   *Dimension `msgpack:"left"`
}

// Size is a definite-or-auto pair along the two axes.
type Size struct {
	Width  Dimension `msgpack:"width"`
	Height Dimension `msgpack:"height"`
}

// Style is the host-facing, wire-decoded style for one node: a tagged-union
// description of everything the flex solver needs, before translation
// fixes up enum-holes and applies the rotation-collapse rule.
type Style struct {
	Display        bool `msgpack:"display"` // false => None: AddNodes skips this node; its descendants' entries are still processed on their own
	PositionType   PositionType   `msgpack:"position_type"`
	Direction      FlexDirection  `msgpack:"direction"`
	JustifyContent JustifyContent `msgpack:"justify_content"`
	AlignItems     AlignItems     `msgpack:"align_items"`
	AlignSelf      AlignSelfKind  `msgpack:"align_self"`
	AlignContent   AlignContent   `msgpack:"align_content"`

	FlexGrow   float32   `msgpack:"flex_grow"`
	FlexShrink float32   `msgpack:"flex_shrink"`
	FlexBasis  Dimension `msgpack:"flex_basis"`

	// FillContainer marks a node whose authored sizing is "fill available
	// space along the main axis" (the host design tool's FILL sizing
	// mode). The translator forces FlexBasis to Points(0) for these nodes
	// regardless of any authored basis — the flex-basis-zero trick — so
	// FlexGrow alone governs their main-axis size instead of competing
	// with a stale authored basis.
	FillContainer bool `msgpack:"fill_container"`

	Size    Size `msgpack:"size"`
	MinSize Size `msgpack:"min_size"`
	MaxSize Size `msgpack:"max_size"`

	Margin  Inset `msgpack:"margin"`
	Padding Inset `msgpack:"padding"`
	Inset   Inset `msgpack:"inset"` // Top/Right/Bottom/Left for PositionType == Absolute

	ItemSpacing      ItemSpacing `msgpack:"item_spacing"`       // main-axis gap
	CrossItemSpacing ItemSpacing `msgpack:"cross_item_spacing"` // cross-axis gap, for wrapped multi-line content

	// BoundingBox is the host design tool's last-known rendered box for
	// this node. When Size.Width/Height carries a concrete Points value,
	// the translator substitutes BoundingBox's corresponding axis instead
	// (the "rotation collapse" rule — see style/translate.go) and clears
	// Min/Max on that axis, because a rotated node's authored width/height
	// no longer means what the solver thinks it means.
	BoundingBox Size `msgpack:"bounding_box"`
}
