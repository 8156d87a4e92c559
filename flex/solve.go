package flex

import (
	"math"
	"sort"

	"github.com/krispeckt/layoutbridge/internal/numeric"
	"github.com/krispeckt/layoutbridge/style"
)

// ComputeNodeLayout runs the full solve pipeline for the subtree rooted at
// root against the given available space, which is always treated as
// definite — mirroring the original's hard-coded AvailableSpace::Definite
// root constraint (SPEC_FULL.md §11).
func (t *Tree) ComputeNodeLayout(root NodeID, availWidth, availHeight float32) error {
	if _, ok := t.nodes[root]; !ok {
		return errUnknownNode(root)
	}
	t.compute(root, availWidth, availHeight, true, true)
	return nil
}

func resolveDim(d style.Dimension, basis float32, basisDefinite bool) (value float32, definite bool) {
	return d.Resolve(basis, basisDefinite)
}

// clamp applies whichever of min/max are actually present. Bounded to two
// sides it's exactly numeric.ClampF32; with only one side present it's
// numeric.MaxF32/MinF32, since an absent bound can't be folded into a single
// two-argument ClampF32 call.
func clamp(v float32, hasMin bool, min float32, hasMax bool, max float32) float32 {
	switch {
	case hasMin && hasMax:
		return numeric.ClampF32(v, min, max)
	case hasMin:
		return numeric.MaxF32(v, min)
	case hasMax:
		return numeric.MinF32(v, max)
	default:
		return v
	}
}

// compute solves one node's layout (and, for containers, its flow and
// absolute children) against the given available space and stores the
// result on the node. It returns the resolved Layout for convenience to
// callers probing intrinsic sizes.
func (t *Tree) compute(id NodeID, availW, availH float32, availWDef, availHDef bool) Layout {
	n := t.nodes[id]
	s := n.style

	width, widthDef := resolveDim(s.Size.Width, availW, availWDef)
	height, heightDef := resolveDim(s.Size.Height, availH, availHDef)
	minW, minWDef := resolveDim(s.MinSize.Width, availW, availWDef)
	maxW, maxWDef := resolveDim(s.MaxSize.Width, availW, availWDef)
	minH, minHDef := resolveDim(s.MinSize.Height, availH, availHDef)
	maxH, maxHDef := resolveDim(s.MaxSize.Height, availH, availHDef)

	if widthDef {
		width = clamp(width, minWDef, minW, maxWDef, maxW)
	}
	if heightDef {
		height = clamp(height, minHDef, minH, maxHDef, maxH)
	}

	if len(n.children) == 0 {
		return t.computeLeaf(n, width, widthDef, height, heightDef, availW, availH, availWDef, availHDef, minWDef, minW, maxWDef, maxW, minHDef, minH, maxHDef, maxH)
	}
	return t.computeContainer(n, width, widthDef, height, heightDef, minWDef, minW, maxWDef, maxW, minHDef, minH, maxHDef, maxH)
}

func (t *Tree) computeLeaf(n *node, width float32, widthDef bool, height float32, heightDef bool,
	availW, availH float32, availWDef, availHDef bool,
	minWDef bool, minW float32, maxWDef bool, maxW float32,
	minHDef bool, minH float32, maxHDef bool, maxH float32) Layout {

	var contentW, contentH float32
	if n.measure != nil {
		knownW, knownH := float32(-1), float32(-1)
		if widthDef {
			knownW = width
		}
		if heightDef {
			knownH = height
		}
		avW, avH := availW, availH
		if !availWDef {
			avW = MaxContentValue
		}
		if !availHDef {
			avH = MaxContentValue
		}
		contentW, contentH = n.measure(knownW, knownH, avW, avH)
	}

	finalW := width
	if !widthDef {
		finalW = clamp(contentW, minWDef, minW, maxWDef, maxW)
	}
	finalH := height
	if !heightDef {
		finalH = clamp(contentH, minHDef, minH, maxHDef, maxH)
	}

	n.layout = Layout{Width: finalW, Height: finalH, ContentWidth: contentW, ContentHeight: contentH}
	n.hasLayout = true
	return n.layout
}

type childRec struct {
	id                       NodeID
	baseMain, baseCross      float32
	marginMain1, marginMain2 float32
	marginCross1, marginCross2 float32
	grow, shrink             float32
	stretch                  bool
	sizeMain, sizeCross      float32
}

func (t *Tree) computeContainer(n *node, width float32, widthDef bool, height float32, heightDef bool,
	minWDef bool, minW float32, maxWDef bool, maxW float32,
	minHDef bool, minH float32, maxHDef bool, maxH float32) Layout {

	s := n.style
	isRow := s.Direction.IsRow()
	reverse := s.Direction.IsReverse()

	padL, _ := resolveDim(s.PaddingLeft, width, widthDef)
	padR, _ := resolveDim(s.PaddingRight, width, widthDef)
	padT, _ := resolveDim(s.PaddingTop, height, heightDef)
	padB, _ := resolveDim(s.PaddingBottom, height, heightDef)

	innerW, innerWDef := width-padL-padR, widthDef
	innerH, innerHDef := height-padT-padB, heightDef
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	var mainAvail, crossAvail float32
	var mainAvailDef, crossAvailDef bool
	if isRow {
		mainAvail, mainAvailDef = innerW, innerWDef
		crossAvail, crossAvailDef = innerH, innerHDef
	} else {
		mainAvail, mainAvailDef = innerH, innerHDef
		crossAvail, crossAvailDef = innerW, innerWDef
	}

	var flow, absolute []NodeID
	siblingOrder := make(map[NodeID]int32, len(n.children))
	for i, c := range n.children {
		cn := t.nodes[c]
		if cn == nil {
			continue
		}
		siblingOrder[c] = int32(i)
		if cn.style.PositionType == style.Absolute {
			absolute = append(absolute, c)
		} else {
			flow = append(flow, c)
		}
	}

	recs := make([]childRec, 0, len(flow))
	for _, cid := range flow {
		cn := t.nodes[cid]
		cs := cn.style

		mm1, mm2, mc1, mc2 := resolveMargins(cs, isRow, mainAvail, mainAvailDef, crossAvail, crossAvailDef)

		var naturalW, naturalH float32
		if isRow {
			l := t.compute(cid, mainAvail, crossAvail, false, crossAvailDef)
			naturalW, naturalH = l.Width, l.Height
		} else {
			l := t.compute(cid, crossAvail, mainAvail, crossAvailDef, false)
			naturalW, naturalH = l.Width, l.Height
		}

		var baseMain, baseCross float32
		if isRow {
			baseMain, baseCross = naturalW, naturalH
		} else {
			baseMain, baseCross = naturalH, naturalW
		}

		if cs.FlexBasis.Kind != style.Auto {
			if v, ok := cs.FlexBasis.Resolve(mainAvail, mainAvailDef); ok {
				baseMain = v
			}
		} else if ownMain := mainDim(cs, isRow); ownMain.Kind != style.Auto {
			if v, ok := ownMain.Resolve(mainAvail, mainAvailDef); ok {
				baseMain = v
			}
		}

		if ownCross := crossDim(cs, isRow); ownCross.Kind != style.Auto {
			if v, ok := ownCross.Resolve(crossAvail, crossAvailDef); ok {
				baseCross = v
			}
		}

		align := effectiveAlign(cs, s)
		recs = append(recs, childRec{
			id: cid, baseMain: baseMain, baseCross: baseCross,
			marginMain1: mm1, marginMain2: mm2, marginCross1: mc1, marginCross2: mc2,
			grow: cs.FlexGrow, shrink: effectiveShrink(cs.FlexShrink),
			stretch: align == style.AlignStretch && crossDim(cs, isRow).Kind == style.Auto,
		})
	}

	mainGap := s.MainGap
	gapCount := numeric.MaxInt(len(recs)-1, 0)
	gaps := mainGap * float32(gapCount)

	sumBase := float32(0)
	totalGrow, totalShrink := float32(0), float32(0)
	for _, r := range recs {
		sumBase += r.baseMain + r.marginMain1 + r.marginMain2
		totalGrow += r.grow
		totalShrink += r.shrink
	}

	var resolvedMainAvail float32
	if mainAvailDef {
		resolvedMainAvail = mainAvail
	} else {
		resolvedMainAvail = sumBase + gaps
	}
	flexFree := resolvedMainAvail - sumBase - gaps
	if numeric.IsNearlyZero(flexFree) {
		// Snap float noise to exactly zero so distributeFlex's sign-based
		// switch doesn't grow/shrink by a sub-pixel sliver.
		flexFree = 0
	}

	distributeFlex(recs, flexFree, totalGrow, totalShrink)

	maxCross := float32(0)
	for _, r := range recs {
		c := r.baseCross + r.marginCross1 + r.marginCross2
		maxCross = numeric.MaxF32(maxCross, c)
	}
	var resolvedCrossAvail float32
	if crossAvailDef {
		resolvedCrossAvail = crossAvail
	} else {
		resolvedCrossAvail = maxCross
	}

	// AlignContent distributes free space *between lines*; with wrapping
	// unsupported there is always exactly one line, and per CSS flexbox
	// semantics align-content has no effect on a single-line container
	// (SPEC_FULL.md §6.3's single-line tie-break generalizes to this: the
	// one line simply occupies the whole cross content box). Individual
	// item placement within that box is still governed by align-items /
	// align-self below.
	crossOffset := float32(0)
	lineCross := resolvedCrossAvail

	used := float32(0)
	for _, r := range recs {
		used += r.sizeMain + r.marginMain1 + r.marginMain2
	}
	used += gaps
	remaining := numeric.MaxF32(resolvedMainAvail-used, 0)
	offset, extra := justifyOffsets(s.JustifyContent, remaining, len(recs))

	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	if reverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	mainCursor := offset
	padMain, padMainTrail := padL, padR
	padCross := padT
	if !isRow {
		padMain, padMainTrail = padT, padB
		padCross = padL
	}
	_ = padMainTrail

	for k, idx := range order {
		r := &recs[idx]
		sizeCross := r.baseCross
		if r.stretch {
			sizeCross = numeric.MaxF32(lineCross-r.marginCross1-r.marginCross2, 1)
		}

		align := effectiveAlignByID(t, r.id, s)
		crossPos := float32(0)
		switch align {
		case style.AlignFlexStart, style.AlignStretch:
			crossPos = r.marginCross1
		case style.AlignCenter:
			// Centered means halfway between the margin-box's start and end
			// edges along the line.
			crossPos = numeric.Lerp(r.marginCross1, lineCross-sizeCross-r.marginCross2, 0.5)
		case style.AlignFlexEnd:
			crossPos = lineCross - sizeCross - r.marginCross2
		}

		var finalW, finalH float32
		if isRow {
			finalW, finalH = r.sizeMain, sizeCross
		} else {
			finalW, finalH = sizeCross, r.sizeMain
		}
		t.compute(r.id, finalW, finalH, true, true)

		var x, y float32
		if isRow {
			x = padMain + mainCursor + r.marginMain1
			y = padCross + crossOffset + crossPos
		} else {
			x = padCross + crossOffset + crossPos
			y = padMain + mainCursor + r.marginMain1
		}
		cn := t.nodes[r.id]
		cn.layout.Order = siblingOrder[r.id]
		cn.layout.X = numeric.Quant64(x)
		cn.layout.Y = numeric.Quant64(y)
		// The flexed main size (basis plus its grow/shrink share) is the used
		// main size; the child's own compute() pass re-resolves its authored
		// size against the box it was handed and would otherwise undo it.
		if isRow {
			cn.layout.Width = r.sizeMain
		} else {
			cn.layout.Height = r.sizeMain
		}
		if r.stretch {
			// A stretched child's cross-size is the line's cross-size, not
			// whatever its own (content-driven, since its dimension is Auto)
			// compute() pass produced — align-items: stretch fixes the used
			// size, it doesn't just hand the child more available space.
			if isRow {
				cn.layout.Height = sizeCross
			} else {
				cn.layout.Width = sizeCross
			}
		}

		mainCursor += r.sizeMain + r.marginMain1 + r.marginMain2
		if k < len(order)-1 {
			mainCursor += mainGap + extra
		}
	}

	var contentMain, contentCross float32
	if mainAvailDef {
		contentMain = mainAvail
	} else {
		contentMain = used
	}
	contentCross = lineCross

	var finalW, finalH float32
	if isRow {
		finalW, finalH = contentMain+padL+padR, contentCross+padT+padB
	} else {
		finalW, finalH = contentCross+padL+padR, contentMain+padT+padB
	}
	if !widthDef {
		finalW = clamp(finalW, minWDef, minW, maxWDef, maxW)
	} else {
		finalW = width
	}
	if !heightDef {
		finalH = clamp(finalH, minHDef, minH, maxHDef, maxH)
	} else {
		finalH = height
	}

	t.positionAbsolute(absolute, siblingOrder, finalW, finalH, padL, padT, innerW, innerH)

	n.layout = Layout{Width: finalW, Height: finalH}
	if isRow {
		n.layout.ContentWidth, n.layout.ContentHeight = contentMain, contentCross
	} else {
		n.layout.ContentWidth, n.layout.ContentHeight = contentCross, contentMain
	}
	n.hasLayout = true
	return n.layout
}

func mainDim(s style.Resolved, isRow bool) style.Dimension {
	if isRow {
		return s.Size.Width
	}
	return s.Size.Height
}

func crossDim(s style.Resolved, isRow bool) style.Dimension {
	if isRow {
		return s.Size.Height
	}
	return s.Size.Width
}

func resolveMargins(cs style.Resolved, isRow bool, mainAvail float32, mainAvailDef bool, crossAvail float32, crossAvailDef bool) (mm1, mm2, mc1, mc2 float32) {
	if isRow {
		mm1, _ = cs.MarginLeft.Resolve(mainAvail, mainAvailDef)
		mm2, _ = cs.MarginRight.Resolve(mainAvail, mainAvailDef)
		mc1, _ = cs.MarginTop.Resolve(crossAvail, crossAvailDef)
		mc2, _ = cs.MarginBottom.Resolve(crossAvail, crossAvailDef)
		return
	}
	mm1, _ = cs.MarginTop.Resolve(mainAvail, mainAvailDef)
	mm2, _ = cs.MarginBottom.Resolve(mainAvail, mainAvailDef)
	mc1, _ = cs.MarginLeft.Resolve(crossAvail, crossAvailDef)
	mc2, _ = cs.MarginRight.Resolve(crossAvail, crossAvailDef)
	return
}

func effectiveShrink(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

func effectiveAlign(cs, container style.Resolved) style.AlignItems {
	switch cs.AlignSelf {
	case style.AlignSelfFlexStart:
		return style.AlignFlexStart
	case style.AlignSelfFlexEnd:
		return style.AlignFlexEnd
	case style.AlignSelfCenter:
		return style.AlignCenter
	case style.AlignSelfStretch:
		return style.AlignStretch
	default:
		return container.AlignItems
	}
}

func effectiveAlignByID(t *Tree, id NodeID, container style.Resolved) style.AlignItems {
	cn := t.nodes[id]
	if cn == nil {
		return container.AlignItems
	}
	return effectiveAlign(cn.style, container)
}

// distributeFlex applies the grow/shrink remainder algorithm: floor each
// item's share, then assign the rounding remainder to the items with the
// largest fractional share, descending. Grounded on
// instructions/auto_layout.go's placeLines flex distribution.
func distributeFlex(recs []childRec, flexFree, totalGrow, totalShrink float32) {
	switch {
	case flexFree > 0 && totalGrow > 0:
		floors := make([]float32, len(recs))
		fracs := make([]float64, len(recs))
		sumFloors := float32(0)
		for i, r := range recs {
			share := float64(flexFree) * float64(r.grow/totalGrow)
			f := math.Floor(share)
			floors[i] = float32(f)
			fracs[i] = share - f
			sumFloors += float32(f)
		}
		remUnits := numeric.ClampInt(int(math.Round(float64(flexFree-sumFloors))), 0, len(fracs))
		idx := rankByFracDesc(fracs)
		for k := 0; k < remUnits; k++ {
			floors[idx[k]]++
		}
		for i := range recs {
			recs[i].sizeMain = numeric.MaxF32(recs[i].baseMain+floors[i], 0)
		}
	case flexFree < 0 && totalShrink > 0:
		need := -flexFree
		floors := make([]float32, len(recs))
		fracs := make([]float64, len(recs))
		sumFloors := float32(0)
		for i, r := range recs {
			share := float64(need) * float64(r.shrink/totalShrink)
			f := math.Floor(share)
			floors[i] = float32(f)
			fracs[i] = share - f
			sumFloors += float32(f)
		}
		remUnits := numeric.ClampInt(int(math.Round(float64(need-sumFloors))), 0, len(fracs))
		idx := rankByFracDesc(fracs)
		for k := 0; k < remUnits; k++ {
			floors[idx[k]]++
		}
		for i := range recs {
			recs[i].sizeMain = numeric.MaxF32(recs[i].baseMain-floors[i], 0)
		}
	default:
		for i := range recs {
			recs[i].sizeMain = recs[i].baseMain
		}
	}
}

func rankByFracDesc(fracs []float64) []int {
	idx := make([]int, len(fracs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return fracs[idx[i]] > fracs[idx[j]] })
	return idx
}

func justifyOffsets(j style.JustifyContent, remaining float32, n int) (offset, extra float32) {
	switch j {
	case style.JustifyFlexStart:
		return 0, 0
	case style.JustifyCenter:
		return numeric.Lerp(0, remaining, 0.5), 0
	case style.JustifyFlexEnd:
		return remaining, 0
	case style.JustifySpaceBetween:
		if n > 1 {
			return 0, remaining / float32(n-1)
		}
		return 0, 0
	case style.JustifySpaceAround:
		if n > 0 {
			extra = remaining / float32(n)
			return extra / 2, extra
		}
		return 0, 0
	case style.JustifySpaceEvenly:
		if n > 0 {
			extra = remaining / float32(n+1)
			return extra, extra
		}
		return 0, 0
	}
	return 0, 0
}

// positionAbsolute places out-of-flow children relative to the container's
// content box (the area inside its padding), honoring Top/Right/Bottom/Left insets and margins. Grounded
// on instructions/auto_layout.go's positionAbsolute.
func (t *Tree) positionAbsolute(ids []NodeID, siblingOrder map[NodeID]int32, outerW, outerH, padL, padT, innerW, innerH float32) {
	for _, id := range ids {
		cn := t.nodes[id]
		cs := cn.style
		l := t.compute(id, innerW, innerH, true, true)
		cn.layout.Order = siblingOrder[id]

		mm1, _ := cs.MarginLeft.Resolve(innerW, true)
		mm2, _ := cs.MarginRight.Resolve(innerW, true)
		mt, _ := cs.MarginTop.Resolve(innerH, true)
		mb, _ := cs.MarginBottom.Resolve(innerH, true)

		cx0, cy0 := padL, padT
		cx1, cy1 := cx0+innerW, cy0+innerH

		x, y := cx0, cy0
		if left, ok := cs.InsetLeft.Resolve(innerW, true); ok && cs.InsetLeft.Kind != style.Auto {
			x = cx0 + left + mm1
		} else if right, ok := cs.InsetRight.Resolve(innerW, true); ok && cs.InsetRight.Kind != style.Auto {
			x = cx1 - right - l.Width - mm2
		}
		if top, ok := cs.InsetTop.Resolve(innerH, true); ok && cs.InsetTop.Kind != style.Auto {
			y = cy0 + top + mt
		} else if bottom, ok := cs.InsetBottom.Resolve(innerH, true); ok && cs.InsetBottom.Kind != style.Auto {
			y = cy1 - bottom - l.Height - mb
		}
		cn.layout.X, cn.layout.Y = numeric.Quant64(x), numeric.Quant64(y)
	}
	_ = outerW
	_ = outerH
}

type unknownNodeError struct{ id NodeID }

func (e unknownNodeError) Error() string { return "flex: unknown node" }

func errUnknownNode(id NodeID) error { return unknownNodeError{id: id} }
