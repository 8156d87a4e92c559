package style_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/krispeckt/layoutbridge/style"
)

func TestTranslate_Defaults(t *testing.T) {
	r, err := style.Translate(style.Style{
		Direction:      style.Row,
		JustifyContent: style.JustifyCenter,
		AlignItems:     style.AlignStretch,
		Size:           style.Size{Width: style.Pt(100), Height: style.Pt(50)},
		Padding: style.Inset{
			Top: ptr(style.Pt(5)), Bottom: ptr(style.Pt(5)),
		},
		ItemSpacing: style.FixedSpacing(10),
	})
	require.NoError(t, err)
	require.Equal(t, style.Row, r.Direction)
	require.Equal(t, style.JustifyCenter, r.JustifyContent)
	require.Equal(t, float32(5), r.PaddingTop.Value)
	require.Equal(t, style.Points, r.PaddingTop.Kind)
	require.Equal(t, style.Points, r.PaddingLeft.Kind)
	require.Equal(t, float32(0), r.PaddingLeft.Value)
	require.Equal(t, float32(10), r.MainGap)
	require.True(t, r.OverflowClipped)
}

func TestTranslate_BaselineCollapsesToFlexStart(t *testing.T) {
	r, err := style.Translate(style.Style{AlignItems: style.AlignBaseline, AlignSelf: style.AlignSelfBaseline})
	require.NoError(t, err)
	require.Equal(t, style.AlignFlexStart, r.AlignItems)
	require.Equal(t, style.AlignSelfFlexStart, r.AlignSelf)
}

func TestTranslate_FillContainerZeroesBasis(t *testing.T) {
	r, err := style.Translate(style.Style{FillContainer: true, FlexBasis: style.Pt(200)})
	require.NoError(t, err)
	require.Equal(t, style.Points, r.FlexBasis.Kind)
	require.Equal(t, float32(0), r.FlexBasis.Value)
}

func TestTranslate_RotationCollapse(t *testing.T) {
	r, err := style.Translate(style.Style{
		Size:        style.Size{Width: style.Pt(100), Height: style.Pt(50)},
		MinSize:     style.Size{Width: style.Pt(10), Height: style.Pt(10)},
		MaxSize:     style.Size{Width: style.Pt(500), Height: style.Pt(500)},
		BoundingBox: style.Size{Width: style.Pt(64), Height: style.Pt(32)},
	})
	require.NoError(t, err)
	require.Equal(t, float32(64), r.Size.Width.Value)
	require.Equal(t, float32(32), r.Size.Height.Value)
	require.Equal(t, style.Auto, r.MinSize.Width.Kind)
	require.Equal(t, style.Auto, r.MaxSize.Width.Kind)
}

func TestTranslate_NoneDirectionCollapsesToRow(t *testing.T) {
	r, err := style.Translate(style.Style{Direction: style.None})
	require.NoError(t, err)
	require.Equal(t, style.Row, r.Direction)
}

func TestTranslate_UnknownEnumVariant(t *testing.T) {
	_, err := style.Translate(style.Style{Direction: style.FlexDirection(9)})
	require.Error(t, err)
	var target *style.UnknownEnumVariantError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "flex_direction", target.Enum)
}

func TestTranslate_MissingField(t *testing.T) {
	_, err := style.Translate(style.Style{FlexGrow: -1})
	require.Error(t, err)
	var target *style.MissingFieldError
	require.ErrorAs(t, err, &target)
}

func ptr(d style.Dimension) *style.Dimension { return &d }
