package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/geom"
	"topomap/internal/interact"
	"topomap/internal/layer"
	"topomap/internal/view"
)

type identity struct{}

func (identity) Project(p [2]float64) [2]float64 { return p }

func square(x0, y0, x1, y1 float64) geom.Ring {
	return geom.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

func polyFeature(id string, rings ...geom.Ring) geom.Feature {
	return geom.Feature{ID: id, Geometry: geom.Geometry{Type: "Polygon", Polygons: []geom.Polygon{rings}}}
}

func TestRasterize_HoleStaysEmpty(t *testing.T) {
	fc := geom.FeatureCollection{Features: []geom.Feature{
		polyFeature("donut", square(0, 0, 16, 16), square(4, 4, 12, 12)),
	}}
	l, warnings := layer.Build(fc, identity{}, nil)
	require.Empty(t, warnings)

	b := rasterize(l, view.Identity, 8, 4)
	assert.Equal(t, int32(0), b.at(1, 1))
	assert.Equal(t, int32(0), b.at(15, 15))
	assert.Equal(t, int32(-1), b.at(8, 8), "hole")
	assert.Equal(t, int32(-1), b.at(16, 0), "outside the canvas")
}

func TestRasterize_TopmostWinsAndBordersShow(t *testing.T) {
	fc := geom.FeatureCollection{Features: []geom.Feature{
		polyFeature("a", square(0, 0, 10, 8)),
		polyFeature("b", square(6, 0, 16, 8)),
	}}
	l, _ := layer.Build(fc, identity{}, nil)

	b := rasterize(l, view.Identity, 8, 2)
	assert.Equal(t, int32(0), b.at(2, 2))
	assert.Equal(t, int32(1), b.at(7, 2), "later region covers the overlap")
	assert.True(t, b.edge(5, 2))
	assert.True(t, b.edge(6, 2))
	assert.False(t, b.edge(2, 2))
	assert.False(t, b.edge(15, 2), "background neighbours are not a border")

	mask, id := b.cell(0, 0)
	assert.Equal(t, uint8(0xFF), mask)
	assert.Equal(t, int32(0), id)
}

func TestRasterize_FollowsTransform(t *testing.T) {
	fc := geom.FeatureCollection{Features: []geom.Feature{polyFeature("a", square(0, 0, 4, 4))}}
	l, _ := layer.Build(fc, identity{}, nil)

	b := rasterize(l, view.Transform{X: 8, Y: 4, K: 2}, 10, 5)
	assert.Equal(t, int32(-1), b.at(7, 5))
	assert.Equal(t, int32(0), b.at(8, 4))
	assert.Equal(t, int32(0), b.at(15, 11))
	assert.Equal(t, int32(-1), b.at(16, 12))
}

func TestBrailleRune(t *testing.T) {
	assert.Equal(t, ' ', brailleRune(0))
	assert.Equal(t, '⣿', brailleRune(0xFF))
	assert.Equal(t, '⠁', brailleRune(brailleBits[0][0]))
}

func TestOverlayTooltip_StaysOnCanvas(t *testing.T) {
	const w, h = 12, 5
	for _, tip := range []interact.Tooltip{
		{Visible: true, X: 3, Y: 17, Text: "R2"},
		{Visible: true, X: 40, Y: 2, Text: "a long region name"},
		{Visible: true, X: -3, Y: -2, Text: "R1"},
	} {
		grid := make([][]cell, h)
		for y := range grid {
			grid[y] = make([]cell, w)
		}
		require.NotPanics(t, func() { overlayTooltip(grid, tip, w, h) })

		found := false
		for _, row := range grid {
			for _, c := range row {
				found = found || c.tip
			}
		}
		assert.True(t, found, "tooltip %q is drawn", tip.Text)
	}
}
