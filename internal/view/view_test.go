package view

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"topomap/internal/geom"
)

func TestZoomAt_ClampsScale(t *testing.T) {
	tr := Identity
	for i := 0; i < 50; i++ {
		tr = tr.ZoomAt([2]float64{10, 10}, 3)
	}
	assert.Equal(t, MaxScale, tr.K)

	for i := 0; i < 50; i++ {
		tr = tr.ZoomAt([2]float64{10, 10}, 0.1)
	}
	assert.Equal(t, MinScale, tr.K)

	assert.Equal(t, MinScale, Identity.ZoomAt([2]float64{}, math.NaN()).K)
	assert.Equal(t, MaxScale, Identity.ZoomAt([2]float64{}, math.Inf(1)).K)
}

func TestZoomAt_KeepsAnchorFixed(t *testing.T) {
	tr := Transform{X: 5, Y: -3, K: 2}
	anchor := [2]float64{40, 25}
	before := tr.Invert(anchor)

	after := tr.ZoomAt(anchor, 1.5)
	assert.InDelta(t, 3.0, after.K, 1e-12)
	got := after.Apply(before)
	assert.InDelta(t, anchor[0], got[0], 1e-9)
	assert.InDelta(t, anchor[1], got[1], 1e-9)
}

func TestApplyInvertRoundTrip(t *testing.T) {
	tr := Transform{X: 12.5, Y: -7, K: 3.25}
	p := [2]float64{3, 4}
	back := tr.Invert(tr.Apply(p))
	assert.InDelta(t, p[0], back[0], 1e-12)
	assert.InDelta(t, p[1], back[1], 1e-12)
}

func TestFitBox(t *testing.T) {
	const w, h = 200.0, 100.0
	box := geom.BBox{MinX: 40, MinY: 20, MaxX: 60, MaxY: 30}

	tr := FitBox(box, w, h)
	wantK := math.Min(FocusMaxScale, FocusPadding/math.Max(20/w, 10/h))
	assert.InDelta(t, wantK, tr.K, 1e-12)

	centre := tr.Apply([2]float64{50, 25})
	assert.InDelta(t, w/2, centre[0], 1e-9)
	assert.InDelta(t, h/2, centre[1], 1e-9)
}

func TestFitBox_Caps(t *testing.T) {
	tiny := FitBox(geom.BBox{MinX: 1, MinY: 1, MaxX: 1.01, MaxY: 1.01}, 100, 100)
	assert.Equal(t, FocusMaxScale, tiny.K)

	point := FitBox(geom.BBox{MinX: 1, MinY: 1, MaxX: 1, MaxY: 1}, 100, 100)
	assert.Equal(t, FocusMaxScale, point.K)

	huge := FitBox(geom.BBox{MinX: 0, MinY: 0, MaxX: 300, MaxY: 300}, 100, 100)
	assert.Equal(t, MinScale, huge.K)
}

func TestLerp(t *testing.T) {
	a := Transform{X: 0, Y: 0, K: 1}
	b := Transform{X: 10, Y: -10, K: 5}
	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, Transform{X: 5, Y: -5, K: 3}, Lerp(a, b, 0.5))
}
