// Package view is the pan/zoom transform applied to the whole region layer.
package view

import (
	"math"

	"topomap/internal/geom"
)

const (
	MinScale = 1.0
	MaxScale = 40.0

	// FocusMaxScale caps zoom-to-region; FocusPadding is the share of the
	// viewport the focused region may fill.
	FocusMaxScale = 8.0
	FocusPadding  = 0.9
)

// Transform maps base screen space to the viewport: screen = base*K + (X, Y).
type Transform struct {
	X, Y float64
	K    float64
}

var Identity = Transform{K: 1}

func ClampScale(k float64) float64 {
	if math.IsNaN(k) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(MaxScale, k))
}

// Clamp keeps the scale inside [MinScale, MaxScale]. Translation is free.
func (t Transform) Clamp() Transform {
	t.K = ClampScale(t.K)
	return t
}

func (t Transform) Apply(p [2]float64) [2]float64 {
	return [2]float64{p[0]*t.K + t.X, p[1]*t.K + t.Y}
}

func (t Transform) Invert(p [2]float64) [2]float64 {
	return [2]float64{(p[0] - t.X) / t.K, (p[1] - t.Y) / t.K}
}

// ZoomAt scales by factor keeping the screen point anchor fixed.
func (t Transform) ZoomAt(anchor [2]float64, factor float64) Transform {
	k := ClampScale(t.K * factor)
	base := t.Invert(anchor)
	return Transform{X: anchor[0] - base[0]*k, Y: anchor[1] - base[1]*k, K: k}
}

func (t Transform) PanBy(dx, dy float64) Transform {
	t.X += dx
	t.Y += dy
	return t
}

// FitBox centres box in a width x height viewport, filling FocusPadding of
// its tighter axis, never beyond FocusMaxScale.
func FitBox(box geom.BBox, width, height float64) Transform {
	ratio := math.Max(box.Width()/width, box.Height()/height)
	k := FocusMaxScale
	if ratio > 0 {
		k = math.Min(FocusMaxScale, FocusPadding/ratio)
	}
	k = ClampScale(k)
	cx, cy := box.Center()
	return Transform{X: width/2 - k*cx, Y: height/2 - k*cy, K: k}
}

// Lerp interpolates each component linearly.
func Lerp(a, b Transform, t float64) Transform {
	return Transform{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		K: a.K + (b.K-a.K)*t,
	}
}
