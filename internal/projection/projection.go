// Package projection maps lon/lat onto a flat drawing surface fitted to a
// feature collection's extent.
package projection

import (
	"errors"
	"math"
	"strings"

	"topomap/internal/geom"
)

type Kind int

const (
	Mercator Kind = iota
	Equirectangular
)

// fitMargin is the share of each viewport side left empty around the extent.
const fitMargin = 0.02

// Web Mercator latitude cut-off.
const maxMercatorLat = 85.05112878

var ErrEmptyExtent = errors.New("projection: nothing to fit")

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mercator":
		return Mercator, nil
	case "equirectangular", "plate-carree", "cylindrical":
		return Equirectangular, nil
	}
	return Mercator, errors.New("projection: unknown kind " + s)
}

func (k Kind) String() string {
	if k == Equirectangular {
		return "equirectangular"
	}
	return "mercator"
}

// Params fully determine a projection; Project is a pure function of them.
type Params struct {
	Kind  Kind
	Scale float64
	TX    float64
	TY    float64
}

// Project maps [lon, lat] to screen [x, y]; y grows downward.
func (p Params) Project(pt [2]float64) [2]float64 {
	x, y := raw(p.Kind, pt)
	return [2]float64{x*p.Scale + p.TX, y*p.Scale + p.TY}
}

// raw applies the unscaled projection in radians, y flipped so north is up.
func raw(k Kind, pt [2]float64) (float64, float64) {
	lambda := pt[0] * math.Pi / 180
	lat := pt[1]
	if k == Mercator {
		lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
		phi := lat * math.Pi / 180
		return lambda, -math.Log(math.Tan(math.Pi/4 + phi/2))
	}
	return lambda, -lat * math.Pi / 180
}

// Fit picks a uniform scale and translation so the projected extent of fc
// fills width x height minus the margin, centred.
func Fit(k Kind, fc geom.FeatureCollection, width, height float64) (Params, error) {
	var b geom.BBox
	seen := false
	for _, f := range fc.Features {
		for _, poly := range f.Geometry.Polygons {
			for _, ring := range poly {
				for _, pt := range ring {
					x, y := raw(k, pt)
					if !seen {
						b = geom.BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
						seen = true
						continue
					}
					b.Extend([2]float64{x, y})
				}
			}
		}
	}
	if !seen || width <= 0 || height <= 0 {
		return Params{Kind: k}, ErrEmptyExtent
	}

	innerW := width * (1 - 2*fitMargin)
	innerH := height * (1 - 2*fitMargin)
	bw, bh := b.Width(), b.Height()
	var scale float64
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(innerW/bw, innerH/bh)
	case bw > 0:
		scale = innerW / bw
	case bh > 0:
		scale = innerH / bh
	default:
		scale = 1
	}
	cx, cy := b.Center()
	return Params{
		Kind:  k,
		Scale: scale,
		TX:    width/2 - cx*scale,
		TY:    height/2 - cy*scale,
	}, nil
}
