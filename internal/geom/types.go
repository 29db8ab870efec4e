package geom

import "fmt"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Ring is a closed sequence of [x, y] positions (first == last).
type Ring [][2]float64

// Polygon holds rings: first outer, following holes.
type Polygon []Ring

// Geometry is the polygonal part of a feature. Non-polygonal source types keep
// their Type but carry no polygons.
type Geometry struct {
	Type     string
	Polygons []Polygon
}

// Empty reports whether the geometry has nothing drawable.
func (g Geometry) Empty() bool {
	for _, poly := range g.Polygons {
		for _, ring := range poly {
			if len(ring) > 0 {
				return false
			}
		}
	}
	return true
}

type Feature struct {
	ID         any
	Properties map[string]any
	Geometry   Geometry
}

// IDString returns the feature id as text, if present.
func (f *Feature) IDString() (string, bool) {
	return scalarString(f.ID)
}

// Prop returns the first non-empty property among keys, as text.
func (f *Feature) Prop(keys ...string) (string, bool) {
	if f.Properties == nil {
		return "", false
	}
	for _, k := range keys {
		if s, ok := scalarString(f.Properties[k]); ok {
			return s, true
		}
	}
	return "", false
}

// FeatureCollection is ordered; the order is the drawing order.
type FeatureCollection struct {
	Name     string
	Features []Feature
}

// BBox returns the extent of every position in the collection.
func (fc FeatureCollection) BBox() (BBox, bool) {
	var b BBox
	seen := false
	for _, f := range fc.Features {
		for _, poly := range f.Geometry.Polygons {
			for _, ring := range poly {
				for _, p := range ring {
					if !seen {
						b = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
						seen = true
						continue
					}
					b.Extend(p)
				}
			}
		}
	}
	return b, seen
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case fmt.Stringer:
		s := t.String()
		return s, s != ""
	default:
		return fmt.Sprint(t), true
	}
}
