// Package layer holds the drawable regions of the map in base screen space.
package layer

import (
	"fmt"
	"log/slog"

	"topomap/internal/geom"
)

// Projector maps a geographic position to base screen space.
type Projector interface {
	Project(pt [2]float64) [2]float64
}

// GeometryWarning describes a feature left out of the layer.
type GeometryWarning struct {
	Index  int
	ID     string
	Reason string
}

func (w GeometryWarning) Error() string {
	if w.ID != "" {
		return fmt.Sprintf("feature %d (%s): %s", w.Index, w.ID, w.Reason)
	}
	return fmt.Sprintf("feature %d: %s", w.Index, w.Reason)
}

type Region struct {
	// Index is the feature's position in the decoded collection.
	Index    int
	Feature  *geom.Feature
	Polygons []geom.Polygon
	bounds   geom.BBox
}

// Bounds is the axis-aligned box of the region in base screen space.
func (r *Region) Bounds() geom.BBox { return r.bounds }

// Contains reports whether the base-space point falls inside the region.
// Holes do not count.
func (r *Region) Contains(x, y float64) bool {
	if !r.bounds.Contains(x, y) {
		return false
	}
	for _, poly := range r.Polygons {
		if poly.Contains(x, y) {
			return true
		}
	}
	return false
}

// Layer is immutable once built. Regions are in drawing order.
type Layer struct {
	Regions []*Region
	Bounds  geom.BBox
	byIndex map[int]*Region
}

// Build projects every feature once. Empty or degenerate features are
// skipped, logged and returned as warnings.
func Build(fc geom.FeatureCollection, proj Projector, log *slog.Logger) (*Layer, []GeometryWarning) {
	if log == nil {
		log = slog.Default()
	}
	l := &Layer{byIndex: make(map[int]*Region, len(fc.Features))}
	var warnings []GeometryWarning
	first := true
	for i := range fc.Features {
		f := &fc.Features[i]
		r, reason := project(i, f, proj)
		if r == nil {
			id, _ := f.IDString()
			w := GeometryWarning{Index: i, ID: id, Reason: reason}
			log.Warn("geometry_skipped", "index", i, "id", id, "reason", reason)
			warnings = append(warnings, w)
			continue
		}
		if first {
			l.Bounds = r.bounds
			first = false
		} else {
			l.Bounds.Extend([2]float64{r.bounds.MinX, r.bounds.MinY})
			l.Bounds.Extend([2]float64{r.bounds.MaxX, r.bounds.MaxY})
		}
		l.Regions = append(l.Regions, r)
		l.byIndex[i] = r
	}
	return l, warnings
}

func project(i int, f *geom.Feature, proj Projector) (*Region, string) {
	if f.Geometry.Empty() {
		if f.Geometry.Type != "" && f.Geometry.Type != "Polygon" && f.Geometry.Type != "MultiPolygon" {
			return nil, "unsupported geometry type " + f.Geometry.Type
		}
		return nil, "empty geometry"
	}
	r := &Region{Index: i, Feature: f}
	seen := false
	for _, poly := range f.Geometry.Polygons {
		out := make(geom.Polygon, 0, len(poly))
		for _, ring := range poly {
			if ring.Distinct() < 3 {
				return nil, fmt.Sprintf("degenerate ring (%d distinct points)", ring.Distinct())
			}
			sr := make(geom.Ring, 0, len(ring)+1)
			for _, pt := range ring {
				s := proj.Project(pt)
				sr = append(sr, s)
				if !seen {
					r.bounds = geom.BBox{MinX: s[0], MinY: s[1], MaxX: s[0], MaxY: s[1]}
					seen = true
					continue
				}
				r.bounds.Extend(s)
			}
			out = append(out, sr.Close())
		}
		r.Polygons = append(r.Polygons, out)
	}
	return r, ""
}

// HitTest returns the topmost region under the base-space point, or nil.
func (l *Layer) HitTest(x, y float64) *Region {
	if l == nil {
		return nil
	}
	for i := len(l.Regions) - 1; i >= 0; i-- {
		if l.Regions[i].Contains(x, y) {
			return l.Regions[i]
		}
	}
	return nil
}

// Region looks a region up by its feature index.
func (l *Layer) Region(index int) *Region {
	if l == nil {
		return nil
	}
	return l.byIndex[index]
}

// Len is the number of drawable regions.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Regions)
}
