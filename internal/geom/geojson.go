package geom

import (
	"encoding/json"
	"io"
)

type geoJSONGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string           `json:"type"`
	ID         any              `json:"id,omitempty"`
	Properties map[string]any   `json:"properties"`
	Geometry   *geoJSONGeometry `json:"geometry"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Name     string           `json:"name,omitempty"`
	Features []geoJSONFeature `json:"features"`
}

// WriteGeoJSON encodes the collection as a GeoJSON FeatureCollection.
// Single-polygon geometries are written as Polygon, the rest as MultiPolygon;
// empty geometries are written as null.
func WriteGeoJSON(w io.Writer, fc FeatureCollection) error {
	out := geoJSONCollection{Type: "FeatureCollection", Name: fc.Name, Features: make([]geoJSONFeature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		gf := geoJSONFeature{Type: "Feature", ID: f.ID, Properties: f.Properties}
		if gf.Properties == nil {
			gf.Properties = map[string]any{}
		}
		switch {
		case f.Geometry.Empty():
		case len(f.Geometry.Polygons) == 1:
			gf.Geometry = &geoJSONGeometry{Type: "Polygon", Coordinates: f.Geometry.Polygons[0]}
		default:
			gf.Geometry = &geoJSONGeometry{Type: "MultiPolygon", Coordinates: f.Geometry.Polygons}
		}
		out.Features = append(out.Features, gf)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
