// Package topo decodes TopoJSON topologies into polygon feature collections.
package topo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"topomap/internal/geom"
)

var ErrNoObjects = errors.New("no topology objects found")

// DecodeError reports input that cannot yield a feature collection.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return "topojson: " + e.Reason + ": " + e.Err.Error()
	}
	return "topojson: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Topology is the raw document. Object names keep their source order.
type Topology struct {
	Type      string
	Transform *Transform
	Arcs      [][][]float64
	Objects   map[string]json.RawMessage
	Names     []string
}

type object struct {
	Type       string          `json:"type"`
	ID         any             `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []object        `json:"geometries"`
}

// Parse reads a topology document without resolving any geometry.
func Parse(data []byte) (*Topology, error) {
	var raw struct {
		Type      string          `json:"type"`
		Transform *Transform      `json:"transform"`
		Arcs      [][][]float64   `json:"arcs"`
		Objects   json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Reason: "malformed document", Err: err}
	}
	names, objs, err := orderedObjects(raw.Objects)
	if err != nil {
		return nil, &DecodeError{Reason: "malformed objects", Err: err}
	}
	return &Topology{
		Type:      raw.Type,
		Transform: raw.Transform,
		Arcs:      raw.Arcs,
		Objects:   objs,
		Names:     names,
	}, nil
}

// Decode parses data and returns the features of its first named object.
func Decode(data []byte) (geom.FeatureCollection, error) {
	t, err := Parse(data)
	if err != nil {
		return geom.FeatureCollection{}, err
	}
	return t.Features()
}

// Features resolves the first named object into a feature collection.
func (t *Topology) Features() (geom.FeatureCollection, error) {
	if len(t.Names) == 0 {
		return geom.FeatureCollection{}, &DecodeError{Reason: "objects", Err: ErrNoObjects}
	}
	name := t.Names[0]
	dec := json.NewDecoder(bytes.NewReader(t.Objects[name]))
	dec.UseNumber()
	var obj object
	if err := dec.Decode(&obj); err != nil {
		return geom.FeatureCollection{}, &DecodeError{Reason: "object " + name, Err: err}
	}

	arcs := t.absoluteArcs()
	fc := geom.FeatureCollection{Name: name}
	var walk func(o object) error
	walk = func(o object) error {
		if o.Type == "GeometryCollection" {
			for _, g := range o.Geometries {
				if err := walk(g); err != nil {
					return err
				}
			}
			return nil
		}
		g, err := geometry(o, arcs)
		if err != nil {
			return err
		}
		fc.Features = append(fc.Features, geom.Feature{ID: o.ID, Properties: o.Properties, Geometry: g})
		return nil
	}
	if err := walk(obj); err != nil {
		return geom.FeatureCollection{}, &DecodeError{Reason: "object " + name, Err: err}
	}
	return fc, nil
}

// absoluteArcs undoes delta encoding and quantisation once per arc.
func (t *Topology) absoluteArcs() [][][2]float64 {
	out := make([][][2]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		pts := make([][2]float64, 0, len(arc))
		var x, y float64
		for _, p := range arc {
			if len(p) < 2 {
				continue
			}
			if t.Transform == nil {
				pts = append(pts, [2]float64{p[0], p[1]})
				continue
			}
			x += p[0]
			y += p[1]
			pts = append(pts, [2]float64{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = pts
	}
	return out
}

func geometry(o object, arcs [][][2]float64) (geom.Geometry, error) {
	g := geom.Geometry{Type: o.Type}
	switch o.Type {
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(o.Arcs, &rings); err != nil {
			return g, fmt.Errorf("polygon arcs: %w", err)
		}
		poly, err := polygon(rings, arcs)
		if err != nil {
			return g, err
		}
		g.Polygons = []geom.Polygon{poly}
	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(o.Arcs, &polys); err != nil {
			return g, fmt.Errorf("multipolygon arcs: %w", err)
		}
		for _, rings := range polys {
			poly, err := polygon(rings, arcs)
			if err != nil {
				return g, err
			}
			g.Polygons = append(g.Polygons, poly)
		}
	}
	return g, nil
}

func polygon(rings [][]int, arcs [][][2]float64) (geom.Polygon, error) {
	poly := make(geom.Polygon, 0, len(rings))
	for _, idx := range rings {
		r, err := ring(idx, arcs)
		if err != nil {
			return nil, err
		}
		poly = append(poly, r)
	}
	return poly, nil
}

// ring stitches arcs end to end, dropping the shared junction point.
func ring(idx []int, arcs [][][2]float64) (geom.Ring, error) {
	var pts geom.Ring
	for _, i := range idx {
		reverse := i < 0
		if reverse {
			i = ^i
		}
		if i >= len(arcs) {
			return nil, fmt.Errorf("arc index %d out of range (%d arcs)", i, len(arcs))
		}
		if len(pts) > 0 {
			pts = pts[:len(pts)-1]
		}
		a := arcs[i]
		if reverse {
			for k := len(a) - 1; k >= 0; k-- {
				pts = append(pts, a[k])
			}
		} else {
			pts = append(pts, a...)
		}
	}
	return pts.Close(), nil
}

// orderedObjects scans the objects mapping token by token so that the
// first named object is the first one written in the document.
func orderedObjects(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	objs := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, objs, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("objects is not a mapping")
	}
	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name, _ := tok.(string)
		var body json.RawMessage
		if err := dec.Decode(&body); err != nil {
			return nil, nil, err
		}
		if _, dup := objs[name]; !dup {
			names = append(names, name)
		}
		objs[name] = body
	}
	return names, objs, nil
}
