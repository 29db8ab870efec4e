// Package info renders region details for the tooltip and the side panel.
package info

import (
	"encoding/json"
	"fmt"
	"strings"

	"topomap/internal/geom"
)

const (
	DefaultPrompt = "Hover a region"
	noName        = "(no name)"
	noID          = "(no id)"
)

func name(f *geom.Feature) (string, bool) {
	if f == nil {
		return "", false
	}
	return f.Prop("name", "NAME")
}

// ID is the feature id, else properties.id.
func ID(f *geom.Feature) (string, bool) {
	if f == nil {
		return "", false
	}
	if s, ok := f.IDString(); ok {
		return s, true
	}
	return f.Prop("id")
}

// Headline is the region's name, else its id, else a placeholder.
func Headline(f *geom.Feature) string {
	if n, ok := name(f); ok {
		return n
	}
	if i, ok := ID(f); ok {
		return i
	}
	return noName
}

// Tooltip is the one-line hover label.
func Tooltip(f *geom.Feature) string {
	n, hasName := name(f)
	i, hasID := ID(f)
	switch {
	case hasName && hasID && n != i:
		return n + " · " + i
	case hasName:
		return n
	case hasID:
		return i
	}
	return noName
}

// Panel is the side panel body: name, id and every property.
func Panel(f *geom.Feature) string {
	n, ok := name(f)
	if !ok {
		n = noName
	}
	i, ok := ID(f)
	if !ok {
		i = noID
	}
	var b strings.Builder
	b.WriteString(n)
	b.WriteString("\nid: ")
	b.WriteString(i)
	if f != nil && len(f.Properties) > 0 {
		dump, err := json.MarshalIndent(f.Properties, "", "  ")
		if err != nil {
			dump = []byte(fmt.Sprintf("%v", f.Properties))
		}
		b.WriteString("\n\n")
		b.Write(dump)
	}
	return b.String()
}

// LoadError is shown in the panel when the map cannot be drawn.
func LoadError(err error) string {
	return "Error loading topology: " + err.Error()
}
