// Package colorize assigns fill colours to regions.
package colorize

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"topomap/internal/geom"
)

type Mode int

const (
	ByID Mode = iota
	Random
)

func (m Mode) String() string {
	if m == Random {
		return "random"
	}
	return "by-id"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "by-id", "id":
		return ByID, nil
	case "random":
		return Random, nil
	}
	return ByID, errors.New("unknown color mode " + s)
}

// Next cycles to the other mode.
func (m Mode) Next() Mode {
	if m == ByID {
		return Random
	}
	return ByID
}

// tableau10 is the categorical scheme used for by-id colouring.
var tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// Assigner maps features to colours. By-id assignments are ordinal: keys take
// palette slots in the order they are first seen and keep them.
type Assigner struct {
	palette []colorful.Color
	slots   map[string]int
	rnd     *rand.Rand
}

// NewAssigner uses rnd for random mode; nil seeds from the runtime.
func NewAssigner(rnd *rand.Rand) *Assigner {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	pal := make([]colorful.Color, 0, len(tableau10))
	for _, h := range tableau10 {
		c, _ := colorful.Hex(h)
		pal = append(pal, c)
	}
	return &Assigner{palette: pal, slots: map[string]int{}, rnd: rnd}
}

// Key is the by-id lookup key: feature id, then properties.id, then the
// feature's index in the collection. Numeric ids are tagged so that 1 and
// "1" take different slots.
func Key(f *geom.Feature, index int) string {
	if f != nil {
		if k, ok := idKey(f.ID); ok {
			return k
		}
		if f.Properties != nil {
			if k, ok := idKey(f.Properties["id"]); ok {
				return k
			}
		}
	}
	return "#" + strconv.Itoa(index)
}

func idKey(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case json.Number:
		return "num:" + t.String(), true
	case float64:
		return "num:" + strconv.FormatFloat(t, 'g', -1, 64), true
	case int:
		return "num:" + strconv.Itoa(t), true
	}
	s, ok := (&geom.Feature{ID: v}).IDString()
	return s, ok
}

// ColorOf returns the fill for a feature under mode.
func (a *Assigner) ColorOf(f *geom.Feature, index int, mode Mode) colorful.Color {
	if mode == Random {
		return Rainbow(a.rnd.Float64())
	}
	key := Key(f, index)
	slot, ok := a.slots[key]
	if !ok {
		slot = len(a.slots)
		a.slots[key] = slot
	}
	return a.palette[slot%len(a.palette)]
}

// Rainbow maps t in [0, 1] onto a continuous hue cycle.
func Rainbow(t float64) colorful.Color {
	t -= float64(int(t))
	if t < 0 {
		t++
	}
	return colorful.Hsv(360*t, 0.72, 0.93).Clamped()
}

// Hex renders c for lipgloss.
func Hex(c colorful.Color) string { return c.Clamped().Hex() }
