package colorize

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/geom"
)

func TestColorOf_ByIDIsIdempotent(t *testing.T) {
	a := NewAssigner(rand.New(rand.NewPCG(1, 2)))
	features := []geom.Feature{
		{ID: "R1"},
		{Properties: map[string]any{"id": "R2"}},
		{},
	}

	for i := range features {
		first := a.ColorOf(&features[i], i, ByID)
		second := a.ColorOf(&features[i], i, ByID)
		assert.Equal(t, first, second, "feature %d", i)
	}
}

func TestColorOf_ByIDIsOrdinal(t *testing.T) {
	a := NewAssigner(nil)
	r1 := geom.Feature{ID: "R1"}
	r2 := geom.Feature{ID: "R2"}

	c1 := a.ColorOf(&r1, 0, ByID)
	c2 := a.ColorOf(&r2, 1, ByID)
	assert.NotEqual(t, c1, c2)
	assert.Equal(t, "#4e79a7", Hex(c1))
	assert.Equal(t, "#f28e2c", Hex(c2))

	// Same key, different feature value: same slot.
	again := geom.Feature{ID: "R1", Properties: map[string]any{"name": "x"}}
	assert.Equal(t, c1, a.ColorOf(&again, 9, ByID))
}

func TestKey_Fallbacks(t *testing.T) {
	assert.Equal(t, "R1", Key(&geom.Feature{ID: "R1", Properties: map[string]any{"id": "other"}}, 3))
	assert.Equal(t, "R2", Key(&geom.Feature{Properties: map[string]any{"id": "R2"}}, 3))
	assert.Equal(t, "#3", Key(&geom.Feature{}, 3))
	assert.Equal(t, "#0", Key(nil, 0))
}

func TestKey_NumericAndStringIDsDiffer(t *testing.T) {
	num := Key(&geom.Feature{ID: json.Number("1")}, 0)
	str := Key(&geom.Feature{ID: "1"}, 0)
	assert.NotEqual(t, num, str)
	assert.Equal(t, num, Key(&geom.Feature{ID: 1.0}, 5))
	assert.Equal(t, num, Key(&geom.Feature{Properties: map[string]any{"id": json.Number("1")}}, 5))

	a := NewAssigner(rand.New(rand.NewPCG(3, 3)))
	assert.NotEqual(t, a.ColorOf(&geom.Feature{ID: json.Number("1")}, 0, ByID),
		a.ColorOf(&geom.Feature{ID: "1"}, 1, ByID))
}

func TestColorOf_RandomUsesSource(t *testing.T) {
	a := NewAssigner(rand.New(rand.NewPCG(7, 7)))
	b := NewAssigner(rand.New(rand.NewPCG(7, 7)))
	f := geom.Feature{ID: "R1"}

	for i := 0; i < 5; i++ {
		ca := a.ColorOf(&f, 0, Random)
		assert.Equal(t, ca, b.ColorOf(&f, 0, Random))
		assert.True(t, ca.IsValid())
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("id")
	require.NoError(t, err)
	assert.Equal(t, ByID, m)

	m, err = ParseMode("RANDOM")
	require.NoError(t, err)
	assert.Equal(t, Random, m)
	assert.Equal(t, ByID, m.Next())
	assert.Equal(t, "random", m.String())

	_, err = ParseMode("viridis")
	assert.Error(t, err)
}

func TestRainbow_Wraps(t *testing.T) {
	assert.Equal(t, Hex(Rainbow(0.25)), Hex(Rainbow(1.25)))
}
