package interact

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topomap/internal/colorize"
	"topomap/internal/info"
	"topomap/internal/layer"
	"topomap/internal/projection"
	"topomap/internal/topo"
	"topomap/internal/tween"
	"topomap/internal/view"
)

const (
	viewW = 200.0
	viewH = 100.0
)

// Three adjacent regions in a single "admin" object; R3 carries its id in
// properties only.
const adminTopology = `{
  "type": "Topology",
  "transform": {"scale": [0.5, 0.25], "translate": [-20, 60]},
  "arcs": [
    [[0, 0], [2, 0], [0, 4], [-2, 0], [0, -4]],
    [[2, 0], [2, 0], [0, 4], [-2, 0]],
    [[2, 4], [0, -4]],
    [[4, 0], [2, 0], [0, 4], [-2, 0], [0, -4]]
  ],
  "objects": {
    "admin": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "id": "R1", "arcs": [[0]]},
        {"type": "Polygon", "id": "R2", "properties": {"pop": 1200}, "arcs": [[1, 2]]},
        {"type": "Polygon", "properties": {"id": "R3"}, "arcs": [[3]]}
      ]
    }
  }
}`

func fixture(t *testing.T) (*Controller, *layer.Layer, *tween.ManualClock) {
	t.Helper()
	fc, err := topo.Decode([]byte(adminTopology))
	require.NoError(t, err)
	require.Equal(t, "admin", fc.Name)
	require.Len(t, fc.Features, 3)

	params, err := projection.Fit(projection.Equirectangular, fc, viewW, viewH)
	require.NoError(t, err)
	l, warnings := layer.Build(fc, params, nil)
	require.Empty(t, warnings)
	require.Equal(t, 3, l.Len())

	c := New(l, viewW, viewH, Options{Colors: colorize.NewAssigner(rand.New(rand.NewPCG(1, 1)))})
	return c, l, &tween.ManualClock{T: time.Unix(1_700_000_000, 0)}
}

func centre(r *layer.Region) (float64, float64) {
	return r.Bounds().Center()
}

func TestScenario_HoverAndZoomToR2(t *testing.T) {
	c, l, clock := fixture(t)
	r2 := l.Region(1)

	x, y := centre(r2)
	hit := l.HitTest(x, y)
	require.Same(t, r2, hit)

	c.PointerMove(hit, 30, 12)
	assert.Equal(t, Hovering, c.State())
	tip := c.Tooltip()
	assert.True(t, tip.Visible)
	assert.Equal(t, 30, tip.X)
	assert.Equal(t, 12, tip.Y)
	assert.Contains(t, tip.Text, "R2")
	assert.Contains(t, c.Panel(), "R2")
	assert.Contains(t, c.Panel(), `"pop": 1200`)
	assert.Equal(t, view.Identity, c.Transform(), "hover does not move the view")

	consumed := c.Click(hit, clock.Now())
	assert.True(t, consumed)
	assert.Equal(t, Zoomed, c.State())

	b := r2.Bounds()
	wantK := math.Min(8, 0.9/math.Max(b.Width()/viewW, b.Height()/viewH))
	target := c.Target()
	assert.InDelta(t, wantK, target.K, 1e-9)
	bx, by := b.Center()
	assert.InDelta(t, viewW/2-wantK*bx, target.X, 1e-9)
	assert.InDelta(t, viewH/2-wantK*by, target.Y, 1e-9)

	// Half way the view is in between, then lands exactly on target.
	assert.True(t, c.Tick(clock.Advance(ZoomDuration/2)))
	mid := c.Transform()
	assert.Greater(t, mid.K, 1.0)
	assert.Less(t, mid.K, wantK)

	assert.False(t, c.Tick(clock.Advance(ZoomDuration)))
	assert.Equal(t, target, c.Transform())
}

func TestClickThenBackgroundClick_ReturnsToIdle(t *testing.T) {
	c, l, clock := fixture(t)
	r1 := l.Region(0)

	c.PointerMove(r1, 1, 1)
	c.Click(r1, clock.Now())
	consumed := c.Click(nil, clock.Now())

	assert.False(t, consumed)
	assert.Equal(t, Idle, c.State())
	assert.Nil(t, c.Region())
	assert.False(t, c.Tooltip().Visible)
	assert.Equal(t, info.DefaultPrompt, c.Panel())
	assert.True(t, c.Animating(), "background click leaves the zoom running")
}

func TestClickAThenB_LastWriterWins(t *testing.T) {
	c, l, clock := fixture(t)
	a, b := l.Region(0), l.Region(2)

	c.Click(a, clock.Now())
	c.Tick(clock.Advance(ZoomDuration / 3))
	c.Click(b, clock.Now())

	for c.Tick(clock.Advance(50 * time.Millisecond)) {
	}
	assert.Equal(t, view.FitBox(b.Bounds(), viewW, viewH), c.Transform())
	assert.Same(t, b, c.Region())
}

func TestPointerLeave_PanelIsSticky(t *testing.T) {
	c, l, _ := fixture(t)

	c.PointerMove(l.Region(1), 5, 5)
	panel := c.Panel()
	c.PointerMove(nil, 6, 6)

	assert.Equal(t, Idle, c.State())
	assert.False(t, c.Tooltip().Visible)
	assert.Equal(t, panel, c.Panel())
}

func TestReset_AnimatesToIdentityAndKeepsState(t *testing.T) {
	c, l, clock := fixture(t)

	c.Click(l.Region(1), clock.Now())
	for c.Tick(clock.Advance(100 * time.Millisecond)) {
	}
	require.NotEqual(t, view.Identity, c.Transform())

	c.Reset(clock.Now())
	assert.Equal(t, Zoomed, c.State())
	c.Tick(clock.Advance(ResetDuration - time.Millisecond))
	assert.NotEqual(t, view.Identity, c.Transform())
	assert.False(t, c.Tick(clock.Advance(time.Millisecond)))
	assert.Equal(t, view.Identity, c.Transform())
	assert.Equal(t, Zoomed, c.State())
}

func TestGestures_ClampScaleAndCancelAnimation(t *testing.T) {
	c, l, clock := fixture(t)

	c.Click(l.Region(0), clock.Now())
	c.ZoomAt([2]float64{100, 50}, 1e6)
	assert.False(t, c.Animating())
	assert.Equal(t, view.MaxScale, c.Transform().K)

	c.ZoomAt([2]float64{100, 50}, 1e-6)
	assert.Equal(t, view.MinScale, c.Transform().K)

	before := c.Transform()
	c.PanBy(-5000, 3000)
	assert.Equal(t, before.X-5000, c.Transform().X)
	assert.Equal(t, before.Y+3000, c.Transform().Y)
}

func TestSetColorMode_FadesWithoutTouchingView(t *testing.T) {
	c, l, clock := fixture(t)
	c.PointerMove(l.Region(2), 3, 3)
	before := []string{colorize.Hex(c.Fill(0)), colorize.Hex(c.Fill(1)), colorize.Hex(c.Fill(2))}

	c.SetColorMode(colorize.Random, clock.Now())
	assert.Equal(t, colorize.Random, c.Mode())
	assert.True(t, c.Animating())
	assert.Equal(t, before[0], colorize.Hex(c.Fill(0)), "fade starts from the old colour")

	for c.Tick(clock.Advance(100 * time.Millisecond)) {
	}
	assert.Equal(t, Hovering, c.State())
	assert.Equal(t, view.Identity, c.Transform())

	c.SetColorMode(colorize.ByID, clock.Now())
	for c.Tick(clock.Advance(100 * time.Millisecond)) {
	}
	after := []string{colorize.Hex(c.Fill(0)), colorize.Hex(c.Fill(1)), colorize.Hex(c.Fill(2))}
	assert.Equal(t, before, after, "by-id colours are stable across repaints")
}

func TestFocus(t *testing.T) {
	c, l, clock := fixture(t)

	assert.True(t, c.Focus(2, clock.Now()))
	assert.Equal(t, Zoomed, c.State())
	assert.Contains(t, c.Panel(), "R3")
	assert.Equal(t, view.FitBox(l.Region(2).Bounds(), viewW, viewH), c.Target())

	assert.False(t, c.Focus(42, clock.Now()))
}

func TestSetLayer_RemapsRegionByIndex(t *testing.T) {
	c, _, clock := fixture(t)
	fc, err := topo.Decode([]byte(adminTopology))
	require.NoError(t, err)

	c.Click(c.Layer().Region(1), clock.Now())

	params, err := projection.Fit(projection.Equirectangular, fc, 2*viewW, 2*viewH)
	require.NoError(t, err)
	bigger, _ := layer.Build(fc, params, nil)
	c.SetLayer(bigger, 2*viewW, 2*viewH)

	assert.Same(t, bigger.Region(1), c.Region())
	assert.False(t, c.Animating())
	assert.Equal(t, view.FitBox(bigger.Region(1).Bounds(), 2*viewW, 2*viewH), c.Transform())
}

func TestFail(t *testing.T) {
	c := New(nil, viewW, viewH, Options{})
	c.Fail(errors.New("no topology objects found"))

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "Error loading topology: no topology objects found", c.Panel())
	assert.Nil(t, c.Layer().HitTest(1, 1))
}

func TestFail_BackgroundClickKeepsError(t *testing.T) {
	c := New(nil, viewW, viewH, Options{})
	c.Fail(errors.New("boom"))

	assert.False(t, c.Click(nil, time.Now()))
	c.PointerLeave()
	assert.Equal(t, "Error loading topology: boom", c.Panel())
	assert.EqualError(t, c.Failed(), "boom")
}

func TestSetLayer_ResizeHidesTooltip(t *testing.T) {
	c, l, _ := fixture(t)
	c.PointerMove(l.Region(1), 40, 20)
	require.True(t, c.Tooltip().Visible)

	c.SetLayer(l, viewW, viewH)
	assert.True(t, c.Tooltip().Visible, "same size keeps the tooltip")

	c.SetLayer(l, viewW/2, viewH/2)
	assert.False(t, c.Tooltip().Visible)
	assert.Equal(t, Hovering, c.State())
}
