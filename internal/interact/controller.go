// Package interact owns the session state of the map: the view transform,
// hover/zoom state, colour mode and the text shown for the current region.
package interact

import (
	"log/slog"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"topomap/internal/colorize"
	"topomap/internal/info"
	"topomap/internal/layer"
	"topomap/internal/tween"
	"topomap/internal/view"
)

const (
	ZoomDuration  = 750 * time.Millisecond
	ResetDuration = 600 * time.Millisecond
	FadeDuration  = 400 * time.Millisecond
)

type State int

const (
	Idle State = iota
	Hovering
	Zoomed
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Zoomed:
		return "zoomed"
	}
	return "idle"
}

// Tooltip is positioned at the pointer, in the host's pointer units.
type Tooltip struct {
	Visible bool
	X, Y    int
	Text    string
}

type Options struct {
	Mode   colorize.Mode
	Colors *colorize.Assigner
	Logger *slog.Logger
}

// Controller is driven from a single event loop; it is not safe for
// concurrent use.
type Controller struct {
	layer         *layer.Layer
	width, height float64

	transform view.Transform
	zoomAnim  *tween.Tween[view.Transform]

	mode     colorize.Mode
	colors   *colorize.Assigner
	fills    []colorful.Color
	fillAnim *tween.Tween[[]colorful.Color]

	state   State
	region  *layer.Region
	tooltip Tooltip
	panel   string
	failure error

	log *slog.Logger
}

// New builds a controller for l drawn in a width x height base viewport.
// l may be nil until data is loaded.
func New(l *layer.Layer, width, height float64, opts Options) *Controller {
	c := &Controller{
		layer:     l,
		width:     width,
		height:    height,
		transform: view.Identity,
		mode:      opts.Mode,
		colors:    opts.Colors,
		panel:     info.DefaultPrompt,
		log:       opts.Logger,
	}
	if c.colors == nil {
		c.colors = colorize.NewAssigner(nil)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.fills = c.paint()
	return c
}

func (c *Controller) paint() []colorful.Color {
	out := make([]colorful.Color, c.layer.Len())
	for i := range out {
		r := c.layer.Regions[i]
		out[i] = c.colors.ColorOf(r.Feature, r.Index, c.mode)
	}
	return out
}

func (c *Controller) Layer() *layer.Layer { return c.layer }

func (c *Controller) State() State { return c.state }

// Region is the hovered or zoomed region, nil when idle.
func (c *Controller) Region() *layer.Region { return c.region }

func (c *Controller) Transform() view.Transform { return c.transform }

// Target is where the transform is heading, or the transform itself when
// nothing is animating.
func (c *Controller) Target() view.Transform {
	if c.zoomAnim != nil {
		return c.zoomAnim.Target()
	}
	return c.transform
}

func (c *Controller) Tooltip() Tooltip { return c.tooltip }

func (c *Controller) Panel() string { return c.panel }

func (c *Controller) Mode() colorize.Mode { return c.mode }

// Fill is the current colour of the i-th region in drawing order.
func (c *Controller) Fill(i int) colorful.Color {
	if i < 0 || i >= len(c.fills) {
		return colorful.Color{}
	}
	return c.fills[i]
}

func (c *Controller) Animating() bool {
	return c.zoomAnim != nil || c.fillAnim != nil
}

// PointerMove handles the pointer over hit (nil for background) at px, py.
func (c *Controller) PointerMove(hit *layer.Region, px, py int) {
	if hit == nil {
		c.PointerLeave()
		return
	}
	c.state = Hovering
	c.region = hit
	c.tooltip = Tooltip{Visible: true, X: px, Y: py, Text: info.Tooltip(hit.Feature)}
	c.panel = info.Panel(hit.Feature)
}

// PointerLeave hides the tooltip. The panel keeps the last region.
func (c *Controller) PointerLeave() {
	c.state = Idle
	c.region = nil
	c.tooltip.Visible = false
}

// Click dispatches a click. A region click zooms to it and is not
// propagated; a click on nothing is a background click. Reports whether a
// region consumed the click.
func (c *Controller) Click(hit *layer.Region, now time.Time) bool {
	if hit == nil {
		c.BackgroundClick()
		return false
	}
	c.zoomTo(hit, now)
	return true
}

// Focus zooms to the region with the given feature index.
func (c *Controller) Focus(index int, now time.Time) bool {
	r := c.layer.Region(index)
	if r == nil {
		return false
	}
	c.zoomTo(r, now)
	c.panel = info.Panel(r.Feature)
	return true
}

func (c *Controller) zoomTo(r *layer.Region, now time.Time) {
	c.state = Zoomed
	c.region = r
	target := view.FitBox(r.Bounds(), c.width, c.height)
	c.animate(target, ZoomDuration, now)
	c.log.Debug("region_zoom", "index", r.Index, "k", target.K)
}

// BackgroundClick clears the selection and restores the prompt. The view
// transform is left alone. A load error stays in the panel.
func (c *Controller) BackgroundClick() {
	c.state = Idle
	c.region = nil
	c.tooltip.Visible = false
	if c.failure == nil {
		c.panel = info.DefaultPrompt
	}
}

// Reset animates back to the identity transform without touching the
// hover/zoom state.
func (c *Controller) Reset(now time.Time) {
	c.animate(view.Identity, ResetDuration, now)
	c.log.Debug("view_reset")
}

// animate replaces any in-flight transform animation, starting from where
// the previous one is at now.
func (c *Controller) animate(target view.Transform, d time.Duration, now time.Time) {
	c.advance(now)
	c.zoomAnim = tween.New(c.transform, target.Clamp(), now, d, view.Lerp, tween.CubicInOut)
}

// ZoomAt applies a zoom gesture around a viewport point. Gestures take over
// from any running animation.
func (c *Controller) ZoomAt(anchor [2]float64, factor float64) {
	c.zoomAnim = nil
	c.transform = c.transform.ZoomAt(anchor, factor)
}

// PanBy applies a drag gesture. Translation is unbounded.
func (c *Controller) PanBy(dx, dy float64) {
	c.zoomAnim = nil
	c.transform = c.transform.PanBy(dx, dy)
}

// SetColorMode recolours every region with a short fade.
func (c *Controller) SetColorMode(mode colorize.Mode, now time.Time) {
	c.advance(now)
	c.mode = mode
	target := c.paint()
	from := make([]colorful.Color, len(c.fills))
	copy(from, c.fills)
	if len(from) != len(target) {
		c.fills = target
		c.fillAnim = nil
		return
	}
	c.fillAnim = tween.New(from, target, now, FadeDuration, blend, tween.CubicInOut)
	c.log.Debug("color_mode", "mode", mode.String())
}

func blend(a, b []colorful.Color, t float64) []colorful.Color {
	out := make([]colorful.Color, len(b))
	for i := range b {
		out[i] = a[i].BlendLab(b[i], t).Clamped()
	}
	return out
}

// Tick advances animations to now and reports whether any is still running.
func (c *Controller) Tick(now time.Time) bool {
	c.advance(now)
	return c.Animating()
}

func (c *Controller) advance(now time.Time) {
	if c.zoomAnim != nil {
		c.transform = c.zoomAnim.At(now)
		if c.zoomAnim.Done(now) {
			c.zoomAnim = nil
		}
	}
	if c.fillAnim != nil {
		c.fills = c.fillAnim.At(now)
		if c.fillAnim.Done(now) {
			c.fillAnim = nil
		}
	}
}

// SetLayer swaps in a layer rebuilt for a new viewport size. Hover and zoom
// state follow the same feature; while zoomed the region is refitted
// without animation. A size change hides the tooltip until the next move.
func (c *Controller) SetLayer(l *layer.Layer, width, height float64) {
	prev := c.layer
	c.layer = l
	c.failure = nil
	if width != c.width || height != c.height {
		c.tooltip.Visible = false
	}
	c.width, c.height = width, height
	c.zoomAnim = nil
	if c.region != nil {
		c.region = l.Region(c.region.Index)
		if c.region == nil {
			c.state = Idle
			c.tooltip.Visible = false
		}
	}
	if c.state == Zoomed && c.region != nil {
		c.transform = view.FitBox(c.region.Bounds(), width, height)
	}
	if prev.Len() != l.Len() || len(c.fills) != l.Len() {
		c.fillAnim = nil
		c.fills = c.paint()
	}
}

// Fail replaces the panel with a load error.
func (c *Controller) Fail(err error) {
	c.failure = err
	c.BackgroundClick()
	c.panel = info.LoadError(err)
}

// Failed is the load error, if any.
func (c *Controller) Failed() error { return c.failure }
