package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"topomap/internal/colorize"
	"topomap/internal/geom"
	"topomap/internal/interact"
	"topomap/internal/layer"
	"topomap/internal/view"
)

// hoverLift is how far the highlighted region is blended toward white.
const hoverLift = 0.35

var white = colorful.Color{R: 1, G: 1, B: 1}

// rasterize fills every region into a w x h cell canvas through t. Later
// regions cover earlier ones; holes are left empty by the even-odd rule.
func rasterize(l *layer.Layer, t view.Transform, w, h int) *brailleBuf {
	b := newBrailleBuf(w, h)
	if l == nil {
		return b
	}
	for pos, r := range l.Regions {
		for _, poly := range r.Polygons {
			fillPolygon(b, poly, t, int32(pos))
		}
	}
	return b
}

func fillPolygon(b *brailleBuf, poly geom.Polygon, t view.Transform, id int32) {
	rings := make([][][2]float64, len(poly))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, ring := range poly {
		sr := make([][2]float64, len(ring))
		for j, p := range ring {
			s := t.Apply(p)
			sr[j] = s
			minY = math.Min(minY, s[1])
			maxY = math.Max(maxY, s[1])
		}
		rings[i] = sr
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(b.mh-1, int(math.Ceil(maxY)))
	var xs []float64
	for my := y0; my <= y1; my++ {
		yc := float64(my) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
				a, c := r[j], r[i]
				if (a[1] <= yc) == (c[1] <= yc) {
					continue
				}
				xs = append(xs, a[0]+(yc-a[1])*(c[0]-a[0])/(c[1]-a[1]))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			// pixel centres inside [xs[i], xs[i+1])
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Ceil(xs[i+1]-0.5)) - 1
			if to < from {
				continue
			}
			b.fillSpan(my, from, to, id)
		}
	}
}

type cell struct {
	r   rune
	fg  string
	tip bool
}

// renderMap draws the controller's layer at its current transform and fills,
// then lays the tooltip over it.
func renderMap(c *interact.Controller, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	buf := rasterize(c.Layer(), c.Transform(), w, h)
	hovered := int32(-1)
	if r := c.Region(); r != nil {
		for pos, lr := range c.Layer().Regions {
			if lr == r {
				hovered = int32(pos)
				break
			}
		}
	}

	hex := make(map[int32]string)
	colorOf := func(id int32) string {
		if s, ok := hex[id]; ok {
			return s
		}
		col := c.Fill(int(id))
		if id == hovered {
			col = col.BlendLab(white, hoverLift)
		}
		s := colorize.Hex(col)
		hex[id] = s
		return s
	}

	grid := make([][]cell, h)
	for y := range grid {
		row := make([]cell, w)
		for x := range row {
			mask, id := buf.cell(x, y)
			row[x] = cell{r: brailleRune(mask)}
			if id >= 0 {
				row[x].fg = colorOf(id)
			}
		}
		grid[y] = row
	}
	if tip := c.Tooltip(); tip.Visible {
		overlayTooltip(grid, tip, w, h)
	}

	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// overlayTooltip writes the label just below and right of the pointer,
// shifted left or up and kept inside the canvas.
func overlayTooltip(grid [][]cell, tip interact.Tooltip, w, h int) {
	text := " " + runewidth.Truncate(tip.Text, max(1, w-2), "…") + " "
	tw := runewidth.StringWidth(text)
	x := tip.X + 2
	if x+tw > w {
		x = w - tw
	}
	x = min(max(0, x), w-1)
	y := tip.Y + 1
	if y >= h {
		y = tip.Y - 1
	}
	y = min(max(0, y), h-1)
	row := grid[y]
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if x+rw > w {
			break
		}
		row[x] = cell{r: r, tip: true}
		for k := 1; k < rw; k++ {
			row[x+k] = cell{tip: true}
		}
		x += max(1, rw)
	}
}

// renderRow groups runs of equally styled cells into single lipgloss renders.
func renderRow(row []cell) string {
	var out strings.Builder
	var run strings.Builder
	cur := cell{}
	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch {
		case cur.tip:
			out.WriteString(tooltipStyle.Render(run.String()))
		case cur.fg != "":
			out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur.fg)).Render(run.String()))
		default:
			out.WriteString(run.String())
		}
		run.Reset()
	}
	for i, c := range row {
		if i == 0 || c.tip != cur.tip || c.fg != cur.fg {
			flush()
			cur = c
		}
		if c.r != 0 {
			run.WriteRune(c.r)
		}
	}
	flush()
	return out.String()
}
