package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"topomap/internal/layer"
	"topomap/internal/projection"
)

const (
	zoomStep = 1.25
	panStep  = 8 // braille dots
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.relayout() && m.fc != nil && m.err == nil {
			m.rebuild()
		}
	case loadedMsg:
		m.loading = false
		m.fc = &msg.fc
		m.log.Info("topology_loaded", "source", m.source, "object", msg.fc.Name, "features", len(msg.fc.Features))
		if m.mapW > 0 {
			m.rebuild()
		}
	case loadFailedMsg:
		m.fail(msg.err)
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case frameMsg:
		if m.ctrl.Tick(m.clock.Now()) {
			cmds = append(cmds, frameCmd())
		} else {
			m.ticking = false
		}
	case tea.KeyMsg:
		if m.showAttrs {
			cmds = append(cmds, m.updateAttrs(msg))
			break
		}
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseMsg:
		if !m.showAttrs {
			cmds = append(cmds, m.handleMouse(msg))
		}
	}
	m.syncPanel()
	return m, tea.Batch(cmds...)
}

// relayout sizes the canvas and panel to the window; reports whether the
// canvas changed size.
func (m *Model) relayout() bool {
	panelW := max(24, min(44, m.width/3))
	mapW := max(10, m.width-panelW-1)
	mapH := max(4, m.height-headerHeight-footerHeight)
	m.panel.Width = max(1, panelW-4)
	m.panel.Height = max(1, mapH-3)
	m.panelText = ""
	changed := mapW != m.mapW || mapH != m.mapH
	m.mapW, m.mapH = mapW, mapH
	return changed
}

func (m Model) panelWidth() int { return m.panel.Width + 4 }

// rebuild fits the projection to the canvas and swaps in a new layer.
func (m *Model) rebuild() {
	bw, bh := float64(m.mapW*2), float64(m.mapH*4)
	params, err := projection.Fit(m.kind, *m.fc, bw, bh)
	if err != nil {
		m.fail(err)
		return
	}
	l, warnings := layer.Build(*m.fc, params, m.log)
	m.ctrl.SetLayer(l, bw, bh)
	m.status = fmt.Sprintf("%s: %d regions", m.fc.Name, l.Len())
	if len(warnings) > 0 {
		m.status += fmt.Sprintf(" (%d skipped)", len(warnings))
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
	m.log.Debug("layer_built", "regions", l.Len(), "skipped", len(warnings), "scale", params.Scale, "width", bw, "height", bh)
}

func (m *Model) fail(err error) {
	m.loading = false
	m.err = err
	m.fc = nil
	m.ctrl.Fail(err)
	m.status = "load failed"
	if errors.Is(err, projection.ErrEmptyExtent) {
		m.status = "nothing to draw"
	}
	m.log.Error("topology_load_failed", "source", m.source, "err", err)
}

// startFrames begins the frame tick chain unless one is already running.
func (m *Model) startFrames() tea.Cmd {
	if m.ticking || !m.ctrl.Animating() {
		return nil
	}
	m.ticking = true
	return frameCmd()
}

func (m *Model) centre() [2]float64 {
	return [2]float64{float64(m.mapW), float64(m.mapH * 2)}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	now := m.clock.Now()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset(now)
		m.status = "reset view"
	case key.Matches(msg, m.keys.Color):
		mode := m.ctrl.Mode().Next()
		m.ctrl.SetColorMode(mode, now)
		m.status = "colour: " + mode.String()
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctrl.ZoomAt(m.centre(), zoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.Transform().K)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctrl.ZoomAt(m.centre(), 1/zoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.Transform().K)
	case key.Matches(msg, m.keys.Up):
		m.ctrl.PanBy(0, panStep)
	case key.Matches(msg, m.keys.Down):
		m.ctrl.PanBy(0, -panStep)
	case key.Matches(msg, m.keys.Left):
		m.ctrl.PanBy(panStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.ctrl.PanBy(-panStep, 0)
	case key.Matches(msg, m.keys.PanelUp, m.keys.PanelDown):
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return cmd
	case key.Matches(msg, m.keys.Attrs):
		if m.ctrl.Layer().Len() == 0 {
			m.status = "no regions loaded"
			return nil
		}
		m.showAttrs = true
		m.refreshAttrs()
	}
	return m.startFrames()
}

// mapPoint converts a terminal cell to canvas coordinates and the braille
// dot at the cell's centre.
func (m *Model) mapPoint(x, y int) (cx, cy int, p [2]float64, ok bool) {
	cx, cy = x, y-headerHeight
	if cx < 0 || cy < 0 || cx >= m.mapW || cy >= m.mapH {
		return cx, cy, p, false
	}
	return cx, cy, [2]float64{float64(cx*2) + 1, float64(cy*4) + 2}, true
}

func (m *Model) hit(p [2]float64) *layer.Region {
	b := m.ctrl.Transform().Invert(p)
	return m.ctrl.Layer().HitTest(b[0], b[1])
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.loading || m.err != nil {
		return nil
	}
	cx, cy, p, inside := m.mapPoint(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !inside || msg.Action != tea.MouseActionPress {
			return nil
		}
		f := zoomStep
		if msg.Button == tea.MouseButtonWheelDown {
			f = 1 / zoomStep
		}
		m.ctrl.ZoomAt(p, f)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.Transform().K)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.drag.active, m.drag.moved = true, false
			m.drag.x, m.drag.y = msg.X, msg.Y
		}
	case msg.Action == tea.MouseActionMotion && m.drag.active:
		dx, dy := msg.X-m.drag.x, msg.Y-m.drag.y
		if dx != 0 || dy != 0 {
			m.ctrl.PanBy(float64(dx*2), float64(dy*4))
			m.drag.moved = true
			m.drag.x, m.drag.y = msg.X, msg.Y
		}
	case msg.Action == tea.MouseActionRelease:
		click := m.drag.active && !m.drag.moved && inside
		m.drag.active = false
		if !click {
			return nil
		}
		if r := m.hit(p); r != nil {
			m.ctrl.Click(r, m.clock.Now())
			m.status = "zoom to region"
		} else {
			m.ctrl.Click(nil, m.clock.Now())
		}
		return m.startFrames()
	case msg.Action == tea.MouseActionMotion:
		if !inside {
			if m.ctrl.Tooltip().Visible {
				m.ctrl.PointerLeave()
			}
			return nil
		}
		m.ctrl.PointerMove(m.hit(p), cx, cy)
	}
	return nil
}

// syncPanel rewraps the panel text when it changed.
func (m *Model) syncPanel() {
	text := m.ctrl.Panel()
	if text == m.panelText {
		return
	}
	m.panelText = text
	m.panel.SetContent(lipgloss.NewStyle().Width(m.panel.Width).Render(text))
	m.panel.GotoTop()
}
