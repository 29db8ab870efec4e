package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"topomap/internal/info"
	"topomap/internal/source"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	contentWidth := max(10, m.width)

	// Header
	name := m.source
	if !source.IsURL(name) {
		name = filepath.Base(name)
	}
	header := titleStyle.Render(" topomap ") + dimStyle.Render(" "+name)
	if m.fc != nil {
		header += dimStyle.Render(fmt.Sprintf(" ─ %s", m.fc.Name))
	}
	header = lipgloss.NewStyle().Width(contentWidth).MaxHeight(headerHeight).Render(header)

	// Map canvas
	var canvas string
	switch {
	case m.loading:
		canvas = lipgloss.Place(m.mapW, m.mapH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" loading "+name)
	case m.err != nil:
		msg := errorStyle.Width(max(10, m.mapW-4)).Align(lipgloss.Center).Render(info.LoadError(m.err))
		canvas = lipgloss.Place(m.mapW, m.mapH, lipgloss.Center, lipgloss.Center, msg)
	case m.help.ShowAll:
		canvas = lipgloss.Place(m.mapW, m.mapH, lipgloss.Center, lipgloss.Center,
			boxStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	case m.showAttrs:
		canvas = lipgloss.Place(m.mapW, m.mapH, lipgloss.Center, lipgloss.Center, m.attrsView())
	default:
		canvas = renderMap(m.ctrl, m.mapW, m.mapH)
	}
	mapView := lipgloss.NewStyle().Width(m.mapW).Height(m.mapH).MaxHeight(m.mapH).Render(canvas)

	// Side panel
	title := titleStyle.Render("Region")
	panel := boxStyle.Width(m.panelWidth() - 2).Height(m.mapH - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.panel.View()))

	body := lipgloss.JoinHorizontal(lipgloss.Top, mapView, " ", panel)

	// Footer
	status := dimStyle.Render(fmt.Sprintf(" %s  %s  %.1fx ", m.status, m.ctrl.Mode(), m.ctrl.Transform().K))
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	footer := lipgloss.NewStyle().Width(contentWidth).MaxHeight(footerHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, status, helpView))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).MaxHeight(m.height).Render(ui)
}
