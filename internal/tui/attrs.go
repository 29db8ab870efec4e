package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"topomap/internal/info"
	"topomap/internal/layer"
)

const maxColW = 24

// attributeRows lists one row per drawn region: feature index, id, headline
// and the union of the remaining property keys in sorted order.
func attributeRows(l *layer.Layer) ([]string, [][]string) {
	seen := map[string]bool{"id": true, "name": true, "NAME": true}
	var keys []string
	for _, r := range l.Regions {
		for k := range r.Feature.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"#", "id", "name"}, keys...)

	rows := make([][]string, 0, l.Len())
	for _, r := range l.Regions {
		id, _ := info.ID(r.Feature)
		row := []string{fmt.Sprintf("%d", r.Index), id, info.Headline(r.Feature)}
		for _, k := range keys {
			row = append(row, cellText(r.Feature.Properties[k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return t.String()
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bs)
}

// refreshAttrs rebuilds the table columns/rows from the current layer.
func (m *Model) refreshAttrs() {
	cols, rows := attributeRows(m.ctrl.Layer())
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no regions loaded"
		return
	}
	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[i])+1)
		}
		tcols[i] = table.Column{Title: c, Width: min(w, maxColW)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	// clear rows first so columns and rows never disagree in length
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.status = fmt.Sprintf("attributes: %d regions", len(rows))
}

func (m *Model) updateAttrs(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Close, m.keys.Attrs):
		m.showAttrs = false
		return nil
	case key.Matches(msg, m.keys.Focus):
		i := m.tbl.Cursor()
		l := m.ctrl.Layer()
		if i < 0 || i >= l.Len() {
			return nil
		}
		r := l.Regions[i]
		m.ctrl.Focus(r.Index, m.clock.Now())
		m.showAttrs = false
		m.status = "zoom to " + info.Headline(r.Feature)
		return m.startFrames()
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return cmd
}

// attrsView renders the table in a box sized to the canvas.
func (m *Model) attrsView() string {
	colW := 0
	for _, c := range m.tbl.Columns() {
		colW += c.Width + 2
	}
	w := min(m.mapW-4, max(32, colW))
	m.tbl.SetWidth(w)
	m.tbl.SetHeight(max(3, min(m.mapH-4, 20)))
	return boxStyle.Render(m.tbl.View())
}
