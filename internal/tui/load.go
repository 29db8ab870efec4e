package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"topomap/internal/geom"
	"topomap/internal/source"
	"topomap/internal/topo"
)

const frameInterval = time.Second / 30

type loadedMsg struct {
	fc geom.FeatureCollection
}

type loadFailedMsg struct {
	err error
}

type frameMsg time.Time

// loadCmd fetches and decodes the topology off the event loop.
func loadCmd(f source.Fetcher, location string) tea.Cmd {
	return func() tea.Msg {
		data, err := f.Fetch(context.Background(), location)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		fc, err := topo.Decode(data)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{fc: fc}
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}
