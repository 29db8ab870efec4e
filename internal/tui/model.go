package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"topomap/internal/colorize"
	"topomap/internal/geom"
	"topomap/internal/interact"
	"topomap/internal/projection"
	"topomap/internal/source"
	"topomap/internal/tween"
)

const (
	headerHeight = 1
	footerHeight = 2
)

type Options struct {
	Source     string
	Projection projection.Kind
	Color      colorize.Mode
	Fetcher    source.Fetcher
	Logger     *slog.Logger
	Clock      tween.Clock
}

type Model struct {
	width  int
	height int

	source  string
	kind    projection.Kind
	fetcher source.Fetcher
	log     *slog.Logger
	clock   tween.Clock

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	status  string

	loading bool
	err     error
	fc      *geom.FeatureCollection
	ctrl    *interact.Controller

	// map canvas in cells; the base space is mapW*2 x mapH*4 braille dots
	mapW int
	mapH int

	panel     viewport.Model
	panelText string

	// single frame tick chain while animations run
	ticking bool

	drag struct {
		active bool
		moved  bool
		x, y   int
	}

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = tween.SystemClock{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = source.New(opts.Logger)
	}
	m := Model{
		source:  opts.Source,
		kind:    opts.Projection,
		fetcher: opts.Fetcher,
		log:     opts.Logger,
		clock:   opts.Clock,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		status:  "loading " + opts.Source,
		loading: true,
		ctrl:    interact.New(nil, 0, 0, interact.Options{Mode: opts.Color, Logger: opts.Logger}),
		panel:   viewport.New(0, 0),
	}
	m.spinner.Style = titleStyle
	m.tbl = table.New(table.WithFocused(true))
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.fetcher, m.source))
}

// Controller exposes the interaction state, mainly for tests.
func (m Model) Controller() *interact.Controller { return m.ctrl }
