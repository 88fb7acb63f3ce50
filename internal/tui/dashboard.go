package tui

import (
	"context"
	"errors"
	"fmt"

	"kaylife/kaydash/internal/alarms"
	"kaylife/kaydash/internal/config"
	"kaylife/kaydash/internal/telemetry/catalog"
	"kaylife/kaydash/internal/telemetry/engine"
	"kaylife/kaydash/internal/tui/components"
	"kaylife/kaydash/internal/tui/styles"
	"kaylife/kaydash/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// alarmHistory is how many journal events the alarms view loads.
const alarmHistory = 200

// --- Views ---

type view int

const (
	viewDashboard view = iota
	viewWater
	viewElectrical
	viewAlarms
)

var viewTitles = []string{"Dashboard", "Water Quality", "Electrical", "Alarms"}

// parseView maps a config view name to a view, defaulting to the dashboard.
func parseView(name string) view {
	key := util.NormalizeKey(name)
	for i, v := range config.Views {
		if v == key {
			return view(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

// frameMsg carries an engine frame into the program.
type frameMsg engine.Frame

type alarmsLoadedMsg struct {
	events []alarms.Event
	err    error
}

// --- Source ---

// Source is the part of the engine the dashboard depends on.
type Source interface {
	Catalog() *catalog.Catalog
	Alarms() alarms.Repository
	ActiveAlarms() int
	Subscribe(fn func(engine.Frame)) (unsubscribe func())
	Start(ctx context.Context) error
	Stop()
}

// DashboardOptions selects the initial UI state.
type DashboardOptions struct {
	View  string
	Range util.Range
}

// --- Dashboard model ---

type dashboardModel struct {
	src  Source
	cat  *catalog.Catalog
	keys dashboardKeys

	frame  engine.Frame
	frames uint64

	view      view
	rng       util.Range
	param     int
	sensor    int
	collapsed bool

	events    []alarms.Event
	alarmsErr error
	alarmsVP  viewport.Model

	spinner spinner.Model

	width  int
	height int
}

func newDashboardModel(src Source, opts DashboardOptions) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	rng := opts.Range
	if rng.Duration <= 0 {
		rng = util.Ranges[0]
	}

	return dashboardModel{
		src:      src,
		cat:      src.Catalog(),
		keys:     newDashboardKeys(),
		view:     parseView(opts.View),
		rng:      rng,
		alarmsVP: viewport.New(0, 0),
		spinner:  s,
	}
}

// RunDashboard starts src and shows the live dashboard until the user quits
// or ctx is cancelled. src is stopped before RunDashboard returns.
func RunDashboard(ctx context.Context, src Source, opts DashboardOptions) error {
	m := newDashboardModel(src, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send returns immediately once the program has exited, so a tick racing
	// with shutdown never blocks the engine.
	unsubscribe := src.Subscribe(func(f engine.Frame) { p.Send(frameMsg(f)) })
	defer unsubscribe()

	if err := src.Start(ctx); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	defer src.Stop()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (m dashboardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case frameMsg:
		m.frame = engine.Frame(msg)
		m.frames++
		return m, m.loadAlarms()

	case alarmsLoadedMsg:
		m.events, m.alarmsErr = msg.events, msg.err
		m.refreshAlarms()
		return m, nil

	case spinner.TickMsg:
		if m.frames > 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m dashboardModel) loadAlarms() tea.Cmd {
	repo := m.src.Alarms()
	return func() tea.Msg {
		events, err := repo.List(alarmHistory)
		return alarmsLoadedMsg{events: events, err: err}
	}
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextView):
		m.setView((m.view + 1) % view(len(viewTitles)))
	case key.Matches(msg, m.keys.PrevView):
		m.setView((m.view + view(len(viewTitles)) - 1) % view(len(viewTitles)))
	case key.Matches(msg, m.keys.Jump):
		m.setView(view(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Sidebar):
		m.collapsed = !m.collapsed
		m.resizeViewport()
	case key.Matches(msg, m.keys.Range):
		m.rng = util.NextRange(m.rng.Name)
	case m.view == viewAlarms:
		var cmd tea.Cmd
		m.alarmsVP, cmd = m.alarmsVP.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Left):
		m.param = (m.param + len(m.cat.Parameters) - 1) % len(m.cat.Parameters)
	case key.Matches(msg, m.keys.Right):
		m.param = (m.param + 1) % len(m.cat.Parameters)
	case key.Matches(msg, m.keys.Up):
		if m.sensor > 0 {
			m.sensor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.sensor < len(m.cat.Sensors)-1 {
			m.sensor++
		}
	}
	return m, nil
}

func (m *dashboardModel) setView(v view) {
	m.view = v
	m.resizeViewport()
}

// contentWidth is the width left of the sidebar.
func (m dashboardModel) contentWidth() int {
	return max(m.width-components.SidebarRenderedWidth(viewTitles, m.collapsed), 20)
}

func (m *dashboardModel) resizeViewport() {
	// Header, status bar, footer and the alarms title take about 7 rows.
	m.alarmsVP.Width = m.contentWidth() - 4
	m.alarmsVP.Height = max(m.height-9, 3)
	m.refreshAlarms()
}

func (m *dashboardModel) refreshAlarms() {
	if len(m.events) == 0 {
		m.alarmsVP.SetContent(styles.MutedText.Render("No status transitions yet."))
		return
	}
	rows := make([]string, len(m.events))
	for i, e := range m.events {
		rows[i] = components.AlarmRow(e, max(m.alarmsVP.Width, 20))
	}
	m.alarmsVP.SetContent(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
