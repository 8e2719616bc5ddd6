package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	chartdto "hrmon/internal/modules/chart/dto"
	guidedto "hrmon/internal/modules/guide/dto"
	monitordto "hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
	"hrmon/internal/ui/state"
	"hrmon/internal/ui/theme"
	guideview "hrmon/internal/ui/views/guide"
	monitorview "hrmon/internal/ui/views/monitor"
)

// ChartContainer names the terminal surface the chart is mounted on.
const ChartContainer = "tui"

// ─── ports ───────────────────────────────────────────────────────────────────

type monitorPort interface {
	StartMonitoring(ctx context.Context, listener monitorin.Listener) (monitordto.StartOutput, error)
}

type chartPort interface {
	Mount(ctx context.Context, container chartdto.Container) error
	Update(ctx context.Context, points []chartdto.Point) error
	Resize(ctx context.Context, size chartdto.Size) error
	Render(ctx context.Context, w io.Writer) error
}

// ─── async messages ──────────────────────────────────────────────────────────

type deviceSelectedMsg struct{ device monitordto.DeviceOutput }

type sampleMsg struct{ sample monitordto.SampleOutput }

type subscribedMsg struct {
	out monitordto.StartOutput
	err error
}

// ─── listener ────────────────────────────────────────────────────────────────

// channelListener hands pipeline callbacks to the Bubble Tea loop. Sends
// block until the loop reads them or ctx ends, so no sample is dropped.
type channelListener struct {
	ctx    context.Context
	events chan<- tea.Msg
}

func (l channelListener) DeviceSelected(device monitordto.DeviceOutput) {
	l.send(deviceSelectedMsg{device: device})
}

func (l channelListener) SampleReceived(sample monitordto.SampleOutput) {
	l.send(sampleMsg{sample: sample})
}

func (l channelListener) send(msg tea.Msg) {
	select {
	case l.events <- msg:
	case <-l.ctx.Done():
	}
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Connect key.Binding
	Next    key.Binding
	Prev    key.Binding
	Skip    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Connect: key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "start monitoring")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→", "next page")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←", "previous page")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip guide")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Connect, k.Next, k.Prev, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Skip},
		{k.Connect},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Screen state lives in state.State and
// is only changed here, on the Bubble Tea loop.
type Model struct {
	ctx     context.Context
	monitor monitorPort
	chart   chartPort
	logger  zerolog.Logger
	now     func() time.Time

	state    state.State
	events   chan tea.Msg
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	showHelp bool
	mounted  bool
	width    int
	height   int
}

type Options struct {
	Onboarding bool
	MaxSamples int
}

func NewModel(ctx context.Context, monitor monitorPort, chart chartPort, pages []guidedto.PageOutput, opts Options, logger zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		ctx:     ctx,
		monitor: monitor,
		chart:   chart,
		logger:  logger,
		now:     time.Now,
		state:   state.New(pages, opts.Onboarding, opts.MaxSamples),
		events:  make(chan tea.Msg, 64),
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

// State exposes the current screen state.
func (m Model) State() state.State { return m.state }

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fitChart()
		return m, nil

	case deviceSelectedMsg:
		m.state = m.state.DeviceSelected(msg.device)
		return m, m.listen()

	case sampleMsg:
		m.state = m.state.SampleReceived(msg.sample)
		if err := m.chart.Update(m.ctx, points(m.state.Samples())); err != nil {
			m.logger.Warn().Err(err).Msg("chart update failed")
		}
		return m, m.listen()

	case subscribedMsg:
		if msg.err != nil {
			m.state = m.state.ConnectFailed()
			return m, nil
		}
		m.state = m.state.DeviceSelected(monitordto.DeviceOutput{Name: msg.out.DeviceName, Address: msg.out.Address}).Subscribed()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case m.state.ShowGuide():
		switch {
		case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Connect):
			m.state = m.state.GuideNext()
		case key.Matches(msg, m.keys.Prev):
			m.state = m.state.GuidePrev()
		case key.Matches(msg, m.keys.Skip):
			m.state = m.state.GuideSkip()
		}
	case m.state.ShowConnect() && key.Matches(msg, m.keys.Connect):
		if m.state.Connecting() || m.state.Streaming() {
			return m, nil
		}
		m.state = m.state.ConnectRequested(m.now())
		return m, m.connect()
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := theme.Title.Render("hrmon") + theme.Muted.Render("  heart-rate monitor")
	footer := m.help.View(m.keys)

	var content string
	switch {
	case m.showHelp:
		content = m.help.FullHelpView(m.keys.FullHelp())
	case m.state.ShowGuide():
		page, _ := m.state.Page()
		content = guideview.Render(page, m.state.GuideLen(), m.width)
	case m.state.ShowChart():
		latest, _ := m.state.Latest()
		var frame strings.Builder
		if err := m.chart.Render(m.ctx, &frame); err != nil {
			m.logger.Warn().Err(err).Msg("chart render failed")
		}
		content = monitorview.Header(m.state.DeviceName(), latest, m.state.Samples(), m.state.StartedAt(), m.now()) +
			"\n\n" + frame.String()
	default:
		content = monitorview.Connect(m.state.Connecting(), m.spinner.View(), m.state.DeviceName())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", content, "", footer)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// chromeRows is the height taken by the title, session header and help line.
const chromeRows = 8

// fitChart mounts the chart on the first size report and re-fits it on every
// later one.
func (m *Model) fitChart() {
	size := chartdto.Size{Width: max(m.width-2, 1), Height: max(m.height-chromeRows, 1)}
	if !m.mounted {
		err := m.chart.Mount(m.ctx, chartdto.Container{ID: ChartContainer, Width: size.Width, Height: size.Height})
		if err != nil {
			m.logger.Warn().Err(err).Msg("chart mount failed")
			return
		}
		m.mounted = true
		return
	}
	if err := m.chart.Resize(m.ctx, size); err != nil {
		m.logger.Warn().Err(err).Msg("chart resize failed")
	}
}

func points(samples []monitordto.SampleOutput) []chartdto.Point {
	out := make([]chartdto.Point, len(samples))
	for i, s := range samples {
		out[i] = chartdto.Point{At: s.At, Value: float64(s.BPM)}
	}
	return out
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) listen() tea.Cmd {
	events := m.events
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) connect() tea.Cmd {
	listener := channelListener{ctx: m.ctx, events: m.events}
	return func() tea.Msg {
		out, err := m.monitor.StartMonitoring(m.ctx, listener)
		return subscribedMsg{out: out, err: err}
	}
}
