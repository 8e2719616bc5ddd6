package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	chartdto "hrmon/internal/modules/chart/dto"
	guidedto "hrmon/internal/modules/guide/dto"
	monitordto "hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
)

type fakeMonitor struct {
	err     error
	samples []int
	starts  int
}

func (f *fakeMonitor) StartMonitoring(_ context.Context, listener monitorin.Listener) (monitordto.StartOutput, error) {
	f.starts++
	listener.DeviceSelected(monitordto.DeviceOutput{Name: "Polar H10", Address: "AA"})
	if f.err != nil {
		return monitordto.StartOutput{}, f.err
	}
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, bpm := range f.samples {
		listener.SampleReceived(monitordto.SampleOutput{At: base.Add(time.Duration(i) * time.Second), BPM: bpm, Zone: "Out of Range"})
	}
	return monitordto.StartOutput{DeviceName: "Polar H10", Address: "AA"}, nil
}

type fakeChart struct {
	err     error
	mounts  int
	resizes []chartdto.Size
	updates [][]chartdto.Point
}

func (f *fakeChart) Mount(context.Context, chartdto.Container) error {
	f.mounts++
	return nil
}

func (f *fakeChart) Update(_ context.Context, points []chartdto.Point) error {
	f.updates = append(f.updates, points)
	return nil
}

func (f *fakeChart) Resize(_ context.Context, size chartdto.Size) error {
	f.resizes = append(f.resizes, size)
	return f.err
}

func (f *fakeChart) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "<chart>")
	return err
}

var testPages = []guidedto.PageOutput{
	{Index: 0, Title: "Welcome", Description: "Open the heart-rate screen."},
	{Index: 1, Title: "Broadcast", Description: "Start broadcasting."},
	{Index: 2, Title: "Pair", Description: "Pair the sensor."},
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// drain feeds queued listener events back into the model.
func drain(t *testing.T, m Model) Model {
	t.Helper()
	for len(m.events) > 0 {
		m, _ = send(t, m, <-m.events)
	}
	return m
}

func TestGuideKeysWalkThePages(t *testing.T) {
	t.Parallel()

	m := NewModel(context.Background(), &fakeMonitor{}, &fakeChart{}, testPages, Options{Onboarding: true}, zerolog.Nop())
	if !strings.Contains(m.View(), "Welcome") {
		t.Fatalf("first page not shown:\n%s", m.View())
	}
	m, _ = send(t, m, keyPress("left"))
	if m.State().GuideIndex() != 0 {
		t.Fatalf("prev on first page moved")
	}
	m, _ = send(t, m, keyPress("s"))
	if m.State().GuideIndex() != 2 || !strings.Contains(m.View(), "Finish") {
		t.Fatalf("skip should land on the last page:\n%s", m.View())
	}
	m, _ = send(t, m, keyPress("right"))
	if m.State().ShowGuide() || !strings.Contains(m.View(), "Start Monitoring") {
		t.Fatalf("finish should reveal the connect control:\n%s", m.View())
	}
}

func TestConnectStreamsSamplesIntoChart(t *testing.T) {
	t.Parallel()

	mon := &fakeMonitor{samples: []int{70, 72, 75}}
	chart := &fakeChart{}
	m := NewModel(context.Background(), mon, chart, testPages, Options{}, zerolog.Nop())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := send(t, m, keyPress("enter"))
	if cmd == nil || !m.State().Connecting() {
		t.Fatalf("enter should start connecting")
	}
	m, _ = send(t, m, cmd())
	m = drain(t, m)

	st := m.State()
	if !st.Streaming() || !st.ShowChart() || st.ShowConnect() {
		t.Fatalf("expected streaming chart, got %+v", st)
	}
	if st.DeviceName() != "Polar H10" {
		t.Fatalf("unexpected device %q", st.DeviceName())
	}
	if len(chart.updates) != 3 || len(chart.updates[2]) != 3 || chart.updates[2][2].Value != 75 {
		t.Fatalf("chart should receive the full series each time, got %v", chart.updates)
	}
	view := m.View()
	if !strings.Contains(view, "75 bpm") || !strings.Contains(view, "<chart>") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	if _, again := send(t, m, keyPress("enter")); again != nil {
		t.Fatalf("enter while streaming should do nothing")
	}
	if mon.starts != 1 {
		t.Fatalf("expected one start, got %d", mon.starts)
	}
}

func TestConnectFailureOnlyOffersRetry(t *testing.T) {
	t.Parallel()

	mon := &fakeMonitor{err: errors.New("link failed")}
	m := NewModel(context.Background(), mon, &fakeChart{}, nil, Options{}, zerolog.Nop())

	m, cmd := send(t, m, keyPress("enter"))
	m, _ = send(t, m, cmd())
	m = drain(t, m)

	st := m.State()
	if !st.ShowConnect() || st.ShowChart() || st.Connecting() {
		t.Fatalf("failure should return to the connect control")
	}
	view := m.View()
	if strings.Contains(view, "link failed") || !strings.Contains(view, "Start Monitoring") {
		t.Fatalf("failure should leave only the start control:\n%s", view)
	}
	if _, retry := send(t, m, keyPress("enter")); retry == nil {
		t.Fatalf("retry should be allowed")
	}
}

func TestWindowSizeRefitsChartOnce(t *testing.T) {
	t.Parallel()

	chart := &fakeChart{}
	m := NewModel(context.Background(), &fakeMonitor{}, chart, nil, Options{}, zerolog.Nop())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if chart.mounts != 1 || len(chart.resizes) != 0 {
		t.Fatalf("first size should mount, got mounts=%d resizes=%d", chart.mounts, len(chart.resizes))
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	_, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if chart.mounts != 1 || len(chart.resizes) != 2 {
		t.Fatalf("expected one resize per event, got %d", len(chart.resizes))
	}
	if len(chart.updates) != 0 {
		t.Fatalf("resize touched the series")
	}
	if got := chart.resizes[0]; got.Width != 118 || got.Height != 40-chromeRows {
		t.Fatalf("unexpected size %+v", got)
	}
}

func TestChartErrorsAreLogged(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	chart := &fakeChart{err: errors.New("surface gone")}
	m := NewModel(context.Background(), &fakeMonitor{}, chart, nil, Options{}, zerolog.New(&logs))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	_, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !strings.Contains(logs.String(), "chart resize failed") || !strings.Contains(logs.String(), "surface gone") {
		t.Fatalf("resize error not logged: %s", logs.String())
	}
}
