package state_test

import (
	"testing"
	"time"

	guidedto "hrmon/internal/modules/guide/dto"
	monitordto "hrmon/internal/modules/monitor/dto"
	"hrmon/internal/ui/state"
)

var pages = []guidedto.PageOutput{
	{Index: 0, Title: "Welcome"},
	{Index: 1, Title: "Pair"},
	{Index: 2, Title: "Watch"},
}

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func sample(bpm int, offset time.Duration) monitordto.SampleOutput {
	return monitordto.SampleOutput{At: t0.Add(offset), BPM: bpm}
}

func TestGuideNavigation(t *testing.T) {
	t.Parallel()

	s := state.New(pages, true, 0)
	if !s.ShowGuide() || s.ShowConnect() {
		t.Fatalf("onboarding should open the guide first")
	}
	if s = s.GuidePrev(); s.GuideIndex() != 0 {
		t.Fatalf("prev on first page moved to %d", s.GuideIndex())
	}
	s = s.GuideNext().GuideNext()
	if s.GuideIndex() != 2 || !s.GuideLast() {
		t.Fatalf("expected last page, got %d", s.GuideIndex())
	}
	page, ok := s.Page()
	if !ok || page.Title != "Watch" {
		t.Fatalf("unexpected page %+v", page)
	}
	s = s.GuideNext()
	if s.ShowGuide() {
		t.Fatalf("next on last page should complete the guide")
	}
	if !s.ShowConnect() {
		t.Fatalf("connect should show once the guide completes")
	}
	if s = s.GuidePrev(); s.ShowGuide() {
		t.Fatalf("completed guide reopened")
	}
}

func TestGuideSkipLandsOnLastPage(t *testing.T) {
	t.Parallel()

	s := state.New(pages, true, 0).GuideSkip()
	if !s.ShowGuide() || s.GuideIndex() != 2 {
		t.Fatalf("skip should land on page 2, got shown=%v index=%d", s.ShowGuide(), s.GuideIndex())
	}
}

func TestOnboardingDisabledShowsConnect(t *testing.T) {
	t.Parallel()

	s := state.New(pages, false, 0)
	if s.ShowGuide() || !s.ShowConnect() || s.ShowChart() {
		t.Fatalf("expected connect only, got guide=%v connect=%v chart=%v", s.ShowGuide(), s.ShowConnect(), s.ShowChart())
	}
}

func TestConnectAndChartToggleOnSamples(t *testing.T) {
	t.Parallel()

	s := state.New(pages, false, 0).ConnectRequested(t0)
	s = s.DeviceSelected(monitordto.DeviceOutput{Name: "Polar H10"}).Subscribed()
	if !s.ShowConnect() || s.ShowChart() {
		t.Fatalf("no samples yet: connect should still show")
	}
	s = s.SampleReceived(sample(72, time.Second))
	if s.ShowConnect() || !s.ShowChart() {
		t.Fatalf("one sample: chart should replace connect")
	}
}

func TestSamplesKeepArrivalOrder(t *testing.T) {
	t.Parallel()

	s := state.New(nil, false, 0).ConnectRequested(t0).Subscribed()
	for i, bpm := range []int{70, 71, 75, 73} {
		s = s.SampleReceived(sample(bpm, time.Duration(i)*time.Second))
	}
	got := s.Samples()
	if len(got) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(got))
	}
	for i, want := range []int{70, 71, 75, 73} {
		if got[i].BPM != want {
			t.Fatalf("sample %d: got %d want %d", i, got[i].BPM, want)
		}
	}
	last, ok := s.Latest()
	if !ok || last.BPM != 73 {
		t.Fatalf("unexpected latest %+v", last)
	}
}

func TestTransitionsDoNotShareSamples(t *testing.T) {
	t.Parallel()

	base := state.New(nil, false, 0).ConnectRequested(t0).Subscribed().SampleReceived(sample(70, 0))
	a := base.SampleReceived(sample(80, time.Second))
	b := base.SampleReceived(sample(90, time.Second))
	if a.Samples()[1].BPM != 80 || b.Samples()[1].BPM != 90 || len(base.Samples()) != 1 {
		t.Fatalf("states share a backing array")
	}
}

func TestDeviceNameFixedAfterSelection(t *testing.T) {
	t.Parallel()

	s := state.New(nil, false, 0).ConnectRequested(t0)
	s = s.DeviceSelected(monitordto.DeviceOutput{Name: "Polar H10", Address: "AA"})
	s = s.DeviceSelected(monitordto.DeviceOutput{Name: "Other", Address: "BB"})
	s = s.Subscribed().SampleReceived(sample(70, 0))
	if s.DeviceName() != "Polar H10" {
		t.Fatalf("device renamed to %q", s.DeviceName())
	}
}

func TestConnectFailureKeepsConnectAvailable(t *testing.T) {
	t.Parallel()

	s := state.New(nil, false, 0).ConnectRequested(t0)
	s = s.DeviceSelected(monitordto.DeviceOutput{Name: "Polar H10"})
	s = s.ConnectFailed()
	if !s.ShowConnect() || s.ShowChart() || s.Connecting() || len(s.Samples()) != 0 {
		t.Fatalf("failure should leave connect available with no samples")
	}
	retry := s.ConnectRequested(t0.Add(time.Minute))
	if !retry.Connecting() || retry.DeviceName() != "" {
		t.Fatalf("retry should start a clean attempt")
	}
}

func TestConnectIgnoredWhileStreaming(t *testing.T) {
	t.Parallel()

	s := state.New(nil, false, 0).ConnectRequested(t0).Subscribed().SampleReceived(sample(70, 0))
	again := s.ConnectRequested(t0.Add(time.Minute))
	if len(again.Samples()) != 1 || !again.StartedAt().Equal(t0) {
		t.Fatalf("second connect reset a streaming session")
	}
}

func TestSamplesBoundedByLimit(t *testing.T) {
	t.Parallel()

	s := state.New(nil, false, 2).ConnectRequested(t0).Subscribed()
	for i, bpm := range []int{70, 71, 72, 73, 74} {
		s = s.SampleReceived(sample(bpm, time.Duration(i)*time.Second))
	}
	got := s.Samples()
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].BPM != 73 || got[1].BPM != 74 {
		t.Fatalf("expected the newest samples, got %+v", got)
	}
}
