// Package state holds the screen state shared by the terminal and browser
// surfaces. State is an immutable value: every event produces a new State,
// and visibility is derived from it rather than stored.
package state

import (
	"time"

	guidedomain "hrmon/internal/modules/guide/domain"
	guidedto "hrmon/internal/modules/guide/dto"
	monitordto "hrmon/internal/modules/monitor/dto"
)

type State struct {
	guide      guidedomain.Guide
	connecting bool
	streaming  bool
	device     monitordto.DeviceOutput
	selected   bool
	samples    []monitordto.SampleOutput
	limit      int
	startedAt  time.Time
}

// New builds the initial state from the guide pages. With onboarding
// enabled the guide opens on its first page; otherwise the connect control
// shows straight away. An empty page list behaves as a finished guide.
// limit caps the kept samples, oldest first; 0 keeps them all.
func New(pages []guidedto.PageOutput, onboarding bool, limit int) State {
	domainPages := make([]guidedomain.Page, len(pages))
	for i, p := range pages {
		domainPages[i] = guidedomain.Page{Title: p.Title, Description: p.Description, Image: p.Image}
	}
	g, err := guidedomain.New(domainPages)
	if err != nil {
		return State{limit: limit}
	}
	if onboarding {
		g = g.Activate()
	}
	return State{guide: g, limit: limit}
}

// ─── guide events ────────────────────────────────────────────────────────────

func (s State) GuideNext() State {
	s.guide = s.guide.Next()
	return s
}

func (s State) GuidePrev() State {
	s.guide = s.guide.Prev()
	return s
}

func (s State) GuideSkip() State {
	s.guide = s.guide.Skip()
	return s
}

// ─── selection events ────────────────────────────────────────────────────────

// ConnectRequested starts a fresh session. It is ignored while a connection
// is in flight or a device is streaming.
func (s State) ConnectRequested(at time.Time) State {
	if s.connecting || s.streaming {
		return s
	}
	s.connecting = true
	s.selected = false
	s.device = monitordto.DeviceOutput{}
	s.samples = nil
	s.startedAt = at
	return s
}

// DeviceSelected records the device once; later selections in the same
// session do not rename it.
func (s State) DeviceSelected(device monitordto.DeviceOutput) State {
	if s.selected {
		return s
	}
	s.device = device
	s.selected = true
	return s
}

func (s State) Subscribed() State {
	s.connecting = false
	s.streaming = true
	return s
}

// ConnectFailed drops back to the connect control. The cause is only
// logged; the screen just offers the control again.
func (s State) ConnectFailed() State {
	s.connecting = false
	s.streaming = false
	s.samples = nil
	return s
}

// ─── sample event ────────────────────────────────────────────────────────────

// SampleReceived appends sample, dropping the oldest once the limit is hit.
func (s State) SampleReceived(sample monitordto.SampleOutput) State {
	kept := s.samples
	if s.limit > 0 && len(kept) >= s.limit {
		kept = kept[len(kept)-s.limit+1:]
	}
	next := make([]monitordto.SampleOutput, len(kept), len(kept)+1)
	copy(next, kept)
	s.samples = append(next, sample)
	return s
}

// ─── derived ─────────────────────────────────────────────────────────────────

func (s State) ShowGuide() bool   { return s.guide.Shown() }
func (s State) ShowConnect() bool { return !s.ShowGuide() && len(s.samples) == 0 }
func (s State) ShowChart() bool   { return len(s.samples) > 0 }

func (s State) Connecting() bool     { return s.connecting }
func (s State) Streaming() bool      { return s.streaming }
func (s State) StartedAt() time.Time { return s.startedAt }
func (s State) GuideIndex() int      { return s.guide.Index() }
func (s State) GuideLen() int        { return s.guide.Len() }
func (s State) GuideFirst() bool     { return s.guide.IsFirst() }
func (s State) GuideLast() bool      { return s.guide.IsLast() }

func (s State) Device() monitordto.DeviceOutput { return s.device }

// DeviceName is the name captured at selection, falling back to the address.
func (s State) DeviceName() string {
	if !s.selected {
		return ""
	}
	if s.device.Name != "" {
		return s.device.Name
	}
	return s.device.Address
}

func (s State) Page() (guidedto.PageOutput, bool) {
	p, ok := s.guide.Current()
	if !ok {
		return guidedto.PageOutput{}, false
	}
	return guidedto.PageOutput{Index: s.guide.Index(), Title: p.Title, Description: p.Description, Image: p.Image}, true
}

func (s State) Samples() []monitordto.SampleOutput {
	out := make([]monitordto.SampleOutput, len(s.samples))
	copy(out, s.samples)
	return out
}

func (s State) Latest() (monitordto.SampleOutput, bool) {
	if len(s.samples) == 0 {
		return monitordto.SampleOutput{}, false
	}
	return s.samples[len(s.samples)-1], true
}
