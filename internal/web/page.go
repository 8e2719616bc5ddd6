package web

import (
	"time"

	"github.com/dustin/go-humanize"

	"hrmon/internal/platform/slug"
	"hrmon/internal/ui/state"
)

// pageView is everything page.templ needs, flattened from State.
type pageView struct {
	Refresh   int
	ShowGuide bool
	ShowChart bool
	Guide     guideView
	Session   sessionView
	Connect   connectView
	ChartHTML string
}

type guideView struct {
	Image       string
	Title       string
	Description string
	Dots        []bool
	ShowPrev    bool
	ShowSkip    bool
	NextLabel   string
}

type sessionView struct {
	Device  string
	BPM     string
	Zone    string
	ZoneKey string
	Summary string
}

type connectView struct {
	Connecting bool
	Device     string
}

func newPageView(st state.State, chartHTML string, refresh time.Duration, now time.Time) pageView {
	v := pageView{
		Refresh:   int(refresh.Round(time.Second) / time.Second),
		ShowGuide: st.ShowGuide(),
		ShowChart: st.ShowChart(),
		Connect:   connectView{Connecting: st.Connecting(), Device: st.DeviceName()},
	}

	if p, ok := st.Page(); ok {
		v.Guide = guideView{
			Image:       p.Image,
			Title:       p.Title,
			Description: p.Description,
			Dots:        make([]bool, st.GuideLen()),
			ShowPrev:    !st.GuideFirst(),
			ShowSkip:    !st.GuideLast(),
			NextLabel:   "Next",
		}
		v.Guide.Dots[p.Index] = true
		if st.GuideLast() {
			v.Guide.NextLabel = "Finish"
		}
	}

	if latest, ok := st.Latest(); ok {
		v.ChartHTML = chartHTML
		v.Session = sessionView{
			Device:  st.DeviceName(),
			BPM:     humanize.Comma(int64(latest.BPM)) + " bpm",
			Zone:    latest.Zone,
			ZoneKey: slug.Make(latest.Zone, "unknown"),
			Summary: humanize.Comma(int64(len(st.Samples()))) + " samples, started " +
				humanize.RelTime(st.StartedAt(), now, "ago", "from now"),
		}
	}
	return v
}
