package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/a-h/templ"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	st := s.State()

	var chart bytes.Buffer
	if st.ShowChart() {
		if err := s.chart.Render(r.Context(), &chart); err != nil {
			s.logger.Error().Err(err).Msg("render chart")
			http.Error(w, "Failed to render chart", http.StatusInternalServerError)
			return
		}
	}

	refresh := time.Duration(0)
	if st.Connecting() || st.Streaming() {
		refresh = s.opts.Refresh
	}
	templ.Handler(page(newPageView(st, chart.String(), refresh, s.now()))).ServeHTTP(w, r)
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ready := s.st.ShowConnect() && !s.st.Connecting() && !s.st.Streaming()
	if ready {
		s.st = s.st.ConnectRequested(s.now())
	}
	s.mu.Unlock()

	if ready {
		go s.connect()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	switch r.PathValue("action") {
	case "next":
		s.st = s.st.GuideNext()
	case "prev":
		s.st = s.st.GuidePrev()
	case "skip":
		s.st = s.st.GuideSkip()
	default:
		s.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	s.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type sampleJSON struct {
	At      time.Time `json:"at"`
	BPM     int       `json:"bpm"`
	Zone    string    `json:"zone"`
	Contact string    `json:"contact,omitempty"`
}

type statsJSON struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Mean  float64 `json:"mean"`
	Last  int     `json:"last"`
}

type sessionJSON struct {
	SessionID   string       `json:"session_id,omitempty"`
	Device      string       `json:"device,omitempty"`
	Address     string       `json:"address,omitempty"`
	Connecting  bool         `json:"connecting"`
	Streaming   bool         `json:"streaming"`
	ShowGuide   bool         `json:"show_guide"`
	ShowConnect bool         `json:"show_connect"`
	ShowChart   bool         `json:"show_chart"`
	GuidePage   int          `json:"guide_page"`
	Samples     []sampleJSON `json:"samples"`
	Stats       statsJSON    `json:"stats"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	st := s.State()
	snap, err := s.monitor.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body := sessionJSON{
		SessionID:   snap.SessionID,
		Device:      st.DeviceName(),
		Address:     st.Device().Address,
		Connecting:  st.Connecting(),
		Streaming:   st.Streaming(),
		ShowGuide:   st.ShowGuide(),
		ShowConnect: st.ShowConnect(),
		ShowChart:   st.ShowChart(),
		GuidePage:   st.GuideIndex(),
		Samples:     []sampleJSON{},
		Stats: statsJSON{
			Count: snap.Stats.Count,
			Min:   snap.Stats.Min,
			Max:   snap.Stats.Max,
			Mean:  snap.Stats.Mean,
			Last:  snap.Stats.Last,
		},
	}
	for _, sm := range snap.Samples {
		body.Samples = append(body.Samples, sampleJSON{At: sm.At, BPM: sm.BPM, Zone: sm.Zone, Contact: sm.Contact})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("encode session")
	}
}
