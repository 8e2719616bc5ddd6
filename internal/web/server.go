// Package web serves the monitor as a local browser page.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	chartdto "hrmon/internal/modules/chart/dto"
	chartin "hrmon/internal/modules/chart/port/in"
	guidedto "hrmon/internal/modules/guide/dto"
	monitordto "hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
	"hrmon/internal/ui/state"
)

// ChartContainer is the element id the browser chart is bound to. It also
// names the chart's script variable, so it must be a valid JS identifier.
const ChartContainer = "heart_rate"

type monitorPort interface {
	StartMonitoring(ctx context.Context, listener monitorin.Listener) (monitordto.StartOutput, error)
	Snapshot(ctx context.Context) (monitordto.SessionOutput, error)
}

type Options struct {
	Addr       string
	Refresh    time.Duration
	ChartSize  chartdto.Size
	Onboarding bool
	MaxSamples int
}

// Server holds one State shared by every browser tab. Pipeline callbacks and
// HTTP handlers both change it, so it sits behind mu.
type Server struct {
	ctx     context.Context
	monitor monitorPort
	chart   chartin.Usecase
	opts    Options
	logger  zerolog.Logger
	now     func() time.Time

	mu sync.Mutex
	st state.State
}

func New(ctx context.Context, monitor monitorPort, chart chartin.Usecase, pages []guidedto.PageOutput, opts Options, logger zerolog.Logger) (*Server, error) {
	err := chart.Mount(ctx, chartdto.Container{ID: ChartContainer, Width: opts.ChartSize.Width, Height: opts.ChartSize.Height})
	if err != nil {
		return nil, err
	}
	return &Server{
		ctx:     ctx,
		monitor: monitor,
		chart:   chart,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		st:      state.New(pages, opts.Onboarding, opts.MaxSamples),
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /connect", s.handleConnect)
	mux.HandleFunc("POST /guide/{action}", s.handleGuide)
	mux.HandleFunc("GET /api/session", s.handleSession)
	return loggingMiddleware(s.logger, mux)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info().Str("addr", s.opts.Addr).Msg("web server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// ─── listener ────────────────────────────────────────────────────────────────

type listener struct{ s *Server }

func (l listener) DeviceSelected(device monitordto.DeviceOutput) {
	l.s.mu.Lock()
	l.s.st = l.s.st.DeviceSelected(device)
	l.s.mu.Unlock()
}

func (l listener) SampleReceived(sample monitordto.SampleOutput) {
	l.s.mu.Lock()
	l.s.st = l.s.st.SampleReceived(sample)
	samples := l.s.st.Samples()
	l.s.mu.Unlock()

	if err := l.s.chart.Update(l.s.ctx, points(samples)); err != nil {
		l.s.logger.Warn().Err(err).Msg("chart update failed")
	}
}

// connect runs the pipeline off the request goroutine; the page polls for
// the outcome.
func (s *Server) connect() {
	out, err := s.monitor.StartMonitoring(s.ctx, listener{s: s})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.st = s.st.ConnectFailed()
		return
	}
	s.st = s.st.DeviceSelected(monitordto.DeviceOutput{Name: out.DeviceName, Address: out.Address}).Subscribed()
}

func points(samples []monitordto.SampleOutput) []chartdto.Point {
	out := make([]chartdto.Point, len(samples))
	for i, sm := range samples {
		out[i] = chartdto.Point{At: sm.At, Value: float64(sm.BPM)}
	}
	return out
}
