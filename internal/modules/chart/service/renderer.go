package service

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"hrmon/internal/modules/chart/domain"
	"hrmon/internal/modules/chart/dto"
	chartin "hrmon/internal/modules/chart/port/in"
	chartout "hrmon/internal/modules/chart/port/out"
	apperrors "hrmon/internal/platform/errors"
)

// Renderer binds a Chart to a container and keeps its series equal to the
// accumulated sample sequence. Every Update replaces the series wholesale.
type Renderer struct {
	chart  chartout.Chart
	logger zerolog.Logger

	mu      sync.Mutex
	option  domain.Option
	mounted bool
}

func NewRenderer(chart chartout.Chart, logger zerolog.Logger) chartin.Usecase {
	return &Renderer{chart: chart, logger: logger, option: domain.DefaultOption()}
}

// Mount creates the chart on first call. Without a container it does
// nothing and reports ErrNoContainer.
func (r *Renderer) Mount(_ context.Context, container dto.Container) error {
	if strings.TrimSpace(container.ID) == "" {
		r.logger.Warn().Msg("chart mount skipped: no container")
		return apperrors.ErrNoContainer
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mounted {
		return nil
	}
	if err := r.chart.Init(domain.Container{ID: container.ID, Size: domain.Size{Width: container.Width, Height: container.Height}}); err != nil {
		return err
	}
	if err := r.chart.SetOption(r.option); err != nil {
		return err
	}
	r.mounted = true
	return nil
}

func (r *Renderer) Update(_ context.Context, points []dto.Point) error {
	series := make([]domain.Point, len(points))
	for i, p := range points {
		series[i] = domain.Point{At: p.At, Value: p.Value}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.option = r.option.WithPoints(series)
	if !r.mounted {
		return nil
	}
	return r.chart.SetOption(r.option)
}

// Resize re-fits the chart to size: one Chart.Resize per call.
func (r *Renderer) Resize(_ context.Context, size dto.Size) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.mounted {
		return nil
	}
	return r.chart.Resize(domain.Size{Width: size.Width, Height: size.Height})
}

func (r *Renderer) Render(_ context.Context, w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.mounted {
		return nil
	}
	return r.chart.Render(w)
}
