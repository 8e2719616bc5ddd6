package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"hrmon/internal/modules/monitor/domain"
	"hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
	"hrmon/internal/modules/monitor/service"
	"hrmon/internal/platform/clock"
	apperrors "hrmon/internal/platform/errors"
	"hrmon/internal/platform/id"
)

type runState int

const (
	stateIdle runState = iota
	stateStarting
	stateStreaming
)

type Interactor struct {
	pipeline *service.Pipeline
	clock    clock.Clock
	ids      id.Generator
	limit    int
	logger   zerolog.Logger

	mu      sync.Mutex
	state   runState
	session *domain.Session
}

func NewInteractor(pipeline *service.Pipeline, clk clock.Clock, ids id.Generator, limit int, logger zerolog.Logger) monitorin.Usecase {
	return &Interactor{pipeline: pipeline, clock: clk, ids: ids, limit: limit, logger: logger}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput, listener monitorin.Listener) (dto.StartOutput, error) {
	if listener == nil {
		listener = nopListener{}
	}

	i.mu.Lock()
	if i.state != stateIdle {
		i.mu.Unlock()
		return dto.StartOutput{}, apperrors.ErrMonitorActive
	}
	i.state = stateStarting
	session := domain.NewSession(i.ids.New(), i.clock.Now(), i.limit)
	i.session = session
	i.mu.Unlock()

	filter := domain.HeartRateFilter()
	filter.Address = input.Address
	filter.Name = input.Name
	filter.Timeout = input.Timeout

	onSelected := func(device domain.DeviceIdentity) {
		i.mu.Lock()
		session.Device = device
		i.mu.Unlock()
		listener.DeviceSelected(dto.DeviceOutput{Name: device.DisplayName(), Address: device.Address})
	}
	onValue := func(value []byte) {
		i.record(session, listener, value)
	}

	device, err := i.pipeline.Run(ctx, filter, onSelected, onValue)
	if err != nil {
		i.mu.Lock()
		i.state = stateIdle
		if i.session == session {
			i.session = nil
		}
		i.mu.Unlock()

		event := i.logger.Error().Err(err)
		var stepErr *service.StepError
		if errors.As(err, &stepErr) {
			event = event.Str("step", stepErr.Step.String())
		}
		event.Msg("connection pipeline failed")
		return dto.StartOutput{}, err
	}

	i.mu.Lock()
	i.state = stateStreaming
	i.mu.Unlock()
	return dto.StartOutput{
		SessionID:  session.ID,
		DeviceName: device.DisplayName(),
		Address:    device.Address,
		StartedAt:  session.StartedAt,
	}, nil
}

func (i *Interactor) record(session *domain.Session, listener monitorin.Listener, value []byte) {
	m, err := domain.ParseMeasurement(value)
	if err != nil {
		i.logger.Debug().Err(err).Hex("payload", value).Msg("dropping notification")
		return
	}

	i.mu.Lock()
	if i.session != session {
		i.mu.Unlock()
		return
	}
	sample := session.Append(domain.Sample{At: i.clock.Now(), BPM: int(m.BPM), Contact: m.Contact})
	i.mu.Unlock()

	listener.SampleReceived(toSampleOutput(sample))
}

func (i *Interactor) Snapshot(_ context.Context) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.session == nil {
		return dto.SessionOutput{}, nil
	}
	samples := i.session.Samples()
	out := dto.SessionOutput{
		SessionID: i.session.ID,
		StartedAt: i.session.StartedAt,
		Streaming: i.state == stateStreaming,
		Samples:   make([]dto.SampleOutput, 0, len(samples)),
	}
	if i.session.Device != (domain.DeviceIdentity{}) {
		out.Device = dto.DeviceOutput{Name: i.session.Device.DisplayName(), Address: i.session.Device.Address}
	}
	for _, s := range samples {
		out.Samples = append(out.Samples, toSampleOutput(s))
	}
	st := domain.ComputeStats(samples)
	out.Stats = dto.StatsOutput{Count: st.Count, Min: st.Min, Max: st.Max, Mean: st.Mean, Last: st.Last}
	return out, nil
}

func toSampleOutput(s domain.Sample) dto.SampleOutput {
	return dto.SampleOutput{
		At:      s.At,
		BPM:     s.BPM,
		Zone:    domain.ZoneFor(s.BPM).Name,
		Contact: s.Contact.String(),
	}
}

type nopListener struct{}

func (nopListener) DeviceSelected(dto.DeviceOutput) {}
func (nopListener) SampleReceived(dto.SampleOutput) {}
