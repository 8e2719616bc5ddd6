package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"hrmon/internal/modules/monitor/domain"
	monitorout "hrmon/internal/modules/monitor/port/out"
	apperrors "hrmon/internal/platform/errors"
)

type Step int

const (
	StepSelect Step = iota + 1
	StepConnect
	StepService
	StepCharacteristic
	StepSubscribe
)

func (s Step) String() string {
	switch s {
	case StepSelect:
		return "select device"
	case StepConnect:
		return "connect"
	case StepService:
		return "resolve service"
	case StepCharacteristic:
		return "resolve characteristic"
	case StepSubscribe:
		return "subscribe"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func (s Step) sentinel() error {
	switch s {
	case StepSelect:
		return apperrors.ErrSelectionCancelled
	case StepConnect:
		return apperrors.ErrLinkFailed
	case StepService:
		return apperrors.ErrServiceNotFound
	case StepCharacteristic:
		return apperrors.ErrCharacteristicNotFound
	case StepSubscribe:
		return apperrors.ErrSubscribeRejected
	}
	return nil
}

// StepError reports the pipeline step that failed. errors.Is matches both the
// step's sentinel and the underlying cause.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) Is(target error) bool {
	return target != nil && target == e.Step.sentinel()
}

// Pipeline runs the connect-and-subscribe sequence against a Central.
type Pipeline struct {
	central monitorout.Central
	logger  zerolog.Logger
}

func NewPipeline(central monitorout.Central, logger zerolog.Logger) *Pipeline {
	return &Pipeline{central: central, logger: logger}
}

// Run performs the five steps in order, each one consuming the previous
// step's result. onSelected fires as soon as a device has been chosen, before
// the link is attempted. After Run returns nil, every notification is passed
// to onValue until the link drops.
func (p *Pipeline) Run(ctx context.Context, filter domain.DeviceFilter, onSelected func(domain.DeviceIdentity), onValue func([]byte)) (domain.DeviceIdentity, error) {
	if filter.Service == "" {
		filter.Service = domain.HeartRateService
	}

	peripheral, err := p.central.RequestDevice(ctx, filter)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", apperrors.ErrSelectionCancelled, err)
		}
		return domain.DeviceIdentity{}, &StepError{Step: StepSelect, Err: err}
	}
	device := peripheral.Identity()
	p.logger.Info().Str("device", device.DisplayName()).Str("address", device.Address).Msg("device selected")
	if onSelected != nil {
		onSelected(device)
	}

	server, err := peripheral.Connect(ctx)
	if err != nil {
		return device, &StepError{Step: StepConnect, Err: err}
	}
	p.logger.Debug().Str("device", device.DisplayName()).Msg("link established")

	svc, err := server.PrimaryService(ctx, domain.HeartRateService)
	if err != nil {
		p.disconnect(server)
		return device, &StepError{Step: StepService, Err: err}
	}

	char, err := svc.Characteristic(ctx, domain.HeartRateMeasurement)
	if err != nil {
		p.disconnect(server)
		return device, &StepError{Step: StepCharacteristic, Err: err}
	}

	if err := char.Subscribe(ctx, onValue); err != nil {
		p.disconnect(server)
		return device, &StepError{Step: StepSubscribe, Err: err}
	}
	p.logger.Info().Str("device", device.DisplayName()).Msg("subscribed to heart rate notifications")
	return device, nil
}

func (p *Pipeline) disconnect(server monitorout.GATTServer) {
	if err := server.Disconnect(); err != nil {
		p.logger.Debug().Err(err).Msg("disconnect after failed step")
	}
}
