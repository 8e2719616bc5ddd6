package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"hrmon/internal/modules/monitor/domain"
	monitorout "hrmon/internal/modules/monitor/port/out"
	"hrmon/internal/modules/monitor/service"
	apperrors "hrmon/internal/platform/errors"
)

type fakeCentral struct {
	failAt       service.Step
	calls        []service.Step
	handler      func([]byte)
	disconnected bool
	filter       domain.DeviceFilter
}

var errBoom = errors.New("boom")

func (f *fakeCentral) fail(step service.Step) error {
	f.calls = append(f.calls, step)
	if f.failAt == step {
		return errBoom
	}
	return nil
}

func (f *fakeCentral) RequestDevice(_ context.Context, filter domain.DeviceFilter) (monitorout.Peripheral, error) {
	f.filter = filter
	if err := f.fail(service.StepSelect); err != nil {
		return nil, err
	}
	return fakePeripheral{f}, nil
}

type fakePeripheral struct{ f *fakeCentral }

func (p fakePeripheral) Identity() domain.DeviceIdentity {
	return domain.DeviceIdentity{Name: "Forerunner 255", Address: "AA:BB:CC:DD:EE:FF"}
}

func (p fakePeripheral) Connect(context.Context) (monitorout.GATTServer, error) {
	if err := p.f.fail(service.StepConnect); err != nil {
		return nil, err
	}
	return fakeServer{p.f}, nil
}

type fakeServer struct{ f *fakeCentral }

func (s fakeServer) PrimaryService(_ context.Context, uuid string) (monitorout.GATTService, error) {
	if uuid != domain.HeartRateService {
		return nil, errors.New("unexpected service " + uuid)
	}
	if err := s.f.fail(service.StepService); err != nil {
		return nil, err
	}
	return fakeService(s), nil
}

func (s fakeServer) Disconnect() error {
	s.f.disconnected = true
	return nil
}

type fakeService struct{ f *fakeCentral }

func (s fakeService) Characteristic(_ context.Context, uuid string) (monitorout.GATTCharacteristic, error) {
	if uuid != domain.HeartRateMeasurement {
		return nil, errors.New("unexpected characteristic " + uuid)
	}
	if err := s.f.fail(service.StepCharacteristic); err != nil {
		return nil, err
	}
	return fakeChar(s), nil
}

type fakeChar struct{ f *fakeCentral }

func (c fakeChar) Subscribe(_ context.Context, handler func([]byte)) error {
	if err := c.f.fail(service.StepSubscribe); err != nil {
		return err
	}
	c.f.handler = handler
	return nil
}

func TestPipelineRunsStepsInOrder(t *testing.T) {
	t.Parallel()
	central := &fakeCentral{}
	p := service.NewPipeline(central, zerolog.Nop())

	var selected domain.DeviceIdentity
	var values [][]byte
	device, err := p.Run(context.Background(), domain.DeviceFilter{}, func(d domain.DeviceIdentity) {
		if len(central.calls) != 1 {
			t.Errorf("device must be reported before connecting, calls=%v", central.calls)
		}
		selected = d
	}, func(v []byte) { values = append(values, v) })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []service.Step{service.StepSelect, service.StepConnect, service.StepService, service.StepCharacteristic, service.StepSubscribe}
	if len(central.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, central.calls)
	}
	for i := range want {
		if central.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, central.calls)
		}
	}
	if central.filter.Service != domain.HeartRateService {
		t.Fatalf("selection must filter by heart rate service, got %q", central.filter.Service)
	}
	if selected.Name != "Forerunner 255" || device.Name != "Forerunner 255" {
		t.Fatalf("unexpected device %+v / %+v", selected, device)
	}
	central.handler([]byte{0, 61})
	if len(values) != 1 || values[0][1] != 61 {
		t.Fatalf("notification not forwarded: %v", values)
	}
}

func TestPipelineStopsAtFailingStep(t *testing.T) {
	t.Parallel()
	cases := []struct {
		step     service.Step
		sentinel error
	}{
		{service.StepSelect, apperrors.ErrSelectionCancelled},
		{service.StepConnect, apperrors.ErrLinkFailed},
		{service.StepService, apperrors.ErrServiceNotFound},
		{service.StepCharacteristic, apperrors.ErrCharacteristicNotFound},
		{service.StepSubscribe, apperrors.ErrSubscribeRejected},
	}
	for _, tc := range cases {
		central := &fakeCentral{failAt: tc.step}
		_, err := service.NewPipeline(central, zerolog.Nop()).Run(context.Background(), domain.HeartRateFilter(), nil, func([]byte) {})
		if !errors.Is(err, tc.sentinel) {
			t.Fatalf("%s: expected %v, got %v", tc.step, tc.sentinel, err)
		}
		if !errors.Is(err, errBoom) {
			t.Fatalf("%s: cause must stay reachable, got %v", tc.step, err)
		}
		var stepErr *service.StepError
		if !errors.As(err, &stepErr) || stepErr.Step != tc.step {
			t.Fatalf("%s: expected step error, got %v", tc.step, err)
		}
		if last := central.calls[len(central.calls)-1]; last != tc.step {
			t.Fatalf("%s: pipeline continued past failure to %s", tc.step, last)
		}
		if tc.step >= service.StepService && !central.disconnected {
			t.Fatalf("%s: link must be released", tc.step)
		}
	}
}

type blockingCentral struct{}

func (blockingCentral) RequestDevice(ctx context.Context, _ domain.DeviceFilter) (monitorout.Peripheral, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestPipelineCancelledSelection(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.NewPipeline(blockingCentral{}, zerolog.Nop()).Run(ctx, domain.HeartRateFilter(), nil, nil)
	if !errors.Is(err, apperrors.ErrSelectionCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled selection, got %v", err)
	}
}
