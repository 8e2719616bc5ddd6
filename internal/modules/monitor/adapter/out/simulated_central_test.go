package out_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	monitorout "hrmon/internal/modules/monitor/adapter/out"
	"hrmon/internal/modules/monitor/domain"
)

func TestSimulatedPayloadStaysPlausible(t *testing.T) {
	t.Parallel()
	for n := 0; n < 500; n++ {
		m, err := domain.ParseMeasurement(monitorout.SimulatedPayload(n))
		if err != nil {
			t.Fatalf("payload %d: %v", n, err)
		}
		if m.BPM < 50 || m.BPM > 95 {
			t.Fatalf("payload %d: implausible bpm %d", n, m.BPM)
		}
		if m.Contact != domain.ContactDetected {
			t.Fatalf("payload %d: expected contact detected", n)
		}
	}
}

func TestSimulatedCentralStreamsUntilCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	central := monitorout.NewSimulatedCentral(5*time.Millisecond, zerolog.Nop())
	peripheral, err := central.RequestDevice(ctx, domain.HeartRateFilter())
	if err != nil {
		t.Fatalf("request device: %v", err)
	}
	if peripheral.Identity().Name != monitorout.SimulatedDeviceName {
		t.Fatalf("unexpected identity %+v", peripheral.Identity())
	}
	server, err := peripheral.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := server.PrimaryService(ctx, "0000180f-0000-1000-8000-00805f9b34fb"); err == nil {
		t.Fatalf("battery service must not be present")
	}
	svc, err := server.PrimaryService(ctx, domain.HeartRateService)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	char, err := svc.Characteristic(ctx, domain.HeartRateMeasurement)
	if err != nil {
		t.Fatalf("characteristic: %v", err)
	}

	values := make(chan []byte, 16)
	if err := char.Subscribe(ctx, func(v []byte) {
		select {
		case values <- v:
		default:
		}
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	for i := 0; i < 3; i++ {
		select {
		case <-values:
		case <-time.After(2 * time.Second):
			t.Fatalf("no notification %d", i)
		}
	}
}

func TestSimulatedCentralFilterMismatchWaitsForCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	filter := domain.HeartRateFilter()
	filter.Name = "Polar H10"
	_, err := monitorout.NewSimulatedCentral(time.Second, zerolog.Nop()).RequestDevice(ctx, filter)
	if err == nil {
		t.Fatalf("expected selection to end without a device")
	}
}
