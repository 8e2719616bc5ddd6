package out

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"hrmon/internal/modules/monitor/domain"
	monitorout "hrmon/internal/modules/monitor/port/out"
)

const (
	SimulatedDeviceName    = "Simulated HRM"
	SimulatedDeviceAddress = "00:00:00:00:00:00"
)

// SimulatedCentral stands in for the Bluetooth stack with a single synthetic
// heart-rate strap. Readings oscillate around a resting rate.
type SimulatedCentral struct {
	interval time.Duration
	logger   zerolog.Logger
}

func NewSimulatedCentral(interval time.Duration, logger zerolog.Logger) monitorout.Central {
	if interval <= 0 {
		interval = time.Second
	}
	return &SimulatedCentral{interval: interval, logger: logger}
}

func (c *SimulatedCentral) RequestDevice(ctx context.Context, filter domain.DeviceFilter) (monitorout.Peripheral, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	identity := domain.DeviceIdentity{Name: SimulatedDeviceName, Address: SimulatedDeviceAddress}
	if filter.Service != domain.HeartRateService || !filter.Matches(identity) {
		// Nothing else will ever advertise; behave like an open chooser.
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &simPeripheral{identity: identity, interval: c.interval, logger: c.logger}, nil
}

type simPeripheral struct {
	identity domain.DeviceIdentity
	interval time.Duration
	logger   zerolog.Logger
}

func (p *simPeripheral) Identity() domain.DeviceIdentity { return p.identity }

func (p *simPeripheral) Connect(ctx context.Context) (monitorout.GATTServer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &simServer{peripheral: p}, nil
}

type simServer struct {
	peripheral *simPeripheral
}

func (s *simServer) PrimaryService(_ context.Context, uuid string) (monitorout.GATTService, error) {
	if uuid != domain.HeartRateService {
		return nil, fmt.Errorf("service %s not present", uuid)
	}
	return &simService{peripheral: s.peripheral}, nil
}

func (s *simServer) Disconnect() error { return nil }

type simService struct {
	peripheral *simPeripheral
}

func (s *simService) Characteristic(_ context.Context, uuid string) (monitorout.GATTCharacteristic, error) {
	if uuid != domain.HeartRateMeasurement {
		return nil, fmt.Errorf("characteristic %s not present", uuid)
	}
	return &simCharacteristic{peripheral: s.peripheral}, nil
}

type simCharacteristic struct {
	peripheral *simPeripheral
}

// Subscribe emits one notification per interval until ctx is done.
func (c *simCharacteristic) Subscribe(ctx context.Context, handler func([]byte)) error {
	go func() {
		ticker := time.NewTicker(c.peripheral.interval)
		defer ticker.Stop()
		for tick := 0; ; tick++ {
			select {
			case <-ctx.Done():
				c.peripheral.logger.Debug().Msg("simulated stream stopped")
				return
			case <-ticker.C:
				handler(SimulatedPayload(tick))
			}
		}
	}()
	return nil
}

// SimulatedPayload returns the n-th synthetic measurement: 8-bit format with
// sensor contact detected.
func SimulatedPayload(n int) []byte {
	bpm := 72 + 14*math.Sin(float64(n)/9) + 4*math.Sin(float64(n)/2.3)
	return []byte{0x06, byte(math.Round(bpm))}
}
