package out

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"hrmon/internal/modules/monitor/domain"
	monitorout "hrmon/internal/modules/monitor/port/out"
)

var errScanStopped = errors.New("scan stopped before a matching device was found")

// BLECentral talks to the host Bluetooth stack through tinygo.org/x/bluetooth.
// Selection picks the first advertising peripheral that matches the filter.
type BLECentral struct {
	adapter *bluetooth.Adapter
	logger  zerolog.Logger

	enableOnce sync.Once
	enableErr  error
}

func NewBLECentral(logger zerolog.Logger) monitorout.Central {
	return &BLECentral{adapter: bluetooth.DefaultAdapter, logger: logger}
}

func (c *BLECentral) enable() error {
	c.enableOnce.Do(func() {
		c.enableErr = c.adapter.Enable()
	})
	return c.enableErr
}

func (c *BLECentral) RequestDevice(ctx context.Context, filter domain.DeviceFilter) (monitorout.Peripheral, error) {
	if err := c.enable(); err != nil {
		return nil, fmt.Errorf("enable bluetooth adapter: %w", err)
	}
	service, err := bluetooth.ParseUUID(filter.Service)
	if err != nil {
		return nil, fmt.Errorf("parse service uuid %q: %w", filter.Service, err)
	}
	if filter.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, filter.Timeout)
		defer cancel()
	}

	found := make(chan bluetooth.ScanResult, 1)
	scanDone := make(chan error, 1)
	c.logger.Info().Str("service", filter.Service).Msg("scanning for peripherals")
	go func() {
		scanDone <- c.adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !result.HasServiceUUID(service) {
				return
			}
			identity := domain.DeviceIdentity{Name: result.LocalName(), Address: result.Address.String()}
			if !filter.Matches(identity) {
				c.logger.Debug().Str("address", identity.Address).Msg("skipping peripheral outside filter")
				return
			}
			select {
			case found <- result:
				_ = a.StopScan()
			default:
			}
		})
	}()

	select {
	case result := <-found:
		return c.peripheral(result), nil
	case err := <-scanDone:
		select {
		case result := <-found:
			return c.peripheral(result), nil
		default:
		}
		if err == nil {
			err = errScanStopped
		}
		return nil, fmt.Errorf("scan: %w", err)
	case <-ctx.Done():
		if err := c.adapter.StopScan(); err != nil {
			c.logger.Debug().Err(err).Msg("stop scan")
		}
		return nil, ctx.Err()
	}
}

func (c *BLECentral) peripheral(result bluetooth.ScanResult) *blePeripheral {
	return &blePeripheral{
		adapter:  c.adapter,
		address:  result.Address,
		identity: domain.DeviceIdentity{Name: result.LocalName(), Address: result.Address.String()},
	}
}

type blePeripheral struct {
	adapter  *bluetooth.Adapter
	address  bluetooth.Address
	identity domain.DeviceIdentity
}

func (p *blePeripheral) Identity() domain.DeviceIdentity { return p.identity }

// Connect blocks until the stack reports success or failure; the link
// attempt itself has no deadline.
func (p *blePeripheral) Connect(_ context.Context) (monitorout.GATTServer, error) {
	device, err := p.adapter.Connect(p.address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", p.identity.Address, err)
	}
	return &bleServer{device: device}, nil
}

type bleServer struct {
	device bluetooth.Device
}

func (s *bleServer) PrimaryService(_ context.Context, uuid string) (monitorout.GATTService, error) {
	id, err := bluetooth.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("parse service uuid %q: %w", uuid, err)
	}
	services, err := s.device.DiscoverServices([]bluetooth.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("service %s not present", uuid)
	}
	return &bleService{service: services[0]}, nil
}

func (s *bleServer) Disconnect() error {
	return s.device.Disconnect()
}

type bleService struct {
	service bluetooth.DeviceService
}

func (s *bleService) Characteristic(_ context.Context, uuid string) (monitorout.GATTCharacteristic, error) {
	id, err := bluetooth.ParseUUID(uuid)
	if err != nil {
		return nil, fmt.Errorf("parse characteristic uuid %q: %w", uuid, err)
	}
	chars, err := s.service.DiscoverCharacteristics([]bluetooth.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("discover characteristics: %w", err)
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("characteristic %s not present", uuid)
	}
	return &bleCharacteristic{char: chars[0]}, nil
}

type bleCharacteristic struct {
	char bluetooth.DeviceCharacteristic
}

func (c *bleCharacteristic) Subscribe(_ context.Context, handler func([]byte)) error {
	return c.char.EnableNotifications(func(buf []byte) {
		// The stack may reuse buf after the callback returns.
		value := make([]byte, len(buf))
		copy(value, buf)
		handler(value)
	})
}
