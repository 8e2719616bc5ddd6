package out

import (
	"context"

	"hrmon/internal/modules/monitor/domain"
)

// Central is the platform Bluetooth capability: device selection filtered by
// advertised service.
type Central interface {
	RequestDevice(ctx context.Context, filter domain.DeviceFilter) (Peripheral, error)
}

type Peripheral interface {
	Identity() domain.DeviceIdentity
	Connect(ctx context.Context) (GATTServer, error)
}

type GATTServer interface {
	PrimaryService(ctx context.Context, uuid string) (GATTService, error)
	Disconnect() error
}

type GATTService interface {
	Characteristic(ctx context.Context, uuid string) (GATTCharacteristic, error)
}

type GATTCharacteristic interface {
	// Subscribe enables notifications; handler receives each raw value.
	Subscribe(ctx context.Context, handler func(value []byte)) error
}
