package in

import (
	"context"

	"hrmon/internal/modules/monitor/dto"
)

// Listener receives pipeline events. Calls may arrive on the Bluetooth stack's
// goroutine; implementations hand them to their own event loop.
type Listener interface {
	DeviceSelected(device dto.DeviceOutput)
	SampleReceived(sample dto.SampleOutput)
}

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput, listener Listener) (dto.StartOutput, error)
	Snapshot(ctx context.Context) (dto.SessionOutput, error)
}
