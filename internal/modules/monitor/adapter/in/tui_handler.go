package in

import (
	"context"

	"hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
)

// TUIHandler drives the monitor from an interactive surface. Scan filters
// are fixed at construction so the UI only has to say "start".
type TUIHandler struct {
	usecase monitorin.Usecase
	input   dto.StartInput
}

func NewTUIHandler(usecase monitorin.Usecase, input dto.StartInput) TUIHandler {
	return TUIHandler{usecase: usecase, input: input}
}

func (h TUIHandler) StartMonitoring(ctx context.Context, listener monitorin.Listener) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, h.input, listener)
}

func (h TUIHandler) Snapshot(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Snapshot(ctx)
}
