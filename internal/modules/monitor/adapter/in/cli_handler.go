package in

import (
	"context"
	"time"

	"hrmon/internal/modules/monitor/dto"
	monitorin "hrmon/internal/modules/monitor/port/in"
)

type CLIHandler struct {
	usecase monitorin.Usecase
}

func NewCLIHandler(usecase monitorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Watch(ctx context.Context, address, name string, timeout time.Duration, listener monitorin.Listener) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Address: address, Name: name, Timeout: timeout}, listener)
}

func (h CLIHandler) Snapshot(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Snapshot(ctx)
}
