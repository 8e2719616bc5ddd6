package in

import (
	"context"

	"hrmon/internal/modules/guide/dto"
	guidein "hrmon/internal/modules/guide/port/in"
)

type CLIHandler struct {
	usecase guidein.Usecase
}

func NewCLIHandler(usecase guidein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Pages(ctx context.Context) ([]dto.PageOutput, error) {
	return h.usecase.Pages(ctx)
}
