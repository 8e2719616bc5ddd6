package in

import (
	"context"

	"hrmon/internal/modules/guide/dto"
)

type Usecase interface {
	Pages(ctx context.Context) ([]dto.PageOutput, error)
}
