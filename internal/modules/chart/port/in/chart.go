package in

import (
	"context"
	"io"

	"hrmon/internal/modules/chart/dto"
)

type Usecase interface {
	Mount(ctx context.Context, container dto.Container) error
	Update(ctx context.Context, points []dto.Point) error
	Resize(ctx context.Context, size dto.Size) error
	Render(ctx context.Context, w io.Writer) error
}
