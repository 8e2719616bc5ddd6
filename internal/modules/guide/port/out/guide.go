package out

import (
	"context"

	"hrmon/internal/modules/guide/domain"
)

type PageStore interface {
	Load(ctx context.Context) ([]domain.Page, error)
}
