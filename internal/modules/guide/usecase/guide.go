package usecase

import (
	"context"
	"fmt"

	"hrmon/internal/modules/guide/dto"
	guidein "hrmon/internal/modules/guide/port/in"
	guideout "hrmon/internal/modules/guide/port/out"
	apperrors "hrmon/internal/platform/errors"
)

type Interactor struct {
	store guideout.PageStore
}

func NewInteractor(store guideout.PageStore) guidein.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Pages(ctx context.Context) ([]dto.PageOutput, error) {
	pages, err := i.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load guide pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, apperrors.ErrEmptyGuide
	}
	out := make([]dto.PageOutput, 0, len(pages))
	for idx, p := range pages {
		out = append(out, dto.PageOutput{Index: idx, Title: p.Title, Description: p.Description, Image: p.Image})
	}
	return out, nil
}
