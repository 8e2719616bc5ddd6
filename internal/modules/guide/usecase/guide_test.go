package usecase_test

import (
	"context"
	"errors"
	"testing"

	"hrmon/internal/modules/guide/domain"
	"hrmon/internal/modules/guide/usecase"
	apperrors "hrmon/internal/platform/errors"
)

type fakeStore struct {
	pages []domain.Page
	err   error
}

func (f fakeStore) Load(context.Context) ([]domain.Page, error) { return f.pages, f.err }

func TestPagesAreIndexedInOrder(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(fakeStore{pages: []domain.Page{{Title: "a"}, {Title: "b", Image: "b.bmp"}}})
	pages, err := uc.Pages(context.Background())
	if err != nil {
		t.Fatalf("pages: %v", err)
	}
	if len(pages) != 2 || pages[1].Index != 1 || pages[1].Title != "b" || pages[1].Image != "b.bmp" {
		t.Fatalf("unexpected pages %+v", pages)
	}
}

func TestPagesErrors(t *testing.T) {
	t.Parallel()
	if _, err := usecase.NewInteractor(fakeStore{}).Pages(context.Background()); !errors.Is(err, apperrors.ErrEmptyGuide) {
		t.Fatalf("expected empty guide error, got %v", err)
	}
	boom := errors.New("boom")
	if _, err := usecase.NewInteractor(fakeStore{err: boom}).Pages(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
