package catalog

import (
	"context"
	"errors"

	domain "librarium-backend/internal/domain/catalog"

	"gorm.io/gorm"
)

type Usecase struct {
	materials domain.MaterialRepository
}

func NewUsecase(materials domain.MaterialRepository) *Usecase {
	return &Usecase{materials: materials}
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*domain.Material, error) {
	m, err := u.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (u *Usecase) List(ctx context.Context) ([]domain.Material, error) {
	return u.materials.List(ctx)
}
