package catalogmock

import (
	"context"

	domain "librarium-backend/internal/domain/catalog"
)

// MaterialRepo is a function-backed mock for domain.MaterialRepository.
type MaterialRepo struct {
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Material, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Material, error)
	ListFn              func(ctx context.Context) ([]domain.Material, error)
	SaveFn              func(ctx context.Context, m *domain.Material) error
	IncrementQuantityFn func(ctx context.Context, id uint64, delta int) error
}

func (m *MaterialRepo) GetByID(ctx context.Context, id uint64) (*domain.Material, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *MaterialRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Material, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *MaterialRepo) List(ctx context.Context) ([]domain.Material, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *MaterialRepo) Save(ctx context.Context, mat *domain.Material) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, mat)
	}
	return nil
}

func (m *MaterialRepo) IncrementQuantity(ctx context.Context, id uint64, delta int) error {
	if m.IncrementQuantityFn != nil {
		return m.IncrementQuantityFn(ctx, id, delta)
	}
	return nil
}

// CopyRepo is a function-backed mock for domain.CopyRepository.
type CopyRepo struct {
	GetByIDFn                           func(ctx context.Context, id uint64) (*domain.Copy, error)
	GetAvailableByMaterialIDForUpdateFn func(ctx context.Context, materialID uint64) (*domain.Copy, error)
	SaveFn                              func(ctx context.Context, c *domain.Copy) error
	UpdateStatusFn                      func(ctx context.Context, id uint64, status domain.CopyStatus) error
}

func (m *CopyRepo) GetByID(ctx context.Context, id uint64) (*domain.Copy, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *CopyRepo) GetAvailableByMaterialIDForUpdate(ctx context.Context, materialID uint64) (*domain.Copy, error) {
	if m.GetAvailableByMaterialIDForUpdateFn != nil {
		return m.GetAvailableByMaterialIDForUpdateFn(ctx, materialID)
	}
	return nil, context.Canceled
}

func (m *CopyRepo) Save(ctx context.Context, c *domain.Copy) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *CopyRepo) UpdateStatus(ctx context.Context, id uint64, status domain.CopyStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}
