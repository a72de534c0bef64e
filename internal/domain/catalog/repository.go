package catalog

import "context"

type MaterialRepository interface {
	GetByID(ctx context.Context, id uint64) (*Material, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Material, error)
	List(ctx context.Context) ([]Material, error)
	Save(ctx context.Context, m *Material) error
	// IncrementQuantity applies quantity += delta in the store so the
	// counter never round-trips through a stale read.
	IncrementQuantity(ctx context.Context, id uint64, delta int) error
}

type CopyRepository interface {
	GetByID(ctx context.Context, id uint64) (*Copy, error)
	// GetAvailableByMaterialIDForUpdate picks the lowest-numbered
	// available copy and locks it for assignment.
	GetAvailableByMaterialIDForUpdate(ctx context.Context, materialID uint64) (*Copy, error)
	Save(ctx context.Context, c *Copy) error
	UpdateStatus(ctx context.Context, id uint64, status CopyStatus) error
}
