package mysql

import (
	"context"

	catalogDomain "librarium-backend/internal/domain/catalog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) *MaterialRepository { return &MaterialRepository{db: db} }

func (r *MaterialRepository) GetByID(ctx context.Context, id uint64) (*catalogDomain.Material, error) {
	var out catalogDomain.Material
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *MaterialRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*catalogDomain.Material, error) {
	var out catalogDomain.Material
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *MaterialRepository) List(ctx context.Context) ([]catalogDomain.Material, error) {
	var out []catalogDomain.Material
	res := r.db.WithContext(ctx).Order("title ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *MaterialRepository) Save(ctx context.Context, m *catalogDomain.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MaterialRepository) IncrementQuantity(ctx context.Context, id uint64, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&catalogDomain.Material{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalogDomain.ErrNotFound
	}
	return nil
}

type CopyRepository struct{ db *gorm.DB }

func NewCopyRepository(db *gorm.DB) *CopyRepository { return &CopyRepository{db: db} }

func (r *CopyRepository) GetByID(ctx context.Context, id uint64) (*catalogDomain.Copy, error) {
	var out catalogDomain.Copy
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CopyRepository) GetAvailableByMaterialIDForUpdate(ctx context.Context, materialID uint64) (*catalogDomain.Copy, error) {
	var out catalogDomain.Copy
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("material_id = ? AND status = ?", materialID, catalogDomain.CopyAvailable).
		Order("registration_number ASC").
		First(&out)
	return &out, res.Error
}

func (r *CopyRepository) Save(ctx context.Context, c *catalogDomain.Copy) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CopyRepository) UpdateStatus(ctx context.Context, id uint64, status catalogDomain.CopyStatus) error {
	res := r.db.WithContext(ctx).
		Model(&catalogDomain.Copy{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalogDomain.ErrNotFound
	}
	return nil
}
