package block

import (
	"context"

	"cms-admin/internal/domain"

	"gorm.io/gorm"
)

type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) error
	ListByPage(ctx context.Context, pageID uint64) ([]domain.Block, error)
	FindByID(ctx context.Context, id uint64) (*domain.Block, error)
	Update(ctx context.Context, block *domain.Block) error
	UpdateOrder(ctx context.Context, id uint64, order int) error
	Delete(ctx context.Context, id uint64) error
}

type BlockRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) BlockRepository {
	return &BlockRepositoryImpl{db: db}
}

func (r *BlockRepositoryImpl) Create(ctx context.Context, block *domain.Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *BlockRepositoryImpl) ListByPage(ctx context.Context, pageID uint64) ([]domain.Block, error) {
	var blocks []domain.Block
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("block_order ASC, id ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *BlockRepositoryImpl) FindByID(ctx context.Context, id uint64) (*domain.Block, error) {
	var block domain.Block
	if err := r.db.WithContext(ctx).First(&block, id).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *BlockRepositoryImpl) Update(ctx context.Context, block *domain.Block) error {
	return r.db.WithContext(ctx).
		Model(block).
		Select("component_type", "block_order", "data").
		Updates(block).Error
}

// UpdateOrder touches only the order column.
func (r *BlockRepositoryImpl) UpdateOrder(ctx context.Context, id uint64, order int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Block{}).
		Where("id = ?", id).
		Update("block_order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BlockRepositoryImpl) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Block{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
