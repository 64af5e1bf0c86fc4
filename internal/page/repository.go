package page

import (
	"context"

	"cms-admin/internal/domain"

	"gorm.io/gorm"
)

type PageRepository interface {
	List(ctx context.Context) ([]domain.Page, error)
	Create(ctx context.Context, page *domain.Page) error
	FindByID(ctx context.Context, id uint64) (*domain.Page, error)
	Update(ctx context.Context, page *domain.Page) error
	Delete(ctx context.Context, id uint64) error
}

type PageRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new page repository
func NewRepository(db *gorm.DB) PageRepository {
	return &PageRepositoryImpl{db: db}
}

func (r *PageRepositoryImpl) List(ctx context.Context) ([]domain.Page, error) {
	var pages []domain.Page
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&pages).Error
	return pages, err
}

func (r *PageRepositoryImpl) Create(ctx context.Context, page *domain.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *PageRepositoryImpl) FindByID(ctx context.Context, id uint64) (*domain.Page, error) {
	var page domain.Page
	if err := r.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *PageRepositoryImpl) Update(ctx context.Context, page *domain.Page) error {
	return r.db.WithContext(ctx).
		Model(page).
		Select("title", "slug", "status").
		Updates(page).Error
}

// Delete removes the page and its blocks in one transaction.
func (r *PageRepositoryImpl) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&domain.Block{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Page{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
