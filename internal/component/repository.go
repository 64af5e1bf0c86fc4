package component

import (
	"context"

	"cms-admin/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComponentRepository interface {
	List(ctx context.Context) ([]domain.Component, error)
	Upsert(ctx context.Context, component *domain.Component) error
}

type ComponentRepositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ComponentRepository {
	return &ComponentRepositoryImpl{db: db}
}

func (r *ComponentRepositoryImpl) List(ctx context.Context) ([]domain.Component, error) {
	var components []domain.Component
	err := r.db.WithContext(ctx).Order("id ASC").Find(&components).Error
	return components, err
}

// Upsert inserts the component or, when its type exists, refreshes the
// name and schema.
func (r *ComponentRepositoryImpl) Upsert(ctx context.Context, component *domain.Component) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "component_schema", "updated_at"}),
	}).Create(component).Error
}
