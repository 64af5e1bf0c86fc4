package page

import (
	"context"
	"errors"

	"cms-admin/internal/domain"
	apiError "cms-admin/internal/errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service interface {
	ListPages(ctx context.Context) ([]domain.Page, error)
	CreatePage(ctx context.Context, page *domain.Page) error
	GetPage(ctx context.Context, id uint64) (*domain.Page, error)
	UpdatePage(ctx context.Context, id uint64, input PageInput) (*domain.Page, error)
	DeletePage(ctx context.Context, id uint64) error
}

type PageInput struct {
	Title  string
	Slug   string
	Status string
}

type ServiceImpl struct {
	repo PageRepository
}

func NewService(repo PageRepository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListPages(ctx context.Context) ([]domain.Page, error) {
	pages, err := s.repo.List(ctx)
	if err != nil {
		return nil, apiError.Internal(err)
	}
	if pages == nil {
		pages = []domain.Page{}
	}
	return pages, nil
}

func (s *ServiceImpl) CreatePage(ctx context.Context, page *domain.Page) error {
	if page.Status == "" {
		page.Status = domain.PageStatusDraft
	}
	if err := s.repo.Create(ctx, page); err != nil {
		return mapError(err)
	}
	log.Info().Uint64("page_id", page.ID).Str("slug", page.Slug).Msg("page created")
	return nil
}

func (s *ServiceImpl) GetPage(ctx context.Context, id uint64) (*domain.Page, error) {
	page, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return page, nil
}

func (s *ServiceImpl) UpdatePage(ctx context.Context, id uint64, input PageInput) (*domain.Page, error) {
	page, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	page.Title = input.Title
	page.Slug = input.Slug
	if input.Status != "" {
		page.Status = input.Status
	}

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, mapError(err)
	}
	return page, nil
}

func (s *ServiceImpl) DeletePage(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	log.Info().Uint64("page_id", id).Msg("page deleted")
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apiError.NotFound("Page not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apiError.Conflict("Slug already in use", err)
	default:
		return apiError.Internal(err)
	}
}
