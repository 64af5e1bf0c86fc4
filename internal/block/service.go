package block

import (
	"context"
	"errors"

	"cms-admin/internal/domain"
	apiError "cms-admin/internal/errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PageFinder checks that a block's page exists.
type PageFinder interface {
	FindByID(ctx context.Context, id uint64) (*domain.Page, error)
}

type Service interface {
	CreateBlock(ctx context.Context, block *domain.Block) error
	ListPageBlocks(ctx context.Context, pageID uint64) ([]domain.Block, error)
	UpdateBlock(ctx context.Context, id uint64, input BlockInput) (*domain.Block, error)
	UpdateBlockOrder(ctx context.Context, id uint64, order int) error
	DeleteBlock(ctx context.Context, id uint64) error
}

type BlockInput struct {
	ComponentType string
	BlockOrder    int
	Data          string
}

type ServiceImpl struct {
	repo  BlockRepository
	pages PageFinder
}

func NewService(repo BlockRepository, pages PageFinder) Service {
	return &ServiceImpl{repo: repo, pages: pages}
}

func (s *ServiceImpl) CreateBlock(ctx context.Context, block *domain.Block) error {
	if err := validateData(block.Data); err != nil {
		return err
	}
	if _, err := s.pages.FindByID(ctx, block.PageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.UnprocessableEntity("Page does not exist", err)
		}
		return apiError.Internal(err)
	}

	if err := s.repo.Create(ctx, block); err != nil {
		return mapError(err)
	}
	log.Debug().Uint64("page_id", block.PageID).Uint64("block_id", block.ID).Int("order", block.BlockOrder).Msg("block created")
	return nil
}

func (s *ServiceImpl) ListPageBlocks(ctx context.Context, pageID uint64) ([]domain.Block, error) {
	blocks, err := s.repo.ListByPage(ctx, pageID)
	if err != nil {
		return nil, apiError.Internal(err)
	}
	if blocks == nil {
		blocks = []domain.Block{}
	}
	return blocks, nil
}

func (s *ServiceImpl) UpdateBlock(ctx context.Context, id uint64, input BlockInput) (*domain.Block, error) {
	if err := validateData(input.Data); err != nil {
		return nil, err
	}
	block, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	block.ComponentType = input.ComponentType
	block.BlockOrder = input.BlockOrder
	block.Data = input.Data

	if err := s.repo.Update(ctx, block); err != nil {
		return nil, mapError(err)
	}
	return block, nil
}

func (s *ServiceImpl) UpdateBlockOrder(ctx context.Context, id uint64, order int) error {
	if err := s.repo.UpdateOrder(ctx, id, order); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *ServiceImpl) DeleteBlock(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// validateData accepts an empty payload or a JSON object of strings.
func validateData(data string) error {
	if _, err := domain.DecodeFields(data); err != nil {
		return apiError.UnprocessableEntity("Block data must be a JSON object of strings", err)
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError.NotFound("Block not found", err)
	}
	return apiError.Internal(err)
}
