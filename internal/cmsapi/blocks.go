package cmsapi

import (
	"context"
	"fmt"
	"net/http"

	"cms-admin/internal/domain"
)

type CreateBlockRequest struct {
	PageID        uint64 `json:"pageId"`
	ComponentType string `json:"componentType"`
	BlockOrder    int    `json:"blockOrder"`
	Data          string `json:"data"`
}

type UpdateBlockRequest struct {
	ComponentType string `json:"componentType"`
	BlockOrder    int    `json:"blockOrder"`
	Data          string `json:"data"`
}

type blockOrderRequest struct {
	BlockOrder int `json:"blockOrder"`
}

func (c *Client) CreateBlock(ctx context.Context, req CreateBlockRequest) (*domain.Block, error) {
	var block domain.Block
	if err := c.do(ctx, http.MethodPost, "/blocks", req, &block); err != nil {
		return nil, err
	}
	if block.ID == 0 {
		return nil, fmt.Errorf("cms api: block id not returned")
	}
	return &block, nil
}

func (c *Client) ListBlocks(ctx context.Context, pageID uint64) ([]domain.Block, error) {
	var blocks []domain.Block
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/blocks/page/%d", pageID), nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (c *Client) UpdateBlock(ctx context.Context, id uint64, req UpdateBlockRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/blocks/%d", id), req, nil)
}

func (c *Client) UpdateBlockOrder(ctx context.Context, id uint64, order int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/blocks/order/%d", id), blockOrderRequest{BlockOrder: order}, nil)
}

func (c *Client) DeleteBlock(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/blocks/%d", id), nil, nil)
}
