package cmsapi

import (
	"context"
	"fmt"
	"net/http"

	"cms-admin/internal/domain"
)

type PageRequest struct {
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

func (c *Client) ListPages(ctx context.Context) ([]domain.Page, error) {
	var pages []domain.Page
	if err := c.do(ctx, http.MethodGet, "/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Client) CreatePage(ctx context.Context, req PageRequest) (*domain.Page, error) {
	var page domain.Page
	if err := c.do(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	if page.ID == 0 {
		return nil, fmt.Errorf("cms api: page id not returned")
	}
	return &page, nil
}

func (c *Client) GetPage(ctx context.Context, id uint64) (*domain.Page, error) {
	var page domain.Page
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pages/id/%d", id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdatePage(ctx context.Context, id uint64, req PageRequest) (*domain.Page, error) {
	var page domain.Page
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/pages/%d", id), req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) DeletePage(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/pages/%d", id), nil, nil)
}
