package cmsapi

import (
	"context"
	"net/http"

	"cms-admin/internal/domain"
)

// ListComponents returns the whole catalog; filtering is left to the caller.
func (c *Client) ListComponents(ctx context.Context) ([]domain.Component, error) {
	var components []domain.Component
	if err := c.do(ctx, http.MethodGet, "/components", nil, &components); err != nil {
		return nil, err
	}
	return components, nil
}
