// Package router holds the backend's route table.
package router

import (
	"cms-admin/internal/block"
	"cms-admin/internal/component"
	"cms-admin/internal/page"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Pages      *page.Handler
	Blocks     *block.Handler
	Components *component.Handler
}

// RegisterRoutes mounts the page, block and component routes on api.
func RegisterRoutes(api gin.IRoutes, h Handlers) {
	// Page routes
	api.GET("/pages", h.Pages.List)
	api.POST("/pages", h.Pages.Create)
	api.GET("/pages/id/:id", h.Pages.Show)
	api.PUT("/pages/:id", h.Pages.Update)
	api.DELETE("/pages/:id", h.Pages.Delete)

	// Block routes. The order route is registered before /blocks/:id.
	api.POST("/blocks", h.Blocks.Create)
	api.GET("/blocks/page/:id", h.Blocks.ListByPage)
	api.PUT("/blocks/order/:id", h.Blocks.UpdateOrder)
	api.PUT("/blocks/:id", h.Blocks.Update)
	api.DELETE("/blocks/:id", h.Blocks.Delete)

	// Component catalog
	api.GET("/components", h.Components.List)
}
