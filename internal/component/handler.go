package component

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List returns the whole catalog, inactive and deleted rows included.
// Clients filter.
func (h *Handler) List(c *gin.Context) {
	components, err := h.service.ListComponents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, components)
}
