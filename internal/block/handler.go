package block

import (
	"net/http"

	"cms-admin/internal/domain"
	"cms-admin/internal/errors"
	"cms-admin/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateBlockRequest struct {
	PageID        uint64 `json:"pageId" binding:"required"`
	ComponentType string `json:"componentType" binding:"required,max=100"`
	BlockOrder    *int   `json:"blockOrder" binding:"required,min=0"`
	Data          string `json:"data"`
}

type UpdateBlockRequest struct {
	ComponentType string `json:"componentType" binding:"required,max=100"`
	BlockOrder    *int   `json:"blockOrder" binding:"required,min=0"`
	Data          string `json:"data"`
}

type UpdateOrderRequest struct {
	BlockOrder *int `json:"blockOrder" binding:"required,min=0"`
}

func (h *Handler) Create(c *gin.Context) {
	var form CreateBlockRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	block := &domain.Block{
		PageID:        form.PageID,
		ComponentType: form.ComponentType,
		BlockOrder:    *form.BlockOrder,
		Data:          form.Data,
	}

	if err := h.service.CreateBlock(c.Request.Context(), block); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *Handler) ListByPage(c *gin.Context) {
	pageID, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	blocks, err := h.service.ListPageBlocks(c.Request.Context(), pageID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var form UpdateBlockRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	block, err := h.service.UpdateBlock(c.Request.Context(), id, BlockInput{
		ComponentType: form.ComponentType,
		BlockOrder:    *form.BlockOrder,
		Data:          form.Data,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, block)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var form UpdateOrderRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.UpdateBlockOrder(c.Request.Context(), id, *form.BlockOrder); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteBlock(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
