package page

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

type PageRequest struct {
	Title  string `json:"title" binding:"required,max=255"`
	Slug   string `json:"slug" binding:"required,max=255"`
	Status string `json:"status" binding:"omitempty,oneof=draft published"`
}

func (h *Handler) List(c *gin.Context) {
	pages, err := h.service.ListPages(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, pages)
}

func (h *Handler) Create(c *gin.Context) {
	var form PageRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	page := &domain.Page{
		Title:  form.Title,
		Slug:   form.Slug,
		Status: form.Status,
	}

	if err := h.service.CreatePage(c.Request.Context(), page); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

func (h *Handler) Show(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	page, err := h.service.GetPage(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var form PageRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	page, err := h.service.UpdatePage(c.Request.Context(), id, PageInput(form))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeletePage(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
