package page

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cms-admin/internal/domain"
	apiError "cms-admin/internal/errors"
	"cms-admin/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) ListPages(ctx context.Context) ([]domain.Page, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Page), args.Error(1)
}

func (m *MockService) CreatePage(ctx context.Context, page *domain.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockService) GetPage(ctx context.Context, id uint64) (*domain.Page, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockService) UpdatePage(ctx context.Context, id uint64, input PageInput) (*domain.Page, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page), args.Error(1)
}

func (m *MockService) DeletePage(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/pages", handler.List)
	router.POST("/pages", handler.Create)
	router.GET("/pages/id/:id", handler.Show)
	router.PUT("/pages/:id", handler.Update)
	router.DELETE("/pages/:id", handler.Delete)
	return router
}

func jsonRequest(method, path string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestCreatePage_Success tests successful page creation
func TestCreatePage_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	mockService.On("CreatePage", mock.Anything, mock.MatchedBy(func(p *domain.Page) bool {
		return p.Title == "Home" && p.Slug == "home" && p.Status == "published"
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Page).ID = 7
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/pages", PageRequest{Title: "Home", Slug: "home", Status: "published"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	var page domain.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, uint64(7), page.ID)
	mockService.AssertExpectations(t)
}

// TestCreatePage_InvalidInput tests page creation with missing fields
func TestCreatePage_InvalidInput(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/pages", map[string]string{"title": "Home"}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"is required"`)
	mockService.AssertNotCalled(t, "CreatePage", mock.Anything, mock.Anything)
}

func TestCreatePage_InvalidStatus(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/pages", PageRequest{Title: "Home", Slug: "home", Status: "archived"}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreatePage_DuplicateSlug(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))
	mockService.On("CreatePage", mock.Anything, mock.Anything).Return(apiError.Conflict("Slug already in use", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/pages", PageRequest{Title: "Home", Slug: "home"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Slug already in use"}`, w.Body.String())
}

func TestListPages(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))
	mockService.On("ListPages", mock.Anything).Return([]domain.Page{{ID: 2, Title: "B"}, {ID: 1, Title: "A"}}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/pages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var pages []domain.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pages))
	assert.Len(t, pages, 2)
}

func TestShowPage(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))
	mockService.On("GetPage", mock.Anything, uint64(3)).Return(&domain.Page{ID: 3, Title: "About", Slug: "about", Status: "draft"}, nil)
	mockService.On("GetPage", mock.Anything, uint64(4)).Return(nil, apiError.NotFound("Page not found", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/pages/id/3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"about"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/pages/id/4", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/pages/id/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePage(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))
	input := PageInput{Title: "About us", Slug: "about", Status: "published"}
	mockService.On("UpdatePage", mock.Anything, uint64(3), input).Return(&domain.Page{ID: 3, Title: "About us"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/pages/3", PageRequest(input)))

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestDeletePage(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(NewHandler(mockService))
	mockService.On("DeletePage", mock.Anything, uint64(3)).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/pages/3", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}
