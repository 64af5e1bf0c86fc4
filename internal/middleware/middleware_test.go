package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cms-admin/auth"
	apiError "cms-admin/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-secret")

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/test", handlers...)
	return router
}

func perform(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandler_APIError(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(apiError.Conflict("Slug already in use", errors.New("duplicate key")))
	})

	w := perform(router, "")

	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "Slug already in use"}, body)
}

func TestErrorHandler_RawErrorIsInternal(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(errors.New("connection refused"))
	})

	w := perform(router, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestErrorHandler_ValidationDetails(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		var req struct {
			Title string `json:"title" binding:"required"`
		}
		c.Request.Body = io.NopCloser(strings.NewReader("{}"))
		c.Request.Header.Set("Content-Type", "application/json")
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apiError.NewValidationError(err))
		}
	})

	w := perform(router, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"title": "is required"}, body.Details)
}

func TestAuthMiddleWare(t *testing.T) {
	m := &Auth{Secret: testSecret}
	router := setupRouter(m.AuthMiddleWare(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("subject"))
	})
	valid, err := auth.GenerateJWT(testSecret, "editor", time.Hour)
	require.NoError(t, err)
	foreign, err := auth.GenerateJWT([]byte("other"), "editor", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "editor", w.Body.String())
			}
		})
	}
}
