package cmsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cms-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "token-123", 5*time.Second)
}

func TestCreatePage_SendsBodyAndAuth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pages", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, PageRequest{Title: "Home", Slug: "home", Status: "draft"}, req)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Page{ID: 5, Title: req.Title, Slug: req.Slug, Status: req.Status})
	})

	page, err := client.CreatePage(context.Background(), PageRequest{Title: "Home", Slug: "home", Status: "draft"})

	require.NoError(t, err)
	assert.Equal(t, uint64(5), page.ID)
}

func TestCreatePage_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"title":"Home"}`))
	})

	_, err := client.CreatePage(context.Background(), PageRequest{Title: "Home", Slug: "home"})

	assert.ErrorContains(t, err, "page id not returned")
}

func TestStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Slug already in use"}`))
	})

	_, err := client.CreatePage(context.Background(), PageRequest{Title: "Home", Slug: "home"})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "Slug already in use", statusErr.Message)
	assert.Equal(t, "/pages", statusErr.Path)
}

func TestStatusError_PlainBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	})

	err := client.DeleteBlock(context.Background(), 3)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "gateway down", statusErr.Message)
}

func TestBlockEndpoints(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/blocks":
			var req CreateBlockRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, CreateBlockRequest{PageID: 5, ComponentType: "text", BlockOrder: 2, Data: `{"heading":"Hi"}`}, req)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Block{ID: 11, PageID: 5})
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]domain.Block{{ID: 11, PageID: 5, ComponentType: "text", BlockOrder: 0, Data: "{}"}})
		case r.Method == http.MethodPut && r.URL.Path == "/blocks/order/11":
			var req map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, map[string]int{"blockOrder": 4}, req)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	created, err := client.CreateBlock(ctx, CreateBlockRequest{PageID: 5, ComponentType: "text", BlockOrder: 2, Data: `{"heading":"Hi"}`})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), created.ID)

	blocks, err := client.ListBlocks(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	require.NoError(t, client.UpdateBlock(ctx, 11, UpdateBlockRequest{ComponentType: "text", BlockOrder: 1, Data: "{}"}))
	require.NoError(t, client.UpdateBlockOrder(ctx, 11, 4))
	require.NoError(t, client.DeleteBlock(ctx, 11))

	assert.Equal(t, []string{
		"POST /blocks",
		"GET /blocks/page/5",
		"PUT /blocks/11",
		"PUT /blocks/order/11",
		"DELETE /blocks/11",
	}, calls)
}

func TestListComponents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/components", r.URL.Path)
		w.Write([]byte(`[{"id":1,"name":"Text","type":"text","componentSchema":{"fields":[{"key":"heading"},{"key":"body"}]},"isActive":true,"isDeleted":false}]`))
	})

	components, err := client.ListComponents(context.Background())

	require.NoError(t, err)
	require.Len(t, components, 1)
	assert.Equal(t, []string{"heading", "body"}, components[0].ComponentSchema.Keys())
	assert.True(t, components[0].IsActive)
}
