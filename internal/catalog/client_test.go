package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 5*time.Second)
}

func TestClient_Products(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "18", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true, "total": 42, "page": 2, "pages": 3, "count": 18,
			"data": [{"_id":"p1","name":"Camera","price":100,"discount":10,"categoryId":"electronics"}]
		}`))
	})

	page, err := client.Products(context.Background(), 2, 18)
	require.NoError(t, err)

	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Camera", page.Products[0].Name)
}

func TestClient_ProductsByCategory(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c7", r.URL.Query().Get("category"))
		w.Write([]byte(`{"success": true, "total": 1, "page": 1, "pages": 1, "count": 1, "data": []}`))
	})

	page, err := client.ProductsByCategory(context.Background(), "c7", 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pages)
}

func TestClient_Products_InvalidEnvelope(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		// success=false means the page must be treated as malformed
		w.Write([]byte(`{"success": false}`))
	})

	_, err := client.Products(context.Background(), 1, 18)
	assert.Error(t, err)
}

func TestClient_Products_ServerError(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Products(context.Background(), 1, 18)
	assert.Error(t, err)
}

func TestClient_Categories(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		w.Write([]byte(`{"categories":[{"_id":"c1","name":"Electronics","slug":"electronics"}]}`))
	})

	cats, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Electronics", cats[0].Name)
}

func TestClient_Categories_MissingField(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.Categories(context.Background())
	assert.Error(t, err)
}

func TestClient_Product(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p42", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": {"_id":"p42","name":"Vase","categoryId":{"_id":"c2","name":"Decor"}}}`))
	})

	p, err := client.Product(context.Background(), "p42")
	require.NoError(t, err)
	assert.Equal(t, "Vase", p.Name)
	assert.Equal(t, "Decor", p.CategoryID.DisplayName())
}

func TestClient_ContextCancellation(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Products(ctx, 1, 18)
	assert.Error(t, err)
}
