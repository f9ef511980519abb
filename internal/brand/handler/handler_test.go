package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-catalog-service/internal/brand/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

func newRouter() (*gin.Engine, *catalogtest.Store) {
	gin.SetMode(gin.TestMode)
	store := catalogtest.NewStore()
	uc := usecase.NewBrandUseCase(&catalogtest.BrandRepository{Store: store}, logger.NewNop())

	r := gin.New()
	NewBrandHandler(uc, logger.NewNop()).Register(r.Group("/api/v1"))
	return r, store
}

func send(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBrand(t *testing.T, w *httptest.ResponseRecorder) model.Brand {
	t.Helper()
	var b model.Brand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestCreateAndGetBrandBySlug(t *testing.T) {
	r, _ := newRouter()

	w := send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Acme Corp"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBrand(t, w)
	assert.Equal(t, "acme-corp", created.Slug)
	assert.True(t, created.IsActive)

	w = send(r, http.MethodGet, "/api/v1/brands/slug/acme-corp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeBrand(t, w).ID)

	w = send(r, http.MethodGet, "/api/v1/brands/slug/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Brand not found"}`, w.Body.String())
}

func TestGetBrandNotFound(t *testing.T) {
	r, _ := newRouter()

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/brands/5", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, send(r, http.MethodGet, "/api/v1/brands/0x5", nil).Code)
}

func TestCreateBrandDuplicateIs400(t *testing.T) {
	r, _ := newRouter()
	send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Acme"})

	w := send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Acme"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"brand with name \"Acme\" already exists"}`, w.Body.String())
}

func TestDeleteBrandWithProductsIs400(t *testing.T) {
	r, store := newRouter()
	send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Acme"})
	brandID := int64(1)
	store.Products.Insert(&model.Product{Title: "Book", SKU: "B-1", Slug: "book", CategoryID: 1, BrandID: &brandID, IsActive: true})

	w := send(r, http.MethodDelete, "/api/v1/brands/1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"cannot delete brand with products"}`, w.Body.String())
	assert.NotNil(t, store.Brands.Get(1))

	store.Products.Delete(1)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/api/v1/brands/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/api/v1/brands/1", nil).Code)
}

func TestPopularBrands(t *testing.T) {
	r, store := newRouter()
	send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Small"})
	send(r, http.MethodPost, "/api/v1/brands", map[string]interface{}{"name": "Big"})
	small, big := int64(1), int64(2)
	store.Products.Insert(&model.Product{Title: "A", SKU: "A", Slug: "a", CategoryID: 1, BrandID: &big, IsActive: true})
	store.Products.Insert(&model.Product{Title: "B", SKU: "B", Slug: "b", CategoryID: 1, BrandID: &big, IsActive: true})
	store.Products.Insert(&model.Product{Title: "C", SKU: "C", Slug: "c", CategoryID: 1, BrandID: &small, IsActive: true})

	w := send(r, http.MethodGet, "/api/v1/brands/popular?limit=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var brands []model.Brand
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &brands))
	require.Len(t, brands, 2)
	assert.Equal(t, "Big", brands[0].Name)
	assert.Equal(t, "Small", brands[1].Name)
}
