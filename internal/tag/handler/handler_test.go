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

	"github.com/fekuna/omnipos-catalog-service/internal/catalogtest"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/tag/usecase"
)

func newRouter() (*gin.Engine, *catalogtest.Store) {
	gin.SetMode(gin.TestMode)
	store := catalogtest.NewStore()
	uc := usecase.NewTagUseCase(&catalogtest.TagRepository{Store: store}, logger.NewNop())

	r := gin.New()
	NewTagHandler(uc, logger.NewNop()).Register(r.Group("/api/v1"))
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

func TestCreateAndGetTagBySlug(t *testing.T) {
	r, _ := newRouter()

	w := send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "Summer Sale"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = send(r, http.MethodGet, "/api/v1/tags/slug/summer-sale", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tag model.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))
	assert.Equal(t, "Summer Sale", tag.Name)

	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/tags/slug/winter", nil).Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/api/v1/tags/9", nil).Code)
}

func TestCreateTagValidation(t *testing.T) {
	r, _ := newRouter()
	send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "sale"})

	w := send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "sale"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"tag with name \"sale\" already exists"}`, w.Body.String())

	w = send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"name is required"}`, w.Body.String())
}

// Tags are shared by reference, so deleting one only unlinks it from products.
func TestDeleteTagUnlinksProducts(t *testing.T) {
	r, store := newRouter()
	send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "sale"})
	store.Products.Insert(&model.Product{Title: "Book", SKU: "B-1", Slug: "book", CategoryID: 1, IsActive: true})
	store.ProductTags[1] = []int64{1}

	w := send(r, http.MethodDelete, "/api/v1/tags/1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.ProductTags[1])
	assert.NotNil(t, store.Products.Get(1))
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/api/v1/tags/1", nil).Code)
}

func TestPopularTags(t *testing.T) {
	r, store := newRouter()
	send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "rare"})
	send(r, http.MethodPost, "/api/v1/tags", map[string]interface{}{"name": "common"})
	store.Products.Insert(&model.Product{Title: "A", SKU: "A", Slug: "a", CategoryID: 1, IsActive: true})
	store.Products.Insert(&model.Product{Title: "B", SKU: "B", Slug: "b", CategoryID: 1, IsActive: true})
	store.ProductTags[1] = []int64{1, 2}
	store.ProductTags[2] = []int64{2}

	w := send(r, http.MethodGet, "/api/v1/tags/popular", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var tags []model.Tag
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "common", tags[0].Name)
}
