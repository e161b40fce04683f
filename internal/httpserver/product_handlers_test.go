package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/transport"
)

func TestListActiveEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assertFalseBody(t, rec)
}

func TestSellRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "pleb@example.com", "secret123")

	rec := env.do(t, http.MethodPost, "/api/products/sell", token, transport.CreateProductRequest{Name: "keyboard", Price: 100})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assertFalseBody(t, rec)
}

func TestSellAndList(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")

	rec := env.do(t, http.MethodPost, "/api/products/sell", adminToken, transport.CreateProductRequest{
		Name: "keyboard", Description: "clacky", Price: 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assertTrueBody(t, rec)

	rec = env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "keyboard", products[0].Name)
	assert.True(t, products[0].IsActive)
}

func TestSellValidation(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")

	rec := env.do(t, http.MethodPost, "/api/products/sell", adminToken, transport.CreateProductRequest{Price: 100})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products/sell", adminToken, transport.CreateProductRequest{Name: "keyboard"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArchiveHidesProduct(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/products/%d/changeavailability", product.ID), adminToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assertTrueBody(t, rec)

	// gone from the public surface
	rec = env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assertFalseBody(t, rec)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// still visible on the admin inventory view
	rec = env.do(t, http.MethodGet, "/api/products/all", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.False(t, products[0].IsActive)
}

func TestListAllRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "pleb@example.com", "secret123")

	rec := env.do(t, http.MethodGet, "/api/products/all", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assertFalseBody(t, rec)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, float64(100), got.Price)

	rec = env.do(t, http.MethodGet, "/api/products/9999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assertFalseBody(t, rec)
}

func TestSearchPublicScope(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Mechanical Keyboard", 100)
	archived := env.seedProduct(t, "Keyboard Tray", 50)
	require.NoError(t, env.db.Model(archived).Update("is_active", false).Error)

	rec := env.do(t, http.MethodGet, "/api/products/search?keyword=keyboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Mechanical Keyboard", products[0].Name)
}

func TestSearchAllAdminScope(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")
	userToken := env.signup(t, "pleb@example.com", "secret123")

	env.seedProduct(t, "Mechanical Keyboard", 100)
	archived := env.seedProduct(t, "Keyboard Tray", 50)
	require.NoError(t, env.db.Model(archived).Update("is_active", false).Error)

	rec := env.do(t, http.MethodGet, "/api/products/search/all?keyword=keyboard", userToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assertFalseBody(t, rec)

	rec = env.do(t, http.MethodGet, "/api/products/search/all?keyword=keyboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")
	userToken := env.signup(t, "pleb@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	newPrice := 150.0
	rec := env.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), userToken, transport.PatchProductRequest{Price: &newPrice})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), adminToken, transport.PatchProductRequest{Price: &newPrice})
	require.Equal(t, http.StatusCreated, rec.Code)
	assertTrueBody(t, rec)

	var got models.Product
	require.NoError(t, env.db.First(&got, product.ID).Error)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, "keyboard", got.Name)

	badPrice := -5.0
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), adminToken, transport.PatchProductRequest{Price: &badPrice})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
