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

func TestGetCartEmpty(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")

	rec := env.do(t, http.MethodGet, "/api/carts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assertFalseBody(t, rec)
}

func TestCartRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/carts", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartTotalLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	// add two units: total 200
	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, uint(2), item.ProductQuantity)
	assert.Equal(t, float64(200), item.ProductSubtotal)

	view := env.cartView(t, token)
	assert.Equal(t, float64(200), view.Cart.TotalAmount)

	// increment: total 300
	rec = env.do(t, http.MethodPatch, "/api/carts/increment", token, transport.CartItemRequest{ProductID: product.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	view = env.cartView(t, token)
	assert.Equal(t, float64(300), view.Cart.TotalAmount)

	// decrement: back to 200
	rec = env.do(t, http.MethodPatch, "/api/carts/decrement", token, transport.CartItemRequest{ProductID: product.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	view = env.cartView(t, token)
	assert.Equal(t, float64(200), view.Cart.TotalAmount)

	// remove: cart reads as no cart
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/carts/%d", product.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assertTrueBody(t, rec)

	rec = env.do(t, http.MethodGet, "/api/carts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assertFalseBody(t, rec)
}

func TestAddToCartAdminForbidden(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.signupAdmin(t, "admin@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPost, "/api/carts", adminToken, transport.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assertFalseBody(t, rec)
}

func TestAddToCartArchivedProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)
	require.NoError(t, env.db.Model(product).Update("is_active", false).Error)

	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assertFalseBody(t, rec)
}

func TestAddToCartValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{Quantity: 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecrementAtQuantityOne(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/carts/decrement", token, transport.CartItemRequest{ProductID: product.ID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assertFalseBody(t, rec)

	view := env.cartView(t, token)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(1), view.Items[0].ProductQuantity)
	assert.Equal(t, float64(100), view.Cart.TotalAmount)
}

func TestIncrementMissingProduct(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/carts/increment", token, transport.CartItemRequest{ProductID: product.ID + 100})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assertFalseBody(t, rec)
}

func TestRemoveMissingItem(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "buyer@example.com", "secret123")
	product := env.seedProduct(t, "keyboard", 100)

	rec := env.do(t, http.MethodPost, "/api/carts", token, transport.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/carts/%d", product.ID+100), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assertFalseBody(t, rec)
}

func (env *testEnv) cartView(t *testing.T, token string) *transport.CartView {
	t.Helper()

	rec := env.do(t, http.MethodGet, "/api/carts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view transport.CartView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return &view
}
