package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/transport"
)

func TestSearchProductsCaseInsensitive(t *testing.T) {
	db := initTestDB(t)
	r := NewGormRepo(db)
	ctx := context.Background()

	seedProduct(t, db, "Mechanical Keyboard", 100)
	seedProduct(t, db, "mouse", 30)
	hidden := seedProduct(t, db, "Keyboard Tray", 50)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	found, err := r.SearchProducts(ctx, "KEYBOARD", true)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mechanical Keyboard", found[0].Name)

	found, err = r.SearchProducts(ctx, "keyboard", false)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSearchProductsMatchesDescription(t *testing.T) {
	db := initTestDB(t)
	r := NewGormRepo(db)
	ctx := context.Background()

	product := models.Product{Name: "widget", Description: "ships with ergonomic wrist rest", Price: 10, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	found, err := r.SearchProducts(ctx, "ergonomic", true)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "widget", found[0].Name)
}

func TestGetActiveProductHidesArchived(t *testing.T) {
	db := initTestDB(t)
	r := NewGormRepo(db)
	ctx := context.Background()

	product := seedProduct(t, db, "keyboard", 100)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	_, err := r.GetActiveProduct(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := r.ListAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	active, err := r.ListActiveProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestToggleAvailability(t *testing.T) {
	db := initTestDB(t)
	r := NewGormRepo(db)
	ctx := context.Background()

	product := seedProduct(t, db, "keyboard", 100)

	got, err := r.ToggleAvailability(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	got, err = r.ToggleAvailability(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = r.ToggleAvailability(ctx, product.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPatchProduct(t *testing.T) {
	db := initTestDB(t)
	r := NewGormRepo(db)
	ctx := context.Background()

	product := seedProduct(t, db, "keyboard", 100)

	newPrice := 120.0
	got, err := r.PatchProduct(ctx, transport.PatchProductRequest{Price: &newPrice}, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard", got.Name)
	assert.Equal(t, 120.0, got.Price)

	newName := "keyboard pro"
	got, err = r.PatchProduct(ctx, transport.PatchProductRequest{Name: &newName}, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard pro", got.Name)
	assert.Equal(t, 120.0, got.Price)
}
