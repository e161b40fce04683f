package repo

import (
	"context"

	"github.com/avolkov/shop-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) GetCartByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormRepo) GetCartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart upserts the user's cart row and the product's item row as one
// transaction. Both upserts are single atomic statements, so two concurrent
// adds by the same user cannot lose an update: the unique indexes on
// user_carts(user_id) and cart_items(cart_id, product_id) route the loser
// of the insert race onto the increment branch.
func (r *GormRepo) AddToCart(ctx context.Context, userID uint, product *models.Product, quantity uint) (*models.CartItem, error) {
	delta := float64(quantity) * product.Price
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := models.Cart{UserID: userID, TotalAmount: delta}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total_amount": gorm.Expr("user_carts.total_amount + excluded.total_amount"),
			}),
		}).Create(&cart).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		item = models.CartItem{
			CartID:          cart.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductQuantity: quantity,
			ProductPrice:    product.Price,
			ProductSubtotal: delta,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"product_quantity": gorm.Expr("cart_items.product_quantity + excluded.product_quantity"),
				"product_subtotal": gorm.Expr("cart_items.product_subtotal + excluded.product_subtotal"),
			}),
		}).Create(&item).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// IncrementItem adds one unit at the price frozen in the item snapshot.
// Quantity, subtotal and the cart total all move by atomic column updates.
func (r *GormRepo) IncrementItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Updates(map[string]interface{}{
				"product_quantity": gorm.Expr("product_quantity + 1"),
				"product_subtotal": gorm.Expr("product_subtotal + product_price"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", gorm.Expr("total_amount + ?", item.ProductPrice)).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementItem removes one unit at the frozen snapshot price. The guarding
// predicate product_quantity > 1 makes decrementing at quantity 1 a no-op
// reported as not found; quantity can never reach zero this way.
func (r *GormRepo) DecrementItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND product_quantity > 1", cart.ID, productID).
			Updates(map[string]interface{}{
				"product_quantity": gorm.Expr("product_quantity - 1"),
				"product_subtotal": gorm.Expr("product_subtotal - product_price"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", gorm.Expr("total_amount - ?", item.ProductPrice)).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the item row and subtracts its subtotal from the cart
// total. The delete predicate pins the subtotal read earlier, so a racing
// mutation rolls the whole transaction back instead of skewing the total.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND product_subtotal = ?", item.ID, item.ProductSubtotal).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartConflict
		}

		return tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", gorm.Expr("total_amount - ?", item.ProductSubtotal)).Error
	})
}
