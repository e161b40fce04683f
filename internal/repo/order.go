package repo

import (
	"context"

	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/transport"
	"gorm.io/gorm"
)

// CreateBuyNowOrder writes the order and its single item as one transaction.
func (r *GormRepo) CreateBuyNowOrder(ctx context.Context, userID uint, product *models.Product, quantity uint) (*transport.OrderView, error) {
	subtotal := float64(quantity) * product.Price
	var view transport.OrderView

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{UserID: userID, TotalAmount: subtotal}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		item := models.OrderItem{
			OrderID:         order.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			ProductQuantity: quantity,
			ProductPrice:    product.Price,
			ProductSubtotal: subtotal,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		view = transport.OrderView{Order: order, Items: []models.OrderItem{item}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// CheckoutCart drains the user's cart into a new immutable order. Creating
// the order, copying the item snapshots, deleting the cart items and
// deleting the cart row commit or roll back together. The cart delete pins
// the total read at the start, so a concurrent cart mutation aborts the
// checkout instead of double-spending the cart.
func (r *GormRepo) CheckoutCart(ctx context.Context, userID uint) (*transport.OrderView, error) {
	var view transport.OrderView

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return gorm.ErrRecordNotFound
		}

		order := models.Order{UserID: userID, TotalAmount: cart.TotalAmount}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:         order.ID,
				ProductID:       it.ProductID,
				ProductName:     it.ProductName,
				ProductQuantity: it.ProductQuantity,
				ProductPrice:    it.ProductPrice,
				ProductSubtotal: it.ProductSubtotal,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND total_amount = ?", cart.ID, cart.TotalAmount).
			Delete(&models.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartConflict
		}

		view = transport.OrderView{Order: order, Items: orderItems}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]transport.OrderView, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return r.attachOrderItems(ctx, orders)
}

// ListAllOrders returns every order with its items, annotated with the
// purchasing user's email.
func (r *GormRepo) ListAllOrders(ctx context.Context) ([]transport.AdminOrderView, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}

	views, err := r.attachOrderItems(ctx, orders)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
	}
	emails := map[uint]string{}
	if len(userIDs) > 0 {
		var users []models.User
		if err := r.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			emails[u.ID] = u.Email
		}
	}

	admin := make([]transport.AdminOrderView, 0, len(views))
	for _, v := range views {
		admin = append(admin, transport.AdminOrderView{
			OrderView: v,
			Email:     emails[v.Order.UserID],
		})
	}
	return admin, nil
}

func (r *GormRepo) attachOrderItems(ctx context.Context, orders []models.Order) ([]transport.OrderView, error) {
	views := make([]transport.OrderView, 0, len(orders))
	if len(orders) == 0 {
		return views, nil
	}

	orderIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	byOrder := map[uint][]models.OrderItem{}
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for _, o := range orders {
		views = append(views, transport.OrderView{Order: o, Items: byOrder[o.ID]})
	}
	return views, nil
}
