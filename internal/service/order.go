package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avolkov/shop-backend/internal/repo"
	"github.com/avolkov/shop-backend/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// BuyNow purchases a single product directly, bypassing the cart.
func (s *OrderService) BuyNow(ctx context.Context, userID uint, isAdmin bool, productID, quantity uint) (*transport.OrderView, error) {
	if isAdmin {
		return nil, fmt.Errorf("%w: admins cannot purchase", ErrForbidden)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: productId required", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be more than zero", ErrValidation)
	}

	product, err := s.Repo.GetActiveProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not available", ErrInvalidState)
		}
		return nil, err
	}

	return s.Repo.CreateBuyNowOrder(ctx, userID, product, quantity)
}

// Checkout converts the user's cart into an immutable order and deletes the
// cart with its items.
func (s *OrderService) Checkout(ctx context.Context, userID uint, isAdmin bool) (*transport.OrderView, error) {
	if isAdmin {
		return nil, fmt.Errorf("%w: admins cannot purchase", ErrForbidden)
	}

	view, err := s.Repo.CheckoutCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart is empty", ErrInvalidState)
		}
		if errors.Is(err, repo.ErrCartConflict) {
			return nil, fmt.Errorf("%w: cart changed during checkout", ErrConflict)
		}
		return nil, err
	}
	return view, nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID uint) ([]transport.OrderView, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

func (s *OrderService) AllOrders(ctx context.Context, callerIsAdmin bool) ([]transport.AdminOrderView, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return s.Repo.ListAllOrders(ctx)
}
