package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/repo"
	"github.com/avolkov/shop-backend/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// AddToCart stages quantity units of the product in the user's cart,
// creating the cart on first use. The product's name and price are frozen
// into the item at this point. Admins are not customers and may not hold
// a cart.
func (s *CartService) AddToCart(ctx context.Context, userID uint, isAdmin bool, productID, quantity uint) (*models.CartItem, error) {
	if isAdmin {
		return nil, fmt.Errorf("%w: admins cannot hold a cart", ErrForbidden)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
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

	return s.Repo.AddToCart(ctx, userID, product, quantity)
}

// ViewCart returns the cart with its items. A missing cart row and a cart
// whose last item was removed are both reported as empty.
func (s *CartService) ViewCart(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no cart", ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no cart", ErrNotFound)
	}

	return &transport.CartView{Cart: *cart, Items: items}, nil
}

func (s *CartService) IncrementItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}

	item, err := s.Repo.IncrementItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) DecrementItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}

	item, err := s.Repo.DecrementItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Covers the missing item and the quantity-already-1 guard;
			// removing the last unit is a distinct operation.
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if productID == 0 {
		return fmt.Errorf("%w: product_id required", ErrValidation)
	}

	err := s.Repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item", ErrNotFound)
		}
		if errors.Is(err, repo.ErrCartConflict) {
			return fmt.Errorf("%w: cart changed, retry", ErrConflict)
		}
		return err
	}
	return nil
}
