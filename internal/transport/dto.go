package transport

import (
	"time"

	"github.com/avolkov/shop-backend/internal/models"
)

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

type SearchRequest struct {
	Keyword string `json:"keyword" query:"keyword"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type CartItemRequest struct {
	ProductID uint `json:"product_id"`
}

type BuyNowRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type CartView struct {
	Cart  models.Cart       `json:"cart"`
	Items []models.CartItem `json:"items"`
}

type OrderView struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

type AdminOrderView struct {
	OrderView
	Email string `json:"email"`
}

type ProfileView struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	IsAdmin   bool        `json:"is_admin"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Orders    []OrderView `json:"orders"`
	Cart      *CartView   `json:"cart"`
}
