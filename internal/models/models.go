package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsAdmin      bool      `gorm:"default:false"            json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `gorm:"not null"                  json:"description"`
	Price       float64   `gorm:"not null"                  json:"price"`
	IsActive    bool      `gorm:"default:true"              json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cart is a user's open cart. At most one row per user, deleted as a whole
// at checkout.
type Cart struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	TotalAmount float64   `gorm:"not null"                 json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Cart) TableName() string {
	return "user_carts"
}

// CartItem snapshots the product's name and price at the time the item was
// first added. The snapshot is never re-synced with the catalog.
type CartItem struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"              json:"id"`
	CartID          uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID       uint      `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	ProductName     string    `gorm:"not null"                              json:"product_name"`
	ProductQuantity uint      `gorm:"not null;check:product_quantity > 0"   json:"product_quantity"`
	ProductPrice    float64   `gorm:"not null"                              json:"product_price"`
	ProductSubtotal float64   `gorm:"not null"                              json:"product_subtotal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Order struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"index;not null"           json:"user_id"`
	TotalAmount float64   `gorm:"not null"                 json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         uint      `gorm:"index;not null"           json:"order_id"`
	ProductID       uint      `gorm:"not null"                 json:"product_id"`
	ProductName     string    `gorm:"not null"                 json:"product_name"`
	ProductQuantity uint      `gorm:"not null"                 json:"product_quantity"`
	ProductPrice    float64   `gorm:"not null"                 json:"product_price"`
	ProductSubtotal float64   `gorm:"not null"                 json:"product_subtotal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
