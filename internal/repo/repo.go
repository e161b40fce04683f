package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCartConflict is returned when a cart mutation detects that a concurrent
// request changed the cart between read and write. The enclosing transaction
// is rolled back, so the store keeps its pre-call state.
var ErrCartConflict = errors.New("cart modified concurrently")

var ErrInvalidCredentials = errors.New("invalid credentials")

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
