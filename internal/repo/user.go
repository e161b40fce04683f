package repo

import (
	"context"
	"errors"

	"github.com/avolkov/shop-backend/internal/hash"
	"github.com/avolkov/shop-backend/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// VerifyCredentials resolves the user by email and checks the password hash.
// Unknown email and wrong password are reported identically.
func (r *GormRepo) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *GormRepo) UpdatePassword(ctx context.Context, userID uint, passwordHash string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}

// ToggleAdmin flips the target's is_admin flag in place.
func (r *GormRepo) ToggleAdmin(ctx context.Context, targetID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", targetID).
		Update("is_admin", gorm.Expr("NOT is_admin"))
	return res.RowsAffected, res.Error
}
