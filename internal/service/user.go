package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/avolkov/shop-backend/internal/hash"
	"github.com/avolkov/shop-backend/internal/logging"
	"github.com/avolkov/shop-backend/internal/models"
	"github.com/avolkov/shop-backend/internal/repo"
	"github.com/avolkov/shop-backend/internal/transport"
)

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *UserService) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) Signup(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "user.signup")

	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password required", ErrValidation)
	}

	exists, err := s.CheckEmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return err
	}

	user := models.User{Email: email, PasswordHash: pwHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		// The unique index catches the race between the check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return err
	}
	return nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Repo.VerifyCredentials(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.createAccessToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) createAccessToken(user *models.User) (string, error) {
	exp := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"is_admin": user.IsAdmin,
		"exp":      exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// GetProfile joins the user's identity fields with their order history and
// open cart, if any.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*transport.ProfileView, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}

	orders, err := s.Repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &transport.ProfileView{
		ID:        user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Orders:    orders,
	}

	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return profile, nil
	}
	items, err := s.Repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		profile.Cart = &transport.CartView{Cart: *cart, Items: items}
	}
	return profile, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password required", ErrValidation)
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}

	affected, err := s.Repo.UpdatePassword(ctx, userID, pwHash)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return nil
}

// SetAdminPrivileges toggles the target's admin flag. Callers may never
// toggle themselves, admin or not.
func (s *UserService) SetAdminPrivileges(ctx context.Context, callerID uint, callerIsAdmin bool, targetID uint) error {
	if !callerIsAdmin {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if callerID == targetID {
		return fmt.Errorf("%w: cannot change own admin role", ErrForbidden)
	}

	affected, err := s.Repo.ToggleAdmin(ctx, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %d", ErrNotFound, targetID)
	}
	return nil
}
