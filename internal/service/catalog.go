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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListActiveProducts(ctx)
}

func (s *CatalogService) ListAll(ctx context.Context, callerIsAdmin bool) ([]models.Product, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return s.Repo.ListAllProducts(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetActiveProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	return s.Repo.SearchProducts(ctx, keyword, true)
}

// SearchAll searches across archived products too. Gated on role before the
// query runs; the visible contract is the same as gating the response.
func (s *CatalogService) SearchAll(ctx context.Context, keyword string, callerIsAdmin bool) ([]models.Product, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return s.Repo.SearchProducts(ctx, keyword, false)
}

func (s *CatalogService) Create(ctx context.Context, callerIsAdmin bool, req transport.CreateProductRequest) (*models.Product, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogService) Update(ctx context.Context, callerIsAdmin bool, id uint, req transport.PatchProductRequest) (*models.Product, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ToggleAvailability(ctx context.Context, callerIsAdmin bool, id uint) (*models.Product, error) {
	if !callerIsAdmin {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	product, err := s.Repo.ToggleAvailability(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}
