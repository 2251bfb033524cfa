package service

import (
	"context"

	"github.com/minhtd/product-catalog/internal/models"
	"github.com/minhtd/product-catalog/internal/repo"
	"github.com/minhtd/product-catalog/internal/transport"
	"github.com/minhtd/product-catalog/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, q transport.ProductQuery) (*transport.ProductPage, error) {
	offset, limit := util.Calculate(q.Page, q.PageSize)

	total, items, err := s.Repo.ListProducts(ctx, q.Search, q.SortBy, q.SortOrder, offset, limit)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.Product{}
	}

	return &transport.ProductPage{Items: items, Total: total}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	return &prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	return s.Repo.UpdateProduct(ctx, id, req)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}
