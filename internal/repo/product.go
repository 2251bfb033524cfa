package repo

import (
	"context"

	"github.com/minhtd/product-catalog/internal/models"
	"github.com/minhtd/product-catalog/internal/transport"
)

// sortColumns whitelists the sortable fields; anything else falls back to
// the creation timestamp.
var sortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"createdAt": "created_at",
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, search, sortBy, sortOrder string, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	order := "ASC"
	if sortOrder == "desc" {
		order = "DESC"
	}

	var items []models.Product
	if err := q.Order(column + " " + order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.ImageURL != nil {
		prod.ImageURL = *req.ImageURL
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

// DeleteProduct removes the row if present. Deleting an absent id is not an
// error.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}
