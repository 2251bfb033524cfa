package transport

import "github.com/minhtd/product-catalog/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateProductRequest carries only the fields present in the body; nil
// pointers leave the stored value untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl"`
}

type ProductQuery struct {
	Search    string `query:"search"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=name price createdAt"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `query:"-"`
	PageSize  int    `query:"-"`
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
