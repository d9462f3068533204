package dto

import (
	"strings"
	"time"

	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
)

// CreateProductRequest is the payload for new products.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Validate reports invalid fields in declaration order.
func (r CreateProductRequest) Validate() []problem.FieldError {
	var fields []problem.FieldError
	if strings.TrimSpace(r.Name) == "" {
		fields = append(fields, problem.FieldError{Field: "name", Message: "must not be blank"})
	}
	if strings.TrimSpace(r.Description) == "" {
		fields = append(fields, problem.FieldError{Field: "description", Message: "must not be blank"})
	}
	if r.Price <= 0 {
		fields = append(fields, problem.FieldError{Field: "price", Message: "must be greater than zero"})
	}
	return fields
}

// ProductResponse is the product representation returned to clients.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromProduct maps a domain product.
func FromProduct(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
	}
}

// FromProducts maps a product slice.
func FromProducts(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}
