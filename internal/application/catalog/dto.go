package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkthread/backend/internal/domain/catalog"
)

// CreateProductRequest is the request to add a product to the catalog
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	ImageRef    string          `json:"image_ref"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// UpdatePriceRequest changes the catalog price of a product
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// RestockRequest sets the stock count for one size of a product
type RestockRequest struct {
	Size  string `json:"size" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

// ProductListFilter holds list filtering options
type ProductListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
}

// SizeStockResponse is the per-size stock view of a product
type SizeStockResponse struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID          uuid.UUID           `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ImageRef    string              `json:"image_ref"`
	Price       decimal.Decimal     `json:"price"`
	IsActive    bool                `json:"is_active"`
	Sizes       []SizeStockResponse `json:"sizes"`
	TotalStock  int                 `json:"total_stock"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	sizes := make([]SizeStockResponse, len(p.Sizes))
	for i, s := range p.Sizes {
		sizes[i] = SizeStockResponse{Size: s.Size.String(), Stock: s.Stock}
	}
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		ImageRef:    p.ImageRef,
		Price:       p.Price,
		IsActive:    p.IsActive,
		Sizes:       sizes,
		TotalStock:  p.TotalStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
