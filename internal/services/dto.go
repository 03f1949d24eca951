package services

import (
	"time"

	"inventario/internal/models"
)

// CreateProductInput is the validated request body for product creation.
// Description and Category are optional explicit overrides; when absent they
// are filled in by the enrichment adapter. ImageData/ImageMime carry an
// optional multipart image payload and never come from the JSON body.
type CreateProductInput struct {
	Name         string  `json:"name" form:"name" validate:"required,min=3,max=100"`
	Price        float64 `json:"price" form:"price" validate:"required,gt=0"`
	Stock        *int    `json:"stock" form:"stock" validate:"required,gte=0"`
	SerialNumber string  `json:"serialNumber" form:"serialNumber" validate:"required,alphanum,min=3,max=30"`
	Description  string  `json:"description" form:"description" validate:"omitempty,max=500"`
	Category     string  `json:"category" form:"category" validate:"omitempty,max=100"`
	ImageData    []byte  `json:"-" form:"-"`
	ImageMime    string  `json:"-" form:"-"`
}

// UpdateProductInput is a partial patch; nil fields are left untouched.
type UpdateProductInput struct {
	Name          *string  `json:"name" validate:"omitempty,min=3,max=100"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	SerialNumber  *string  `json:"serialNumber" validate:"omitempty,alphanum,min=3,max=30"`
	DescriptionAI *string  `json:"descriptionAI" validate:"omitempty,max=500"`
	CategoryAI    *string  `json:"categoryAI" validate:"omitempty,max=100"`
	ImageURL      *string  `json:"imageUrl" validate:"omitempty,url"`
}

// ListProductsInput holds the listing query. Page and Limit below 1 are
// clamped to their defaults rather than rejected.
type ListProductsInput struct {
	Page     int
	Limit    int
	Search   string
	Category string
	StockMin *int
	StockMax *int
}

// OwnerRef is the read-only owner projection embedded in product responses.
type OwnerRef struct {
	Name     string `json:"name"`
	UserName string `json:"userName"`
}

// ProductResponse is the client-facing view of a product.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	SerialNumber  string    `json:"serialNumber"`
	DescriptionAI string    `json:"descriptionAI"`
	CategoryAI    string    `json:"categoryAI"`
	ImageURL      string    `json:"imageUrl"`
	Owner         *OwnerRef `json:"owner,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PageMeta is the pagination metadata returned alongside a listing page.
type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Meta PageMeta          `json:"meta"`
	Data []ProductResponse `json:"data"`
}

func toProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Stock:         p.Stock,
		SerialNumber:  p.SerialNumber,
		DescriptionAI: p.DescriptionAI,
		CategoryAI:    p.CategoryAI,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.Owner = &OwnerRef{Name: p.Owner.Name, UserName: p.Owner.UserName}
	}
	return resp
}
