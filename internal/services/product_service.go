package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"inventario/internal/models"
	"inventario/internal/repositories"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductService orchestrates the product pipeline: listing with
// filter/pagination, the multi-step creation flow (owner resolution, image
// upload, AI enrichment, persistence), and get/update/delete with ownership
// checks.
type ProductService struct {
	productRepo   repositories.ProductRepository
	userRepo      repositories.UserRepository
	uploader      ImageUploader
	enricher      ProductEnricher
	queue         EnrichmentQueue
	enrichTimeout time.Duration
}

// NewProductService creates a new ProductService. The uploader, enricher and
// queue may be nil; the corresponding pipeline steps are then skipped.
func NewProductService(
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	uploader ImageUploader,
	enricher ProductEnricher,
	queue EnrichmentQueue,
	enrichTimeout time.Duration,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		userRepo:      userRepo,
		uploader:      uploader,
		enricher:      enricher,
		queue:         queue,
		enrichTimeout: enrichTimeout,
	}
}

// ListProducts returns one page of the catalog. Page and limit values below 1
// are clamped to their defaults. An out-of-range page yields an empty data
// array with correct metadata.
func (s *ProductService) ListProducts(input ListProductsInput) (*ProductPage, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	products, total, err := s.productRepo.List(repositories.ProductFilter{
		Search:   input.Search,
		Category: input.Category,
		StockMin: input.StockMin,
		StockMax: input.StockMax,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	data := make([]ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, toProductResponse(&products[i]))
	}
	return &ProductPage{
		Meta: PageMeta{
			TotalItems:   total,
			TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
			CurrentPage:  page,
			ItemsPerPage: limit,
		},
		Data: data,
	}, nil
}

// CreateProduct runs the creation pipeline for the authenticated user.
// Owner resolution, validation (done by the caller), the serial uniqueness
// check and the image upload are hard gates. Enrichment is not: on failure or
// timeout the product persists without AI fields and a retry event is
// published.
func (s *ProductService) CreateProduct(ctx context.Context, userID string, input CreateProductInput) (*ProductResponse, error) {
	owner, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	if _, err := s.productRepo.GetBySerial(input.SerialNumber); err == nil {
		return nil, ErrDuplicateSerial
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:          input.Name,
		Price:         input.Price,
		Stock:         *input.Stock,
		SerialNumber:  input.SerialNumber,
		DescriptionAI: input.Description,
		CategoryAI:    input.Category,
		OwnerID:       owner.ID,
	}

	if len(input.ImageData) > 0 {
		url, err := s.uploader.Upload(ctx, input.ImageData, input.ImageMime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		product.ImageURL = url
	}

	// Explicit description/category override enrichment; only missing
	// fields are filled in.
	needsEnrichment := product.DescriptionAI == "" || product.CategoryAI == ""
	enrichFailed := false
	if needsEnrichment && s.enricher != nil {
		enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
		enrichment, err := s.enricher.Enrich(enrichCtx, product.Name)
		cancel()
		if err != nil {
			log.Printf("Enrichment failed for product %q, scheduling retry: %v", product.Name, err)
			enrichFailed = true
		} else {
			if product.DescriptionAI == "" {
				product.DescriptionAI = enrichment.Description
			}
			if product.CategoryAI == "" {
				product.CategoryAI = enrichment.Category
			}
		}
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSerial
		}
		return nil, err
	}

	if enrichFailed && s.queue != nil {
		if err := s.queue.PublishEnrichmentRetry(product.ID, product.Name); err != nil {
			log.Printf("Failed to publish enrichment retry for product %s: %v", product.ID, err)
		}
	}

	product.Owner = owner
	resp := toProductResponse(product)
	return &resp, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(id string) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// UpdateProduct applies a partial patch and returns the updated product.
func (s *ProductService) UpdateProduct(id string, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.SerialNumber != nil && *input.SerialNumber != product.SerialNumber {
		if existing, err := s.productRepo.GetBySerial(*input.SerialNumber); err == nil && existing.ID != id {
			return nil, ErrDuplicateSerial
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		product.SerialNumber = *input.SerialNumber
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.DescriptionAI != nil {
		product.DescriptionAI = *input.DescriptionAI
	}
	if input.CategoryAI != nil {
		product.CategoryAI = *input.CategoryAI
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSerial
		}
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// DeleteProduct removes a product after checking that the requester is its
// owner.
func (s *ProductService) DeleteProduct(id, requesterID string) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.OwnerID != requesterID {
		return ErrNotOwner
	}
	return s.productRepo.Delete(id)
}

// RetryEnrichment re-runs enrichment for a product that was persisted without
// AI fields. Called by the queue consumer.
func (s *ProductService) RetryEnrichment(ctx context.Context, productID string) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.DescriptionAI != "" && product.CategoryAI != "" {
		return nil // Already enriched
	}

	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichTimeout)
	defer cancel()
	enrichment, err := s.enricher.Enrich(enrichCtx, product.Name)
	if err != nil {
		return fmt.Errorf("enrichment retry for product %s: %w", productID, err)
	}

	if product.DescriptionAI == "" {
		product.DescriptionAI = enrichment.Description
	}
	if product.CategoryAI == "" {
		product.CategoryAI = enrichment.Category
	}
	return s.productRepo.Update(product)
}
