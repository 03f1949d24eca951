package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"inventario/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. It mirrors the GORM implementation's filter, ordering
// and uniqueness semantics so service-level tests can run without a database.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

func matchesFilter(p models.Product, filter ProductFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.CategoryAI), needle) &&
			!strings.Contains(strings.ToLower(p.DescriptionAI), needle) {
			return false
		}
	}
	if filter.Category != "" && p.CategoryAI != filter.Category {
		return false
	}
	if filter.StockMin != nil && p.Stock < *filter.StockMin {
		return false
	}
	if filter.StockMax != nil && p.Stock > *filter.StockMax {
		return false
	}
	return true
}

// List returns one page of matching products, newest first with the id as a
// stable tie-break, plus the total match count.
func (r *MemoryProductRepository) List(filter ProductFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetAllWithOwner returns all products, newest first.
func (r *MemoryProductRepository) GetAllWithOwner() ([]models.Product, error) {
	r.mu.RLock()
	limit := len(r.products) + 1
	r.mu.RUnlock()

	all, _, err := r.List(ProductFilter{Page: 1, Limit: limit})
	return all, err
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, gorm.ErrRecordNotFound)
	}
	return &product, nil
}

// GetBySerial returns a product by its serial number.
func (r *MemoryProductRepository) GetBySerial(serial string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SerialNumber == serial {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product with serial %s: %w", serial, gorm.ErrRecordNotFound)
}

// Create adds a new product, enforcing serial-number uniqueness the way the
// database unique index does.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.SerialNumber == product.SerialNumber {
			return fmt.Errorf("failed to create product: %w", gorm.ErrDuplicatedKey)
		}
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MemoryProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s: %w", product.ID, gorm.ErrRecordNotFound)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s: %w", id, gorm.ErrRecordNotFound)
	}
	delete(r.products, id)
	return nil
}
