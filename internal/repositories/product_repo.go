package repositories

import (
	"inventario/internal/models"
)

// ProductFilter holds the listing query parameters. StockMin and StockMax
// are inclusive bounds and independently optional.
type ProductFilter struct {
	Search   string
	Category string
	StockMin *int
	StockMax *int
	Page     int
	Limit    int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products matching the filter, with the owner
	// preloaded, plus the total match count computed before pagination.
	List(filter ProductFilter) ([]models.Product, int64, error)
	GetAllWithOwner() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySerial(serial string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
