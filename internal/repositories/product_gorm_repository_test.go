package repositories_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"inventario/internal/models"
	"inventario/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory SQLite database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func intPtr(n int) *int { return &n }

func seedProducts(t *testing.T, repo *repositories.GORMProductRepository) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []models.Product{
		{Name: "Lavadora", Price: 99.99, Stock: 2, SerialNumber: "SER001",
			DescriptionAI: "Electrodomestico de carga frontal", CategoryAI: "Electrodomesticos"},
		{Name: "Teclado", Price: 75, Stock: 5, SerialNumber: "SER002",
			DescriptionAI: "Teclado mecanico retroiluminado", CategoryAI: "Informatica"},
		{Name: "Monitor", Price: 200, Stock: 8, SerialNumber: "SER003",
			DescriptionAI: "Monitor de 27 pulgadas", CategoryAI: "Informatica"},
	}
	for i := range items {
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		assert.NoError(t, repo.Create(&items[i]))
	}
}

func TestGORMProductRepository_ListSearch(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedProducts(t, repo)

	// Case-insensitive match against the name
	products, total, err := repo.List(repositories.ProductFilter{Search: "LAVADORA", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Lavadora", products[0].Name)

	// OR semantics: the term appears only in descriptions
	_, total, err = repo.List(repositories.ProductFilter{Search: "27 pulgadas", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// And against the category column
	_, total, err = repo.List(repositories.ProductFilter{Search: "informatica", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(repositories.ProductFilter{Search: "inexistente", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestGORMProductRepository_ListCategoryAndStockBounds(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedProducts(t, repo)

	// Category is an exact match, not a substring
	_, total, err := repo.List(repositories.ProductFilter{Category: "Informatica", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(repositories.ProductFilter{Category: "Informat", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// Inclusive stock bounds, independently optional
	products, total, err := repo.List(repositories.ProductFilter{StockMin: intPtr(5), Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Stock, 5)
	}

	products, total, err = repo.List(repositories.ProductFilter{StockMin: intPtr(2), StockMax: intPtr(5), Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Stock, 2)
		assert.LessOrEqual(t, p.Stock, 5)
	}
}

func TestGORMProductRepository_ListOrderAndPagination(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))
	seedProducts(t, repo)

	// Newest first
	products, total, err := repo.List(repositories.ProductFilter{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total) // count is taken before skip/limit
	assert.Len(t, products, 2)
	assert.Equal(t, "Monitor", products[0].Name)
	assert.Equal(t, "Teclado", products[1].Name)

	// Out-of-range page yields an empty slice, not an error
	products, total, err = repo.List(repositories.ProductFilter{Page: 9, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, products)
}

func TestGORMProductRepository_OwnerPreload(t *testing.T) {
	db := newTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	repo := repositories.NewGORMProductRepository(db)

	owner := &models.User{Name: "Kevin Rojas", UserName: "inventario", PasswordHash: "x"}
	assert.NoError(t, userRepo.Create(owner))
	assert.NoError(t, repo.Create(&models.Product{
		Name: "Lavadora", Price: 99.99, Stock: 2, SerialNumber: "SER001", OwnerID: owner.ID,
	}))

	products, _, err := repo.List(repositories.ProductFilter{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NotNil(t, products[0].Owner)
	assert.Equal(t, "inventario", products[0].Owner.UserName)

	all, err := repo.GetAllWithOwner()
	assert.NoError(t, err)
	assert.Equal(t, "Kevin Rojas", all[0].Owner.Name)
}

func TestGORMProductRepository_DuplicateSerial(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	assert.NoError(t, repo.Create(&models.Product{
		Name: "Lavadora", Price: 99.99, Stock: 2, SerialNumber: "DUP001",
	}))
	err := repo.Create(&models.Product{
		Name: "Clon", Price: 1, Stock: 1, SerialNumber: "DUP001",
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	_, err := repo.GetByID("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.GetBySerial("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.Delete("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
