package services_test

import (
	"os"
	"strings"
	"testing"

	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestReportService_GenerateInventoryCSV(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	owner := &models.User{ID: "user-1", Name: "Kevin Rojas", UserName: "inventario"}
	assert.NoError(t, repo.Create(&models.Product{
		Name: "Lavadora", Price: 99.99, Stock: 10, SerialNumber: "REAL001",
		DescriptionAI: "Lavadora de carga frontal", CategoryAI: "Electrodomésticos",
		ImageURL: "https://bucket.s3.amazonaws.com/abc",
		OwnerID:  owner.ID, Owner: owner,
	}))
	// A product whose owner no longer resolves
	assert.NoError(t, repo.Create(&models.Product{
		Name: "Teclado", Price: 75, Stock: 5, SerialNumber: "KB0001",
		OwnerID: "deleted-user",
	}))
	service := services.NewReportService(repo)

	path, err := service.GenerateInventoryCSV()
	assert.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 3) // header + 2 rows

	// Fixed header row in fixed column order
	assert.Equal(t, "ID,Nombre,Precio,Stock,Serial,Descripción IA,Categoría IA,Imagen,Usuario,Fecha", lines[0])

	body := string(content)
	assert.Contains(t, body, "Lavadora")
	assert.Contains(t, body, "Kevin Rojas")
	assert.Contains(t, body, "https://bucket.s3.amazonaws.com/abc")
	// Missing owner projects as N/A
	assert.Contains(t, body, "N/A")
}

func TestReportService_GenerateInventoryCSV_EmptyCatalog(t *testing.T) {
	service := services.NewReportService(repositories.NewMemoryProductRepository())

	path, err := service.GenerateInventoryCSV()
	assert.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "ID,Nombre,Precio,Stock,Serial,Descripción IA,Categoría IA,Imagen,Usuario,Fecha",
		strings.TrimSpace(string(content)))
}
