package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inventario/internal/repositories"

	"github.com/gocarina/gocsv"
)

// inventoryRow is one line of the CSV export. The csv tags fix both the
// header names and the column order.
type inventoryRow struct {
	ID            string  `csv:"ID"`
	Name          string  `csv:"Nombre"`
	Price         float64 `csv:"Precio"`
	Stock         int     `csv:"Stock"`
	SerialNumber  string  `csv:"Serial"`
	DescriptionAI string  `csv:"Descripción IA"`
	CategoryAI    string  `csv:"Categoría IA"`
	ImageURL      string  `csv:"Imagen"`
	OwnerName     string  `csv:"Usuario"`
	CreatedAt     string  `csv:"Fecha"`
}

// ReportService snapshots the catalog into a downloadable CSV file. The whole
// catalog is loaded into memory, which is fine at this scale.
type ReportService struct {
	productRepo repositories.ProductRepository
}

// NewReportService creates a new ReportService.
func NewReportService(productRepo repositories.ProductRepository) *ReportService {
	return &ReportService{
		productRepo: productRepo,
	}
}

// GenerateInventoryCSV writes the catalog snapshot to a transient file and
// returns its path. Products whose owner no longer resolves show "N/A".
func (s *ReportService) GenerateInventoryCSV() (string, error) {
	products, err := s.productRepo.GetAllWithOwner()
	if err != nil {
		return "", fmt.Errorf("failed to load catalog for report: %w", err)
	}

	rows := make([]inventoryRow, 0, len(products))
	for _, p := range products {
		ownerName := "N/A"
		if p.Owner != nil {
			ownerName = p.Owner.Name
		}
		rows = append(rows, inventoryRow{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price,
			Stock:         p.Stock,
			SerialNumber:  p.SerialNumber,
			DescriptionAI: p.DescriptionAI,
			CategoryAI:    p.CategoryAI,
			ImageURL:      p.ImageURL,
			OwnerName:     ownerName,
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		})
	}

	path := filepath.Join(os.TempDir(), "inventario.csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", fmt.Errorf("failed to write report CSV: %w", err)
	}
	return path, nil
}
