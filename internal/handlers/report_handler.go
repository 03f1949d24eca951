package handlers

import (
	"log"

	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles HTTP requests for catalog reports.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reports := router.Group("/reports")
	reports.Get("/inventario-csv", h.HandleInventoryCSV)
}

// HandleInventoryCSV streams the catalog snapshot as a CSV attachment.
func (h *ReportHandler) HandleInventoryCSV(c *fiber.Ctx) error {
	path, err := h.reportService.GenerateInventoryCSV()
	if err != nil {
		log.Printf("Error generating inventory report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate CSV report",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Download(path, "inventario.csv")
}
