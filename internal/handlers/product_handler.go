package handlers

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"inventario/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the product routes. The listing is public;
// everything else needs an identity.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Post("/", auth, h.HandleCreate)
	products.Get("/:id", auth, h.HandleGetByID)
	products.Patch("/:id", auth, h.HandleUpdate)
	products.Delete("/:id", auth, h.HandleDelete)
}

// HandleList returns one page of the catalog with pagination metadata.
// Non-numeric page/limit values fall back to the defaults; explicit stock
// bounds must parse.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	input := services.ListProductsInput{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if v := c.Query("stockMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "stockMin must be an integer",
			})
		}
		input.StockMin = &n
	}
	if v := c.Query("stockMax"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "stockMax must be an integer",
			})
		}
		input.StockMax = &n
	}

	result, err := h.productService.ListProducts(input)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// parseCreateInput reads the creation request from either a JSON body or a
// multipart form carrying an image file part.
func parseCreateInput(c *fiber.Ctx) (services.CreateProductInput, error) {
	var input services.CreateProductInput

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		err := c.BodyParser(&input)
		return input, err
	}

	input.Name = c.FormValue("name")
	input.SerialNumber = c.FormValue("serialNumber")
	input.Description = c.FormValue("description")
	input.Category = c.FormValue("category")

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return input, fmt.Errorf("price must be a number")
		}
		input.Price = price
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return input, fmt.Errorf("stock must be an integer")
		}
		input.Stock = &stock
	}

	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return input, fmt.Errorf("failed to open image part: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return input, fmt.Errorf("failed to read image part: %w", err)
		}
		input.ImageData = data
		input.ImageMime = file.Header.Get("Content-Type")
	}
	return input, nil
}

// HandleCreate runs the product creation pipeline for the authenticated user.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "user not found",
		})
	}

	input, err := parseCreateInput(c)
	if err != nil {
		log.Printf("Error parsing create product request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	created, err := h.productService.CreateProduct(c.UserContext(), userID, input)
	if err != nil {
		log.Printf("Error creating product %q: %v", input.Name, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdate applies a partial patch and returns the updated product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var input services.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	updated, err := h.productService.UpdateProduct(c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// HandleDelete removes a product when the requester owns it.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if err := h.productService.DeleteProduct(c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
