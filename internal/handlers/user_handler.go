package handlers

import (
	"log"

	"inventario/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the user store.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Registration and listing are
// public; everything keyed by id needs an identity.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Get("/", h.HandleGetAll)
	users.Get("/:id", auth, h.HandleGetByID)
	users.Patch("/:id", auth, h.HandleUpdate)
	users.Delete("/:id", auth, h.HandleDelete)
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	UserName string `json:"userName" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	user, err := h.authService.RegisterUser(req.UserName, req.Name, req.Password)
	if err != nil {
		log.Printf("Error registering user %s: %v", req.UserName, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGetAll retrieves all users with their owned products.
func (h *UserHandler) HandleGetAll(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGetByID retrieves a single user by their ID.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate applies a partial patch to a user and returns the updated
// record.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var input services.UpdateUserInput
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

	user, err := h.userService.UpdateUser(c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete removes a user. Owned products are kept.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
