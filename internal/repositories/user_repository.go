package repositories

import "inventario/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUserName(userName string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAllWithProducts() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
}
