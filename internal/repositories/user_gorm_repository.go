package repositories

import (
	"fmt"

	"inventario/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUserName retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUserName(userName string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "user_name = ?", userName).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with userName %s: %w", userName, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get user by userName %s: %w", userName, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID, with the owned products preloaded.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Products").First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with ID %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetAllWithProducts retrieves all users with their owned products preloaded.
func (r *GORMUserRepository) GetAllWithProducts() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Products").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Update updates an existing user in the database.
func (r *GORMUserRepository) Update(user *models.User) error {
	// Omit associations so a loaded Products slice is never written back.
	res := r.db.Omit(clause.Associations).Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", user.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete deletes a user by their ID. Owned products are not cascaded; their
// owner reference simply stops resolving.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
