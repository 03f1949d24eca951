package services

import (
	"errors"
	"fmt"

	"inventario/internal/models"
	"inventario/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateUserInput is a partial patch for a user record. A supplied password
// is re-hashed before storage.
type UpdateUserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	UserName *string `json:"userName" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password" validate:"omitempty,min=3"`
}

// UserService handles user CRUD outside of the auth flow.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetAllUsers retrieves all users with their owned products.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAllWithProducts()
}

// GetUser retrieves a single user by their ID.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial patch and returns the updated user.
func (s *UserService) UpdateUser(id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.UserName != nil && *input.UserName != user.UserName {
		if existing, err := s.userRepo.GetByUserName(*input.UserName); err == nil && existing.ID != id {
			return nil, ErrUserNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.UserName = *input.UserName
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		if len(*input.Password) < 3 {
			return nil, ErrWeakPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserNameTaken
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. Owned products are not cascaded: their owner
// reference simply stops resolving and projections render it as missing.
func (s *UserService) DeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
