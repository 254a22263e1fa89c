package repository

import (
	"strings"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user record.
func (r *UserRepo) Create(u *models.User) error {
	return r.db.Create(u).Error
}

// Get fetches one user by id.
func (r *UserRepo) Get(userID uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail fetches one user by email, case-insensitive.
func (r *UserRepo) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
