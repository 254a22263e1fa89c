package repository

import (
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

// Create inserts a book record.
func (r *BookRepo) Create(b *models.Book) error {
	return r.db.Create(b).Error
}

// Get fetches one book.
func (r *BookRepo) Get(bookID uuid.UUID) (*models.Book, error) {
	var b models.Book
	if err := r.db.First(&b, "id = ?", bookID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List retrieves books in creation order, newest first.
func (r *BookRepo) List(limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	return books, err
}
