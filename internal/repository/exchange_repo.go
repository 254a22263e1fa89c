package repository

import (
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExchangeRepo struct {
	db *gorm.DB
}

func NewExchangeRepo(db *gorm.DB) *ExchangeRepo {
	return &ExchangeRepo{db: db}
}

// Create inserts an exchange request record.
func (r *ExchangeRepo) Create(req *models.ExchangeRequest) error {
	return r.db.Create(req).Error
}

// Get fetches one exchange request.
func (r *ExchangeRepo) Get(requestID uuid.UUID) (*models.ExchangeRequest, error) {
	var req models.ExchangeRequest
	if err := r.db.First(&req, "id = ?", requestID).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// Save persists status mutations.
func (r *ExchangeRepo) Save(req *models.ExchangeRequest) error {
	return r.db.Save(req).Error
}

// ListForUser retrieves requests sent to or by the user, newest first.
func (r *ExchangeRepo) ListForUser(userID uuid.UUID, limit int) ([]models.ExchangeRequest, error) {
	var reqs []models.ExchangeRequest
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reqs).Error
	return reqs, err
}
