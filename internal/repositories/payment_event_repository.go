package repositories

import (
	"errors"

	"rinawarp_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentEventNotFound = errors.New("payment event not found")

type PaymentEventRepository interface {
	Create(db *gorm.DB, event *models.PaymentEvent) error
	FindByProviderSessionID(db *gorm.DB, sessionID string) (*models.PaymentEvent, error)
}

type PaymentEventRepositoryImpl struct{}

func NewPaymentEventRepository() PaymentEventRepository {
	return &PaymentEventRepositoryImpl{}
}

func (r *PaymentEventRepositoryImpl) Create(db *gorm.DB, event *models.PaymentEvent) error {
	return db.Create(event).Error
}

func (r *PaymentEventRepositoryImpl) FindByProviderSessionID(db *gorm.DB, sessionID string) (*models.PaymentEvent, error) {
	var event models.PaymentEvent
	err := db.First(&event, "provider_session_id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentEventNotFound
		}
		return nil, err
	}
	return &event, nil
}
