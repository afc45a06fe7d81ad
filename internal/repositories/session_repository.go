package repositories

import (
	"errors"
	"time"

	"rinawarp_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository - журнал выданных токенов.
// Вставка при логине и чтение для аудита; строки не обновляются.
type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	// FindByToken нужен для ручного разбора инцидентов;
	// проверка токена при запросах журнал не читает.
	FindByToken(db *gorm.DB, token string) (*models.Session, error)
	DeleteExpiredBefore(db *gorm.DB, cutoff time.Time) (int64, error)
}

type SessionRepositoryImpl struct{}

func NewSessionRepository() SessionRepository {
	return &SessionRepositoryImpl{}
}

func (r *SessionRepositoryImpl) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	err := db.First(&session, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeleteExpiredBefore удаляет строки, истекшие раньше cutoff.
// Используется только retention-воркером.
func (r *SessionRepositoryImpl) DeleteExpiredBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("expires_at < ?", cutoff).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
