package workers

import (
	"context"
	"time"

	"rinawarp_backend/internal/logger"
	"rinawarp_backend/internal/repositories"

	"gorm.io/gorm"
)

// SessionWorker чистит журнал сессий от давно истекших строк.
// Журнал insert-only, поэтому без ретеншена он растет бесконечно.
type SessionWorker struct {
	db            *gorm.DB
	sessionRepo   repositories.SessionRepository
	retentionDays int
	interval      time.Duration
}

func NewSessionWorker(db *gorm.DB, sessionRepo repositories.SessionRepository, retentionDays int) *SessionWorker {
	return &SessionWorker{
		db:            db,
		sessionRepo:   sessionRepo,
		retentionDays: retentionDays,
		interval:      6 * time.Hour,
	}
}

// Start запускает фоновую зачистку.
// retentionDays <= 0 означает "хранить вечно" - воркер не стартует.
func (w *SessionWorker) Start(ctx context.Context) {
	if w.retentionDays <= 0 {
		logger.Info("session retention disabled, keeping session log forever")
		return
	}
	go w.sweepLoop(ctx)
}

func (w *SessionWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep удаляет сессии, истекшие раньше окна ретеншена.
// Удаляются только истекшие строки: действующие токены не трогаем.
func (w *SessionWorker) sweep() {
	cutoff := time.Now().AddDate(0, 0, -w.retentionDays)

	deleted, err := w.sessionRepo.DeleteExpiredBefore(w.db, cutoff)
	if err != nil {
		logger.Error("session sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("session sweep completed", "deleted", deleted, "cutoff", cutoff)
	}
}
