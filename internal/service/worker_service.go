package service

import (
	"context"
	"time"

	"clinic-reservation-backend/internal/repository"

	"go.uber.org/zap"
)

const tokenCleanupInterval = time.Hour

// WorkerService runs the periodic maintenance loop. Its only job today is
// purging expired and revoked refresh tokens.
type WorkerService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewWorkerService(userRepo *repository.UserRepository, logger *zap.Logger) *WorkerService {
	return &WorkerService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Start runs the maintenance loop until the context is cancelled
func (s *WorkerService) Start(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	s.cleanup()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Worker stopped")
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *WorkerService) cleanup() {
	removed, err := s.userRepo.DeleteStaleRefreshTokens(time.Now().UTC())
	if err != nil {
		s.logger.Warn("Refresh token cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Removed stale refresh tokens", zap.Int64("count", removed))
	}
}
