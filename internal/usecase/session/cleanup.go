package session

import (
	"context"
	"time"

	"flashdeals/internal/logger"

	"go.uber.org/zap"
)

// StartCleanupJob periodically deletes sessions idle for longer than the token lifetime
func (s *Service) StartCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Session cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupStaleSessions(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupStaleSessions(ctx)
		}
	}
}

func (s *Service) cleanupStaleSessions(ctx context.Context) int64 {
	cutoff := s.now().Add(-s.config.JWT.TTL())
	removed, err := s.sessionRepo.DeleteInactiveSince(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to delete stale sessions", zap.Error(err))
		return 0
	}

	logger.Debug("Stale sessions cleaned up",
		zap.Time("cutoff", cutoff),
		zap.Int64("removed", removed),
		zap.String("event", "sessions_cleaned_up"),
	)
	return removed
}
