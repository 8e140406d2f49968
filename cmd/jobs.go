package cmd

import (
	"context"
	"time"

	"smart-dine/internal/data/repository"
	"smart-dine/pkg/middleware"
	"smart-dine/pkg/scheduler"

	"go.uber.org/zap"
)

const (
	sessionCleanupSpec     = "@hourly"
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

// Jobs registers the maintenance jobs. Verification and reset tokens are
// left alone, they expire lazily when used.
func Jobs(repo *repository.Repository, limiter *middleware.RateLimiter, logger *zap.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger)

	err := s.Add("expired-sessions", sessionCleanupSpec, func(ctx context.Context) error {
		removed, err := repo.Session.CleanExpiredSessions(ctx)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info("Removed expired sessions", zap.Int64("count", removed))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if limiter != nil {
		err = s.Every("rate-limiter-cleanup", limiterCleanupInterval, func(context.Context) error {
			if dropped := limiter.Cleanup(limiterMaxIdle); dropped > 0 {
				logger.Debug("Dropped idle rate limiters", zap.Int("count", dropped), zap.Int("remaining", limiter.Len()))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}
