package core

import (
	"context"

	"go.uber.org/zap"

	"giftlist-backend-go/internal/db"
	"giftlist-backend-go/internal/models"
)

// activityService implements the ActivityService interface.
type activityService struct {
	activityRepo db.ActivityRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService instance.
func NewActivityService(ar db.ActivityRepository, logger *zap.Logger) ActivityService {
	return &activityService{activityRepo: ar, logger: logger}
}

// Record writes one activity entry. Failures are logged and swallowed; no
// caller's action depends on the activity log landing.
func (s *activityService) Record(ctx context.Context, entry models.Activity) {
	if s.activityRepo == nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("action", entry.Action),
			zap.String("listId", entry.ListID),
			zap.Error(err))
	}
}
