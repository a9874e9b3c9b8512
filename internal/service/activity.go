package service

import (
	"context"
	"time"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"

	"github.com/google/uuid"
)

// activityRecorder appends audit entries. A failed append is logged and never
// fails the operation being audited.
type activityRecorder struct {
	events repository.EventRepo
	log    *logger.Logger
}

func (r activityRecorder) record(ctx context.Context, typ string, userID int, description string, meta any) {
	if r.events == nil {
		return
	}
	err := r.events.Append(ctx, models.ActivityEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		UserID:      userID,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && r.log != nil {
		r.log.Warnw("activity_append_failed", "type", typ, "user_id", userID, "error", err)
	}
}
