package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

var (
	ErrInvalidTimeRange = errors.New("'from' must be <= 'to'")
	ErrUnknownEventType = errors.New("unknown event type")
	ErrInvalidLimit     = fmt.Errorf("limit must be between 1 and %d", maxLogLimit)
)

// EventLogService reads an account's own activity history.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// List returns the newest events of f.UserID matching f.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	q, err := eventQuery(f)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return events, nil
}

// eventQuery validates f and converts it to a UTC store query.
func eventQuery(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		UserID: f.UserID,
		Type:   strings.ToUpper(strings.TrimSpace(f.Type)),
		Limit:  f.Limit,
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}

	switch {
	case !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To):
		return repository.EventQuery{}, ErrInvalidTimeRange
	case q.Type != "" && !models.IsEventType(q.Type):
		return repository.EventQuery{}, fmt.Errorf("%w %q", ErrUnknownEventType, f.Type)
	case q.Limit < 0 || q.Limit > maxLogLimit:
		return repository.EventQuery{}, ErrInvalidLimit
	case q.Limit == 0:
		q.Limit = defaultLogLimit
	}
	return q, nil
}
