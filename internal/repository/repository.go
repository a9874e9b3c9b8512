package repository

import (
	"context"
	"database/sql"
	"time"

	"solar_dashboard/internal/models"
)

type Users interface {
	Create(name, email, passwordHash string) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Update(ctx context.Context, u models.User) error
}

// OverrideRepo stores developer overrides keyed by session id.
type OverrideRepo interface {
	Get(ctx context.Context, sessionID string) (models.DeveloperOverride, error)
	Save(ctx context.Context, o models.DeveloperOverride) error
	Delete(ctx context.Context, sessionID string) error
}

// EventQuery selects activity events. Zero fields do not filter.
type EventQuery struct {
	From   time.Time
	To     time.Time
	Type   string
	UserID int
	Limit  int
}

// EventRepo is the append-only account activity log.
type EventRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, q EventQuery) ([]models.ActivityEvent, error)
}

type Repository struct {
	Users     Users
	Overrides OverrideRepo
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Overrides: NewOverrideSQLite(db),
		EventRepo: NewEventSQLite(db),
	}
}
