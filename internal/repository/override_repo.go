package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"solar_dashboard/internal/models"
)

type OverrideSQLite struct {
	db *sql.DB
}

func NewOverrideSQLite(db *sql.DB) *OverrideSQLite {
	return &OverrideSQLite{db: db}
}

var _ OverrideRepo = (*OverrideSQLite)(nil)

const (
	upsertOverrideSQL = `
		INSERT INTO developer_overrides (session_id, efficiency, system_health, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			efficiency=excluded.efficiency,
			system_health=excluded.system_health,
			updated_at=excluded.updated_at
	`

	selectOverrideSQL = `
		SELECT session_id, efficiency, system_health, updated_at
		FROM developer_overrides WHERE session_id = ?
	`

	deleteOverrideSQL = `DELETE FROM developer_overrides WHERE session_id = ?`
)

// Get returns the override of a session; an unknown session yields an empty override.
func (r *OverrideSQLite) Get(ctx context.Context, sessionID string) (models.DeveloperOverride, error) {
	var o models.DeveloperOverride
	err := r.db.QueryRowContext(ctx, selectOverrideSQL, sessionID).
		Scan(&o.SessionID, &o.Efficiency, &o.SystemHealth, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeveloperOverride{SessionID: sessionID}, nil
		}
		return models.DeveloperOverride{}, fmt.Errorf("select override: %w", err)
	}
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

// Save inserts or replaces the override of o.SessionID.
func (r *OverrideSQLite) Save(ctx context.Context, o models.DeveloperOverride) error {
	if o.SessionID == "" {
		return errors.New("override without session id")
	}
	ts := o.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertOverrideSQL,
		o.SessionID,
		o.Efficiency,
		o.SystemHealth,
		ts.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// Delete removes a session's override. Deleting a missing row is not an error.
func (r *OverrideSQLite) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, deleteOverrideSQL, sessionID); err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	return nil
}
