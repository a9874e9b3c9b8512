package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"solar_dashboard/internal/models"

	"github.com/google/uuid"
)

// Timestamps are stored as UTC text in this layout so that string order is time order.
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	insertEventSQL = `
		INSERT INTO activity_events (id, occurred_at, type, user_id, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, type, user_id, message, meta FROM activity_events`
)

type EventSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventSQLite(db *sql.DB) *EventSQLite {
	return &EventSQLite{db: db, now: time.Now}
}

// Append stores e. A missing id or timestamp is generated.
func (r *EventSQLite) Append(ctx context.Context, e models.ActivityEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = r.now()
	}

	meta, err := encodeMeta(e.Metadata)
	if err != nil {
		return fmt.Errorf("encode event meta: %w", err)
	}
	var userID sql.NullInt64
	if e.UserID != 0 {
		userID = sql.NullInt64{Int64: int64(e.UserID), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimeLayout),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		userID,
		e.Description,
		meta,
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns the events matching q, newest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.ActivityEvent, error) {
	query, args := buildEventQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []models.ActivityEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func buildEventQuery(q EventQuery) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		where = append(where, cond)
		args = append(args, arg)
	}

	if !q.From.IsZero() {
		add("occurred_at >= ?", q.From.UTC().Format(sqliteTimeLayout))
	}
	if !q.To.IsZero() {
		add("occurred_at <= ?", q.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		add("type = ?", typ)
	}
	if q.UserID != 0 {
		add("user_id = ?", q.UserID)
	}

	var b strings.Builder
	b.WriteString(selectEventsSQL)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY occurred_at DESC")
	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return b.String(), args
}

func scanEvent(rows *sql.Rows) (models.ActivityEvent, error) {
	var (
		ev     models.ActivityEvent
		userID sql.NullInt64
		meta   sql.NullString
	)
	if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &userID, &ev.Description, &meta); err != nil {
		return models.ActivityEvent{}, err
	}
	ev.OccurredAt = ev.OccurredAt.UTC()
	ev.UserID = int(userID.Int64)
	ev.Metadata = decodeMeta(meta)
	return ev, nil
}

func encodeMeta(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeMeta returns the parsed JSON, or the raw text when it is not JSON.
func decodeMeta(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return ns.String
	}
	return v
}
