package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
)

func Test_eventQuery(t *testing.T) {
	t.Parallel()

	fromLocal := time.Date(2025, time.September, 10, 10, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      LogFilter
		want    repository.EventQuery
		wantErr error
	}{
		{
			name: "defaults",
			in:   LogFilter{UserID: 7},
			want: repository.EventQuery{UserID: 7, Limit: defaultLogLimit},
		},
		{
			name: "normalizes zone and type",
			in:   LogFilter{UserID: 7, From: fromLocal, To: toUTC, Type: " sign_out ", Limit: 5},
			want: repository.EventQuery{
				UserID: 7,
				From:   time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC),
				To:     toUTC,
				Type:   models.EventSignOut,
				Limit:  5,
			},
		},
		{
			name: "from after to",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "unknown type",
			in:      LogFilter{Type: "heat_on"},
			wantErr: ErrUnknownEventType,
		},
		{
			name:    "limit too large",
			in:      LogFilter{Limit: maxLogLimit + 1},
			wantErr: ErrInvalidLimit,
		},
		{
			name:    "negative limit",
			in:      LogFilter{Limit: -1},
			wantErr: ErrInvalidLimit,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := eventQuery(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			if !got.From.Equal(tc.want.From) || !got.To.Equal(tc.want.To) {
				t.Fatalf("range: got [%v, %v]; want [%v, %v]", got.From, got.To, tc.want.From, tc.want.To)
			}
			if got.Type != tc.want.Type || got.UserID != tc.want.UserID || got.Limit != tc.want.Limit {
				t.Fatalf("got %+v; want %+v", got, tc.want)
			}
			if !got.From.IsZero() && got.From.Location() != time.UTC {
				t.Fatalf("from not in UTC: %v", got.From.Location())
			}
		})
	}
}

func TestEventLogService_List(t *testing.T) {
	t.Parallel()

	repo := &stubEvents{list: []models.ActivityEvent{{EventID: "1", Type: models.EventOverrideSet, UserID: 7}}}
	svc := NewEventLogService(repo)

	out, err := svc.List(context.Background(), LogFilter{UserID: 7, Type: "override_set"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if repo.calls != 1 || repo.got.UserID != 7 || repo.got.Type != models.EventOverrideSet {
		t.Fatalf("unexpected store query (calls=%d): %+v", repo.calls, repo.got)
	}
}

func TestEventLogService_List_ValidationSkipsStore(t *testing.T) {
	t.Parallel()

	repo := &stubEvents{}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{Type: "bogus"}); !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("expected ErrUnknownEventType; got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("store should not be called on validation error, calls=%d", repo.calls)
	}
}

func TestEventLogService_List_StoreError(t *testing.T) {
	t.Parallel()

	repo := &stubEvents{listErr: errors.New("disk I/O error")}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{UserID: 1}); err == nil || !errors.Is(err, repo.listErr) {
		t.Fatalf("expected wrapped store error; got %v", err)
	}
}
