package service

import (
	"context"
	"errors"
	"testing"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
)

func seededUsers() *stubUsers {
	return newStubUsers(
		models.User{ID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: "h1", Photo: models.DefaultPhoto},
		models.User{ID: 2, Name: "Bob", Email: "bob@example.com", PasswordHash: "h2", Photo: models.DefaultPhoto},
	)
}

func TestProfileService_GetProfile(t *testing.T) {
	svc := NewProfileService(seededUsers(), &stubEvents{}, logger.Nop())

	u, err := svc.GetProfile(context.Background(), 1)
	if err != nil || u.Name != "Alice" {
		t.Fatalf("unexpected result: %+v (%v)", u, err)
	}
	if _, err := svc.GetProfile(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name       string
		in         ProfileUpdate
		wantErr    error
		wantFields []string
		check      func(t *testing.T, u models.User)
	}{
		{
			name:       "name and photo",
			in:         ProfileUpdate{Name: "Alicia", Photo: "me.png"},
			wantFields: []string{"name", "photo"},
			check: func(t *testing.T, u models.User) {
				if u.Name != "Alicia" || u.Photo != "me.png" || u.Email != "alice@example.com" {
					t.Fatalf("unexpected user %+v", u)
				}
			},
		},
		{
			name:       "new password is hashed",
			in:         ProfileUpdate{Password: "n3w"},
			wantFields: []string{"password"},
			check: func(t *testing.T, u models.User) {
				if err := verifyPassword(u.PasswordHash, "n3w"); err != nil {
					t.Fatalf("password not re-hashed: %v", err)
				}
			},
		},
		{
			name:       "free email",
			in:         ProfileUpdate{Email: "alice@new.example.com"},
			wantFields: []string{"email"},
		},
		{
			name:    "email of another user",
			in:      ProfileUpdate{Email: "bob@example.com"},
			wantErr: ErrEmailTaken,
		},
		{
			name:    "photo with a path",
			in:      ProfileUpdate{Photo: "../../etc/passwd"},
			wantErr: ErrInvalidPhoto,
		},
		{
			name: "nothing changed",
			in:   ProfileUpdate{Name: "Alice", Email: "alice@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := seededUsers()
			events := &stubEvents{}
			svc := NewProfileService(users, events, logger.Nop())

			u, err := svc.UpdateProfile(context.Background(), 1, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if len(users.updates) != 0 {
					t.Fatalf("no update expected on error")
				}
				return
			}
			if tt.check != nil {
				tt.check(t, u)
			}

			if len(tt.wantFields) == 0 {
				if len(users.updates) != 0 || len(events.appends) != 0 {
					t.Fatalf("expected no write for an unchanged profile")
				}
				return
			}
			if len(users.updates) != 1 {
				t.Fatalf("expected one update, got %d", len(users.updates))
			}
			if len(events.appends) != 1 || events.appends[0].Type != models.EventProfileUpdate {
				t.Fatalf("expected PROFILE_UPDATE activity, got %v", events.types())
			}
			meta, _ := events.appends[0].Metadata.(map[string]any)
			fields, _ := meta["fields"].([]string)
			if len(fields) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
			}
			for i := range fields {
				if fields[i] != tt.wantFields[i] {
					t.Fatalf("fields = %v, want %v", fields, tt.wantFields)
				}
			}
		})
	}
}
