package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
)

var ErrInvalidPhoto = errors.New("photo must be a plain file name")

type ProfileService struct {
	users    repository.Users
	activity activityRecorder
}

func NewProfileService(users repository.Users, events repository.EventRepo, log *logger.Logger) *ProfileService {
	return &ProfileService{users: users, activity: activityRecorder{events: events, log: log}}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// UpdateProfile applies the non-empty fields of p. A changed email must not
// belong to another account.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int, p ProfileUpdate) (models.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	var changed []string
	if email := strings.TrimSpace(p.Email); email != "" && email != u.Email {
		other, err := s.users.GetByEmail(email)
		if err != nil {
			return models.User{}, err
		}
		if other != nil && other.ID != u.ID {
			return models.User{}, ErrEmailTaken
		}
		u.Email = email
		changed = append(changed, "email")
	}
	if name := strings.TrimSpace(p.Name); name != "" && name != u.Name {
		u.Name = name
		changed = append(changed, "name")
	}
	if strings.TrimSpace(p.Password) != "" {
		hash, err := hashPassword(p.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("invalid password: %w", err)
		}
		u.PasswordHash = hash
		changed = append(changed, "password")
	}
	if photo := strings.TrimSpace(p.Photo); photo != "" && photo != u.Photo {
		if photo != filepath.Base(photo) || photo == "." || photo == ".." {
			return models.User{}, ErrInvalidPhoto
		}
		u.Photo = photo
		changed = append(changed, "photo")
	}

	if len(changed) == 0 {
		return u, nil
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	s.activity.record(ctx, models.EventProfileUpdate, u.ID, "Profile updated", map[string]any{"fields": changed})
	return u, nil
}
