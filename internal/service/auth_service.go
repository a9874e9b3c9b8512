package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrPasswordMismatch = errors.New("passwords must match")
	ErrMissingFields    = errors.New("please fill all fields")
	ErrEmailTaken       = errors.New("email already exists")
)

// AuthService handles accounts and session tokens.
type AuthService struct {
	users      repository.Users
	activity   activityRecorder
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, events repository.EventRepo, signingKey string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:      users,
		activity:   activityRecorder{events: events, log: log},
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// SignUp validates the registration form, hashes the password and creates the user.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (int, error) {
	if in.Password != in.ConfirmPassword {
		return 0, ErrPasswordMismatch
	}
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return 0, ErrMissingFields
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.users.Create(name, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	s.activity.record(ctx, models.EventSignUp, id, "Account created", map[string]any{"email": email})
	return id, nil
}

// Claims defines JWT claims. The registered ID (jti) is the session id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a JWT for a fresh session.
func (s *AuthService) GenerateToken(email, password string) (string, error) {
	u, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID, uuid.NewString())
}

// ParseToken verifies an HMAC-signed token and returns its session.
func (s *AuthService) ParseToken(accessToken string) (Session, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return Session{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return Session{}, ErrInvalidToken
	}

	return Session{UserID: claims.UserID, SessionID: claims.ID}, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) issueToken(userID int, sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
