package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"solar_dashboard/internal/models"
)

// ErrEmailTaken is returned when an account with the same email exists.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (name, email, password_hash, photo) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash, photo FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, name, email, password_hash, photo FROM users WHERE id = ?`
	updateUserSQL        = `UPDATE users SET name = ?, email = ?, password_hash = ?, photo = ? WHERE id = ?`
)

// Create inserts a new user with the default photo and returns its ID.
func (r *UserRepository) Create(name, email, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, name, email, passwordHash, models.DefaultPhoto)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail returns (nil, nil) if no user has that email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// GetByID returns (nil, nil) if the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

// Update overwrites the stored fields of an existing user.
func (r *UserRepository) Update(ctx context.Context, u models.User) error {
	res, err := r.db.ExecContext(ctx, updateUserSQL, u.Name, u.Email, u.PasswordHash, u.Photo, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", u.ID, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Photo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// modernc reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
