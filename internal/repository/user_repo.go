package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"recipe_share/internal/models"
)

// ErrDuplicateUsername reports a violated users.username uniqueness
// constraint so callers can surface it as a validation failure.
var ErrDuplicateUsername = errors.New("username already taken")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, password_hash, image_url, bio) VALUES (?, ?, ?, ?)`

	selectUserByUsernameSQL = `SELECT id, username, password_hash, image_url, bio FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash, image_url, bio FROM users WHERE id = ?`
)

// Create inserts a new user inside a transaction and returns its ID.
// A uniqueness violation rolls back and returns ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert user %q: %w", u.Username, err)
	}

	res, err := tx.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.ImageURL, u.Bio)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.ImageURL, &u.Bio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.ImageURL, &u.Bio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// isUniqueViolation sniffs the driver error text; modernc.org/sqlite does
// not expose typed constraint errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
